package customer

import "github.com/CompaniaApp/Compania-Backend/internal/auth"

// Account states a customer may be set to. Transitions are administrative;
// any listed value may be assigned directly.
var accountStates = map[string]struct{}{
	"active":   {},
	"inactive": {},
	"blocked":  {},
}

type Customer struct {
	CustomerID           string    `gorm:"primaryKey" json:"customer_id"`
	AccountState         string    `json:"account_state"`
	PersonalPresentation string    `json:"personal_presentation"`
	UserID               string    `gorm:"uniqueIndex;not null" json:"user_id"`
	User                 auth.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// MedicalInformation is at most one row per customer; saves upsert in place.
type MedicalInformation struct {
	MedicalInformationID  string   `gorm:"primaryKey" json:"medical_information_id"`
	Allergies             string   `json:"allergies"`
	MedicalConditions     string   `json:"medical_conditions"`
	MedicationIntake      string   `json:"medication_intake"`
	MedicationRestriction string   `json:"medication_restriction"`
	EmergencyContact      string   `json:"emergency_contact"`
	CustomerID            string   `gorm:"uniqueIndex;not null" json:"customer_id"`
	Customer              Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

type Preference struct {
	PreferenceID string   `gorm:"primaryKey" json:"preference_id"`
	Description  string   `gorm:"not null" json:"description"`
	CustomerID   string   `gorm:"index;not null" json:"customer_id"`
	Customer     Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Customer) TableName() string           { return "customer.customers" }
func (MedicalInformation) TableName() string { return "customer.medical_informations" }
func (Preference) TableName() string         { return "customer.preferences" }
