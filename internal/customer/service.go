package customer

import (
	"errors"
	"strings"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record does not exist")
	ErrPermissionDenied = errors.New("you do not have permission to modify this record")
	ErrDuplicateAccount = errors.New("a customer with this email already exists")
)

type Service struct {
	gdb         *gorm.DB
	customers   *CustomerRepository
	medicalInfo *MedicalInformationRepository
	preferences *PreferenceRepository
}

func NewService(gdb *gorm.DB) *Service {
	return &Service{
		gdb:         gdb,
		customers:   NewCustomerRepository(gdb),
		medicalInfo: NewMedicalInformationRepository(gdb),
		preferences: NewPreferenceRepository(gdb),
	}
}

// Register creates the account and its customer profile in one transaction;
// a failure at either step rolls both back.
func (s *Service) Register(input auth.AccountInput) (string, error) {
	var customerID string

	err := s.gdb.Transaction(func(tx *gorm.DB) error {
		user, err := auth.CreateAccount(tx, input)
		if err != nil {
			return err
		}
		c, err := createProfile(tx, user)
		if err != nil {
			return err
		}
		customerID = c.CustomerID
		return nil
	})

	if errors.Is(err, db.ErrDuplicate) {
		return "", ErrDuplicateAccount
	}
	if err != nil {
		return "", err
	}
	return customerID, nil
}

// RegisterCustomer creates the customer profile for an existing account with
// the default "active" state. An account may hold at most one profile.
func (s *Service) RegisterCustomer(user *auth.User) (*Customer, error) {
	c, err := createProfile(s.gdb, user)
	if errors.Is(err, db.ErrDuplicate) {
		return nil, ErrDuplicateAccount
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// createProfile inserts the profile row on the given handle so registration
// transactions and standalone profile creation share one construction path.
func createProfile(tx *gorm.DB, user *auth.User) (*Customer, error) {
	c := Customer{
		CustomerID:   uuid.NewString(),
		AccountState: "active",
		UserID:       user.UserID,
	}
	if err := tx.Create(&c).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (s *Service) GetByUserID(userID string) (*Customer, error) {
	return s.customers.GetByUserID(userID)
}

// HasCustomerProfile implements auth.RoleResolver for login-time role
// derivation.
func (s *Service) HasCustomerProfile(userID string) (bool, error) {
	c, err := s.customers.GetByUserID(userID)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

type UpdateInput struct {
	PersonalPresentation *string `json:"personal_presentation"`
	AccountState         *string `json:"account_state"`
}

func (s *Service) Update(c *Customer, input UpdateInput) error {
	updates := map[string]interface{}{}
	if input.PersonalPresentation != nil {
		updates["personal_presentation"] = *input.PersonalPresentation
	}
	if input.AccountState != nil {
		if _, ok := accountStates[*input.AccountState]; !ok {
			return db.Invalid("account_state", "unknown account state")
		}
		updates["account_state"] = *input.AccountState
	}
	if len(updates) == 0 {
		return nil
	}
	return s.customers.Update(c, updates)
}

type MedicalInformationInput struct {
	Allergies             string `json:"allergies"`
	MedicalConditions     string `json:"medical_conditions"`
	MedicationIntake      string `json:"medication_intake"`
	MedicationRestriction string `json:"medication_restriction"`
	EmergencyContact      string `json:"emergency_contact"`
}

func (s *Service) GetMedicalInfo(c *Customer) (*MedicalInformation, error) {
	return s.medicalInfo.GetByCustomerID(c.CustomerID)
}

// SaveMedicalInfo upserts the customer's single medical-information row:
// update in place when one exists, insert otherwise.
func (s *Service) SaveMedicalInfo(c *Customer, input MedicalInformationInput) (*MedicalInformation, error) {
	existing, err := s.medicalInfo.GetByCustomerID(c.CustomerID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		err := s.medicalInfo.Update(existing, map[string]interface{}{
			"allergies":              input.Allergies,
			"medical_conditions":     input.MedicalConditions,
			"medication_intake":      input.MedicationIntake,
			"medication_restriction": input.MedicationRestriction,
			"emergency_contact":      input.EmergencyContact,
		})
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	info := MedicalInformation{
		MedicalInformationID:  uuid.NewString(),
		Allergies:             input.Allergies,
		MedicalConditions:     input.MedicalConditions,
		MedicationIntake:      input.MedicationIntake,
		MedicationRestriction: input.MedicationRestriction,
		EmergencyContact:      input.EmergencyContact,
		CustomerID:            c.CustomerID,
	}
	if err := s.medicalInfo.Create(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *Service) ListPreferences(c *Customer) ([]Preference, error) {
	return s.preferences.GetByCustomerID(c.CustomerID)
}

func (s *Service) CreatePreference(c *Customer, description string) (*Preference, error) {
	if strings.TrimSpace(description) == "" {
		return nil, db.Invalid("description", "description is required")
	}
	pref := Preference{
		PreferenceID: uuid.NewString(),
		Description:  description,
		CustomerID:   c.CustomerID,
	}
	if err := s.preferences.Create(&pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// DeletePreference is the ownership-check-then-act shape every delete in the
// system follows: absent row is NotFound, someone else's row is
// PermissionDenied and the row stays put.
func (s *Service) DeletePreference(c *Customer, preferenceID string) error {
	pref, err := s.preferences.GetByID(preferenceID)
	if err != nil {
		return err
	}
	if pref == nil {
		return ErrNotFound
	}
	if pref.CustomerID != c.CustomerID {
		return ErrPermissionDenied
	}
	return s.preferences.Delete(pref)
}
