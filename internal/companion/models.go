package companion

import (
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
)

// Availability states a companion may be set to. Transitions are
// administrative; any listed value may be assigned directly.
var availabilityStates = map[string]struct{}{
	"available":     {},
	"not available": {},
	"pause":         {},
	"blocked":       {},
}

type Companion struct {
	CompanionID         string    `gorm:"primaryKey" json:"companion_id"`
	StateAvailability   string    `json:"state_availability"`
	HourlyRate          float64   `json:"hourly_rate"`
	PersonalDescription string    `json:"personal_description"`
	UserID              string    `gorm:"uniqueIndex;not null" json:"user_id"`
	User                auth.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Certification struct {
	CertificationID string    `gorm:"primaryKey" json:"certification_id"`
	Description     string    `gorm:"not null" json:"description"`
	CertificatePath string    `gorm:"not null" json:"certificate_path"`
	CompanionID     string    `gorm:"index;not null" json:"companion_id"`
	Companion       Companion `gorm:"foreignKey:CompanionID;constraint:OnDelete:CASCADE" json:"-"`
}

type Reference struct {
	ReferenceID string    `gorm:"primaryKey" json:"reference_id"`
	Names       string    `json:"names"`
	LastNames   string    `json:"last_names"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	CompanionID string    `gorm:"index;not null" json:"companion_id"`
	Companion   Companion `gorm:"foreignKey:CompanionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TimeAvailability is one bookable window. StartTime/EndTime are HH:MM; the
// format sorts lexicographically so interval checks compare strings directly.
type TimeAvailability struct {
	TimeAvailabilityID string    `gorm:"primaryKey" json:"time_availability_id"`
	Date               time.Time `gorm:"type:date;not null" json:"date"`
	StartTime          string    `gorm:"not null" json:"start_time"`
	EndTime            string    `gorm:"not null" json:"end_time"`
	CompanionID        string    `gorm:"index;not null" json:"companion_id"`
	Companion          Companion `gorm:"foreignKey:CompanionID;constraint:OnDelete:CASCADE" json:"-"`
}

type Skill struct {
	SkillID     string    `gorm:"primaryKey" json:"skill_id"`
	Description string    `gorm:"not null" json:"description"`
	CompanionID string    `gorm:"index;not null" json:"companion_id"`
	Companion   Companion `gorm:"foreignKey:CompanionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Companion) TableName() string        { return "companion.companions" }
func (Certification) TableName() string    { return "companion.certifications" }
func (Reference) TableName() string        { return "companion.references" }
func (TimeAvailability) TableName() string { return "companion.time_availabilities" }
func (Skill) TableName() string            { return "companion.skills" }
