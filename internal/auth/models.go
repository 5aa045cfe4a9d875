package auth

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	UserType  string    `json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

// User is the base account every Companion or Customer profile hangs off.
// Password is the inbound plaintext and never touches the database; only
// HashedPassword is persisted.
type User struct {
	UserID           string     `gorm:"primaryKey" json:"user_id"`
	Names            string     `gorm:"not null" json:"names"`
	LastNames        string     `json:"last_names"`
	Password         string     `json:"password" gorm:"-"`
	HashedPassword   string     `json:"-"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	BirthDate        *time.Time `json:"birth_date"`
	Genre            string     `json:"genre"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	ProfilePhotoPath string     `json:"profile_photo_path"`
	RegistrationDate time.Time  `gorm:"autoCreateTime" json:"registration_date"`
	Location         string     `json:"location"`
	Languages        []Language `gorm:"many2many:app_auth.user_languages;" json:"languages"`
	Session          Session    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Language struct {
	LanguageID string `gorm:"primaryKey" json:"language_id"`
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Session) TableName() string  { return "app_auth.sessions" }
func (User) TableName() string     { return "app_auth.users" }
func (Language) TableName() string { return "app_auth.languages" }
