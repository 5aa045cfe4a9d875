package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var genres = map[string]struct{}{
	"male":   {},
	"female": {},
	"other":  {},
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", db.Invalid("password", "password is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// Authenticate looks the account up by email and verifies the password.
// Returns nil for an unknown email and for a wrong password alike, so callers
// can't tell the two apart. The email is normalized the same way CreateAccount
// stores it, so casing never breaks the lookup.
func Authenticate(email, password string) (*User, error) {
	var user User
	err := db.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	if !CheckPassword(user.HashedPassword, password) {
		return nil, nil
	}
	return &user, nil
}

// GetUser loads an account by primary key for session rehydration. Returns
// nil when the account doesn't exist.
func GetUser(userID string) (*User, error) {
	var user User
	err := db.DB.Preload("Languages").First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &user, nil
}

// AccountInput is the account half of a registration request. BirthDate uses
// the 2006-01-02 layout.
type AccountInput struct {
	Names     string `json:"names"`
	LastNames string `json:"last_names"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"`
	Genre     string `json:"genre"`
	Location  string `json:"location"`
}

func (in AccountInput) validate() error {
	if strings.TrimSpace(in.Names) == "" {
		return db.Invalid("names", "names are required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return db.Invalid("email", "a valid email is required")
	}
	if in.Password == "" {
		return db.Invalid("password", "password is required")
	}
	if in.Genre != "" {
		if _, ok := genres[in.Genre]; !ok {
			return db.Invalid("genre", "genre must be male, female or other")
		}
	}
	if in.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
			return db.Invalid("birth_date", "birth date must be YYYY-MM-DD")
		}
	}
	return nil
}

// CreateAccount inserts a new account on the given handle. Registration
// orchestrators pass their transaction here so the account and its profile
// commit or roll back together. This is the only place a password is hashed
// at creation.
func CreateAccount(tx *gorm.DB, in AccountInput) (*User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		UserID:         uuid.NewString(),
		Names:          strings.TrimSpace(in.Names),
		LastNames:      strings.TrimSpace(in.LastNames),
		HashedPassword: hashed,
		Phone:          in.Phone,
		Address:        in.Address,
		Genre:          in.Genre,
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Location:       in.Location,
	}
	if in.BirthDate != "" {
		bd, _ := time.Parse("2006-01-02", in.BirthDate)
		user.BirthDate = &bd
	}

	if err := tx.Create(&user).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &user, nil
}

// StartSession creates or refreshes the single session row for the user and
// returns the new session ID. UserType is derived at login and stored on the
// session only.
func StartSession(userID, userType string, lifetime time.Duration) (string, error) {
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(lifetime)

	var existing Session
	err := db.DB.First(&existing, "user_id = ?", userID).Error
	if err == nil {
		err = db.DB.Model(&existing).Updates(map[string]interface{}{
			"session_id": sessionID,
			"user_type":  userType,
			"expires_at": expiresAt,
		}).Error
		if err != nil {
			return "", db.Translate(err)
		}
		return sessionID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", db.Translate(err)
	}

	session := Session{
		SessionID: sessionID,
		UserID:    userID,
		UserType:  userType,
		ExpiresAt: expiresAt,
	}
	if err := db.DB.Create(&session).Error; err != nil {
		return "", db.Translate(err)
	}
	return sessionID, nil
}
