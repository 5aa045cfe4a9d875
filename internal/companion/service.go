package companion

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record does not exist")
	ErrPermissionDenied   = errors.New("you do not have permission to modify this record")
	ErrDuplicateAccount   = errors.New("a companion with this email already exists")
	ErrDuplicateReference = errors.New("a reference with this email already exists")
)

// Service holds the business rules over the companion repositories. One
// instance is built in main and handed to the handlers.
type Service struct {
	gdb        *gorm.DB
	companions *CompanionRepository
	references *ReferenceRepository
	windows    *TimeAvailabilityRepository
	certs      *CertificationRepository
	skills     *SkillRepository
	mediaDir   string
}

func NewService(gdb *gorm.DB, mediaDir string) *Service {
	return &Service{
		gdb:        gdb,
		companions: NewCompanionRepository(gdb),
		references: NewReferenceRepository(gdb),
		windows:    NewTimeAvailabilityRepository(gdb),
		certs:      NewCertificationRepository(gdb),
		skills:     NewSkillRepository(gdb),
		mediaDir:   mediaDir,
	}
}

// Register creates the account and its companion profile in one transaction.
// A failure at either step rolls the whole thing back, so no account ever
// exists without its profile.
func (s *Service) Register(input auth.AccountInput) (string, error) {
	var companionID string

	err := s.gdb.Transaction(func(tx *gorm.DB) error {
		user, err := auth.CreateAccount(tx, input)
		if err != nil {
			return err
		}

		c := Companion{
			CompanionID:       uuid.NewString(),
			StateAvailability: "available",
			UserID:            user.UserID,
		}
		if err := tx.Create(&c).Error; err != nil {
			return db.Translate(err)
		}
		companionID = c.CompanionID
		return nil
	})

	if errors.Is(err, db.ErrDuplicate) {
		return "", ErrDuplicateAccount
	}
	if err != nil {
		return "", err
	}
	return companionID, nil
}

func (s *Service) GetByUserID(userID string) (*Companion, error) {
	return s.companions.GetByUserID(userID)
}

type UpdateInput struct {
	PersonalDescription *string  `json:"personal_description"`
	HourlyRate          *float64 `json:"hourly_rate"`
	StateAvailability   *string  `json:"state_availability"`
}

func (s *Service) Update(c *Companion, input UpdateInput) error {
	updates := map[string]interface{}{}
	if input.PersonalDescription != nil {
		updates["personal_description"] = *input.PersonalDescription
	}
	if input.HourlyRate != nil {
		if *input.HourlyRate < 0 {
			return db.Invalid("hourly_rate", "hourly rate must not be negative")
		}
		updates["hourly_rate"] = *input.HourlyRate
	}
	if input.StateAvailability != nil {
		if _, ok := availabilityStates[*input.StateAvailability]; !ok {
			return db.Invalid("state_availability", "unknown availability state")
		}
		updates["state_availability"] = *input.StateAvailability
	}
	if len(updates) == 0 {
		return nil
	}
	return s.companions.Update(c, updates)
}

type ReferenceInput struct {
	Names     string `json:"names"`
	LastNames string `json:"last_names"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email"`
}

func (s *Service) ListReferences(c *Companion) ([]Reference, error) {
	return s.references.GetByCompanionID(c.CompanionID)
}

func (s *Service) CreateReference(c *Companion, input ReferenceInput) (*Reference, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, db.Invalid("email", "a valid email is required")
	}

	// Fast-path UX check; the unique constraint is authoritative under races.
	exists, err := s.references.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReference
	}

	ref := Reference{
		ReferenceID: uuid.NewString(),
		Names:       input.Names,
		LastNames:   input.LastNames,
		Phone:       input.Phone,
		Address:     input.Address,
		Email:       email,
		CompanionID: c.CompanionID,
	}
	if err := s.references.Create(&ref); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicateReference
		}
		return nil, err
	}
	return &ref, nil
}

func (s *Service) DeleteReference(c *Companion, referenceID string) error {
	ref, err := s.references.GetByID(referenceID)
	if err != nil {
		return err
	}
	if ref == nil {
		return ErrNotFound
	}
	if ref.CompanionID != c.CompanionID {
		return ErrPermissionDenied
	}
	return s.references.Delete(ref)
}

type TimeAvailabilityInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// intervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) share
// time. HH:MM strings compare lexicographically. Touching boundaries
// (aEnd == bStart) do not overlap.
func intervalsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// validateWindow parses and checks a requested availability window against
// "today". Returned date is midnight UTC of the requested day.
func validateWindow(input TimeAvailabilityInput, today time.Time) (time.Time, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return time.Time{}, db.Invalid("date", "date must be YYYY-MM-DD")
	}
	day := today.Truncate(24 * time.Hour)
	if date.Before(day) {
		return time.Time{}, db.Invalid("date", "date cannot be in the past")
	}
	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		return time.Time{}, db.Invalid("start_time", "start time must be HH:MM")
	}
	if _, err := time.Parse("15:04", input.EndTime); err != nil {
		return time.Time{}, db.Invalid("end_time", "end time must be HH:MM")
	}
	if input.StartTime >= input.EndTime {
		return time.Time{}, db.Invalid("start_time", "the start time must be before the end time")
	}
	return date, nil
}

func (s *Service) ListTimeAvailabilities(c *Companion) ([]TimeAvailability, error) {
	return s.windows.GetByCompanionID(c.CompanionID)
}

func (s *Service) CreateTimeAvailability(c *Companion, input TimeAvailabilityInput) (*TimeAvailability, error) {
	date, err := validateWindow(input, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	existing, err := s.windows.GetByCompanionIDAndDate(c.CompanionID, date)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if intervalsOverlap(w.StartTime, w.EndTime, input.StartTime, input.EndTime) {
			return nil, db.Invalid("", "time availability already exists for the specified period")
		}
	}

	window := TimeAvailability{
		TimeAvailabilityID: uuid.NewString(),
		Date:               date,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		CompanionID:        c.CompanionID,
	}
	if err := s.windows.Create(&window); err != nil {
		return nil, err
	}
	return &window, nil
}

func (s *Service) DeleteTimeAvailability(c *Companion, id string) error {
	window, err := s.windows.GetByID(id)
	if err != nil {
		return err
	}
	if window == nil {
		return ErrNotFound
	}
	if window.CompanionID != c.CompanionID {
		return ErrPermissionDenied
	}
	return s.windows.Delete(window)
}

// ValidCertificateExt accepts .pdf uploads only.
func ValidCertificateExt(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

func (s *Service) ListCertifications(c *Companion) ([]Certification, error) {
	return s.certs.GetByCompanionID(c.CompanionID)
}

func (s *Service) CreateCertification(c *Companion, description, filename string, file io.Reader) (*Certification, error) {
	if strings.TrimSpace(description) == "" {
		return nil, db.Invalid("description", "description is required")
	}
	if !ValidCertificateExt(filename) {
		return nil, db.Invalid("certificate", "only PDF files are allowed")
	}

	dir := filepath.Join(s.mediaDir, "certificates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage error: %w", err)
	}
	path := filepath.Join(dir, c.CompanionID+"-"+uuid.NewString()[:8]+".pdf")
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage error: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("storage error: %w", err)
	}
	dst.Close()

	cert := Certification{
		CertificationID: uuid.NewString(),
		Description:     description,
		CertificatePath: path,
		CompanionID:     c.CompanionID,
	}
	if err := s.certs.Create(&cert); err != nil {
		os.Remove(path)
		return nil, err
	}
	return &cert, nil
}

func (s *Service) DeleteCertification(c *Companion, certificationID string) error {
	cert, err := s.certs.GetByID(certificationID)
	if err != nil {
		return err
	}
	if cert == nil {
		return ErrNotFound
	}
	if cert.CompanionID != c.CompanionID {
		return ErrPermissionDenied
	}
	if err := s.certs.Delete(cert); err != nil {
		return err
	}
	// The row is gone; losing the file is only worth a log line.
	if err := os.Remove(cert.CertificatePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("delete certification: remove file:", err)
	}
	return nil
}

func (s *Service) CreateSkill(c *Companion, description string) (*Skill, error) {
	if strings.TrimSpace(description) == "" {
		return nil, db.Invalid("description", "description is required")
	}
	skill := Skill{
		SkillID:     uuid.NewString(),
		Description: description,
		CompanionID: c.CompanionID,
	}
	if err := s.skills.Create(&skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *Service) ListSkills(c *Companion) ([]Skill, error) {
	return s.skills.GetByCompanionID(c.CompanionID)
}

func (s *Service) DeleteSkill(c *Companion, skillID string) error {
	skill, err := s.skills.GetByID(skillID)
	if err != nil {
		return err
	}
	if skill == nil {
		return ErrNotFound
	}
	if skill.CompanionID != c.CompanionID {
		return ErrPermissionDenied
	}
	return s.skills.Delete(skill)
}

// BrowseRow is the public card shown to customers picking a companion.
type BrowseRow struct {
	CompanionID         string  `json:"companion_id"`
	StateAvailability   string  `json:"state_availability"`
	HourlyRate          float64 `json:"hourly_rate"`
	PersonalDescription string  `json:"personal_description"`
	Names               string  `json:"names"`
	LastNames           string  `json:"last_names"`
	Location            string  `json:"location"`
	ProfilePhotoPath    string  `json:"profile_photo_path"`
}

// Browse lists companions in any of the given availability states, default
// "available". Blocked profiles are never listed.
func (s *Service) Browse(states []string) ([]BrowseRow, error) {
	if len(states) == 0 {
		states = []string{"available"}
	}
	for _, state := range states {
		if _, ok := availabilityStates[state]; !ok || state == "blocked" {
			return nil, db.Invalid("state", "unknown availability state")
		}
	}

	var rows []BrowseRow
	err := s.gdb.Raw(`
		SELECT c.companion_id, c.state_availability, c.hourly_rate, c.personal_description,
		       u.names, u.last_names, u.location, u.profile_photo_path
		FROM companion.companions c
		JOIN app_auth.users u ON u.user_id = c.user_id
		WHERE c.state_availability = ANY(?)
		ORDER BY u.names, u.last_names
	`, pq.Array(states)).Scan(&rows).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return rows, nil
}
