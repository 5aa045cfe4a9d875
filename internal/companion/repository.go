package companion

import (
	"errors"
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"gorm.io/gorm"
)

// Repositories return nil (not an error) when a row doesn't exist and
// translate everything else through db.Translate, so callers never see raw
// driver errors.

type CompanionRepository struct {
	db *gorm.DB
}

func NewCompanionRepository(gdb *gorm.DB) *CompanionRepository {
	return &CompanionRepository{db: gdb}
}

func (r *CompanionRepository) GetByUserID(userID string) (*Companion, error) {
	var c Companion
	err := r.db.First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *CompanionRepository) GetByID(companionID string) (*Companion, error) {
	var c Companion
	err := r.db.First(&c, "companion_id = ?", companionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *CompanionRepository) Update(c *Companion, updates map[string]interface{}) error {
	if err := r.db.Model(c).Updates(updates).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(gdb *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: gdb}
}

func (r *ReferenceRepository) GetByCompanionID(companionID string) ([]Reference, error) {
	var refs []Reference
	if err := r.db.Find(&refs, "companion_id = ?", companionID).Error; err != nil {
		return nil, db.Translate(err)
	}
	return refs, nil
}

func (r *ReferenceRepository) GetByID(referenceID string) (*Reference, error) {
	var ref Reference
	err := r.db.First(&ref, "reference_id = ?", referenceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &ref, nil
}

func (r *ReferenceRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&Reference{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, db.Translate(err)
	}
	return count > 0, nil
}

func (r *ReferenceRepository) Create(ref *Reference) error {
	if err := r.db.Create(ref).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *ReferenceRepository) Delete(ref *Reference) error {
	if err := r.db.Delete(ref).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

type TimeAvailabilityRepository struct {
	db *gorm.DB
}

func NewTimeAvailabilityRepository(gdb *gorm.DB) *TimeAvailabilityRepository {
	return &TimeAvailabilityRepository{db: gdb}
}

func (r *TimeAvailabilityRepository) GetByCompanionID(companionID string) ([]TimeAvailability, error) {
	var windows []TimeAvailability
	err := r.db.Where("companion_id = ?", companionID).
		Order("date, start_time").
		Find(&windows).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return windows, nil
}

func (r *TimeAvailabilityRepository) GetByID(id string) (*TimeAvailability, error) {
	var window TimeAvailability
	err := r.db.First(&window, "time_availability_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &window, nil
}

// GetByCompanionIDAndDate loads the companion's windows for one date; the
// service checks overlaps against them in Go.
func (r *TimeAvailabilityRepository) GetByCompanionIDAndDate(companionID string, date time.Time) ([]TimeAvailability, error) {
	var windows []TimeAvailability
	err := r.db.Where("companion_id = ? AND date = ?", companionID, date).
		Find(&windows).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return windows, nil
}

func (r *TimeAvailabilityRepository) Create(window *TimeAvailability) error {
	if err := r.db.Create(window).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *TimeAvailabilityRepository) Delete(window *TimeAvailability) error {
	if err := r.db.Delete(window).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

type CertificationRepository struct {
	db *gorm.DB
}

func NewCertificationRepository(gdb *gorm.DB) *CertificationRepository {
	return &CertificationRepository{db: gdb}
}

func (r *CertificationRepository) GetByCompanionID(companionID string) ([]Certification, error) {
	var certs []Certification
	if err := r.db.Find(&certs, "companion_id = ?", companionID).Error; err != nil {
		return nil, db.Translate(err)
	}
	return certs, nil
}

func (r *CertificationRepository) GetByID(certificationID string) (*Certification, error) {
	var cert Certification
	err := r.db.First(&cert, "certification_id = ?", certificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &cert, nil
}

func (r *CertificationRepository) Create(cert *Certification) error {
	if err := r.db.Create(cert).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *CertificationRepository) Delete(cert *Certification) error {
	if err := r.db.Delete(cert).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(gdb *gorm.DB) *SkillRepository {
	return &SkillRepository{db: gdb}
}

func (r *SkillRepository) GetByCompanionID(companionID string) ([]Skill, error) {
	var skills []Skill
	if err := r.db.Find(&skills, "companion_id = ?", companionID).Error; err != nil {
		return nil, db.Translate(err)
	}
	return skills, nil
}

func (r *SkillRepository) GetByID(skillID string) (*Skill, error) {
	var skill Skill
	err := r.db.First(&skill, "skill_id = ?", skillID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &skill, nil
}

func (r *SkillRepository) Create(skill *Skill) error {
	if err := r.db.Create(skill).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *SkillRepository) Delete(skill *Skill) error {
	if err := r.db.Delete(skill).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}
