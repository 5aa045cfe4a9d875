package customer

import (
	"errors"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"gorm.io/gorm"
)

// Repositories return nil when a row doesn't exist and pass failures through
// db.Translate; raw driver errors never reach the service layer.

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(gdb *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: gdb}
}

func (r *CustomerRepository) GetByUserID(userID string) (*Customer, error) {
	var c Customer
	err := r.db.First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *CustomerRepository) GetByID(customerID string) (*Customer, error) {
	var c Customer
	err := r.db.First(&c, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Update(c *Customer, updates map[string]interface{}) error {
	if err := r.db.Model(c).Updates(updates).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

type MedicalInformationRepository struct {
	db *gorm.DB
}

func NewMedicalInformationRepository(gdb *gorm.DB) *MedicalInformationRepository {
	return &MedicalInformationRepository{db: gdb}
}

func (r *MedicalInformationRepository) GetByCustomerID(customerID string) (*MedicalInformation, error) {
	var info MedicalInformation
	err := r.db.First(&info, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &info, nil
}

func (r *MedicalInformationRepository) Create(info *MedicalInformation) error {
	if err := r.db.Create(info).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *MedicalInformationRepository) Update(info *MedicalInformation, updates map[string]interface{}) error {
	if err := r.db.Model(info).Updates(updates).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(gdb *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: gdb}
}

func (r *PreferenceRepository) GetByCustomerID(customerID string) ([]Preference, error) {
	var prefs []Preference
	if err := r.db.Find(&prefs, "customer_id = ?", customerID).Error; err != nil {
		return nil, db.Translate(err)
	}
	return prefs, nil
}

func (r *PreferenceRepository) GetByID(preferenceID string) (*Preference, error) {
	var pref Preference
	err := r.db.First(&pref, "preference_id = ?", preferenceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err)
	}
	return &pref, nil
}

func (r *PreferenceRepository) Create(pref *Preference) error {
	if err := r.db.Create(pref).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *PreferenceRepository) Delete(pref *Preference) error {
	if err := r.db.Delete(pref).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}
