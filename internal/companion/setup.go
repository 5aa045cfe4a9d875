package companion

import (
	"log"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "companion"); err != nil {
		log.Fatal("Failed to ensure schema companion: ", err)
	}

	if err := db.DB.AutoMigrate(
		&Companion{},
		&Certification{},
		&Reference{},
		&TimeAvailability{},
		&Skill{},
	); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
