package customer

import (
	"log"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "customer"); err != nil {
		log.Fatal("Failed to ensure schema customer: ", err)
	}

	if err := db.DB.AutoMigrate(
		&Customer{},
		&MedicalInformation{},
		&Preference{},
	); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
