package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/companion"
	"github.com/CompaniaApp/Compania-Backend/internal/customer"
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SeedFile is the YAML shape consumed by this command. Accounts are demo
// fixtures for local development; passwords go through the normal hashing
// path and existing emails are skipped, so re-running is safe.
type SeedFile struct {
	Languages []string      `yaml:"languages"`
	Accounts  []SeedAccount `yaml:"accounts"`
}

type SeedAccount struct {
	Names     string `yaml:"names"`
	LastNames string `yaml:"last_names"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"` // "companion" or "customer"
	Location  string `yaml:"location"`
}

func main() {
	path := flag.String("file", "seeds/seed.yaml", "path to the seed YAML file")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	db.Connect()
	auth.Init()
	companion.Init()
	customer.Init()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read seed file: ", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		log.Fatal("Failed to parse seed file: ", err)
	}

	titler := cases.Title(language.Und)
	for _, name := range seed.Languages {
		display := titler.String(name)
		var lang auth.Language
		err := db.DB.Where("name = ?", display).
			Attrs(auth.Language{LanguageID: uuid.NewString()}).
			FirstOrCreate(&lang, auth.Language{Name: display}).Error
		if err != nil {
			log.Fatal("Failed to seed language ", display, ": ", err)
		}
		log.Println("language:", display)
	}

	companionSvc := companion.NewService(db.DB, os.Getenv("MEDIA_DIR"))
	customerSvc := customer.NewService(db.DB)

	for _, account := range seed.Accounts {
		input := auth.AccountInput{
			Names:     account.Names,
			LastNames: account.LastNames,
			Email:     account.Email,
			Password:  account.Password,
			Location:  account.Location,
		}

		var seedErr error
		switch account.Role {
		case "customer":
			_, seedErr = customerSvc.Register(input)
			if errors.Is(seedErr, customer.ErrDuplicateAccount) {
				log.Println("customer exists, skipping:", account.Email)
				continue
			}
		case "companion":
			_, seedErr = companionSvc.Register(input)
			if errors.Is(seedErr, companion.ErrDuplicateAccount) {
				log.Println("companion exists, skipping:", account.Email)
				continue
			}
		default:
			log.Fatal("Unknown role for ", account.Email, ": ", account.Role)
		}
		if seedErr != nil {
			log.Fatal("Failed to seed account ", account.Email, ": ", seedErr)
		}
		log.Println(account.Role+":", account.Email)
	}
}
