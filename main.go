package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/companion"
	"github.com/CompaniaApp/Compania-Backend/internal/config"
	"github.com/CompaniaApp/Compania-Backend/internal/customer"
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/CompaniaApp/Compania-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db.Connect()

	auth.Init()
	companion.Init()
	customer.Init()

	customerSvc := customer.NewService(db.DB)
	companionSvc := companion.NewService(db.DB, cfg.MediaDir)

	authHandler := auth.NewHandler(customerSvc, cfg.MediaDir)
	companionHandler := companion.NewHandler(companionSvc)
	customerHandler := customer.NewHandler(customerSvc)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(authHandler, loginLimiter))
	r.Mount("/companion", companion.SetupRoutes(companionHandler))
	r.Mount("/customer", customer.SetupRoutes(customerHandler))

	fmt.Println("Server listening on port :" + cfg.Port + "...")

	http.ListenAndServe("0.0.0.0:"+cfg.Port, r)
}
