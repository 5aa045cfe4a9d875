package customer

import (
	"net/http"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Post("/register", h.RegisterHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/me", h.MeHandler)
		r.Put("/me", h.UpdateHandler)

		r.Get("/medical-information", h.GetMedicalInfoHandler)
		r.Put("/medical-information", h.SaveMedicalInfoHandler)

		r.Get("/preferences", h.ListPreferencesHandler)
		r.Post("/preferences", h.CreatePreferenceHandler)
		r.Delete("/preferences/{id}", h.DeletePreferenceHandler)
	})

	return r
}
