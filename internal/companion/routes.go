package companion

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
	r.Get("/browse", h.BrowseHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/me", h.MeHandler)
		r.Put("/me", h.UpdateHandler)

		r.Get("/references", h.ListReferencesHandler)
		r.Post("/references", h.CreateReferenceHandler)
		r.Delete("/references/{id}", h.DeleteReferenceHandler)

		r.Get("/availability", h.ListAvailabilityHandler)
		r.Post("/availability", h.CreateAvailabilityHandler)
		r.Delete("/availability/{id}", h.DeleteAvailabilityHandler)

		r.Get("/certifications", h.ListCertificationsHandler)
		r.Post("/certifications", h.CreateCertificationHandler)
		r.Delete("/certifications/{id}", h.DeleteCertificationHandler)

		r.Get("/skills", h.ListSkillsHandler)
		r.Post("/skills", h.CreateSkillHandler)
		r.Delete("/skills/{id}", h.DeleteSkillHandler)
	})

	return r
}
