package auth

import (
	"net/http"

	"github.com/CompaniaApp/Compania-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, loginLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(loginLimiter.Middleware)
		r.Post("/login", h.LoginHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/logout", h.LogoutHandler)
		r.Get("/me", h.MeHandler)
		r.Post("/password", h.UpdatePasswordHandler)
		r.Put("/profile", h.UpdateProfileHandler)
		r.Post("/profile/photo", h.UploadPhotoHandler)
	})

	return r
}
