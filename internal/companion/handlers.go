package companion

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/CompaniaApp/Compania-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// actualCompanion resolves the caller's companion profile once per request.
// Writes the response itself when the caller has no companion profile.
func (h *Handler) actualCompanion(w http.ResponseWriter, r *http.Request) *Companion {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return nil
	}
	c, err := h.svc.GetByUserID(userID)
	if err != nil {
		log.Println("resolve companion:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return nil
	}
	if c == nil {
		http.Error(w, "No companion associated with the user was found", http.StatusForbidden)
		return nil
	}
	return c
}

// writeServiceError maps service errors onto HTTP statuses. Unexpected
// failures get logged and a generic message; causes are never sent verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *db.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrDuplicateAccount), errors.Is(err, ErrDuplicateReference):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &vErr):
		http.Error(w, vErr.Message, http.StatusUnprocessableEntity)
	default:
		log.Println("companion:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("encode response:", err)
	}
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input auth.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	companionID, err := h.svc.Register(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"companion_id": companionID})
}

func (h *Handler) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Browse(r.URL.Query()["state"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}

	var input UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := h.svc.Update(c, input); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Companion updated")
}

func (h *Handler) ListReferencesHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	refs, err := h.svc.ListReferences(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

func (h *Handler) CreateReferenceHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}

	var input ReferenceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	ref, err := h.svc.CreateReference(c, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

func (h *Handler) DeleteReferenceHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	if err := h.svc.DeleteReference(c, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "The reference was successfully deleted")
}

func (h *Handler) ListAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	windows, err := h.svc.ListTimeAvailabilities(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, windows)
}

func (h *Handler) CreateAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}

	var input TimeAvailabilityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	window, err := h.svc.CreateTimeAvailability(c, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, window)
}

func (h *Handler) DeleteAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	if err := h.svc.DeleteTimeAvailability(c, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "The time availability was successfully deleted")
}

func (h *Handler) ListCertificationsHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	certs, err := h.svc.ListCertifications(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, certs)
}

func (h *Handler) CreateCertificationHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("certificate")
	if err != nil {
		http.Error(w, "Certificate file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cert, err := h.svc.CreateCertification(c, r.FormValue("description"), header.Filename, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cert)
}

func (h *Handler) DeleteCertificationHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	if err := h.svc.DeleteCertification(c, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "The certification was successfully deleted")
}

func (h *Handler) ListSkillsHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	skills, err := h.svc.ListSkills(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *Handler) CreateSkillHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}

	var input struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	skill, err := h.svc.CreateSkill(c, input.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (h *Handler) DeleteSkillHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCompanion(w, r)
	if c == nil {
		return
	}
	if err := h.svc.DeleteSkill(c, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "The skill was successfully deleted")
}
