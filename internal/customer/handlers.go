package customer

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

// actualCustomer resolves the caller's customer profile once per request.
func (h *Handler) actualCustomer(w http.ResponseWriter, r *http.Request) *Customer {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return nil
	}
	c, err := h.svc.GetByUserID(userID)
	if err != nil {
		log.Println("resolve customer:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return nil
	}
	if c == nil {
		http.Error(w, "No customer associated with the user was found", http.StatusForbidden)
		return nil
	}
	return c
}

func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *db.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrDuplicateAccount):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &vErr):
		http.Error(w, vErr.Message, http.StatusUnprocessableEntity)
	default:
		log.Println("customer:", err)
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

	customerID, err := h.svc.Register(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"customer_id": customerID})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
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
	fmt.Fprintln(w, "Customer updated")
}

func (h *Handler) GetMedicalInfoHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
	if c == nil {
		return
	}
	info, err := h.svc.GetMedicalInfo(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if info == nil {
		http.Error(w, "No medical information on file", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) SaveMedicalInfoHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
	if c == nil {
		return
	}

	var input MedicalInformationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	info, err := h.svc.SaveMedicalInfo(c, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) ListPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
	if c == nil {
		return
	}
	prefs, err := h.svc.ListPreferences(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) CreatePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
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
	pref, err := h.svc.CreatePreference(c, input.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pref)
}

func (h *Handler) DeletePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	c := h.actualCustomer(w, r)
	if c == nil {
		return
	}
	if err := h.svc.DeletePreference(c, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "The preference was successfully deleted")
}
