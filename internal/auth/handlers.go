package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/CompaniaApp/Compania-Backend/internal/utils"
	"github.com/google/uuid"
)

const sessionLifetime = 24 * time.Hour

// RoleResolver reports which role profiles exist for an account. Implemented
// by the customer service; used only to label the session at login.
type RoleResolver interface {
	HasCustomerProfile(userID string) (bool, error)
}

// Handler carries the auth endpoints' dependencies. Constructed once in main
// instead of living as package-level singletons.
type Handler struct {
	roles    RoleResolver
	mediaDir string
}

func NewHandler(roles RoleResolver, mediaDir string) *Handler {
	return &Handler{roles: roles, mediaDir: mediaDir}
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	user, err := Authenticate(input.Email, input.Password)
	if err != nil {
		log.Println("login:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}
	if user == nil {
		// Same message for unknown email and wrong password.
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Role is resolved once at login: an account with a customer profile is a
	// customer for this session, anything else acts as a companion.
	isCustomer, err := h.roles.HasCustomerProfile(user.UserID)
	if err != nil {
		log.Println("login: resolve role:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}
	userType := "companion"
	if isCustomer {
		userType = "customer"
	}

	sessionID, err := StartSession(user.UserID, userType, sessionLifetime)
	if err != nil {
		log.Println("login: start session:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}

	cookie := &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("PORT") != "",
	}
	if input.RememberMe {
		// Persistent cookie; without remember_me the browser drops it on close.
		cookie.MaxAge = int(sessionLifetime.Seconds())
	}
	http.SetCookie(w, cookie)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":   user.UserID,
		"user_type": userType,
	})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	var session Session
	if err := db.DB.First(&session, "session_id = ?", cookie.Value).Error; err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}
	if err := db.DB.Delete(&session).Error; err != nil {
		log.Println("logout:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	user, err := GetUser(userID)
	if err != nil {
		log.Println("me:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	user, err := GetUser(userID)
	if err != nil || user == nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	if !CheckPassword(user.HashedPassword, input.CurrentPassword) {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}

	hashed, err := HashPassword(input.NewPassword)
	if err != nil {
		var vErr *db.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Message, http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	if err := db.DB.Model(&User{UserID: userID}).Update("hashed_password", hashed).Error; err != nil {
		log.Println("update password:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Names     string   `json:"names"`
		LastNames string   `json:"last_names"`
		Phone     string   `json:"phone"`
		Address   string   `json:"address"`
		Location  string   `json:"location"`
		Genre     string   `json:"genre"`
		BirthDate string   `json:"birth_date"`
		Languages []string `json:"languages"`
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(input.Names) == "" {
		http.Error(w, "Names are required", http.StatusUnprocessableEntity)
		return
	}
	if input.Genre != "" {
		if _, okGenre := genres[input.Genre]; !okGenre {
			http.Error(w, "Genre must be male, female or other", http.StatusUnprocessableEntity)
			return
		}
	}

	updates := map[string]interface{}{
		"names":      strings.TrimSpace(input.Names),
		"last_names": strings.TrimSpace(input.LastNames),
		"phone":      input.Phone,
		"address":    input.Address,
		"location":   input.Location,
		"genre":      input.Genre,
	}
	if input.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			http.Error(w, "Birth date must be YYYY-MM-DD", http.StatusUnprocessableEntity)
			return
		}
		updates["birth_date"] = bd
	}

	user, err := GetUser(userID)
	if err != nil || user == nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		log.Println("update profile:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}

	if input.Languages != nil {
		languages := make([]Language, 0, len(input.Languages))
		for _, name := range input.Languages {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var lang Language
			err := db.DB.Where("name = ?", name).
				Attrs(Language{LanguageID: uuid.NewString()}).
				FirstOrCreate(&lang, Language{Name: name}).Error
			if err != nil {
				log.Println("update profile: language:", err)
				http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
				return
			}
			languages = append(languages, lang)
		}
		if err := db.DB.Model(user).Association("Languages").Replace(languages); err != nil {
			log.Println("update profile: languages:", err)
			http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Profile updated")
}

func (h *Handler) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !ValidPhotoExt(header.Filename) {
		http.Error(w, "Only JPEG or PNG images are allowed", http.StatusUnprocessableEntity)
		return
	}

	user, err := GetUser(userID)
	if err != nil || user == nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	dir := filepath.Join(h.mediaDir, "profile_photos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Println("upload photo: mkdir:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(dir, userID+"-"+uuid.NewString()[:8]+ext)
	dst, err := os.Create(path)
	if err != nil {
		log.Println("upload photo: create:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		log.Println("upload photo: write:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}
	dst.Close()

	// Best effort: a failed downscale keeps the original upload.
	if err := DownscalePhoto(path); err != nil {
		log.Println("upload photo: downscale:", err)
	}

	oldPath := user.ProfilePhotoPath
	if err := db.DB.Model(user).Update("profile_photo_path", path).Error; err != nil {
		os.Remove(path)
		log.Println("upload photo: save:", err)
		http.Error(w, "Something went wrong, try again later", http.StatusInternalServerError)
		return
	}

	// Replaced photo is removed from storage.
	if oldPath != "" && oldPath != path {
		if err := os.Remove(oldPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Println("upload photo: remove old:", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"profile_photo_path": path})
}
