package handlers

import (
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/auth"
	"github.com/nlitteri/taller-app/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, "login", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, "login", map[string]any{"Error": "Formulario inválido"})
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		render(w, r, "login", map[string]any{"Error": "Credenciales incorrectas"})
		return
	}
	var user models.User
	if err := h.DB.Where("username = ?", username).First(&user).Error; err != nil {
		render(w, r, "login", map[string]any{"Error": "Credenciales incorrectas"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		render(w, r, "login", map[string]any{"Error": "Credenciales incorrectas"})
		return
	}
	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/", statusSeeOther)
}

// Logout limpia la sesión incondicionalmente.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
