package handlers

import (
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UsuarioHandler: alta y listado de usuarios, sólo admin. No hay edición ni
// baja: las cuentas se dan de alta y listo.
type UsuarioHandler struct{ DB *gorm.DB }

func NewUsuarioHandler(db *gorm.DB) *UsuarioHandler { return &UsuarioHandler{DB: db} }

type usuarioForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	var usuarios []models.User
	if err := h.DB.Order("username").Find(&usuarios).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	render(w, r, "usuarios", map[string]any{"Usuarios": usuarios})
}

func (h *UsuarioHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "usuario_form", nil)
}

func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	rol := r.FormValue("rol")
	if rol == "" {
		rol = models.RolOperador
	}
	if err := validate.Struct(usuarioForm{Username: username, Password: password}); err != nil {
		render(w, r, "usuario_form", map[string]any{"Error": "Usuario y clave son obligatorios"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "hash error", http.StatusInternalServerError)
		return
	}
	user := models.User{Username: username, Password: string(hash), Rol: rol}
	if err := h.DB.Create(&user).Error; err != nil {
		render(w, r, "usuario_form", map[string]any{"Error": "No se pudo crear el usuario"})
		return
	}
	http.Redirect(w, r, "/usuarios", statusSeeOther)
}
