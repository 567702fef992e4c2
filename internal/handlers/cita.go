package handlers

import (
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/models"

	"gorm.io/gorm"
)

type CitaHandler struct{ DB *gorm.DB }

func NewCitaHandler(db *gorm.DB) *CitaHandler { return &CitaHandler{DB: db} }

type citaForm struct {
	Fecha string `validate:"required"`
	Hora  string `validate:"required"`
}

// List: GET /citas — ordenado por fecha y hora ascendente.
func (h *CitaHandler) List(w http.ResponseWriter, r *http.Request) {
	desde := strings.TrimSpace(r.URL.Query().Get("desde"))
	hasta := strings.TrimSpace(r.URL.Query().Get("hasta"))
	tx := h.DB.Order("fecha ASC, hora ASC")
	if desde != "" {
		tx = tx.Where("fecha >= ?", desde)
	}
	if hasta != "" {
		tx = tx.Where("fecha <= ?", hasta)
	}
	var citas []models.Cita
	if err := tx.Find(&citas).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	render(w, r, "citas", map[string]any{"Citas": citas, "Desde": desde, "Hasta": hasta})
}

func (h *CitaHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "cita_form", nil)
}

func (h *CitaHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/citas/nueva", http.StatusSeeOther)
		return
	}
	c := h.fromForm(r)
	if err := validate.Struct(citaForm{Fecha: c.Fecha, Hora: c.Hora}); err != nil {
		render(w, r, "cita_form", map[string]any{"Error": "Fecha y hora son obligatorias"})
		return
	}
	if err := h.DB.Create(&c).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/citas", statusSeeOther)
}

func (h *CitaHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/citas", http.StatusSeeOther)
		return
	}
	var c models.Cita
	if err := h.DB.First(&c, id).Error; err != nil {
		http.Redirect(w, r, "/citas", http.StatusSeeOther)
		return
	}
	render(w, r, "cita_form", map[string]any{"Cita": c})
}

func (h *CitaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/citas", http.StatusSeeOther)
		return
	}
	var existing models.Cita
	if err := h.DB.First(&existing, id).Error; err != nil {
		http.Redirect(w, r, "/citas", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/citas", http.StatusSeeOther)
		return
	}
	c := h.fromForm(r)
	if err := validate.Struct(citaForm{Fecha: c.Fecha, Hora: c.Hora}); err != nil {
		render(w, r, "cita_form", map[string]any{"Cita": existing, "Error": "Fecha y hora son obligatorias"})
		return
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	if err := h.DB.Save(&c).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/citas", statusSeeOther)
}

func (h *CitaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, ok := urlID(r, "id"); ok {
		h.DB.Delete(&models.Cita{}, id)
	}
	http.Redirect(w, r, "/citas", http.StatusSeeOther)
}

func (h *CitaHandler) fromForm(r *http.Request) models.Cita {
	return models.Cita{
		Fecha:         strings.TrimSpace(r.FormValue("fecha")),
		Hora:          strings.TrimSpace(r.FormValue("hora")),
		ClienteNombre: strings.TrimSpace(r.FormValue("cliente_nombre")),
		Telefono:      strings.TrimSpace(r.FormValue("telefono")),
		Descripcion:   strings.TrimSpace(r.FormValue("descripcion")),
	}
}
