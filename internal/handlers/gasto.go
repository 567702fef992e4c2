package handlers

import (
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/models"

	"gorm.io/gorm"
)

type GastoHandler struct{ DB *gorm.DB }

func NewGastoHandler(db *gorm.DB) *GastoHandler { return &GastoHandler{DB: db} }

type gastoForm struct {
	Fecha     string `validate:"required"`
	Categoria string `validate:"required"`
}

// List: GET /gastos — filtros desde/hasta inclusivos y total del rango.
func (h *GastoHandler) List(w http.ResponseWriter, r *http.Request) {
	desde := strings.TrimSpace(r.URL.Query().Get("desde"))
	hasta := strings.TrimSpace(r.URL.Query().Get("hasta"))
	tx := h.DB.Order("fecha DESC, id DESC")
	if desde != "" {
		tx = tx.Where("fecha >= ?", desde)
	}
	if hasta != "" {
		tx = tx.Where("fecha <= ?", hasta)
	}
	var gastos []models.Gasto
	if err := tx.Find(&gastos).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	var total float64
	for _, g := range gastos {
		total += g.Monto
	}
	render(w, r, "gastos", map[string]any{
		"Gastos": gastos, "Desde": desde, "Hasta": hasta, "TotalGastos": total,
	})
}

func (h *GastoHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "gasto_form", nil)
}

func (h *GastoHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/gastos/nuevo", http.StatusSeeOther)
		return
	}
	g := models.Gasto{
		Fecha:       strings.TrimSpace(r.FormValue("fecha")),
		Categoria:   strings.TrimSpace(r.FormValue("categoria")),
		Descripcion: strings.TrimSpace(r.FormValue("descripcion")),
		Monto:       formFloat(r, "monto"),
	}
	if err := validate.Struct(gastoForm{Fecha: g.Fecha, Categoria: g.Categoria}); err != nil {
		render(w, r, "gasto_form", map[string]any{"Error": "Fecha y categoría son obligatorias"})
		return
	}
	if err := h.DB.Create(&g).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/gastos", statusSeeOther)
}

func (h *GastoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, ok := urlID(r, "id"); ok {
		h.DB.Delete(&models.Gasto{}, id)
	}
	http.Redirect(w, r, "/gastos", http.StatusSeeOther)
}
