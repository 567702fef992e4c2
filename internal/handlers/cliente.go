package handlers

import (
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/format"
	"github.com/nlitteri/taller-app/internal/models"

	"gorm.io/gorm"
)

type ClienteHandler struct{ DB *gorm.DB }

func NewClienteHandler(db *gorm.DB) *ClienteHandler { return &ClienteHandler{DB: db} }

type clienteForm struct {
	Nombre   string `validate:"required"`
	Apellido string `validate:"required"`
}

// List: GET /clientes — filtro por substring sobre los campos de texto, más
// los clientes dueños de un vehículo cuya patente matchea.
func (h *ClienteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	tx := h.DB.Order("apellido, nombre")
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			`nombre LIKE ? OR apellido LIKE ? OR telefono LIKE ? OR email LIKE ?
			 OR id IN (SELECT cliente_id FROM vehiculos WHERE patente LIKE ?)`,
			like, like, like, like, like)
	}
	var clientes []models.Cliente
	if err := tx.Find(&clientes).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	render(w, r, "clientes", map[string]any{"Clientes": clientes, "Q": q})
}

func (h *ClienteHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "cliente_form", nil)
}

func (h *ClienteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes/nuevo", http.StatusSeeOther)
		return
	}
	c := h.fromForm(r)
	if err := validate.Struct(clienteForm{Nombre: c.Nombre, Apellido: c.Apellido}); err != nil {
		render(w, r, "cliente_form", map[string]any{"Error": "Nombre y apellido son obligatorios"})
		return
	}
	if err := h.DB.Create(&c).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/clientes", statusSeeOther)
}

func (h *ClienteHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var c models.Cliente
	if err := h.DB.First(&c, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	render(w, r, "cliente_form", map[string]any{"Cliente": c})
}

// Update: overwrite completo del registro.
func (h *ClienteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var existing models.Cliente
	if err := h.DB.First(&existing, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	c := h.fromForm(r)
	if err := validate.Struct(clienteForm{Nombre: c.Nombre, Apellido: c.Apellido}); err != nil {
		render(w, r, "cliente_form", map[string]any{"Cliente": existing, "Error": "Nombre y apellido son obligatorios"})
		return
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	if err := h.DB.Save(&c).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/clientes", statusSeeOther)
}

// Delete borra sólo el cliente: sus vehículos quedan huérfanos.
func (h *ClienteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, ok := urlID(r, "id"); ok {
		h.DB.Delete(&models.Cliente{}, id)
	}
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *ClienteHandler) fromForm(r *http.Request) models.Cliente {
	return models.Cliente{
		Nombre:      format.Titulo(r.FormValue("nombre")),
		Apellido:    format.Titulo(r.FormValue("apellido")),
		Telefono:    format.NormalizarTelefono(r.FormValue("telefono")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Direccion:   strings.TrimSpace(r.FormValue("direccion")),
		Notas:       strings.TrimSpace(r.FormValue("notas")),
		Documento:   strings.TrimSpace(r.FormValue("documento")),
		RazonSocial: strings.TrimSpace(r.FormValue("razon_social")),
	}
}
