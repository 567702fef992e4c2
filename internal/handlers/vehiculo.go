package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/format"
	"github.com/nlitteri/taller-app/internal/models"

	"gorm.io/gorm"
)

type VehiculoHandler struct{ DB *gorm.DB }

func NewVehiculoHandler(db *gorm.DB) *VehiculoHandler { return &VehiculoHandler{DB: db} }

// ListByCliente: GET /clientes/{id}/vehiculos
func (h *VehiculoHandler) ListByCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var cliente models.Cliente
	if err := h.DB.First(&cliente, clienteID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var vehiculos []models.Vehiculo
	if err := h.DB.Where("cliente_id = ?", clienteID).Find(&vehiculos).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	render(w, r, "vehiculos", map[string]any{"Cliente": cliente, "Vehiculos": vehiculos})
}

func (h *VehiculoHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	clienteID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var cliente models.Cliente
	if err := h.DB.First(&cliente, clienteID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	render(w, r, "vehiculo_form", map[string]any{"Cliente": cliente})
}

func (h *VehiculoHandler) Create(w http.ResponseWriter, r *http.Request) {
	clienteID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	v := h.fromForm(r)
	v.ClienteID = clienteID
	if err := h.DB.Create(&v).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/clientes/%d/vehiculos", clienteID), statusSeeOther)
}

func (h *VehiculoHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var v models.Vehiculo
	if err := h.DB.First(&v, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var cliente models.Cliente
	h.DB.First(&cliente, v.ClienteID)
	render(w, r, "vehiculo_form", map[string]any{"Cliente": cliente, "Vehiculo": v})
}

func (h *VehiculoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var existing models.Vehiculo
	if err := h.DB.First(&existing, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	v := h.fromForm(r)
	v.ID = id
	v.ClienteID = existing.ClienteID
	v.CreatedAt = existing.CreatedAt
	if err := h.DB.Save(&v).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/clientes/%d/vehiculos", existing.ClienteID), statusSeeOther)
}

func (h *VehiculoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var v models.Vehiculo
	if err := h.DB.First(&v, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	h.DB.Delete(&models.Vehiculo{}, id)
	http.Redirect(w, r, fmt.Sprintf("/clientes/%d/vehiculos", v.ClienteID), http.StatusSeeOther)
}

func (h *VehiculoHandler) fromForm(r *http.Request) models.Vehiculo {
	return models.Vehiculo{
		Patente: format.Mayus(r.FormValue("patente")),
		Marca:   strings.TrimSpace(r.FormValue("marca")),
		Modelo:  strings.TrimSpace(r.FormValue("modelo")),
		Anio:    strings.TrimSpace(r.FormValue("anio")),
		Km:      strings.TrimSpace(r.FormValue("km")),
		Notas:   strings.TrimSpace(r.FormValue("notas")),
	}
}
