package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nlitteri/taller-app/internal/models"
	"github.com/nlitteri/taller-app/internal/services"

	"gorm.io/gorm"
)

type ReparacionHandler struct {
	DB  *gorm.DB
	Svc *services.FacturaService
}

func NewReparacionHandler(db *gorm.DB, svc *services.FacturaService) *ReparacionHandler {
	return &ReparacionHandler{DB: db, Svc: svc}
}

// cargarContexto trae vehículo y cliente de una reparación para las vistas.
func (h *ReparacionHandler) cargarContexto(vehiculoID uint) (models.Vehiculo, models.Cliente) {
	var v models.Vehiculo
	var c models.Cliente
	h.DB.First(&v, vehiculoID)
	h.DB.First(&c, v.ClienteID)
	return v, c
}

// ListByVehiculo: GET /vehiculos/{id}/reparaciones — filtros desde/hasta
// inclusivos, comparados como texto ISO.
func (h *ReparacionHandler) ListByVehiculo(w http.ResponseWriter, r *http.Request) {
	vehiculoID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var vehiculo models.Vehiculo
	if err := h.DB.First(&vehiculo, vehiculoID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var cliente models.Cliente
	h.DB.First(&cliente, vehiculo.ClienteID)

	desde := strings.TrimSpace(r.URL.Query().Get("desde"))
	hasta := strings.TrimSpace(r.URL.Query().Get("hasta"))
	tx := h.DB.Where("vehiculo_id = ?", vehiculoID)
	if desde != "" {
		tx = tx.Where("fecha >= ?", desde)
	}
	if hasta != "" {
		tx = tx.Where("fecha <= ?", hasta)
	}
	var reparaciones []models.Reparacion
	if err := tx.Order("fecha DESC").Find(&reparaciones).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	render(w, r, "reparaciones", map[string]any{
		"Cliente": cliente, "Vehiculo": vehiculo, "Reparaciones": reparaciones,
		"Desde": desde, "Hasta": hasta,
	})
}

func (h *ReparacionHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	vehiculoID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var vehiculo models.Vehiculo
	if err := h.DB.First(&vehiculo, vehiculoID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var cliente models.Cliente
	h.DB.First(&cliente, vehiculo.ClienteID)
	render(w, r, "reparacion_form", map[string]any{"Cliente": cliente, "Vehiculo": vehiculo})
}

func (h *ReparacionHandler) Create(w http.ResponseWriter, r *http.Request) {
	vehiculoID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := h.DB.First(&models.Vehiculo{}, vehiculoID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	rep := models.Reparacion{
		VehiculoID:  vehiculoID,
		Fecha:       strings.TrimSpace(r.FormValue("fecha")),
		Descripcion: strings.TrimSpace(r.FormValue("descripcion")),
		Notas:       strings.TrimSpace(r.FormValue("notas")),
		Estado:      estadoONuevo(r.FormValue("estado")),
	}
	if err := h.DB.Create(&rep).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", rep.ID), statusSeeOther)
}

// Detail: GET /reparaciones/{id} — ítems, imágenes y total con descuentos por línea.
func (h *ReparacionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	if err := h.DB.First(&rep, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	vehiculo, cliente := h.cargarContexto(rep.VehiculoID)

	var items []models.ReparacionItem
	if err := h.DB.Where("reparacion_id = ?", id).Find(&items).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	var imagenes []models.ReparacionImagen
	if err := h.DB.Where("reparacion_id = ?", id).Order("id DESC").Find(&imagenes).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	render(w, r, "reparacion_detalle", map[string]any{
		"Cliente": cliente, "Vehiculo": vehiculo, "Reparacion": rep,
		"Items": items, "Imagenes": imagenes, "Total": h.Svc.BaseTotal(items),
	})
}

func (h *ReparacionHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	if err := h.DB.First(&rep, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	vehiculo, cliente := h.cargarContexto(rep.VehiculoID)
	render(w, r, "reparacion_form", map[string]any{
		"Cliente": cliente, "Vehiculo": vehiculo, "Reparacion": rep,
	})
}

func (h *ReparacionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	if err := h.DB.First(&rep, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	rep.Fecha = strings.TrimSpace(r.FormValue("fecha"))
	rep.Descripcion = strings.TrimSpace(r.FormValue("descripcion"))
	rep.Notas = strings.TrimSpace(r.FormValue("notas"))
	rep.Estado = estadoONuevo(r.FormValue("estado"))
	if err := h.DB.Save(&rep).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", id), statusSeeOther)
}

// Delete borra la reparación y sus ítems. Imágenes y factura quedan huérfanas
// a propósito; ver DESIGN.md.
func (h *ReparacionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	if err := h.DB.First(&rep, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	h.DB.Where("reparacion_id = ?", id).Delete(&models.ReparacionItem{})
	h.DB.Delete(&models.Reparacion{}, id)
	http.Redirect(w, r, fmt.Sprintf("/vehiculos/%d/reparaciones", rep.VehiculoID), http.StatusSeeOther)
}

// Estado: POST /reparaciones/{id}/estado
func (h *ReparacionHandler) Estado(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	nuevo := strings.TrimSpace(r.FormValue("estado"))
	if nuevo == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.DB.Model(&models.Reparacion{}).Where("id = ?", id).Update("estado", nuevo)
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", id), statusSeeOther)
}

func estadoONuevo(v string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return models.EstadoIngresado
}
