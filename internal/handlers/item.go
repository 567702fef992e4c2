package handlers

import (
	"fmt"
	"net/http"

	"github.com/nlitteri/taller-app/internal/format"
	"github.com/nlitteri/taller-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemHandler struct{ DB *gorm.DB }

func NewItemHandler(db *gorm.DB) *ItemHandler { return &ItemHandler{DB: db} }

// NewForm: GET /reparaciones/{id}/items/nuevo — incluye los conceptos ya
// usados como sugerencias.
func (h *ItemHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	repID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	if err := h.DB.First(&rep, repID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	render(w, r, "item_form", map[string]any{
		"Reparacion": rep, "Conceptos": h.conceptos(),
	})
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	repID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := h.DB.First(&models.Reparacion{}, repID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", repID), http.StatusSeeOther)
		return
	}
	it := h.fromForm(r)
	it.ReparacionID = repID
	if err := h.DB.Create(&it).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	h.guardarConcepto(it.Concepto)
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", repID), statusSeeOther)
}

func (h *ItemHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var it models.ReparacionItem
	if err := h.DB.First(&it, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	h.DB.First(&rep, it.ReparacionID)
	render(w, r, "item_form", map[string]any{
		"Item": it, "Reparacion": rep, "Conceptos": h.conceptos(),
	})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var existing models.ReparacionItem
	if err := h.DB.First(&existing, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	it := h.fromForm(r)
	it.ID = id
	it.ReparacionID = existing.ReparacionID
	it.CreatedAt = existing.CreatedAt
	if err := h.DB.Save(&it).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	h.guardarConcepto(it.Concepto)
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", existing.ReparacionID), statusSeeOther)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var it models.ReparacionItem
	if err := h.DB.First(&it, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	h.DB.Delete(&models.ReparacionItem{}, id)
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", it.ReparacionID), http.StatusSeeOther)
}

// ConceptoDelete saca una sugerencia guardada. Vuelve a la pantalla anterior.
func (h *ItemHandler) ConceptoDelete(w http.ResponseWriter, r *http.Request) {
	if id, ok := urlID(r, "id"); ok {
		h.DB.Delete(&models.ItemConcepto{}, id)
	}
	back := r.Referer()
	if back == "" {
		back = "/facturas"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *ItemHandler) conceptos() []models.ItemConcepto {
	var cs []models.ItemConcepto
	h.DB.Order("nombre").Find(&cs)
	return cs
}

// guardarConcepto agrega el concepto a las sugerencias si todavía no existe.
func (h *ItemHandler) guardarConcepto(nombre string) {
	if nombre == "" {
		return
	}
	h.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ItemConcepto{Nombre: nombre})
}

func (h *ItemHandler) fromForm(r *http.Request) models.ReparacionItem {
	tipo := r.FormValue("tipo")
	if tipo == "" {
		tipo = models.TipoServicio
	}
	return models.ReparacionItem{
		Concepto:       format.Mayus(r.FormValue("concepto")),
		Cantidad:       formFloat(r, "cantidad"),
		PrecioUnitario: formFloat(r, "precio_unitario"),
		Descuento:      formFloat(r, "descuento"),
		Tipo:           tipo,
	}
}
