package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nlitteri/taller-app/internal/format"
	"github.com/nlitteri/taller-app/internal/models"
	"github.com/nlitteri/taller-app/internal/services"

	"gorm.io/gorm"
)

type FacturaHandler struct {
	DB  *gorm.DB
	Svc *services.FacturaService
}

func NewFacturaHandler(db *gorm.DB, svc *services.FacturaService) *FacturaHandler {
	return &FacturaHandler{DB: db, Svc: svc}
}

// FacturaListado es una fila del listado financiero (factura + cliente + vehículo).
type FacturaListado struct {
	ID           uint
	Fecha        string
	Total        float64
	Nombre       string
	Apellido     string
	Patente      string
	Marca        string
	Modelo       string
	ReparacionID uint
}

// View: GET /reparaciones/{id}/factura — crea el presupuesto en el primer
// acceso y recalcula el total cacheado en cada vista.
func (h *FacturaHandler) View(w http.ResponseWriter, r *http.Request) {
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
	var vehiculo models.Vehiculo
	h.DB.First(&vehiculo, rep.VehiculoID)
	var cliente models.Cliente
	h.DB.First(&cliente, vehiculo.ClienteID)

	factura, base, err := h.Svc.EnsureFactura(repID, time.Now().Format("2006-01-02"))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	var items []models.ReparacionItem
	if err := h.DB.Where("reparacion_id = ?", repID).Find(&items).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	render(w, r, "factura", map[string]any{
		"Factura":    factura,
		"Cliente":    cliente,
		"Vehiculo":   vehiculo,
		"Reparacion": rep,
		"Items":      items,
		"BaseTotal":  base,
		"WaPhone":    format.TelefonoWhatsApp(cliente.Telefono),
	})
}

// Descuento: POST /facturas/{id}/descuento — guarda el porcentaje y actualiza
// el total cacheado en el acto.
func (h *FacturaHandler) Descuento(w http.ResponseWriter, r *http.Request) {
	facturaID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/facturas", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/facturas", http.StatusSeeOther)
		return
	}
	desc := formFloat(r, "descuento_global")
	repID, err := h.Svc.SetDescuentoGlobal(facturaID, desc)
	if err != nil {
		http.Redirect(w, r, "/facturas", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d/factura", repID), statusSeeOther)
}

// Confirmar: POST /facturas/{id}/confirmar — presupuesto -> facturada.
// Reconfirmar no es error.
func (h *FacturaHandler) Confirmar(w http.ResponseWriter, r *http.Request) {
	facturaID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/facturas", http.StatusSeeOther)
		return
	}
	repID, err := h.Svc.Confirmar(facturaID)
	if err != nil {
		http.Redirect(w, r, "/facturas", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", repID), statusSeeOther)
}

// Listado: GET /facturas — sólo facturas confirmadas, más los gastos del
// mismo rango, con totales y balance neto.
func (h *FacturaHandler) Listado(w http.ResponseWriter, r *http.Request) {
	desde := strings.TrimSpace(r.URL.Query().Get("desde"))
	hasta := strings.TrimSpace(r.URL.Query().Get("hasta"))

	facturas, err := h.queryListado(desde, hasta)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	gtx := h.DB.Order("fecha DESC, id DESC")
	if desde != "" {
		gtx = gtx.Where("fecha >= ?", desde)
	}
	if hasta != "" {
		gtx = gtx.Where("fecha <= ?", hasta)
	}
	var gastos []models.Gasto
	if err := gtx.Find(&gastos).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	var totalIngresos, totalGastos float64
	for _, f := range facturas {
		totalIngresos += f.Total
	}
	for _, g := range gastos {
		totalGastos += g.Monto
	}

	render(w, r, "facturas", map[string]any{
		"Facturas":      facturas,
		"Gastos":        gastos,
		"Desde":         desde,
		"Hasta":         hasta,
		"TotalIngresos": totalIngresos,
		"TotalGastos":   totalGastos,
		"BalanceNeto":   totalIngresos - totalGastos,
	})
}

func (h *FacturaHandler) queryListado(desde, hasta string) ([]FacturaListado, error) {
	sql := `
		SELECT f.id, f.fecha, f.total,
		       c.nombre, c.apellido,
		       v.patente, v.marca, v.modelo,
		       r.id AS reparacion_id
		FROM facturas f
		JOIN reparaciones r ON r.id = f.reparacion_id
		JOIN vehiculos v ON v.id = r.vehiculo_id
		JOIN clientes c ON c.id = v.cliente_id
		WHERE f.es_presupuesto = 0`
	args := []any{}
	if desde != "" {
		sql += " AND f.fecha >= ?"
		args = append(args, desde)
	}
	if hasta != "" {
		sql += " AND f.fecha <= ?"
		args = append(args, hasta)
	}
	sql += " ORDER BY f.fecha DESC"
	var rows []FacturaListado
	if err := h.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
