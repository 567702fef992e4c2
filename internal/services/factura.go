package services

import (
	"errors"

	"github.com/nlitteri/taller-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FacturaService concentra la aritmética y el ciclo de vida del
// presupuesto/factura de una reparación. La columna total es un cache: la
// fuente de verdad son los ítems vivos, y cada vista la recalcula y persiste.
type FacturaService struct {
	DB *gorm.DB
}

func NewFacturaService(db *gorm.DB) *FacturaService { return &FacturaService{DB: db} }

var cien = decimal.NewFromInt(100)

func lineaSubtotal(it models.ReparacionItem) decimal.Decimal {
	return decimal.NewFromFloat(it.Cantidad).
		Mul(decimal.NewFromFloat(it.PrecioUnitario)).
		Mul(cien.Sub(decimal.NewFromFloat(it.Descuento))).
		Div(cien)
}

// BaseTotal suma cantidad * precio_unitario * (1 - descuento/100) sobre los ítems.
func (s *FacturaService) BaseTotal(items []models.ReparacionItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(lineaSubtotal(it))
	}
	f, _ := total.Float64()
	return f
}

// TotalConDescuento aplica el descuento global (porcentaje 0..100) al total base.
func (s *FacturaService) TotalConDescuento(base, descuentoGlobal float64) float64 {
	t := decimal.NewFromFloat(base).
		Mul(cien.Sub(decimal.NewFromFloat(descuentoGlobal))).
		Div(cien)
	f, _ := t.Float64()
	return f
}

// EnsureFactura devuelve la factura de la reparación, creándola como
// presupuesto (descuento 0, total = base) en el primer acceso. Si ya existe,
// recalcula el total desde los ítems actuales y lo persiste. Devuelve también
// el total base sin descuento global, que la vista muestra por separado.
func (s *FacturaService) EnsureFactura(reparacionID uint, hoy string) (models.Factura, float64, error) {
	var items []models.ReparacionItem
	if err := s.DB.Where("reparacion_id = ?", reparacionID).Find(&items).Error; err != nil {
		return models.Factura{}, 0, err
	}
	base := s.BaseTotal(items)

	var f models.Factura
	err := s.DB.Where("reparacion_id = ?", reparacionID).First(&f).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		f = models.Factura{
			ReparacionID:    reparacionID,
			Fecha:           hoy,
			Total:           base,
			DescuentoGlobal: 0,
			EsPresupuesto:   true,
		}
		if err := s.DB.Create(&f).Error; err != nil {
			return models.Factura{}, 0, err
		}
	case err != nil:
		return models.Factura{}, 0, err
	default:
		f.Total = s.TotalConDescuento(base, f.DescuentoGlobal)
		if err := s.DB.Model(&models.Factura{}).Where("id = ?", f.ID).
			Update("total", f.Total).Error; err != nil {
			return models.Factura{}, 0, err
		}
	}
	return f, base, nil
}

// SetDescuentoGlobal guarda el descuento y actualiza el total cacheado en el
// mismo paso. Devuelve el id de la reparación dueña para el redirect.
func (s *FacturaService) SetDescuentoGlobal(facturaID uint, descuento float64) (uint, error) {
	var f models.Factura
	if err := s.DB.First(&f, facturaID).Error; err != nil {
		return 0, err
	}
	var items []models.ReparacionItem
	if err := s.DB.Where("reparacion_id = ?", f.ReparacionID).Find(&items).Error; err != nil {
		return 0, err
	}
	total := s.TotalConDescuento(s.BaseTotal(items), descuento)
	if err := s.DB.Model(&models.Factura{}).Where("id = ?", f.ID).
		Updates(map[string]any{"descuento_global": descuento, "total": total}).Error; err != nil {
		return 0, err
	}
	return f.ReparacionID, nil
}

// Confirmar pasa la factura de presupuesto a facturada y marca la reparación.
// Es idempotente: reconfirmar deja el mismo estado final sin error.
func (s *FacturaService) Confirmar(facturaID uint) (uint, error) {
	var f models.Factura
	if err := s.DB.First(&f, facturaID).Error; err != nil {
		return 0, err
	}
	if err := s.DB.Model(&models.Factura{}).Where("id = ?", f.ID).
		Update("es_presupuesto", false).Error; err != nil {
		return 0, err
	}
	if err := s.DB.Model(&models.Reparacion{}).Where("id = ?", f.ReparacionID).
		Update("estado", models.EstadoFacturada).Error; err != nil {
		return 0, err
	}
	return f.ReparacionID, nil
}
