package services

import (
	"time"

	"github.com/nlitteri/taller-app/internal/models"

	"gorm.io/gorm"
)

const fechaISO = "2006-01-02"

// DashboardService arma el resumen de la pantalla principal. Sólo lecturas.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService { return &DashboardService{DB: db} }

// TrabajoEnProceso es una fila de la tabla de reparaciones en proceso,
// con los datos del vehículo y del cliente ya unidos.
type TrabajoEnProceso struct {
	ID          uint
	Fecha       string
	Estado      string
	Descripcion string
	Patente     string
	Marca       string
	Modelo      string
	Nombre      string
	Apellido    string
}

// Resumen agrupa todo lo que muestra el dashboard.
type Resumen struct {
	Trabajos       []TrabajoEnProceso
	Citas          []models.Cita
	EnProceso      int64
	Pendientes     int64
	Hoy            int64
	Ingresos7      float64
	Gastos7        float64
	Balance7       float64
	Dias           []string
	IngresosPorDia []float64
	GastosPorDia   []float64
}

// Armar calcula el resumen para la fecha dada (normalmente time.Now()).
// La ventana financiera son los 7 días que terminan en hoy, inclusive.
func (s *DashboardService) Armar(hoy time.Time) (*Resumen, error) {
	res := &Resumen{}
	hoyStr := hoy.Format(fechaISO)

	err := s.DB.Raw(`
		SELECT r.id, r.fecha, r.estado, r.descripcion,
		       v.patente, v.marca, v.modelo,
		       c.nombre, c.apellido
		FROM reparaciones r
		JOIN vehiculos v ON v.id = r.vehiculo_id
		JOIN clientes c ON c.id = v.cliente_id
		WHERE r.estado = ?
		ORDER BY r.fecha DESC, r.id DESC`, models.EstadoEnProceso).Scan(&res.Trabajos).Error
	if err != nil {
		return nil, err
	}

	if err := s.DB.Where("fecha >= ?", hoyStr).
		Order("fecha, hora").Limit(10).Find(&res.Citas).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Reparacion{}).
		Where("estado = ?", models.EstadoEnProceso).Count(&res.EnProceso).Error; err != nil {
		return nil, err
	}
	pendientes := []string{models.EstadoIngresado, models.EstadoEnProceso, models.EstadoEsperandoRepuesto}
	if err := s.DB.Model(&models.Reparacion{}).
		Where("estado IN ?", pendientes).Count(&res.Pendientes).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Reparacion{}).
		Where("fecha = ?", hoyStr).Count(&res.Hoy).Error; err != nil {
		return nil, err
	}

	desde := hoy.AddDate(0, 0, -6).Format(fechaISO)
	if err := s.sumIngresos("fecha BETWEEN ? AND ?", []any{desde, hoyStr}, &res.Ingresos7); err != nil {
		return nil, err
	}
	if err := s.sumGastos("fecha BETWEEN ? AND ?", []any{desde, hoyStr}, &res.Gastos7); err != nil {
		return nil, err
	}
	res.Balance7 = res.Ingresos7 - res.Gastos7

	// serie diaria en orden cronológico, para el gráfico
	for i := 6; i >= 0; i-- {
		dia := hoy.AddDate(0, 0, -i).Format(fechaISO)
		res.Dias = append(res.Dias, dia)
		var ing, gas float64
		if err := s.sumIngresos("fecha = ?", []any{dia}, &ing); err != nil {
			return nil, err
		}
		if err := s.sumGastos("fecha = ?", []any{dia}, &gas); err != nil {
			return nil, err
		}
		res.IngresosPorDia = append(res.IngresosPorDia, ing)
		res.GastosPorDia = append(res.GastosPorDia, gas)
	}
	return res, nil
}

// sumIngresos suma sólo facturas confirmadas: los presupuestos no entran al balance.
func (s *DashboardService) sumIngresos(cond string, args []any, out *float64) error {
	return s.DB.Model(&models.Factura{}).
		Select("COALESCE(SUM(total), 0)").
		Where("es_presupuesto = ?", false).
		Where(cond, args...).
		Scan(out).Error
}

func (s *DashboardService) sumGastos(cond string, args []any, out *float64) error {
	return s.DB.Model(&models.Gasto{}).
		Select("COALESCE(SUM(monto), 0)").
		Where(cond, args...).
		Scan(out).Error
}
