package models

import "time"

// Estados conocidos de una reparación. El campo es texto libre: el formulario
// ofrece estos valores pero no se valida contra la lista.
const (
	EstadoIngresado         = "Ingresado"
	EstadoEnProceso         = "En proceso"
	EstadoEsperandoRepuesto = "Esperando repuesto"
	EstadoFacturada         = "Facturada"
)

// Tipos de ítem.
const (
	TipoServicio = "SERVICIO"
	TipoRepuesto = "REPUESTO"
)

// Reparacion es un trabajo sobre un vehículo. Fecha en formato ISO (YYYY-MM-DD),
// comparable como texto.
type Reparacion struct {
	ID          uint   `gorm:"primaryKey"`
	VehiculoID  uint   `gorm:"index"`
	Fecha       string `gorm:"index"`
	Descripcion string
	Notas       string
	Estado      string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName fija el plural castellano; el pluralizador de gorm armaría "reparacions".
func (Reparacion) TableName() string { return "reparaciones" }

// ReparacionItem es una línea de la reparación. Subtotal de línea:
// cantidad * precio_unitario * (1 - descuento/100).
type ReparacionItem struct {
	ID             uint `gorm:"primaryKey"`
	ReparacionID   uint `gorm:"index"`
	Concepto       string
	Cantidad       float64
	PrecioUnitario float64
	Descuento      float64 // porcentaje 0..100
	Tipo           string  `gorm:"default:'SERVICIO'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ItemConcepto guarda conceptos ya usados para sugerir en el formulario de ítems.
type ItemConcepto struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"unique"`
}

// ReparacionImagen referencia un archivo subido a disco.
type ReparacionImagen struct {
	ID           uint `gorm:"primaryKey"`
	ReparacionID uint `gorm:"index"`
	Filename     string
	Descripcion  string
	CreatedAt    time.Time
}

func (ReparacionImagen) TableName() string { return "reparacion_imagenes" }
