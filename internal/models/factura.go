package models

import "time"

// Factura es el único presupuesto/factura de una reparación (lookup por
// reparacion_id). Nace como presupuesto al primer acceso y se confirma
// explícitamente. Total es un cache: se recalcula desde los ítems vivos en
// cada vista.
type Factura struct {
	ID              uint   `gorm:"primaryKey"`
	ReparacionID    uint   `gorm:"index"`
	Fecha           string `gorm:"index"`
	Total           float64
	DescuentoGlobal float64 // porcentaje 0..100
	EsPresupuesto   bool    `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
