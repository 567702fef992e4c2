package models

import "time"

// Gasto es un egreso del taller, independiente de las reparaciones.
type Gasto struct {
	ID          uint   `gorm:"primaryKey"`
	Fecha       string `gorm:"index"`
	Categoria   string
	Descripcion string
	Monto       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
