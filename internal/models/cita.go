package models

import "time"

// Cita es un turno agendado. ClienteNombre es texto libre, no referencia a Cliente.
type Cita struct {
	ID            uint   `gorm:"primaryKey"`
	Fecha         string `gorm:"index"`
	Hora          string
	ClienteNombre string
	Telefono      string
	Descripcion   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
