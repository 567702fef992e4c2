package models

import "time"

// Cliente del taller. Telefono se guarda normalizado (sólo dígitos).
type Cliente struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"index"`
	Apellido    string `gorm:"index"`
	Telefono    string
	Email       string
	Direccion   string
	Notas       string
	Documento   string
	RazonSocial string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
