package models

import "time"

// Vehiculo pertenece a un Cliente. Sin cascada: borrar el cliente deja el
// vehículo huérfano.
type Vehiculo struct {
	ID        uint   `gorm:"primaryKey"`
	ClienteID uint   `gorm:"index"`
	Patente   string `gorm:"index"` // se guarda en mayúsculas
	Marca     string
	Modelo    string
	Anio      string
	Km        string
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
