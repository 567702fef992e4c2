package models

import "time"

// Roles válidos para User.Rol.
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"unique;not null;index"`
	Password  string `gorm:"not null"` // hash bcrypt
	Rol       string `gorm:"not null;default:'operador'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
