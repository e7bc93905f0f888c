package entity

import "time"

// User es el ancla de identidad: raíz de la cadena de propiedad (tenant).
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string // bcrypt; nunca se expone fuera del proveedor de sesión
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
