package domain

import "time"

// Usuario representa una cuenta del back-office.
type Usuario struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Nunca se expone en las respuestas JSON
	Rol          Rol       `json:"rol"`
	FechaCreado  time.Time `json:"fecha_creado"`
}

// Rol es el papel del usuario dentro del sistema.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolVendedor Rol = "vendedor"
)

// UsuarioRegistro es el payload de entrada para crear una cuenta.
type UsuarioRegistro struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      Rol    `json:"rol"`
}

// Credenciales es el payload del login.
type Credenciales struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
