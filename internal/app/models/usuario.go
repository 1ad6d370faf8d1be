package models

import "time"

// Usuario defines the administrator/teacher model based on the 'usuarios' table
type Usuario struct {
	ID        int64       `json:"id" db:"id" example:"1"`                                   // Unique identifier for the usuario
	Nome      string      `json:"nome" db:"nome" example:"Carlos Souza"`                    // Full name
	Email     string      `json:"email" db:"email" example:"carlos@escola.edu.br"`          // Login email, unique
	Senha     string      `json:"-" db:"senha"`                                             // Bcrypt hash (excluded from JSON)
	Tipo      TipoUsuario `json:"tipo" db:"tipo" example:"admin"`                           // Role (admin or professor)
	Ativo     bool        `json:"ativo" db:"ativo" example:"true"`                          // Deactivated usuarios cannot authenticate
	CreatedAt time.Time   `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
}
