package models

import "time"

// Estudante defines the student model based on the 'estudantes' table
type Estudante struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the estudante
	Nome      string    `json:"nome" db:"nome" example:"Ana Silva"`                       // Full name
	Turma     string    `json:"turma" db:"turma" example:"1º Informática A"`              // Class label, constrained to the turma vocabulary
	Email     *string   `json:"email,omitempty" db:"email" example:"ana@exemplo.com"`     // Contact email (nullable)
	Telefone  string    `json:"telefone" db:"telefone" example:"48999990000"`             // Phone number
	Foto      string    `json:"foto" db:"foto" example:"/uploads/default.jpg"`            // Public path of the profile photo
	Nota      *float64  `json:"nota,omitempty" db:"nota" example:"8.5"`                   // Grade in [0,10] (nullable)
	SoftSkill *string   `json:"softSkill,omitempty" db:"soft_skill" example:"Liderança"`  // Soft-skill tag (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the record was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp of the last change
}
