package dto

import "github.com/vgsantoni/registro/internal/app/models"

// LoginRequest carries login credentials
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// UsuarioInfo is the identity exposed in login and verification responses.
// It never carries the senha or its hash.
type UsuarioInfo struct {
	ID    int64  `json:"id" example:"1"`
	Nome  string `json:"nome" example:"Carlos Souza"`
	Tipo  string `json:"tipo" example:"admin"`
	Email string `json:"email,omitempty" example:"carlos@escola.edu.br"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Success   bool        `json:"success" example:"true"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn" example:"86400"`
	User      UsuarioInfo `json:"user"`
}

// CadastroRequest carries a new usuario registration
type CadastroRequest struct {
	Nome  string `json:"nome" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=6"`
	Tipo  string `json:"tipo" binding:"omitempty,oneof=admin professor"`
}

// CadastroResponse is returned when a usuario is created
type CadastroResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Usuário cadastrado com sucesso"`
	UserID  int64  `json:"userId" example:"3"`
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Tipo    string `json:"tipo"`
}

// VerificarResponse reports the authenticated identity
type VerificarResponse struct {
	Authenticated bool        `json:"authenticated" example:"true"`
	User          UsuarioInfo `json:"user"`
}

// CheckConfigPassRequest carries the shared config password
type CheckConfigPassRequest struct {
	Senha string `json:"senha" binding:"required"`
}

// CheckConfigPassResponse reports whether the config password matched
type CheckConfigPassResponse struct {
	Valid bool `json:"valid"`
}

// NewUsuarioInfo maps a model to the exposed identity.
func NewUsuarioInfo(u *models.Usuario) UsuarioInfo {
	return UsuarioInfo{
		ID:    u.ID,
		Nome:  u.Nome,
		Tipo:  string(u.Tipo),
		Email: u.Email,
	}
}
