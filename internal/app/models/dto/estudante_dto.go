package dto

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vgsantoni/registro/internal/app/models"
)

var validate = validator.New()

// EstudanteForm is the multipart form payload for create and full update.
// Every field arrives as a string; Validate normalizes and checks them all,
// collecting every violation instead of stopping at the first.
type EstudanteForm struct {
	Nome      string `form:"nome"`
	Turma     string `form:"turma"`
	Email     string `form:"email"`
	Telefone  string `form:"telefone"`
	Nota      string `form:"nota"`
	SoftSkill string `form:"softSkill"`
}

// EstudanteFields holds the normalized values a valid form produced.
type EstudanteFields struct {
	Nome      string
	Turma     string
	Email     *string
	Telefone  string
	Nota      *float64
	SoftSkill *string
}

// Validate checks the form in full and returns the normalized field values.
// All violations are reported together.
func (f *EstudanteForm) Validate() (*EstudanteFields, *ValidationErrors) {
	collected := &ValidationErrors{}
	fields := &EstudanteFields{}

	fields.Nome = strings.TrimSpace(f.Nome)
	if fields.Nome == "" {
		collected.Add("nome", f.Nome, "Nome é obrigatório")
	} else if len(fields.Nome) > 100 {
		collected.Add("nome", f.Nome, "Nome deve ter no máximo 100 caracteres")
	}

	turma := strings.TrimSpace(f.Turma)
	if turma == "" {
		collected.Add("turma", f.Turma, "Turma é obrigatória")
	} else if canonical := models.CanonicalTurma(turma); canonical == "" {
		collected.Add("turma", f.Turma, "Turma inválida")
	} else {
		fields.Turma = canonical
	}

	if email := strings.TrimSpace(f.Email); email != "" {
		if err := validate.Var(email, "email"); err != nil {
			collected.Add("email", f.Email, "E-mail inválido")
		} else {
			fields.Email = &email
		}
	}

	fields.Telefone = strings.TrimSpace(f.Telefone)
	if fields.Telefone == "" {
		collected.Add("telefone", f.Telefone, "Telefone é obrigatório")
	} else if len(fields.Telefone) < 8 || len(fields.Telefone) > 20 {
		collected.Add("telefone", f.Telefone, "Telefone deve ter entre 8 e 20 caracteres")
	}

	if notaStr := strings.TrimSpace(f.Nota); notaStr != "" {
		nota, err := strconv.ParseFloat(notaStr, 64)
		if err != nil || nota < 0 || nota > 10 {
			collected.Add("nota", f.Nota, "Nota inválida, deve estar entre 0 e 10")
		} else {
			fields.Nota = &nota
		}
	}

	if skill := strings.TrimSpace(f.SoftSkill); skill != "" {
		if canonical := models.CanonicalSoftSkill(skill); canonical == "" {
			collected.Add("softSkill", f.SoftSkill, "SoftSkill inválida")
		} else {
			fields.SoftSkill = &canonical
		}
	}

	if collected.HasErrors() {
		return nil, collected
	}
	return fields, nil
}

// PatchEstudanteRequest is the JSON payload for the partial update, limited
// to nota and softSkill.
type PatchEstudanteRequest struct {
	Nota      *float64 `json:"nota"`
	SoftSkill *string  `json:"softSkill"`
}

// CampoRequest is the single-field variant of the partial update.
type CampoRequest struct {
	Campo string `json:"campo" binding:"required,oneof=nota softSkill"`
	Valor string `json:"valor" binding:"required"`
}

// EstudanteListResponse is the paginated listing payload.
type EstudanteListResponse struct {
	Page       int                 `json:"page" example:"1"`
	Limit      int                 `json:"limit" example:"10"`
	Total      int64               `json:"total" example:"42"`
	TotalPages int                 `json:"totalPages" example:"5"`
	Estudantes []*models.Estudante `json:"estudantes"`
}

// EstudanteResponse wraps a single record with the success envelope used by
// the mutation endpoints.
type EstudanteResponse struct {
	Success   bool              `json:"success" example:"true"`
	Message   string            `json:"message,omitempty"`
	Estudante *models.Estudante `json:"estudante"`
}

// ReconhecimentoResponse is the payload of the recognition stub.
type ReconhecimentoResponse struct {
	Success    bool              `json:"success"`
	Confidence float64           `json:"confidence" example:"0.92"`
	Estudante  *models.Estudante `json:"estudante,omitempty"`
	Message    string            `json:"message"`
}
