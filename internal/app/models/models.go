package models

import "github.com/vgsantoni/registro/internal/pkg/normalize"

// TipoUsuario defines the user role
type TipoUsuario string

const (
	TipoAdmin     TipoUsuario = "admin"
	TipoProfessor TipoUsuario = "professor"
)

// ValidTipo reports whether s names a known role.
func ValidTipo(s string) bool {
	return s == string(TipoAdmin) || s == string(TipoProfessor)
}

// Turmas is the fixed set of class labels estudantes can belong to.
var Turmas = []string{
	"1º Informática A",
	"1º Informática B",
	"2º Informática A",
	"2º Informática B",
	"3º Informática A",
	"3º Informática B",
}

// SoftSkills is the fixed vocabulary of soft-skill tags.
var SoftSkills = []string{
	"Comunicação",
	"Liderança",
	"Trabalho em equipe",
	"Criatividade",
	"Proatividade",
	"Organização",
	"Empatia",
	"Resiliência",
}

// CanonicalTurma matches value against the turma vocabulary, ignoring case
// and accents, and returns the canonical entry or "".
func CanonicalTurma(value string) string {
	return normalize.Canonical(Turmas, value)
}

// CanonicalSoftSkill matches value against the soft-skill vocabulary,
// ignoring case and accents, and returns the canonical entry or "".
func CanonicalSoftSkill(value string) string {
	return normalize.Canonical(SoftSkills, value)
}
