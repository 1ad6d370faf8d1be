package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTipo(t *testing.T) {
	assert.True(t, ValidTipo("admin"))
	assert.True(t, ValidTipo("professor"))
	assert.False(t, ValidTipo("aluno"))
	assert.False(t, ValidTipo(""))
	assert.False(t, ValidTipo("Admin"))
}

func TestCanonicalTurma(t *testing.T) {
	assert.Equal(t, "1º Informática A", CanonicalTurma("1º informática a"))
	assert.Equal(t, "2º Informática B", CanonicalTurma("  2º INFORMÁTICA B "))
	assert.Equal(t, "3º Informática A", CanonicalTurma("3º informatica a"))
	assert.Equal(t, "", CanonicalTurma("4º Informática A"))
	assert.Equal(t, "", CanonicalTurma(""))
}

func TestCanonicalSoftSkill(t *testing.T) {
	assert.Equal(t, "Comunicação", CanonicalSoftSkill("comunicacao"))
	assert.Equal(t, "Liderança", CanonicalSoftSkill("LIDERANÇA"))
	assert.Equal(t, "Trabalho em equipe", CanonicalSoftSkill("trabalho em equipe"))
	assert.Equal(t, "", CanonicalSoftSkill("pontualidade"))
}
