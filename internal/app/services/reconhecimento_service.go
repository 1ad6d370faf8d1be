package services

import (
	"context"
	"mime/multipart"

	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/app/repositories"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/helpers"
)

// stubConfidence is the confidence reported while no real model is wired.
const stubConfidence = 0.92

// ReconhecimentoService defines the interface for facial recognition.
// The current implementation is a stand-in that echoes a known estudante;
// a real model would slot in behind the same interface.
type ReconhecimentoService interface {
	Reconhecer(ctx context.Context, imagem *multipart.FileHeader) (*dto.ReconhecimentoResponse, error)
}

type reconhecimentoServiceImpl struct {
	estudantes estudanteStore
}

// NewReconhecimentoService creates a new recognition service instance
func NewReconhecimentoService(estudantes estudanteStore) ReconhecimentoService {
	return &reconhecimentoServiceImpl{estudantes: estudantes}
}

// Reconhecer pretends to match the submitted image against the enrolled
// estudantes. It requires an image and reports the first registered
// estudante as the match, or a miss when none are registered.
func (s *reconhecimentoServiceImpl) Reconhecer(ctx context.Context, imagem *multipart.FileHeader) (*dto.ReconhecimentoResponse, error) {
	if imagem == nil {
		return nil, apperrors.NewBadRequestError("Nenhuma imagem enviada")
	}

	params := helpers.PageParams{Page: 1, Limit: 1}
	estudantes, _, err := s.estudantes.List(ctx, repositories.ListFilter{}, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	if len(estudantes) == 0 {
		return &dto.ReconhecimentoResponse{
			Success: false,
			Message: "Nenhum estudante reconhecido",
		}, nil
	}

	return &dto.ReconhecimentoResponse{
		Success:    true,
		Confidence: stubConfidence,
		Estudante:  estudantes[0],
		Message:    "Estudante reconhecido",
	}, nil
}
