package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/app/repositories"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/filestorage"
	"github.com/vgsantoni/registro/internal/pkg/helpers"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

// EstudanteService defines the interface for estudante-related operations
type EstudanteService interface {
	ListEstudantes(ctx context.Context, filter repositories.ListFilter, params helpers.PageParams) ([]*models.Estudante, int64, error)
	GetEstudanteByID(ctx context.Context, id int64) (*models.Estudante, error)
	CreateEstudante(ctx context.Context, fields *dto.EstudanteFields, foto *multipart.FileHeader) (*models.Estudante, error)
	UpdateEstudante(ctx context.Context, id int64, fields *dto.EstudanteFields, foto *multipart.FileHeader) (*models.Estudante, error)
	PatchEstudante(ctx context.Context, id int64, nota *float64, softSkill *string) (*models.Estudante, error)
	UpdateCampo(ctx context.Context, id int64, campo, valor string) (*models.Estudante, error)
	DeleteEstudante(ctx context.Context, id int64) error
}

// estudanteStore is the slice of the repository the service depends on.
type estudanteStore interface {
	List(ctx context.Context, filter repositories.ListFilter, limit int, offset uint64) ([]*models.Estudante, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Estudante, error)
	GetFoto(ctx context.Context, id int64) (string, error)
	Create(ctx context.Context, e *models.Estudante) (*models.Estudante, error)
	Update(ctx context.Context, id int64, fields *models.Estudante, novaFoto *string) (*models.Estudante, error)
	UpdatePartial(ctx context.Context, id int64, nota *float64, softSkill *string) (*models.Estudante, error)
	Delete(ctx context.Context, id int64) error
}

// estudanteServiceImpl implements the EstudanteService interface
type estudanteServiceImpl struct {
	repo    estudanteStore
	storage filestorage.FileStorage
}

// NewEstudanteService creates a new estudante service instance
func NewEstudanteService(repo estudanteStore, storage filestorage.FileStorage) EstudanteService {
	return &estudanteServiceImpl{
		repo:    repo,
		storage: storage,
	}
}

// ListEstudantes returns a page of estudantes plus the total row count for
// the applied filter. A zero limit disables pagination and returns all rows.
func (s *estudanteServiceImpl) ListEstudantes(ctx context.Context, filter repositories.ListFilter, params helpers.PageParams) ([]*models.Estudante, int64, error) {
	return s.repo.List(ctx, filter, params.Limit, params.Offset())
}

// GetEstudanteByID returns a single estudante.
func (s *estudanteServiceImpl) GetEstudanteByID(ctx context.Context, id int64) (*models.Estudante, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateEstudante stores the photo (when present) and inserts the record.
// Without a photo the placeholder path is used. If the insert fails, a
// just-stored photo is removed so no orphan file stays behind.
func (s *estudanteServiceImpl) CreateEstudante(ctx context.Context, fields *dto.EstudanteFields, foto *multipart.FileHeader) (*models.Estudante, error) {
	fotoPath, err := s.storage.SavePhoto(foto)
	if err != nil {
		return nil, err
	}
	if fotoPath == "" {
		fotoPath = s.storage.DefaultPhoto()
	}

	estudante := &models.Estudante{
		Nome:      fields.Nome,
		Turma:     fields.Turma,
		Email:     fields.Email,
		Telefone:  fields.Telefone,
		Foto:      fotoPath,
		Nota:      fields.Nota,
		SoftSkill: fields.SoftSkill,
	}

	created, err := s.repo.Create(ctx, estudante)
	if err != nil {
		s.removePhoto(fotoPath)
		return nil, err
	}

	logger.Info().Int64("estudanteID", created.ID).Str("turma", created.Turma).Msg("Estudante created")
	return created, nil
}

// UpdateEstudante replaces every field of an existing record. When a new
// photo comes in, the old file is removed only after the row update
// succeeded; when the update fails, the new file is removed instead.
func (s *estudanteServiceImpl) UpdateEstudante(ctx context.Context, id int64, fields *dto.EstudanteFields, foto *multipart.FileHeader) (*models.Estudante, error) {
	fotoAntiga, err := s.repo.GetFoto(ctx, id)
	if err != nil {
		return nil, err
	}

	var novaFoto *string
	if foto != nil {
		path, err := s.storage.SavePhoto(foto)
		if err != nil {
			return nil, err
		}
		novaFoto = &path
	}

	values := &models.Estudante{
		Nome:      fields.Nome,
		Turma:     fields.Turma,
		Email:     fields.Email,
		Telefone:  fields.Telefone,
		Nota:      fields.Nota,
		SoftSkill: fields.SoftSkill,
	}

	updated, err := s.repo.Update(ctx, id, values, novaFoto)
	if err != nil {
		if novaFoto != nil {
			s.removePhoto(*novaFoto)
		}
		return nil, err
	}

	if novaFoto != nil {
		s.removePhoto(fotoAntiga)
	}

	return updated, nil
}

// PatchEstudante updates nota and/or soft skill. At least one field must be
// present; values are validated before hitting the database.
func (s *estudanteServiceImpl) PatchEstudante(ctx context.Context, id int64, nota *float64, softSkill *string) (*models.Estudante, error) {
	if nota == nil && softSkill == nil {
		return nil, apperrors.NewValidationError("Informe nota ou softSkill")
	}

	if nota != nil && (*nota < 0 || *nota > 10) {
		return nil, apperrors.NewValidationError("Nota deve estar entre 0 e 10")
	}

	if softSkill != nil {
		canonical := models.CanonicalSoftSkill(*softSkill)
		if canonical == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Soft skill inválida: %s", *softSkill))
		}
		softSkill = &canonical
	}

	return s.repo.UpdatePartial(ctx, id, nota, softSkill)
}

// UpdateCampo applies a single named field update, parsing the raw value
// according to the field.
func (s *estudanteServiceImpl) UpdateCampo(ctx context.Context, id int64, campo, valor string) (*models.Estudante, error) {
	switch campo {
	case "nota":
		nota, err := strconv.ParseFloat(strings.TrimSpace(valor), 64)
		if err != nil {
			return nil, apperrors.NewValidationError("Nota deve ser um número")
		}
		return s.PatchEstudante(ctx, id, &nota, nil)
	case "softSkill":
		return s.PatchEstudante(ctx, id, nil, &valor)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("Campo não suportado: %s", campo))
	}
}

// DeleteEstudante removes the row and then, best effort, the photo file.
func (s *estudanteServiceImpl) DeleteEstudante(ctx context.Context, id int64) error {
	foto, err := s.repo.GetFoto(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.removePhoto(foto)
	logger.Info().Int64("estudanteID", id).Msg("Estudante deleted")
	return nil
}

// removePhoto deletes a stored photo without failing the caller. The
// storage layer already skips the placeholder and missing files.
func (s *estudanteServiceImpl) removePhoto(publicPath string) {
	if err := s.storage.DeletePhoto(publicPath); err != nil {
		logger.Warn().Err(err).Str("foto", publicPath).Msg("Failed to remove photo file")
	}
}
