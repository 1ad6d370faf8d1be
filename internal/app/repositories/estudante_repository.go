package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

const estudanteColumns = "id, nome, turma, email, telefone, foto, nota, soft_skill, created_at, updated_at"

// ListFilter narrows the estudante listing. Filtro is a free-text match
// against nome, turma and soft skill; the nota bounds back the dashboard
// cards (notas >= 7 / notas < 7).
type ListFilter struct {
	Filtro    string
	NotaMin   *float64
	NotaBelow *float64
}

// EstudanteRepository handles estudante database operations
type EstudanteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEstudanteRepository creates a new EstudanteRepository
func NewEstudanteRepository(db *pgxpool.Pool) *EstudanteRepository {
	return &EstudanteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEstudante(row pgx.Row) (*models.Estudante, error) {
	e := &models.Estudante{}
	err := row.Scan(&e.ID, &e.Nome, &e.Turma, &e.Email, &e.Telefone, &e.Foto, &e.Nota, &e.SoftSkill, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EstudanteRepository) applyFilter(b squirrel.SelectBuilder, filter ListFilter) squirrel.SelectBuilder {
	if f := strings.TrimSpace(filter.Filtro); f != "" {
		pattern := "%" + strings.ToLower(f) + "%"
		b = b.Where(squirrel.Or{
			squirrel.Expr("LOWER(nome) LIKE ?", pattern),
			squirrel.Expr("LOWER(turma) LIKE ?", pattern),
			squirrel.Expr("LOWER(COALESCE(soft_skill, '')) LIKE ?", pattern),
		})
	}
	if filter.NotaMin != nil {
		b = b.Where(squirrel.GtOrEq{"nota": *filter.NotaMin})
	}
	if filter.NotaBelow != nil {
		b = b.Where(squirrel.Lt{"nota": *filter.NotaBelow})
	}
	return b
}

// List returns a page of estudantes ordered by nome plus the total count
// for the same filter. A zero limit returns every matching row.
func (r *EstudanteRepository) List(ctx context.Context, filter ListFilter, limit int, offset uint64) ([]*models.Estudante, int64, error) {
	countBuilder := r.applyFilter(r.sb.Select("COUNT(*)").From("estudantes"), filter)
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count estudantes query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting estudantes")
		return nil, 0, apperrors.NewDatabaseError("error counting estudantes", err)
	}

	listBuilder := r.applyFilter(r.sb.Select(estudanteColumns).From("estudantes"), filter).
		OrderBy("nome ASC")
	if limit > 0 {
		listBuilder = listBuilder.Limit(uint64(limit)).Offset(offset)
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list estudantes query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying estudantes")
		return nil, 0, apperrors.NewDatabaseError("error querying estudantes", err)
	}
	defer rows.Close()

	estudantes := []*models.Estudante{}
	for rows.Next() {
		estudante, err := scanEstudante(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning estudante row")
			return nil, 0, apperrors.NewDatabaseError("error scanning estudante row", err)
		}
		estudantes = append(estudantes, estudante)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewDatabaseError("error iterating estudante rows", err)
	}

	return estudantes, total, nil
}

// GetByID retrieves one estudante or ErrEstudanteNotFound.
func (r *EstudanteRepository) GetByID(ctx context.Context, id int64) (*models.Estudante, error) {
	sql, args, err := r.sb.Select(estudanteColumns).
		From("estudantes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get estudante query: %w", err)
	}

	estudante, err := scanEstudante(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEstudanteNotFound
		}
		logger.Error().Err(err).Int64("estudanteID", id).Msg("Error scanning estudante row")
		return nil, apperrors.NewDatabaseError("error getting estudante by ID", err)
	}

	return estudante, nil
}

// GetFoto returns only the photo path of an estudante.
func (r *EstudanteRepository) GetFoto(ctx context.Context, id int64) (string, error) {
	sql, args, err := r.sb.Select("foto").
		From("estudantes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get foto query: %w", err)
	}

	var foto string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&foto); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrEstudanteNotFound
		}
		return "", apperrors.NewDatabaseError("error getting estudante foto", err)
	}
	return foto, nil
}

// Create inserts an estudante and returns the stored record.
func (r *EstudanteRepository) Create(ctx context.Context, e *models.Estudante) (*models.Estudante, error) {
	sql, args, err := r.sb.Insert("estudantes").
		Columns("nome", "turma", "email", "telefone", "foto", "nota", "soft_skill").
		Values(e.Nome, e.Turma, e.Email, e.Telefone, e.Foto, e.Nota, e.SoftSkill).
		Suffix("RETURNING " + estudanteColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create estudante query: %w", err)
	}

	created, err := scanEstudante(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateEntry
		}
		logger.Error().Err(err).Msg("Error executing create estudante query")
		return nil, apperrors.NewDatabaseError("error creating estudante", err)
	}

	return created, nil
}

// Update replaces the mutable columns of an estudante. The foto column is
// only touched when novaFoto is non-nil, so a form without a new file
// keeps the stored photo.
func (r *EstudanteRepository) Update(ctx context.Context, id int64, fields *models.Estudante, novaFoto *string) (*models.Estudante, error) {
	setMap := map[string]interface{}{
		"nome":       fields.Nome,
		"turma":      fields.Turma,
		"email":      fields.Email,
		"telefone":   fields.Telefone,
		"nota":       fields.Nota,
		"soft_skill": fields.SoftSkill,
		"updated_at": squirrel.Expr("NOW()"),
	}
	if novaFoto != nil {
		setMap["foto"] = *novaFoto
	}

	sql, args, err := r.sb.Update("estudantes").
		SetMap(setMap).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + estudanteColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update estudante query: %w", err)
	}

	updated, err := scanEstudante(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEstudanteNotFound
		}
		logger.Error().Err(err).Int64("estudanteID", id).Msg("Error executing update estudante query")
		return nil, apperrors.NewDatabaseError("error updating estudante", err)
	}

	return updated, nil
}

// UpdatePartial sets only nota and/or soft skill.
func (r *EstudanteRepository) UpdatePartial(ctx context.Context, id int64, nota *float64, softSkill *string) (*models.Estudante, error) {
	setMap := map[string]interface{}{
		"updated_at": squirrel.Expr("NOW()"),
	}
	if nota != nil {
		setMap["nota"] = *nota
	}
	if softSkill != nil {
		setMap["soft_skill"] = *softSkill
	}

	sql, args, err := r.sb.Update("estudantes").
		SetMap(setMap).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + estudanteColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build partial update query: %w", err)
	}

	updated, err := scanEstudante(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEstudanteNotFound
		}
		logger.Error().Err(err).Int64("estudanteID", id).Msg("Error executing partial update query")
		return nil, apperrors.NewDatabaseError("error updating estudante fields", err)
	}

	return updated, nil
}

// Delete removes an estudante row.
func (r *EstudanteRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("estudantes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete estudante query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("estudanteID", id).Msg("Error executing delete estudante query")
		return apperrors.NewDatabaseError("error deleting estudante", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEstudanteNotFound
	}

	return nil
}
