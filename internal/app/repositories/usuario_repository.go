package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

const usuarioColumns = "id, nome, email, senha, tipo, ativo, created_at"

// UsuarioRepository handles usuario database operations
type UsuarioRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUsuarioRepository creates a new UsuarioRepository
func NewUsuarioRepository(db *pgxpool.Pool) *UsuarioRepository {
	return &UsuarioRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUsuario(row pgx.Row) (*models.Usuario, error) {
	u := &models.Usuario{}
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.Senha, &u.Tipo, &u.Ativo, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves a usuario by email, active or not.
func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	sql, args, err := r.sb.Select(usuarioColumns).
		From("usuarios").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get usuario query: %w", err)
	}

	usuario, err := scanUsuario(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning usuario row")
		return nil, apperrors.NewDatabaseError("error getting usuario by email", err)
	}

	return usuario, nil
}

// GetActiveByID retrieves an active usuario. Deactivated accounts come back
// as ErrUsuarioNotFound so callers treat them like missing subjects.
func (r *UsuarioRepository) GetActiveByID(ctx context.Context, id int64) (*models.Usuario, error) {
	sql, args, err := r.sb.Select(usuarioColumns).
		From("usuarios").
		Where(squirrel.Eq{"id": id, "ativo": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active usuario query: %w", err)
	}

	usuario, err := scanUsuario(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		logger.Error().Err(err).Int64("usuarioID", id).Msg("Error scanning usuario row")
		return nil, apperrors.NewDatabaseError("error getting active usuario", err)
	}

	return usuario, nil
}

// Create inserts a usuario and returns its id. A duplicate email maps to
// ErrDuplicateEmail.
func (r *UsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) (int64, error) {
	sql, args, err := r.sb.Insert("usuarios").
		Columns("nome", "email", "senha", "tipo", "ativo").
		Values(usuario.Nome, usuario.Email, usuario.Senha, usuario.Tipo, usuario.Ativo).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create usuario query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrDuplicateEmail
		}
		logger.Error().Err(err).Msg("Error executing create usuario query")
		return 0, apperrors.NewDatabaseError("error creating usuario", err)
	}

	return id, nil
}

// Count returns how many usuarios exist. The seeder uses it to decide
// whether a default admin is needed.
func (r *UsuarioRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("usuarios").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count usuarios query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, apperrors.NewDatabaseError("error counting usuarios", err)
	}
	return count, nil
}
