package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/app/repositories"
	"github.com/vgsantoni/registro/internal/pkg/auth"
)

// Default credentials for the first admin account. The password should be
// changed right after the first login.
const (
	DefaultAdminNome  = "Administrador"
	DefaultAdminEmail = "admin@escola.local"
	DefaultAdminSenha = "admin123"
)

// CreateDefaultData seeds the first admin usuario when the usuarios table
// is empty, so a fresh install can log in.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	usuarioRepo := repositories.NewUsuarioRepository(dbPool)

	count, err := usuarioRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count usuarios: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("usuarios", count).Msg("Usuarios already present, skipping seed")
		return nil
	}

	hashed, err := auth.HashPassword(DefaultAdminSenha)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	id, err := usuarioRepo.Create(ctx, &models.Usuario{
		Nome:  DefaultAdminNome,
		Email: DefaultAdminEmail,
		Senha: hashed,
		Tipo:  models.TipoAdmin,
		Ativo: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Int64("usuarioID", id).Str("email", DefaultAdminEmail).Msg("Default admin created")
	return nil
}
