package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/auth"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Cadastrar(ctx context.Context, req *dto.CadastroRequest) (int64, error)
	Logout(ctx context.Context, jti string) error
	CheckConfigPass(senha string) bool
}

// usuarioStore is the slice of the repository the service depends on.
type usuarioStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	Create(ctx context.Context, usuario *models.Usuario) (int64, error)
}

// sessionRegistry records which tokens are live so logout and account
// deactivation take effect before the JWT expires.
type sessionRegistry interface {
	Create(ctx context.Context, jti string, usuarioID int64, tipo string) error
	Destroy(ctx context.Context, jti string) error
}

type tokenIssuer interface {
	GenerateToken(usuario *models.Usuario) (token string, jti string, expiresIn int64, err error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	usuarioRepo    usuarioStore
	tokens         tokenIssuer
	sessions       sessionRegistry
	configPassword string
}

// NewAuthService creates a new authentication service instance
func NewAuthService(usuarioRepo usuarioStore, tokens tokenIssuer, sessions sessionRegistry, configPassword string) AuthService {
	return &authServiceImpl{
		usuarioRepo:    usuarioRepo,
		tokens:         tokens,
		sessions:       sessions,
		configPassword: configPassword,
	}
}

// Login authenticates a usuario and issues a signed token. Unknown emails,
// wrong passwords and deactivated accounts all surface the same
// ErrInvalidCredentials so the response never reveals which part failed.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarioRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUsuarioNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !usuario.Ativo {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(usuario.Senha, req.Senha) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, jti, expiresIn, err := s.tokens.GenerateToken(usuario)
	if err != nil {
		logger.Error().Err(err).Int64("usuarioID", usuario.ID).Msg("Failed to generate token")
		return nil, err
	}

	if err := s.sessions.Create(ctx, jti, usuario.ID, string(usuario.Tipo)); err != nil {
		// login still succeeds without the session record
		logger.Warn().Err(err).Int64("usuarioID", usuario.ID).Msg("Failed to register session")
	}

	logger.Info().Int64("usuarioID", usuario.ID).Str("tipo", string(usuario.Tipo)).Msg("Usuario logged in")

	return &dto.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: expiresIn,
		User:      dto.NewUsuarioInfo(usuario),
	}, nil
}

// Cadastrar registers a new usuario. Tipo defaults to admin when absent.
func (s *authServiceImpl) Cadastrar(ctx context.Context, req *dto.CadastroRequest) (int64, error) {
	tipo := models.TipoUsuario(req.Tipo)
	if tipo == "" {
		tipo = models.TipoAdmin
	}

	hashed, err := auth.HashPassword(req.Senha)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return 0, err
	}

	usuario := &models.Usuario{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: hashed,
		Tipo:  tipo,
		Ativo: true,
	}

	id, err := s.usuarioRepo.Create(ctx, usuario)
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("usuarioID", id).Str("tipo", string(tipo)).Msg("Usuario registered")
	return id, nil
}

// Logout drops the session record for the token. The JWT itself stays
// valid until its expiry.
func (s *authServiceImpl) Logout(ctx context.Context, jti string) error {
	return s.sessions.Destroy(ctx, jti)
}

// CheckConfigPass compares the shared configuration password in constant
// time.
func (s *authServiceImpl) CheckConfigPass(senha string) bool {
	if s.configPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(senha), []byte(s.configPassword)) == 1
}
