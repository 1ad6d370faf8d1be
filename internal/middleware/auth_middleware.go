package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/auth"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

// Context keys set by Authenticate.
const (
	ContextUsuarioKey = "usuario"
	ContextClaimsKey  = "claims"
	ContextJTIKey     = "jti"
)

// activeUsuarioStore looks up the token subject on every request so
// deleted or deactivated accounts stop working immediately.
type activeUsuarioStore interface {
	GetActiveByID(ctx context.Context, id int64) (*models.Usuario, error)
}

type sessionDestroyer interface {
	Destroy(ctx context.Context, jti string) error
}

// AuthMiddleware guards routes behind bearer token authentication.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	usuarios   activeUsuarioStore
	sessions   sessionDestroyer
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, usuarios activeUsuarioStore, sessions sessionDestroyer) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		usuarios:   usuarios,
		sessions:   sessions,
	}
}

// Authenticate validates the bearer token and loads the active usuario it
// belongs to into the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		usuario, err := m.usuarios.GetActiveByID(c.Request.Context(), claims.UsuarioID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUsuarioNotFound) {
				m.dropSession(c, claims.ID)
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrorCodeUserNotFound, "Usuário não encontrado"))
				return
			}
			logger.Error().Err(err).Int64("usuarioID", claims.UsuarioID).Msg("Subject lookup failed during authentication")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeAuthenticationFailure, "Falha de autenticação"))
			return
		}

		c.Set(ContextUsuarioKey, usuario)
		c.Set(ContextClaimsKey, claims)
		c.Set(ContextJTIKey, claims.ID)
		c.Next()
	}
}

// Authorize restricts a route to the given tipos. It must run after
// Authenticate.
func (m *AuthMiddleware) Authorize(tipos ...models.TipoUsuario) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := CurrentUsuario(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Não autorizado"))
			return
		}

		for _, tipo := range tipos {
			if usuario.Tipo == tipo {
				c.Next()
				return
			}
		}

		HandleAPIError(c, apperrors.ErrPermissionDenied)
	}
}

// IdentifySession reads the bearer token if one is present and records its
// JTI without rejecting the request. Logout runs behind it so a client with
// a missing or stale token still gets an acknowledged response.
func (m *AuthMiddleware) IdentifySession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil || claims.ID == "" {
			c.Next()
			return
		}

		c.Set(ContextJTIKey, claims.ID)
		c.Next()
	}
}

// dropSession removes the advisory session record of a token whose
// subject no longer exists or was deactivated.
func (m *AuthMiddleware) dropSession(c *gin.Context, jti string) {
	if jti == "" {
		return
	}
	if err := m.sessions.Destroy(c.Request.Context(), jti); err != nil {
		logger.Warn().Err(err).Str("jti", jti).Msg("Failed to drop stale session")
	}
}

// CurrentUsuario returns the authenticated usuario from the context.
func CurrentUsuario(c *gin.Context) (*models.Usuario, bool) {
	value, exists := c.Get(ContextUsuarioKey)
	if !exists {
		return nil, false
	}
	usuario, ok := value.(*models.Usuario)
	return usuario, ok
}

// CurrentClaims returns the validated token claims from the context.
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
