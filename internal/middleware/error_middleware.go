package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

// devMode controls whether error details are echoed back to the client.
var devMode bool

// SetDevMode toggles detail exposure on error responses. Production keeps
// it off so internals never leak.
func SetDevMode(enabled bool) {
	devMode = enabled
}

// HandleAPIError maps service errors to HTTP responses. Controllers call
// it for every error coming out of the service layer.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrEstudanteNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Estudante não encontrado", err)
	case errors.Is(err, apperrors.ErrUsuarioNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeUserNotFound, "Usuário não encontrado", err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Credenciais inválidas", err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenExpired, "Token expirado", err)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenMissing):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeNotAuthenticated, "Não autenticado", err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Acesso negado", err)
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationError, message, nil)
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateEntry, "E-mail já cadastrado", err)
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateEntry, "Registro duplicado", err)
	case errors.Is(err, apperrors.ErrDatabase):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Erro de banco de dados", err)
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Erro interno do servidor", err)
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	resp := dto.NewErrorResponse(code, message)
	if devMode && err != nil {
		resp = resp.WithDetails(err.Error())
	}
	c.AbortWithStatusJSON(status, resp)
}
