package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/app/services"
	"github.com/vgsantoni/registro/internal/middleware"
)

// AuthController handles login, registration and session endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates a usuario and returns a bearer token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	resp, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Cadastrar registers a new panel usuario.
func (ctrl *AuthController) Cadastrar(c *gin.Context) {
	var req dto.CadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	id, err := ctrl.authService.Cadastrar(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = "admin"
	}

	c.JSON(http.StatusCreated, dto.CadastroResponse{
		Success: true,
		Message: "Usuário cadastrado com sucesso",
		UserID:  id,
		Nome:    req.Nome,
		Email:   req.Email,
		Tipo:    tipo,
	})
}

// Logout drops the session record of the current token.
func (ctrl *AuthController) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextJTIKey)
	if jti != "" {
		if err := ctrl.authService.Logout(c.Request.Context(), jti); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Sessão encerrada"))
}

// Verificar confirms the token is valid and echoes the usuario it belongs
// to.
func (ctrl *AuthController) Verificar(c *gin.Context) {
	usuario, ok := middleware.CurrentUsuario(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeNotAuthenticated, "Não autenticado"))
		return
	}

	c.JSON(http.StatusOK, dto.VerificarResponse{
		Authenticated: true,
		User:          dto.NewUsuarioInfo(usuario),
	})
}

// CheckConfigPass validates the shared configuration password that gates
// usuario creation in the panel.
func (ctrl *AuthController) CheckConfigPass(c *gin.Context) {
	var req dto.CheckConfigPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	c.JSON(http.StatusOK, dto.CheckConfigPassResponse{
		Valid: ctrl.authService.CheckConfigPass(req.Senha),
	})
}
