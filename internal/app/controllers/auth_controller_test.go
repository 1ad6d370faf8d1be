package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/middleware"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
)

type fakeAuthService struct {
	configPass string
	loggedOut  []string
}

func (f *fakeAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email != "carlos@escola.com" || req.Senha != "senha123" {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &dto.LoginResponse{
		Success:   true,
		Token:     "token-de-teste",
		ExpiresIn: 86400,
		User:      dto.UsuarioInfo{ID: 1, Nome: "Carlos Souza", Tipo: "admin", Email: req.Email},
	}, nil
}

func (f *fakeAuthService) Cadastrar(_ context.Context, req *dto.CadastroRequest) (int64, error) {
	if req.Email == "carlos@escola.com" {
		return 0, apperrors.ErrDuplicateEmail
	}
	return 2, nil
}

func (f *fakeAuthService) Logout(_ context.Context, jti string) error {
	f.loggedOut = append(f.loggedOut, jti)
	return nil
}

func (f *fakeAuthService) CheckConfigPass(senha string) bool {
	return senha == f.configPass
}

func authRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewAuthController(svc)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/cadastrar", ctrl.Cadastrar)
	router.POST("/auth/logout", func(c *gin.Context) {
		c.Set(middleware.ContextJTIKey, "jti-de-teste")
		ctrl.Logout(c)
	})
	router.POST("/auth/logout-sem-sessao", ctrl.Logout)
	router.POST("/auth/check-config-pass", ctrl.CheckConfigPass)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	rec := postJSON(router, "/auth/login", `{"email": "carlos@escola.com", "senha": "senha123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "token-de-teste", resp.Token)
	assert.Equal(t, "Carlos Souza", resp.User.Nome)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	rec := postJSON(router, "/auth/login", `{"email": "carlos@escola.com", "senha": "errada"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, resp.Code)
	assert.Equal(t, "Credenciais inválidas", resp.Message)
}

func TestLoginEndpointMalformedBody(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	rec := postJSON(router, "/auth/login", `{"email": "sem-arroba"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidationError, resp.Code)
	assert.NotEmpty(t, resp.Errors)
}

func TestCadastrarEndpoint(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	rec := postJSON(router, "/auth/cadastrar",
		`{"nome": "Nova Admin", "email": "nova@escola.com", "senha": "senha123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CadastroResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.UserID)
	assert.Equal(t, "admin", resp.Tipo)
}

func TestCadastrarEndpointDuplicate(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	rec := postJSON(router, "/auth/cadastrar",
		`{"nome": "Carlos Souza", "email": "carlos@escola.com", "senha": "senha123"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeDuplicateEntry, resp.Code)
}

func TestCadastrarEndpointRejectsBadTipo(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	rec := postJSON(router, "/auth/cadastrar",
		`{"nome": "Aluno", "email": "aluno@escola.com", "senha": "senha123", "tipo": "aluno"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	svc := &fakeAuthService{}
	router := authRouter(svc)

	rec := postJSON(router, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"jti-de-teste"}, svc.loggedOut)
}

func TestLogoutEndpointWithoutSession(t *testing.T) {
	svc := &fakeAuthService{}
	router := authRouter(svc)

	rec := postJSON(router, "/auth/logout-sem-sessao", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, svc.loggedOut)
}

func TestCheckConfigPassEndpoint(t *testing.T) {
	router := authRouter(&fakeAuthService{configPass: "segredo-compartilhado"})

	rec := postJSON(router, "/auth/check-config-pass", `{"senha": "segredo-compartilhado"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CheckConfigPassResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)

	rec = postJSON(router, "/auth/check-config-pass", `{"senha": "errada"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
}
