package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/app/repositories"
	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/helpers"
)

// fakeEstudanteService backs the controller tests without a database.
type fakeEstudanteService struct {
	estudantes map[int64]*models.Estudante
	lastFilter repositories.ListFilter
	lastFoto   *multipart.FileHeader
}

func newFakeEstudanteService() *fakeEstudanteService {
	return &fakeEstudanteService{estudantes: make(map[int64]*models.Estudante)}
}

func (f *fakeEstudanteService) ListEstudantes(_ context.Context, filter repositories.ListFilter, params helpers.PageParams) ([]*models.Estudante, int64, error) {
	f.lastFilter = filter
	var all []*models.Estudante
	for _, e := range f.estudantes {
		all = append(all, e)
	}
	return all, int64(len(all)), nil
}

func (f *fakeEstudanteService) GetEstudanteByID(_ context.Context, id int64) (*models.Estudante, error) {
	e, ok := f.estudantes[id]
	if !ok {
		return nil, apperrors.ErrEstudanteNotFound
	}
	return e, nil
}

func (f *fakeEstudanteService) CreateEstudante(_ context.Context, fields *dto.EstudanteFields, foto *multipart.FileHeader) (*models.Estudante, error) {
	f.lastFoto = foto
	fotoPath := "/uploads/default.jpg"
	if foto != nil {
		fotoPath = "/uploads/nova.jpg"
	}
	e := &models.Estudante{
		ID:        int64(len(f.estudantes) + 1),
		Nome:      fields.Nome,
		Turma:     fields.Turma,
		Email:     fields.Email,
		Telefone:  fields.Telefone,
		Foto:      fotoPath,
		Nota:      fields.Nota,
		SoftSkill: fields.SoftSkill,
	}
	f.estudantes[e.ID] = e
	return e, nil
}

func (f *fakeEstudanteService) UpdateEstudante(_ context.Context, id int64, fields *dto.EstudanteFields, foto *multipart.FileHeader) (*models.Estudante, error) {
	e, ok := f.estudantes[id]
	if !ok {
		return nil, apperrors.ErrEstudanteNotFound
	}
	e.Nome = fields.Nome
	e.Turma = fields.Turma
	return e, nil
}

func (f *fakeEstudanteService) PatchEstudante(_ context.Context, id int64, nota *float64, softSkill *string) (*models.Estudante, error) {
	e, ok := f.estudantes[id]
	if !ok {
		return nil, apperrors.ErrEstudanteNotFound
	}
	if nota != nil {
		e.Nota = nota
	}
	if softSkill != nil {
		e.SoftSkill = softSkill
	}
	return e, nil
}

func (f *fakeEstudanteService) UpdateCampo(_ context.Context, id int64, campo, valor string) (*models.Estudante, error) {
	return f.PatchEstudante(context.Background(), id, nil, &valor)
}

func (f *fakeEstudanteService) DeleteEstudante(_ context.Context, id int64) error {
	if _, ok := f.estudantes[id]; !ok {
		return apperrors.ErrEstudanteNotFound
	}
	delete(f.estudantes, id)
	return nil
}

func estudanteRouter(svc *fakeEstudanteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewEstudanteController(svc)
	router.GET("/estudantes", ctrl.List)
	router.GET("/estudantes/:id", ctrl.Get)
	router.POST("/estudantes", ctrl.Create)
	router.PUT("/estudantes/:id", ctrl.Update)
	router.PATCH("/estudantes/:id", ctrl.Patch)
	router.PATCH("/estudantes/:id/campo", ctrl.UpdateCampo)
	router.DELETE("/estudantes/:id", ctrl.Delete)
	return router
}

// multipartBody builds a form body with the given fields and, when
// filename is set, a foto file part.
func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("foto", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("imagem"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateEstudanteWithoutPhoto(t *testing.T) {
	svc := newFakeEstudanteService()
	router := estudanteRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"nome":     "Ana Silva",
		"turma":    "1º Informática A",
		"telefone": "11987654321",
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/estudantes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.EstudanteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Estudante)
	assert.Equal(t, "Ana Silva", resp.Estudante.Nome)
	assert.Equal(t, "/uploads/default.jpg", resp.Estudante.Foto)
	assert.Nil(t, svc.lastFoto)
}

func TestCreateEstudanteWithPhoto(t *testing.T) {
	svc := newFakeEstudanteService()
	router := estudanteRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"nome":     "Bruno Costa",
		"turma":    "2º Informática B",
		"telefone": "11987654321",
		"nota":     "8.5",
	}, "bruno.jpg")

	req := httptest.NewRequest(http.MethodPost, "/estudantes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.lastFoto)
	assert.Equal(t, "bruno.jpg", svc.lastFoto.Filename)
}

func TestCreateEstudanteInvalidFormListsAllViolations(t *testing.T) {
	router := estudanteRouter(newFakeEstudanteService())

	body, contentType := multipartBody(t, map[string]string{
		"nome":  "",
		"turma": "9º Turismo Z",
		"nota":  "11",
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/estudantes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidationError, resp.Code)

	params := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		params = append(params, fe.Param)
	}
	assert.ElementsMatch(t, []string{"nome", "turma", "telefone", "nota"}, params)
}

func TestGetEstudanteNotFound(t *testing.T) {
	router := estudanteRouter(newFakeEstudanteService())

	req := httptest.NewRequest(http.MethodGet, "/estudantes/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeNotFound, resp.Code)
}

func TestGetEstudanteBadID(t *testing.T) {
	router := estudanteRouter(newFakeEstudanteService())

	for _, id := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/estudantes/"+id, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
	}
}

func TestListEstudantesResponseShape(t *testing.T) {
	svc := newFakeEstudanteService()
	svc.estudantes[1] = &models.Estudante{ID: 1, Nome: "Ana Silva"}
	svc.estudantes[2] = &models.Estudante{ID: 2, Nome: "Bruno Costa"}
	router := estudanteRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/estudantes?filtro=ana&page=1&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EstudanteListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Estudantes, 2)
	assert.Equal(t, "ana", svc.lastFilter.Filtro)
}

func TestListEstudantesNotaFilters(t *testing.T) {
	svc := newFakeEstudanteService()
	router := estudanteRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/estudantes?filtroNota=7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastFilter.NotaMin)
	assert.Equal(t, 7.0, *svc.lastFilter.NotaMin)

	req = httptest.NewRequest(http.MethodGet, "/estudantes?filtroNotaMenor7=1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastFilter.NotaBelow)
	assert.Equal(t, 7.0, *svc.lastFilter.NotaBelow)

	req = httptest.NewRequest(http.MethodGet, "/estudantes?filtroNota=sete", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchEstudante(t *testing.T) {
	svc := newFakeEstudanteService()
	svc.estudantes[1] = &models.Estudante{ID: 1, Nome: "Ana Silva"}
	router := estudanteRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/estudantes/1",
		strings.NewReader(`{"nota": 9.5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EstudanteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Estudante.Nota)
	assert.Equal(t, 9.5, *resp.Estudante.Nota)
}

func TestUpdateCampoRejectsUnknownCampo(t *testing.T) {
	svc := newFakeEstudanteService()
	svc.estudantes[1] = &models.Estudante{ID: 1, Nome: "Ana Silva"}
	router := estudanteRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/estudantes/1/campo",
		strings.NewReader(`{"campo": "telefone", "valor": "999"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEstudante(t *testing.T) {
	svc := newFakeEstudanteService()
	svc.estudantes[1] = &models.Estudante{ID: 1, Nome: "Ana Silva"}
	router := estudanteRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/estudantes/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.estudantes)

	req = httptest.NewRequest(http.MethodDelete, "/estudantes/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
