package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/app/repositories"
	"github.com/vgsantoni/registro/internal/app/services"
	"github.com/vgsantoni/registro/internal/middleware"
	"github.com/vgsantoni/registro/internal/pkg/helpers"
)

// EstudanteController handles estudante CRUD operations
type EstudanteController struct {
	estudanteService services.EstudanteService
}

// NewEstudanteController creates a new EstudanteController
func NewEstudanteController(estudanteService services.EstudanteService) *EstudanteController {
	return &EstudanteController{
		estudanteService: estudanteService,
	}
}

// List returns estudantes matching the optional filters, paginated when a
// limit is present and in full otherwise.
func (ctrl *EstudanteController) List(c *gin.Context) {
	params := helpers.ParsePageParams(c)

	filter := repositories.ListFilter{Filtro: c.Query("filtro")}

	if raw := c.Query("filtroNota"); raw != "" {
		nota, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrorCodeValidationError, "filtroNota deve ser um número"))
			return
		}
		filter.NotaMin = &nota
	}

	if c.Query("filtroNotaMenor7") == "1" {
		limite := 7.0
		filter.NotaBelow = &limite
	}

	estudantes, total, err := ctrl.estudanteService.ListEstudantes(c.Request.Context(), filter, params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	limit := params.Limit
	if limit == 0 {
		limit = len(estudantes)
	}

	c.JSON(http.StatusOK, dto.EstudanteListResponse{
		Page:       params.Page,
		Limit:      limit,
		Total:      total,
		TotalPages: params.TotalPages(total),
		Estudantes: estudantes,
	})
}

// Get returns a single estudante.
func (ctrl *EstudanteController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	estudante, err := ctrl.estudanteService.GetEstudanteByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, estudante)
}

// Create registers a new estudante from a multipart form with an optional
// photo.
func (ctrl *EstudanteController) Create(c *gin.Context) {
	fields, foto, ok := bindEstudanteForm(c)
	if !ok {
		return
	}

	created, err := ctrl.estudanteService.CreateEstudante(c.Request.Context(), fields, foto)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.EstudanteResponse{
		Success:   true,
		Message:   "Estudante cadastrado com sucesso",
		Estudante: created,
	})
}

// Update replaces every field of an estudante; the photo only changes when
// a new file comes in the form.
func (ctrl *EstudanteController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fields, foto, ok := bindEstudanteForm(c)
	if !ok {
		return
	}

	updated, err := ctrl.estudanteService.UpdateEstudante(c.Request.Context(), id, fields, foto)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EstudanteResponse{
		Success:   true,
		Message:   "Estudante atualizado com sucesso",
		Estudante: updated,
	})
}

// Patch updates nota and/or soft skill.
func (ctrl *EstudanteController) Patch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.PatchEstudanteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	updated, err := ctrl.estudanteService.PatchEstudante(c.Request.Context(), id, req.Nota, req.SoftSkill)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EstudanteResponse{
		Success:   true,
		Message:   "Estudante atualizado com sucesso",
		Estudante: updated,
	})
}

// UpdateCampo updates a single named field from a {campo, valor} body.
func (ctrl *EstudanteController) UpdateCampo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CampoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	updated, err := ctrl.estudanteService.UpdateCampo(c.Request.Context(), id, req.Campo, req.Valor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EstudanteResponse{
		Success:   true,
		Message:   "Campo atualizado com sucesso",
		Estudante: updated,
	})
}

// Delete removes an estudante and its stored photo.
func (ctrl *EstudanteController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.estudanteService.DeleteEstudante(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Estudante removido com sucesso"))
}

// bindEstudanteForm parses and validates the multipart form shared by
// Create and Update. It writes the 400 response itself on failure.
func bindEstudanteForm(c *gin.Context) (*dto.EstudanteFields, *multipart.FileHeader, bool) {
	var form dto.EstudanteForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return nil, nil, false
	}

	fields, violations := form.Validate()
	if violations != nil {
		c.JSON(http.StatusBadRequest, violations.Response())
		return nil, nil, false
	}

	foto, err := c.FormFile("foto")
	if err != nil {
		// missing file is fine, the photo is optional
		foto = nil
	}

	return fields, foto, true
}

// parseIDParam reads the :id path parameter. It writes the 400 response
// itself on failure.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationError, "ID inválido"))
		return 0, false
	}
	return id, true
}
