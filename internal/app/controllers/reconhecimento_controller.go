package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgsantoni/registro/internal/app/models/dto"
	"github.com/vgsantoni/registro/internal/app/services"
	"github.com/vgsantoni/registro/internal/middleware"
)

// ReconhecimentoController handles the facial recognition endpoint
type ReconhecimentoController struct {
	reconhecimentoService services.ReconhecimentoService
}

// NewReconhecimentoController creates a new ReconhecimentoController
func NewReconhecimentoController(reconhecimentoService services.ReconhecimentoService) *ReconhecimentoController {
	return &ReconhecimentoController{
		reconhecimentoService: reconhecimentoService,
	}
}

// Reconhecer receives an image and returns the recognition result.
func (ctrl *ReconhecimentoController) Reconhecer(c *gin.Context) {
	imagem, err := c.FormFile("imagem")
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationError, "Nenhuma imagem enviada"))
		return
	}

	resp, err := ctrl.reconhecimentoService.Reconhecer(c.Request.Context(), imagem)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
