package handlers

import (
	"net/http"

	"launchpad_backend/internal/services"
	"launchpad_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GenerationHandler struct {
	*BaseHandler
	generationService services.GenerationService
}

func NewGenerationHandler(base *BaseHandler, generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		BaseHandler:       base,
		generationService: generationService,
	}
}

func (h *GenerationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// анонимно можно генерировать, сохранение в проект требует сессии
	r.POST("/generate/:step", h.OptionalAuth, h.Generate)
}

func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.generationService.Generate(c.Request.Context(), h.OptionalUserID(c), c.Param("step"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
