package sections

import (
	"context"
	"net/http"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type Service interface {
	GetSectionGrid(id int) (*models.SectionGrid, error)
	ListComponents(id int) ([]models.Component, error)
	DeleteSection(ctx context.Context, id int) error
}

type SectionHandler struct {
	service Service
}

func NewSectionHandler(s Service) *SectionHandler {
	return &SectionHandler{service: s}
}

type sectionIDParam struct {
	ID int `uri:"id" binding:"required,min=1"`
}

func (h *SectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sections/:id", h.GetSection)
	router.GET("/sections/:id/components", h.GetSectionComponents)
	router.DELETE("/sections/:id", h.RemoveSection)
}

func (h *SectionHandler) GetSection(c *gin.Context) {
	var param sectionIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid section id")
		return
	}

	grid, err := h.service.GetSectionGrid(param.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

func (h *SectionHandler) GetSectionComponents(c *gin.Context) {
	var param sectionIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid section id")
		return
	}

	components, err := h.service.ListComponents(param.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, components)
}

func (h *SectionHandler) RemoveSection(c *gin.Context) {
	var param sectionIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid section id")
		return
	}

	if err := h.service.DeleteSection(c.Request.Context(), param.ID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}
