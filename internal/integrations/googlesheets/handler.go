package googlesheets

import (
	"context"
	"net/http"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/internal/repository"
	"github.com/JungleeAadmi/component-storage/pkg/models"
	"github.com/JungleeAadmi/component-storage/pkg/security"

	"github.com/gin-gonic/gin"
)

// ComponentSource is implemented by the component repository.
type ComponentSource interface {
	ListComponents(conditions repository.QueryBuilder) ([]models.ComponentWithLocation, error)
}

type InventoryExporter interface {
	ExportInventory(ctx context.Context, components []models.ComponentWithLocation) (*ExportResult, error)
}

type GoogleSheetsHandler struct {
	exporter   InventoryExporter
	components ComponentSource
}

func NewGoogleSheetsHandler(exporter InventoryExporter, components ComponentSource) *GoogleSheetsHandler {
	return &GoogleSheetsHandler{
		exporter:   exporter,
		components: components,
	}
}

func (h *GoogleSheetsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/integrations/sheets/export", security.Authorize("moderator"), h.ExportInventory)
}

func (h *GoogleSheetsHandler) ExportInventory(c *gin.Context) {
	components, err := h.components.ListComponents(repository.NewQueryBuilder())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	result, err := h.exporter.ExportInventory(c.Request.Context(), components)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
