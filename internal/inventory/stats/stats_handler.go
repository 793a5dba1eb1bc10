package stats

import (
	"net/http"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type Service interface {
	LowStock() ([]models.ComponentWithLocation, error)
	Statistics() (Statistics, error)
}

type StatsHandler struct {
	service Service
}

func NewStatsHandler(s Service) *StatsHandler {
	return &StatsHandler{service: s}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.GetStatistics)
	router.GET("/components/low-stock", h.GetLowStock)
}

func (h *StatsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.Statistics()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetLowStock(c *gin.Context) {
	components, err := h.service.LowStock()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, components)
}
