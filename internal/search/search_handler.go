package search

import (
	"net/http"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	repo SearchRepository
}

func NewSearchHandler(repo SearchRepository) *SearchHandler {
	return &SearchHandler{repo: repo}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.Search)
}

// Search answers GET /search?q=term. A blank term lists every component.
func (h *SearchHandler) Search(c *gin.Context) {
	var query struct {
		Term string `form:"q" binding:"max=200"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.AbortWithValidation(c, "search term is too long")
		return
	}

	results, err := h.repo.Search(query.Term)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if results == nil {
		results = []models.ComponentWithLocation{}
	}

	c.JSON(http.StatusOK, results)
}
