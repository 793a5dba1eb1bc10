package components

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type Service interface {
	ListComponents(filter ComponentFilter) ([]models.ComponentWithLocation, error)
	GetComponent(id int) (*models.Component, error)
	PlaceComponent(ctx context.Context, req models.ComponentRequest, image *multipart.FileHeader, files []*multipart.FileHeader) (*models.Component, error)
	UpdateComponent(ctx context.Context, id int, req models.ComponentRequest, image *multipart.FileHeader, files []*multipart.FileHeader) (*models.Component, error)
	MoveComponent(ctx context.Context, id int, req models.MoveRequest) (*models.Component, error)
	SetQuantity(ctx context.Context, id, quantity int) (*models.Component, error)
	DeleteComponent(ctx context.Context, id int) error
	DeleteAttachment(ctx context.Context, id int) error
	History(id int) ([]models.AuditLog, error)
}

type ComponentHandler struct {
	service Service
}

func NewComponentHandler(s Service) *ComponentHandler {
	return &ComponentHandler{service: s}
}

func (h *ComponentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/components", h.GetComponents)
	router.POST("/components", h.CreateComponent)
	router.GET("/components/:id", h.GetComponent)
	router.PUT("/components/:id", h.UpdateComponent)
	router.POST("/components/:id/move", h.MoveComponent)
	router.PATCH("/components/:id/quantity", h.SetQuantity)
	router.DELETE("/components/:id", h.RemoveComponent)
	router.GET("/components/:id/history", h.GetHistory)
	router.DELETE("/attachments/:id", h.RemoveAttachment)
}

func (h *ComponentHandler) GetComponents(c *gin.Context) {
	var filter ComponentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.AbortWithValidation(c, "invalid query parameters")
		return
	}

	components, err := h.service.ListComponents(filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, components)
}

func (h *ComponentHandler) GetComponent(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid component id")
		return
	}

	component, err := h.service.GetComponent(param.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) CreateComponent(c *gin.Context) {
	u, err := bindComponentRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	component, err := h.service.PlaceComponent(c.Request.Context(), u.request, u.image, u.attachments)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, component)
}

func (h *ComponentHandler) UpdateComponent(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid component id")
		return
	}

	u, err := bindComponentRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	component, err := h.service.UpdateComponent(c.Request.Context(), param.ID, u.request, u.image, u.attachments)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) MoveComponent(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid component id")
		return
	}

	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidation(c, "invalid request payload: %s", err.Error())
		return
	}

	component, err := h.service.MoveComponent(c.Request.Context(), param.ID, req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) SetQuantity(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid component id")
		return
	}

	var req models.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidation(c, "invalid request payload: %s", err.Error())
		return
	}

	component, err := h.service.SetQuantity(c.Request.Context(), param.ID, *req.Quantity)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) RemoveComponent(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid component id")
		return
	}

	if err := h.service.DeleteComponent(c.Request.Context(), param.ID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Component deleted successfully"})
}

func (h *ComponentHandler) GetHistory(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid component id")
		return
	}

	history, err := h.service.History(param.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *ComponentHandler) RemoveAttachment(c *gin.Context) {
	var param componentIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid attachment id")
		return
	}

	if err := h.service.DeleteAttachment(c.Request.Context(), param.ID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
