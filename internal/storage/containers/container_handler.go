package containers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type Service interface {
	ListContainers() ([]models.Container, error)
	GetContainer(id int) (*models.Container, error)
	CreateContainer(ctx context.Context, req models.ContainerRequest, image *multipart.FileHeader) (*models.Container, error)
	UpdateContainer(ctx context.Context, id int, changes models.ContainerChanges, image *multipart.FileHeader) (*models.Container, error)
	DeleteContainer(ctx context.Context, id int) ([]string, error)
	CreateSection(ctx context.Context, containerID int, req models.SectionRequest) (*models.Section, error)
}

type ContainerHandler struct {
	service Service
}

func NewContainerHandler(s Service) *ContainerHandler {
	return &ContainerHandler{service: s}
}

func (h *ContainerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/containers", h.GetContainers)
	router.POST("/containers", h.CreateContainer)
	router.GET("/containers/:id", h.GetContainer)
	router.PUT("/containers/:id", h.UpdateContainer)
	router.DELETE("/containers/:id", h.RemoveContainer)
	router.POST("/containers/:id/sections", h.CreateSection)
}

func (h *ContainerHandler) GetContainers(c *gin.Context) {
	containers, err := h.service.ListContainers()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, containers)
}

func (h *ContainerHandler) GetContainer(c *gin.Context) {
	var param containerIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid container id")
		return
	}

	container, err := h.service.GetContainer(param.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, container)
}

func (h *ContainerHandler) CreateContainer(c *gin.Context) {
	req, image, err := bindContainerRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	container, err := h.service.CreateContainer(c.Request.Context(), req, image)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, container)
}

func (h *ContainerHandler) UpdateContainer(c *gin.Context) {
	var param containerIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid container id")
		return
	}

	changes, image, err := bindContainerChanges(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	container, err := h.service.UpdateContainer(c.Request.Context(), param.ID, changes, image)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, container)
}

func (h *ContainerHandler) RemoveContainer(c *gin.Context) {
	var param containerIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid container id")
		return
	}

	if _, err := h.service.DeleteContainer(c.Request.Context(), param.ID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Container deleted successfully"})
}

func (h *ContainerHandler) CreateSection(c *gin.Context) {
	var param containerIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid container id")
		return
	}

	var req models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidation(c, "invalid request payload: %s", err.Error())
		return
	}

	section, err := h.service.CreateSection(c.Request.Context(), param.ID, req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, section)
}
