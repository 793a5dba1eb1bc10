package containers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type containerIDParam struct {
	ID int `uri:"id" binding:"required,min=1"`
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindContainerRequest accepts either a JSON body or a multipart form carrying an "image"
// file and a JSON encoded "sections" field.
func bindContainerRequest(c *gin.Context) (models.ContainerRequest, *multipart.FileHeader, error) {
	var req models.ContainerRequest
	if !isMultipart(c) {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, nil, custom_error.Validation("invalid request payload: %s", err.Error())
		}
		return req, nil, nil
	}

	req.Name = c.PostForm("name")
	req.Description = c.PostForm("description")
	if raw := c.PostForm("sections"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Sections); err != nil {
			return req, nil, custom_error.Validation("sections must be a JSON array: %s", err.Error())
		}
	}

	image, err := optionalFile(c, "image")
	return req, image, err
}

func bindContainerChanges(c *gin.Context) (models.ContainerChanges, *multipart.FileHeader, error) {
	var changes models.ContainerChanges
	if !isMultipart(c) {
		if err := c.ShouldBindJSON(&changes); err != nil {
			return changes, nil, custom_error.Validation("invalid request payload: %s", err.Error())
		}
		return changes, nil, nil
	}

	if name, ok := c.GetPostForm("name"); ok {
		changes.Name = &name
	}
	if description, ok := c.GetPostForm("description"); ok {
		changes.Description = &description
	}
	if raw := c.PostForm("sections"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &changes.Sections); err != nil {
			return changes, nil, custom_error.Validation("sections must be a JSON array: %s", err.Error())
		}
	}

	image, err := optionalFile(c, "image")
	return changes, image, err
}

func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, custom_error.Validation("invalid %s upload: %s", field, err.Error())
	}
	return file, nil
}
