package components

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

type componentIDParam struct {
	ID int `uri:"id" binding:"required,min=1"`
}

// upload is a component payload with its optional files.
type upload struct {
	request     models.ComponentRequest
	image       *multipart.FileHeader
	attachments []*multipart.FileHeader
}

// bindComponentRequest accepts a JSON body, or a multipart form carrying the fields as
// form values, custom_data as JSON, an "image" file and any number of "attachments" files.
func bindComponentRequest(c *gin.Context) (upload, error) {
	var u upload
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&u.request); err != nil {
			return u, custom_error.Validation("invalid request payload: %s", err.Error())
		}
		return u, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return u, custom_error.Validation("invalid multipart form: %s", err.Error())
	}

	req := &u.request
	intFields := map[string]**int{
		"section_id":   &req.SectionID,
		"quantity":     &req.Quantity,
		"min_quantity": &req.MinQuantity,
	}
	for field, target := range intFields {
		value, ok := c.GetPostForm(field)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return u, custom_error.Validation("%s must be a whole number", field)
		}
		*target = &parsed
	}

	stringFields := map[string]**string{
		"grid_position":   &req.GridPosition,
		"name":            &req.Name,
		"specification":   &req.Specification,
		"category":        &req.Category,
		"custom_category": &req.CustomCategory,
		"value":           &req.Value,
		"package_type":    &req.PackageType,
		"manufacturer":    &req.Manufacturer,
		"part_number":     &req.PartNumber,
		"purchase_link":   &req.PurchaseLink,
		"datasheet_url":   &req.DatasheetURL,
	}
	for field, target := range stringFields {
		if value, ok := c.GetPostForm(field); ok {
			*target = &value
		}
	}

	if raw := c.PostForm("custom_data"); raw != "" {
		var data models.CustomData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return u, custom_error.Validation("custom_data must be a JSON object: %s", err.Error())
		}
		req.CustomData = &data
	}

	image, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return u, custom_error.Validation("invalid image upload: %s", err.Error())
	default:
		u.image = image
	}

	u.attachments = append(u.attachments, form.File["attachments"]...)
	u.attachments = append(u.attachments, form.File["attachments[]"]...)

	return u, nil
}
