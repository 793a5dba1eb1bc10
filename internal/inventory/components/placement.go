package components

import (
	"strings"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/metadata"
	"github.com/JungleeAadmi/component-storage/pkg/models"
)

// resolveAddress checks that address names a cell of section and returns its canonical form.
func resolveAddress(section models.Section, address string) (string, error) {
	decoded, err := metadata.Decode(strings.TrimSpace(address))
	if err != nil {
		return "", custom_error.Validation("invalid grid position %q", address)
	}
	if decoded.Secondary || decoded.Designation != section.Designation {
		return "", custom_error.Validation("grid position %s does not belong to section %s", address, section.Designation)
	}
	if !section.Contains(decoded.Row, decoded.Col) {
		return "", custom_error.Validation("grid position %s is outside the %dx%d grid of section %s",
			address, section.Rows, section.Cols, section.Designation)
	}
	return decoded.String(), nil
}

// normalizeComponent trims text fields and checks the supplied values. On create the
// placement and the name are mandatory.
func normalizeComponent(req *models.ComponentRequest, creating bool) error {
	trim(req.Name)
	trim(req.GridPosition)
	trim(req.Category)
	trim(req.CustomCategory)
	trim(req.PartNumber)

	if creating {
		if req.SectionID == nil {
			return custom_error.Validation("section_id is required")
		}
		if req.GridPosition == nil || *req.GridPosition == "" {
			return custom_error.Validation("grid_position is required")
		}
		if req.Name == nil {
			return custom_error.Validation("component name is required")
		}
	}

	if req.Name != nil && *req.Name == "" {
		return custom_error.Validation("component name is required")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return custom_error.Validation("quantity cannot be negative")
	}
	if req.MinQuantity != nil && *req.MinQuantity < 0 {
		return custom_error.Validation("min_quantity cannot be negative")
	}
	if req.CustomData != nil && req.CustomData.Items == nil {
		req.CustomData.Items = []models.CustomItem{}
	}
	return nil
}

func trim(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
