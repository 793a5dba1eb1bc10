package containers

import (
	"errors"
	"strings"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/metadata"
	"github.com/JungleeAadmi/component-storage/pkg/models"
)

// assignDesignations returns the letters for count new sections when seq sections were
// ever created in the container. Letters of deleted sections are not handed out again.
func assignDesignations(seq, count int) ([]string, error) {
	designations := make([]string, 0, count)
	for i := 0; i < count; i++ {
		letter, err := metadata.DesignationFor(seq + i)
		if errors.Is(err, metadata.ErrNoDesignationLeft) {
			return nil, custom_error.Validation("%s", err.Error())
		} else if err != nil {
			return nil, err
		}
		designations = append(designations, letter)
	}
	return designations, nil
}

func sectionName(name, designation string) string {
	if name == "" {
		return "Section " + designation
	}
	return name
}

func normalizeSection(req *models.SectionRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Rows < models.MinGridSize || req.Rows > models.MaxGridSize {
		return custom_error.Validation("rows must be between %d and %d, got %d", models.MinGridSize, models.MaxGridSize, req.Rows)
	}
	if req.Cols < models.MinGridSize || req.Cols > models.MaxGridSize {
		return custom_error.Validation("cols must be between %d and %d, got %d", models.MinGridSize, models.MaxGridSize, req.Cols)
	}
	return nil
}

func normalizeContainer(req *models.ContainerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return custom_error.Validation("container name is required")
	}
	for i := range req.Sections {
		if req.Sections[i].ID != nil {
			return custom_error.Validation("new containers cannot reference existing sections")
		}
		if err := normalizeSection(&req.Sections[i]); err != nil {
			return err
		}
	}
	return nil
}

func normalizeChanges(changes *models.ContainerChanges) error {
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return custom_error.Validation("container name cannot be empty")
		}
		changes.Name = &name
	}
	if changes.Description != nil {
		description := strings.TrimSpace(*changes.Description)
		changes.Description = &description
	}
	for i := range changes.Sections {
		if changes.Sections[i].ID != nil {
			changes.Sections[i].Name = strings.TrimSpace(changes.Sections[i].Name)
			continue
		}
		if err := normalizeSection(&changes.Sections[i]); err != nil {
			return err
		}
	}
	return nil
}
