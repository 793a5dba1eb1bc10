package sections

import (
	"context"

	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/metadata"
	"github.com/JungleeAadmi/component-storage/pkg/models"
)

// ComponentLister is implemented by the component repository.
type ComponentLister interface {
	ListComponentsBySection(sectionID int) ([]models.Component, error)
}

type SectionService struct {
	repo       SectionRepository
	components ComponentLister
	auditLog   auditlog.Recorder
}

func NewSectionService(repo SectionRepository, components ComponentLister, auditLog auditlog.Recorder) *SectionService {
	return &SectionService{
		repo:       repo,
		components: components,
		auditLog:   auditLog,
	}
}

// GetSectionGrid returns the section, its components and every cell of its grid.
func (s *SectionService) GetSectionGrid(id int) (*models.SectionGrid, error) {
	section, err := s.repo.GetSection(id)
	if err != nil {
		return nil, err
	}

	containerName, err := s.repo.GetContainerName(section.ContainerID)
	if err != nil {
		return nil, err
	}

	components, err := s.components.ListComponentsBySection(id)
	if err != nil {
		return nil, err
	}

	cells, err := BuildCells(*section, components)
	if err != nil {
		return nil, err
	}

	return &models.SectionGrid{
		Section:       *section,
		ContainerName: containerName,
		Components:    components,
		Cells:         cells,
	}, nil
}

func (s *SectionService) ListComponents(id int) ([]models.Component, error) {
	if _, err := s.repo.GetSection(id); err != nil {
		return nil, err
	}
	return s.components.ListComponentsBySection(id)
}

// DeleteSection refuses to remove a section that still holds components.
func (s *SectionService) DeleteSection(ctx context.Context, id int) error {
	section, err := s.repo.GetSection(id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountComponents(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return custom_error.Conflict("section %s holds %d components, move or delete them first", section.Designation, count)
	}

	if err := s.repo.DeleteSection(id); err != nil {
		return err
	}

	s.auditLog.Log(
		ctx,
		"remove_section",
		map[string]interface{}{
			"section_id":  section.ID,
			"designation": section.Designation,
		},
		&models.Container{ID: section.ContainerID},
	)

	return nil
}

// BuildCells lays out the section grid in row-major order and marks occupied cells.
func BuildCells(section models.Section, components []models.Component) ([]models.Cell, error) {
	addresses, err := metadata.CellAddresses(section.Designation, section.Rows, section.Cols)
	if err != nil {
		return nil, custom_error.Validation("section %d has an invalid grid: %s", section.ID, err.Error())
	}

	occupants := make(map[string]int, len(components))
	for _, component := range components {
		occupants[component.GridPosition] = component.ID
	}

	cells := make([]models.Cell, 0, len(addresses))
	for i, address := range addresses {
		cell := models.Cell{
			Address: address,
			Row:     i/section.Cols + 1,
			Col:     i % section.Cols,
		}
		if id, ok := occupants[address]; ok {
			cell.ComponentID = &id
		}
		cells = append(cells, cell)
	}

	return cells, nil
}
