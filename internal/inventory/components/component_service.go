package components

import (
	"context"
	"mime/multipart"

	"github.com/JungleeAadmi/component-storage/internal/repository"
	"github.com/JungleeAadmi/component-storage/internal/uploads"
	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"
)

// SectionFinder is implemented by the section repository.
type SectionFinder interface {
	GetSection(id int) (*models.Section, error)
}

type AuditTrail interface {
	auditlog.Recorder
	History(item auditlog.Auditable) ([]models.AuditLog, error)
}

type ComponentFilter struct {
	SectionID   *int   `form:"section_id" binding:"omitempty,min=1"`
	ContainerID *int   `form:"container_id" binding:"omitempty,min=1"`
	Category    string `form:"category"`
}

type ComponentService struct {
	repo     ComponentRepository
	sections SectionFinder
	store    uploads.Store
	auditLog AuditTrail
}

func NewComponentService(repo ComponentRepository, sections SectionFinder, store uploads.Store, auditLog AuditTrail) *ComponentService {
	return &ComponentService{
		repo:     repo,
		sections: sections,
		store:    store,
		auditLog: auditLog,
	}
}

func (s *ComponentService) ListComponents(filter ComponentFilter) ([]models.ComponentWithLocation, error) {
	conditions := repository.NewQueryBuilder()
	if filter.SectionID != nil {
		conditions.AddCondition("section_id", *filter.SectionID)
	}
	if filter.ContainerID != nil {
		conditions.AddCondition("container_id", *filter.ContainerID)
	}
	if filter.Category != "" {
		conditions.AddCondition("category", filter.Category)
	}

	return s.repo.ListComponents(conditions)
}

func (s *ComponentService) GetComponent(id int) (*models.Component, error) {
	return s.repo.GetComponent(id)
}

// PlaceComponent stores a new component in a free cell together with its image and
// attachments. Uploaded files are removed again if the row cannot be written.
func (s *ComponentService) PlaceComponent(ctx context.Context, req models.ComponentRequest, image *multipart.FileHeader, files []*multipart.FileHeader) (*models.Component, error) {
	if err := normalizeComponent(&req, true); err != nil {
		return nil, err
	}

	section, err := s.sections.GetSection(*req.SectionID)
	if err != nil {
		return nil, err
	}
	address, err := s.checkCell(*section, *req.GridPosition, 0)
	if err != nil {
		return nil, err
	}
	req.GridPosition = &address

	var component models.Component
	req.Apply(&component)
	if component.CustomData.Items == nil {
		component.CustomData.Items = []models.CustomItem{}
	}

	imagePath, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	component.ImagePath = imagePath

	attachments, err := s.saveAttachments(ctx, files)
	if err != nil {
		s.discard(imagePath)
		return nil, err
	}

	created, err := s.repo.CreateComponent(component, attachments)
	if err != nil {
		s.discard(append(attachmentPaths(attachments), imagePath)...)
		return nil, err
	}

	s.auditLog.Log(
		ctx,
		"create",
		map[string]interface{}{
			"name":          created.Name,
			"section_id":    created.SectionID,
			"grid_position": created.GridPosition,
			"quantity":      created.Quantity,
		},
		created,
	)

	return created, nil
}

// UpdateComponent changes the supplied fields only. A changed placement is validated like
// a move.
func (s *ComponentService) UpdateComponent(ctx context.Context, id int, req models.ComponentRequest, image *multipart.FileHeader, files []*multipart.FileHeader) (*models.Component, error) {
	if err := normalizeComponent(&req, false); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetComponent(id)
	if err != nil {
		return nil, err
	}

	if req.SectionID != nil || req.GridPosition != nil {
		sectionID := existing.SectionID
		if req.SectionID != nil {
			sectionID = *req.SectionID
		}
		position := existing.GridPosition
		if req.GridPosition != nil {
			position = *req.GridPosition
		}

		section, err := s.sections.GetSection(sectionID)
		if err != nil {
			return nil, err
		}
		address, err := s.checkCell(*section, position, id)
		if err != nil {
			return nil, err
		}
		req.SectionID = &sectionID
		req.GridPosition = &address
	}

	imagePath, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	var newImage *string
	if imagePath != "" {
		newImage = &imagePath
	}

	attachments, err := s.saveAttachments(ctx, files)
	if err != nil {
		s.discard(imagePath)
		return nil, err
	}

	updated, err := s.repo.UpdateComponent(id, req, newImage, attachments)
	if err != nil {
		s.discard(append(attachmentPaths(attachments), imagePath)...)
		return nil, err
	}
	if newImage != nil {
		s.discard(existing.ImagePath)
	}

	s.auditLog.Log(
		ctx,
		"update",
		map[string]interface{}{
			"name":            updated.Name,
			"new_attachments": len(attachments),
		},
		updated,
	)

	return updated, nil
}

func (s *ComponentService) MoveComponent(ctx context.Context, id int, req models.MoveRequest) (*models.Component, error) {
	existing, err := s.repo.GetComponent(id)
	if err != nil {
		return nil, err
	}

	section, err := s.sections.GetSection(req.SectionID)
	if err != nil {
		return nil, err
	}
	address, err := s.checkCell(*section, req.GridPosition, id)
	if err != nil {
		return nil, err
	}

	moved, err := s.repo.MoveComponent(id, section.ID, address)
	if err != nil {
		return nil, err
	}

	s.auditLog.Log(
		ctx,
		"move",
		map[string]interface{}{
			"from_section_id":    existing.SectionID,
			"from_grid_position": existing.GridPosition,
			"to_section_id":      moved.SectionID,
			"to_grid_position":   moved.GridPosition,
		},
		moved,
	)

	return moved, nil
}

func (s *ComponentService) SetQuantity(ctx context.Context, id, quantity int) (*models.Component, error) {
	if quantity < 0 {
		return nil, custom_error.Validation("quantity cannot be negative")
	}

	component, err := s.repo.SetQuantity(id, quantity)
	if err != nil {
		return nil, err
	}

	s.auditLog.Log(
		ctx,
		"quantity",
		map[string]interface{}{"quantity": quantity},
		component,
	)

	return component, nil
}

func (s *ComponentService) DeleteComponent(ctx context.Context, id int) error {
	paths, err := s.repo.DeleteComponent(id)
	if err != nil {
		return err
	}

	s.discard(paths...)
	s.auditLog.Log(
		ctx,
		"delete",
		map[string]interface{}{"removed_files": len(paths)},
		&models.Component{ID: id},
	)

	return nil
}

func (s *ComponentService) DeleteAttachment(ctx context.Context, id int) error {
	attachment, err := s.repo.DeleteAttachment(id)
	if err != nil {
		return err
	}

	s.discard(attachment.FilePath)
	s.auditLog.Log(
		ctx,
		"remove_attachment",
		map[string]interface{}{
			"attachment_id": attachment.ID,
			"file_name":     attachment.FileName,
		},
		&models.Component{ID: attachment.ComponentID},
	)

	return nil
}

func (s *ComponentService) History(id int) ([]models.AuditLog, error) {
	if _, err := s.repo.GetComponent(id); err != nil {
		return nil, err
	}
	return s.auditLog.History(&models.Component{ID: id})
}

// checkCell validates address against section and makes sure no other component than
// self occupies it.
func (s *ComponentService) checkCell(section models.Section, address string, self int) (string, error) {
	canonical, err := resolveAddress(section, address)
	if err != nil {
		return "", err
	}

	occupant, found, err := s.repo.FindOccupant(section.ID, canonical)
	if err != nil {
		return "", err
	}
	if found && occupant != self {
		return "", custom_error.Conflict("cell %s is already occupied", canonical)
	}

	return canonical, nil
}

func (s *ComponentService) saveImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", nil
	}
	stored, err := s.store.Save(ctx, image)
	if err != nil {
		return "", err
	}
	if !uploads.IsImage(stored.MimeType) {
		s.discard(stored.Path)
		return "", custom_error.Validation("component image must be an image, got %s", stored.MimeType)
	}
	return stored.Path, nil
}

func (s *ComponentService) saveAttachments(ctx context.Context, files []*multipart.FileHeader) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		stored, err := s.store.Save(ctx, file)
		if err != nil {
			s.discard(attachmentPaths(attachments)...)
			return nil, err
		}
		attachments = append(attachments, models.Attachment{
			FilePath: stored.Path,
			FileName: stored.Name,
			FileType: stored.MimeType,
		})
	}
	return attachments, nil
}

func (s *ComponentService) discard(paths ...string) {
	uploads.Discard(s.store, paths...)
}

func attachmentPaths(attachments []models.Attachment) []string {
	paths := make([]string, 0, len(attachments)+1)
	for _, attachment := range attachments {
		paths = append(paths, attachment.FilePath)
	}
	return paths
}
