package containers

import (
	"context"
	"mime/multipart"

	"github.com/JungleeAadmi/component-storage/internal/uploads"
	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"
)

type ContainerService struct {
	repo     ContainerRepository
	store    uploads.Store
	auditLog auditlog.Recorder
}

func NewContainerService(repo ContainerRepository, store uploads.Store, auditLog auditlog.Recorder) *ContainerService {
	return &ContainerService{
		repo:     repo,
		store:    store,
		auditLog: auditLog,
	}
}

func (s *ContainerService) ListContainers() ([]models.Container, error) {
	return s.repo.ListContainers()
}

func (s *ContainerService) GetContainer(id int) (*models.Container, error) {
	return s.repo.GetContainer(id)
}

// CreateContainer stores the container and its initial sections in one transaction.
// Sections receive designations in list order.
func (s *ContainerService) CreateContainer(ctx context.Context, req models.ContainerRequest, image *multipart.FileHeader) (*models.Container, error) {
	if err := normalizeContainer(&req); err != nil {
		return nil, err
	}

	imagePath, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	req.ImagePath = imagePath

	container, err := s.repo.CreateContainer(req)
	if err != nil {
		s.discard(imagePath)
		return nil, err
	}

	s.auditLog.Log(
		ctx,
		"create",
		map[string]interface{}{
			"name":     container.Name,
			"sections": len(container.Sections),
		},
		container,
	)

	return container, nil
}

func (s *ContainerService) UpdateContainer(ctx context.Context, id int, changes models.ContainerChanges, image *multipart.FileHeader) (*models.Container, error) {
	if err := normalizeChanges(&changes); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetContainer(id)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if imagePath != "" {
		changes.ImagePath = &imagePath
	}

	container, err := s.repo.UpdateContainer(id, changes)
	if err != nil {
		s.discard(imagePath)
		return nil, err
	}
	if imagePath != "" {
		s.discard(existing.ImagePath)
	}

	s.auditLog.Log(
		ctx,
		"update",
		map[string]interface{}{
			"name":     container.Name,
			"sections": len(container.Sections),
		},
		container,
	)

	return container, nil
}

// DeleteContainer removes the container with everything in it and returns the blob paths
// that were scheduled for cleanup.
func (s *ContainerService) DeleteContainer(ctx context.Context, id int) ([]string, error) {
	paths, err := s.repo.DeleteContainer(id)
	if err != nil {
		return nil, err
	}

	s.discard(paths...)
	s.auditLog.Log(
		ctx,
		"delete",
		map[string]interface{}{"removed_files": len(paths)},
		&models.Container{ID: id},
	)

	return paths, nil
}

func (s *ContainerService) CreateSection(ctx context.Context, containerID int, req models.SectionRequest) (*models.Section, error) {
	if req.ID != nil {
		return nil, custom_error.Validation("section id cannot be set on create")
	}
	if err := normalizeSection(&req); err != nil {
		return nil, err
	}

	section, err := s.repo.CreateSection(containerID, req)
	if err != nil {
		return nil, err
	}

	s.auditLog.Log(
		ctx,
		"add_section",
		map[string]interface{}{
			"section_id":  section.ID,
			"designation": section.Designation,
			"rows":        section.Rows,
			"cols":        section.Cols,
		},
		&models.Container{ID: containerID},
	)

	return section, nil
}

func (s *ContainerService) saveImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", nil
	}
	stored, err := s.store.Save(ctx, image)
	if err != nil {
		return "", err
	}
	if !uploads.IsImage(stored.MimeType) {
		s.discard(stored.Path)
		return "", custom_error.Validation("container image must be an image, got %s", stored.MimeType)
	}
	return stored.Path, nil
}

func (s *ContainerService) discard(paths ...string) {
	uploads.Discard(s.store, paths...)
}
