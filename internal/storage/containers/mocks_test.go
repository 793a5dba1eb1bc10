package containers

import (
	"context"
	"mime/multipart"

	"github.com/JungleeAadmi/component-storage/internal/uploads"
	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockContainerRepository struct {
	mock.Mock
}

func (m *MockContainerRepository) ListContainers() ([]models.Container, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Container), args.Error(1)
}

func (m *MockContainerRepository) GetContainer(id int) (*models.Container, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockContainerRepository) CreateContainer(req models.ContainerRequest) (*models.Container, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockContainerRepository) UpdateContainer(id int, changes models.ContainerChanges) (*models.Container, error) {
	args := m.Called(id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockContainerRepository) DeleteContainer(id int) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContainerRepository) CreateSection(containerID int, req models.SectionRequest) (*models.Section, error) {
	args := m.Called(containerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, header *multipart.FileHeader) (uploads.StoredFile, error) {
	args := m.Called(ctx, header)
	return args.Get(0).(uploads.StoredFile), args.Error(1)
}

func (m *MockStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockStore) RemoveAll(paths []string) {
	m.Called(paths)
}

type MockAuditLog struct {
	mock.Mock
}

func (m *MockAuditLog) Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable) {
	m.Called(action, data, item)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) ListContainers() ([]models.Container, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Container), args.Error(1)
}

func (m *MockService) GetContainer(id int) (*models.Container, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockService) CreateContainer(ctx context.Context, req models.ContainerRequest, image *multipart.FileHeader) (*models.Container, error) {
	args := m.Called(req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockService) UpdateContainer(ctx context.Context, id int, changes models.ContainerChanges, image *multipart.FileHeader) (*models.Container, error) {
	args := m.Called(id, changes, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockService) DeleteContainer(ctx context.Context, id int) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockService) CreateSection(ctx context.Context, containerID int, req models.SectionRequest) (*models.Section, error) {
	args := m.Called(containerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}
