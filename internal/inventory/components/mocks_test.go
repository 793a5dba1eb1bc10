package components

import (
	"context"
	"mime/multipart"

	"github.com/JungleeAadmi/component-storage/internal/repository"
	"github.com/JungleeAadmi/component-storage/internal/uploads"
	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockComponentRepository struct {
	mock.Mock
}

func (m *MockComponentRepository) ListComponents(conditions repository.QueryBuilder) ([]models.ComponentWithLocation, error) {
	args := m.Called(conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComponentWithLocation), args.Error(1)
}

func (m *MockComponentRepository) ListComponentsBySection(sectionID int) ([]models.Component, error) {
	args := m.Called(sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Component), args.Error(1)
}

func (m *MockComponentRepository) GetComponent(id int) (*models.Component, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockComponentRepository) FindOccupant(sectionID int, gridPosition string) (int, bool, error) {
	args := m.Called(sectionID, gridPosition)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockComponentRepository) CreateComponent(component models.Component, attachments []models.Attachment) (*models.Component, error) {
	args := m.Called(component, attachments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockComponentRepository) UpdateComponent(id int, req models.ComponentRequest, imagePath *string, attachments []models.Attachment) (*models.Component, error) {
	args := m.Called(id, req, imagePath, attachments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockComponentRepository) MoveComponent(id, sectionID int, gridPosition string) (*models.Component, error) {
	args := m.Called(id, sectionID, gridPosition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockComponentRepository) SetQuantity(id, quantity int) (*models.Component, error) {
	args := m.Called(id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockComponentRepository) DeleteComponent(id int) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockComponentRepository) DeleteAttachment(id int) (*models.Attachment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attachment), args.Error(1)
}

type MockSectionFinder struct {
	mock.Mock
}

func (m *MockSectionFinder) GetSection(id int) (*models.Section, error) {
	args := m.Called(id)
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

type MockAuditTrail struct {
	mock.Mock
}

func (m *MockAuditTrail) Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable) {
	m.Called(action, data, item)
}

func (m *MockAuditTrail) History(item auditlog.Auditable) ([]models.AuditLog, error) {
	args := m.Called(item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) ListComponents(filter ComponentFilter) ([]models.ComponentWithLocation, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComponentWithLocation), args.Error(1)
}

func (m *MockService) GetComponent(id int) (*models.Component, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockService) PlaceComponent(ctx context.Context, req models.ComponentRequest, image *multipart.FileHeader, files []*multipart.FileHeader) (*models.Component, error) {
	args := m.Called(req, image, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockService) UpdateComponent(ctx context.Context, id int, req models.ComponentRequest, image *multipart.FileHeader, files []*multipart.FileHeader) (*models.Component, error) {
	args := m.Called(id, req, image, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockService) MoveComponent(ctx context.Context, id int, req models.MoveRequest) (*models.Component, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockService) SetQuantity(ctx context.Context, id, quantity int) (*models.Component, error) {
	args := m.Called(id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Component), args.Error(1)
}

func (m *MockService) DeleteComponent(ctx context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockService) DeleteAttachment(ctx context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockService) History(id int) ([]models.AuditLog, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}
