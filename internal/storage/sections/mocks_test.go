package sections

import (
	"context"

	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) GetSection(id int) (*models.Section, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockSectionRepository) GetContainerName(containerID int) (string, error) {
	args := m.Called(containerID)
	return args.String(0), args.Error(1)
}

func (m *MockSectionRepository) CountComponents(sectionID int) (int, error) {
	args := m.Called(sectionID)
	return args.Int(0), args.Error(1)
}

func (m *MockSectionRepository) DeleteSection(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockComponentLister struct {
	mock.Mock
}

func (m *MockComponentLister) ListComponentsBySection(sectionID int) ([]models.Component, error) {
	args := m.Called(sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Component), args.Error(1)
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

func (m *MockService) GetSectionGrid(id int) (*models.SectionGrid, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionGrid), args.Error(1)
}

func (m *MockService) ListComponents(id int) ([]models.Component, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Component), args.Error(1)
}

func (m *MockService) DeleteSection(ctx context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}
