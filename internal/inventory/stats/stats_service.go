package stats

import (
	"github.com/JungleeAadmi/component-storage/internal/repository"
	"github.com/JungleeAadmi/component-storage/pkg/models"
)

// ComponentSource is implemented by the component repository.
type ComponentSource interface {
	ListComponents(conditions repository.QueryBuilder) ([]models.ComponentWithLocation, error)
}

type StatsService struct {
	components ComponentSource
}

func NewStatsService(components ComponentSource) *StatsService {
	return &StatsService{components: components}
}

func (s *StatsService) LowStock() ([]models.ComponentWithLocation, error) {
	all, err := s.components.ListComponents(repository.NewQueryBuilder())
	if err != nil {
		return nil, err
	}
	return ListLowStock(all), nil
}

func (s *StatsService) Statistics() (Statistics, error) {
	all, err := s.components.ListComponents(repository.NewQueryBuilder())
	if err != nil {
		return Statistics{}, err
	}

	components := make([]models.Component, 0, len(all))
	for _, c := range all {
		components = append(components, c.Component)
	}
	return Compute(components), nil
}
