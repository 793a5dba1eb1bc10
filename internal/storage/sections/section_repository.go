package sections

import (
	"github.com/JungleeAadmi/component-storage/internal/repository"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type SectionRepository interface {
	GetSection(id int) (*models.Section, error)
	GetContainerName(containerID int) (string, error)
	CountComponents(sectionID int) (int, error)
	DeleteSection(id int) error
}

type sectionRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) SectionRepository {
	return &sectionRepositoryImpl{repository: r}
}

func (r *sectionRepositoryImpl) GetSection(id int) (*models.Section, error) {
	var section models.Section
	query := r.repository.GoquDBWrapper.
		From("sections").
		Select("id", "container_id", "name", "rows", "cols", "designation", "created_at").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&section)
	if err != nil {
		return nil, custom_error.FromStore(err, "unable to get section")
	}
	if !found {
		return nil, custom_error.NotFound("section", id)
	}

	return &section, nil
}

func (r *sectionRepositoryImpl) GetContainerName(containerID int) (string, error) {
	var name string
	found, err := r.repository.GoquDBWrapper.
		From("containers").
		Select("name").
		Where(goqu.Ex{"id": containerID}).
		Executor().ScanVal(&name)
	if err != nil {
		return "", custom_error.FromStore(err, "unable to get container")
	}
	if !found {
		return "", custom_error.NotFound("container", containerID)
	}
	return name, nil
}

func (r *sectionRepositoryImpl) CountComponents(sectionID int) (int, error) {
	count, err := r.repository.GoquDBWrapper.
		From("components").
		Where(goqu.Ex{"section_id": sectionID}).
		Count()
	if err != nil {
		return 0, custom_error.FromStore(err, "unable to count components")
	}
	return int(count), nil
}

// DeleteSection removes an empty section. The emptiness check is part of the DELETE so a
// component placed concurrently cannot be cascaded away.
func (r *sectionRepositoryImpl) DeleteSection(id int) error {
	occupied := r.repository.GoquDBWrapper.
		From("components").
		Select(goqu.L("1")).
		Where(goqu.Ex{"section_id": id})

	result, err := r.repository.GoquDBWrapper.
		Delete("sections").
		Where(
			goqu.Ex{"id": id},
			goqu.L("NOT EXISTS ?", occupied),
		).
		Executor().Exec()
	if err != nil {
		return custom_error.FromStore(err, "unable to delete section")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return custom_error.FromStore(err, "unable to delete section")
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetSection(id); err != nil {
		return err
	}
	return custom_error.Conflict("section %d still holds components", id)
}
