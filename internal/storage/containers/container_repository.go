package containers

import (
	"time"

	"github.com/JungleeAadmi/component-storage/internal/repository"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type ContainerRepository interface {
	ListContainers() ([]models.Container, error)
	GetContainer(id int) (*models.Container, error)
	CreateContainer(req models.ContainerRequest) (*models.Container, error)
	UpdateContainer(id int, changes models.ContainerChanges) (*models.Container, error)
	DeleteContainer(id int) ([]string, error)
	CreateSection(containerID int, req models.SectionRequest) (*models.Section, error)
}

type containerRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ContainerRepository {
	return &containerRepositoryImpl{repository: r}
}

func (r *containerRepositoryImpl) containerQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("containers").As("c")).
		LeftJoin(
			goqu.T("sections").As("s"),
			goqu.On(goqu.Ex{"s.container_id": goqu.I("c.id")}),
		).
		LeftJoin(
			goqu.T("components").As("co"),
			goqu.On(goqu.Ex{"co.section_id": goqu.I("s.id")}),
		).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.name").As("name"),
			goqu.I("c.description").As("description"),
			goqu.I("c.image_path").As("image_path"),
			goqu.I("c.created_at").As("created_at"),
			goqu.I("c.section_seq").As("section_seq"),
			goqu.COUNT(goqu.I("co.id")).As("component_count"),
		).
		GroupBy(goqu.I("c.id"))
}

func (r *containerRepositoryImpl) ListContainers() ([]models.Container, error) {
	containers := []models.Container{}
	query := r.containerQuery().Order(goqu.I("c.created_at").Desc(), goqu.I("c.id").Desc())
	if err := query.Executor().ScanStructs(&containers); err != nil {
		return nil, custom_error.FromStore(err, "unable to list containers")
	}

	sections := []models.Section{}
	sectionQuery := r.repository.GoquDBWrapper.
		From("sections").
		Select("id", "container_id", "name", "rows", "cols", "designation", "created_at").
		Order(goqu.C("container_id").Asc(), goqu.C("designation").Asc())
	if err := sectionQuery.Executor().ScanStructs(&sections); err != nil {
		return nil, custom_error.FromStore(err, "unable to list sections")
	}

	byContainer := make(map[int][]models.Section, len(containers))
	for _, section := range sections {
		byContainer[section.ContainerID] = append(byContainer[section.ContainerID], section)
	}
	for i := range containers {
		containers[i].Sections = byContainer[containers[i].ID]
		if containers[i].Sections == nil {
			containers[i].Sections = []models.Section{}
		}
	}

	return containers, nil
}

func (r *containerRepositoryImpl) GetContainer(id int) (*models.Container, error) {
	var container models.Container
	found, err := r.containerQuery().Where(goqu.Ex{"c.id": id}).Executor().ScanStruct(&container)
	if err != nil {
		return nil, custom_error.FromStore(err, "unable to get container")
	}
	if !found {
		return nil, custom_error.NotFound("container", id)
	}

	container.Sections = []models.Section{}
	query := r.repository.GoquDBWrapper.
		From("sections").
		Select("id", "container_id", "name", "rows", "cols", "designation", "created_at").
		Where(goqu.Ex{"container_id": id}).
		Order(goqu.C("designation").Asc())
	if err := query.Executor().ScanStructs(&container.Sections); err != nil {
		return nil, custom_error.FromStore(err, "unable to list sections")
	}

	return &container, nil
}

func (r *containerRepositoryImpl) CreateContainer(req models.ContainerRequest) (*models.Container, error) {
	var containerID int
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("containers").
			Rows(goqu.Record{
				"name":        req.Name,
				"description": req.Description,
				"image_path":  req.ImagePath,
			}).
			Returning("id")
		if _, err := query.Executor().ScanVal(&containerID); err != nil {
			return custom_error.FromStore(err, "unable to insert container")
		}

		_, err := insertSections(tx, containerID, req.Sections)
		return err
	})
	if err != nil {
		return nil, err
	}

	return r.GetContainer(containerID)
}

func (r *containerRepositoryImpl) UpdateContainer(id int, changes models.ContainerChanges) (*models.Container, error) {
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := lockContainer(tx, id); err != nil {
			return err
		}

		record := goqu.Record{}
		if changes.Name != nil {
			record["name"] = *changes.Name
		}
		if changes.Description != nil {
			record["description"] = *changes.Description
		}
		if changes.ImagePath != nil {
			record["image_path"] = *changes.ImagePath
		}
		if len(record) > 0 {
			query := tx.Update("containers").Set(record).Where(goqu.Ex{"id": id})
			if _, err := query.Executor().Exec(); err != nil {
				return custom_error.FromStore(err, "unable to update container")
			}
		}

		var appended []models.SectionRequest
		for _, section := range changes.Sections {
			if section.ID == nil {
				appended = append(appended, section)
				continue
			}
			if section.Name == "" {
				continue
			}
			result, err := tx.Update("sections").
				Set(goqu.Record{"name": section.Name}).
				Where(goqu.Ex{"id": *section.ID, "container_id": id}).
				Executor().Exec()
			if err != nil {
				return custom_error.FromStore(err, "unable to rename section")
			}
			if affected, err := result.RowsAffected(); err != nil {
				return custom_error.FromStore(err, "unable to rename section")
			} else if affected == 0 {
				return custom_error.NotFound("section", *section.ID)
			}
		}

		if len(appended) > 0 {
			if _, err := insertSections(tx, id, appended); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetContainer(id)
}

// DeleteContainer removes the container and, through the schema cascade, everything inside
// it. It returns the blob paths the deleted rows referenced.
func (r *containerRepositoryImpl) DeleteContainer(id int) ([]string, error) {
	var paths []string
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		imagePath, err := lockContainer(tx, id)
		if err != nil {
			return err
		}
		if imagePath != "" {
			paths = append(paths, imagePath)
		}

		var componentImages []string
		componentQuery := tx.From(goqu.T("components").As("co")).
			Join(goqu.T("sections").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("co.section_id")})).
			Select(goqu.I("co.image_path")).
			Where(goqu.Ex{"s.container_id": id}, goqu.I("co.image_path").Neq(""))
		if err := componentQuery.Executor().ScanVals(&componentImages); err != nil {
			return custom_error.FromStore(err, "unable to collect component images")
		}
		paths = append(paths, componentImages...)

		var attachmentFiles []string
		attachmentQuery := tx.From(goqu.T("attachments").As("a")).
			Join(goqu.T("components").As("co"), goqu.On(goqu.Ex{"co.id": goqu.I("a.component_id")})).
			Join(goqu.T("sections").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("co.section_id")})).
			Select(goqu.I("a.file_path")).
			Where(goqu.Ex{"s.container_id": id})
		if err := attachmentQuery.Executor().ScanVals(&attachmentFiles); err != nil {
			return custom_error.FromStore(err, "unable to collect attachments")
		}
		paths = append(paths, attachmentFiles...)

		if _, err := tx.Delete("containers").Where(goqu.Ex{"id": id}).Executor().Exec(); err != nil {
			return custom_error.FromStore(err, "unable to delete container")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (r *containerRepositoryImpl) CreateSection(containerID int, req models.SectionRequest) (*models.Section, error) {
	var section models.Section
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		sections, err := insertSections(tx, containerID, []models.SectionRequest{req})
		if err != nil {
			return err
		}
		section = sections[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &section, nil
}

// lockContainer takes a row lock on the container and returns its image path.
func lockContainer(tx *goqu.TxDatabase, id int) (string, error) {
	var imagePath string
	found, err := tx.From("containers").
		Select("image_path").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait).
		Executor().ScanVal(&imagePath)
	if err != nil {
		return "", custom_error.FromStore(err, "unable to lock container")
	}
	if !found {
		return "", custom_error.NotFound("container", id)
	}
	return imagePath, nil
}

// insertSections appends sections to a container, consuming designation letters from
// section_seq under a row lock.
func insertSections(tx *goqu.TxDatabase, containerID int, reqs []models.SectionRequest) ([]models.Section, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	var seq int
	found, err := tx.From("containers").
		Select("section_seq").
		Where(goqu.Ex{"id": containerID}).
		ForUpdate(exp.Wait).
		Executor().ScanVal(&seq)
	if err != nil {
		return nil, custom_error.FromStore(err, "unable to read section sequence")
	}
	if !found {
		return nil, custom_error.NotFound("container", containerID)
	}

	designations, err := assignDesignations(seq, len(reqs))
	if err != nil {
		return nil, err
	}

	sections := make([]models.Section, 0, len(reqs))
	for i, req := range reqs {
		section := models.Section{
			ContainerID: containerID,
			Name:        sectionName(req.Name, designations[i]),
			Rows:        req.Rows,
			Cols:        req.Cols,
			Designation: designations[i],
		}
		query := tx.Insert("sections").
			Rows(goqu.Record{
				"container_id": section.ContainerID,
				"name":         section.Name,
				"rows":         section.Rows,
				"cols":         section.Cols,
				"designation":  section.Designation,
			}).
			Returning("id", "created_at")
		row := struct {
			ID        int       `db:"id"`
			CreatedAt time.Time `db:"created_at"`
		}{}
		if _, err := query.Executor().ScanStruct(&row); err != nil {
			return nil, custom_error.FromStore(err, "unable to insert section")
		}
		section.ID = row.ID
		section.CreatedAt = row.CreatedAt
		sections = append(sections, section)
	}

	query := tx.Update("containers").
		Set(goqu.Record{"section_seq": seq + len(reqs)}).
		Where(goqu.Ex{"id": containerID})
	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.FromStore(err, "unable to advance section sequence")
	}

	return sections, nil
}
