package components

import (
	"github.com/JungleeAadmi/component-storage/internal/repository"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type ComponentRepository interface {
	ListComponents(conditions repository.QueryBuilder) ([]models.ComponentWithLocation, error)
	ListComponentsBySection(sectionID int) ([]models.Component, error)
	GetComponent(id int) (*models.Component, error)
	FindOccupant(sectionID int, gridPosition string) (int, bool, error)
	CreateComponent(component models.Component, attachments []models.Attachment) (*models.Component, error)
	UpdateComponent(id int, req models.ComponentRequest, imagePath *string, attachments []models.Attachment) (*models.Component, error)
	MoveComponent(id, sectionID int, gridPosition string) (*models.Component, error)
	SetQuantity(id, quantity int) (*models.Component, error)
	DeleteComponent(id int) ([]string, error)
	DeleteAttachment(id int) (*models.Attachment, error)
}

type componentRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ComponentRepository {
	return &componentRepositoryImpl{repository: r}
}

// componentColumns selects every component column from the table aliased as alias.
func componentColumns(alias string) []interface{} {
	columns := make([]interface{}, 0, len(models.ComponentFields))
	for _, field := range models.ComponentFields {
		columns = append(columns, goqu.I(alias+"."+field).As(field))
	}
	return columns
}

// locationQuery joins components with their section and container.
func (r *componentRepositoryImpl) locationQuery() *goqu.SelectDataset {
	columns := append(componentColumns("co"),
		goqu.I("c.id").As("container_id"),
		goqu.I("c.name").As("container_name"),
		goqu.I("s.name").As("section_name"),
		goqu.I("s.designation").As("section_designation"),
	)

	return r.repository.GoquDBWrapper.
		From(goqu.T("components").As("co")).
		Join(goqu.T("sections").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("co.section_id")})).
		Join(goqu.T("containers").As("c"), goqu.On(goqu.Ex{"c.id": goqu.I("s.container_id")})).
		Select(columns...)
}

func (r *componentRepositoryImpl) ListComponents(conditions repository.QueryBuilder) ([]models.ComponentWithLocation, error) {
	aliases := map[string]string{
		"section_id":   "co.section_id",
		"container_id": "s.container_id",
		"category":     "co.category",
	}

	query := r.locationQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("co.created_at").Desc(), goqu.I("co.id").Desc())

	components := []models.ComponentWithLocation{}
	if err := query.Executor().ScanStructs(&components); err != nil {
		return nil, custom_error.FromStore(err, "unable to list components")
	}
	for i := range components {
		components[i].LoadStatus()
	}

	return components, nil
}

// queryRoot is satisfied by both *goqu.Database and goqu.DialectWrapper.
type queryRoot interface {
	From(from ...interface{}) *goqu.SelectDataset
}

// Grid positions are stored canonically as D-<row><col>, so row and column can be read
// back from the text for a row-major ordering.
var (
	gridRow    = goqu.L("substring(co.grid_position from '-([0-9]+)')::int")
	gridColumn = goqu.L("right(co.grid_position, 1)")
)

func sectionComponentsQuery(root queryRoot, sectionID int) *goqu.SelectDataset {
	return root.
		From(goqu.T("components").As("co")).
		Select(componentColumns("co")...).
		Where(goqu.Ex{"co.section_id": sectionID}).
		Order(gridRow.Asc(), gridColumn.Asc(), goqu.I("co.id").Asc())
}

func (r *componentRepositoryImpl) ListComponentsBySection(sectionID int) ([]models.Component, error) {
	components := []models.Component{}
	query := sectionComponentsQuery(r.repository.GoquDBWrapper, sectionID)
	if err := query.Executor().ScanStructs(&components); err != nil {
		return nil, custom_error.FromStore(err, "unable to list section components")
	}
	for i := range components {
		components[i].LoadStatus()
	}

	return components, nil
}

func (r *componentRepositoryImpl) GetComponent(id int) (*models.Component, error) {
	var component models.Component
	found, err := r.repository.GoquDBWrapper.
		From(goqu.T("components").As("co")).
		Select(componentColumns("co")...).
		Where(goqu.Ex{"co.id": id}).
		Executor().ScanStruct(&component)
	if err != nil {
		return nil, custom_error.FromStore(err, "unable to get component")
	}
	if !found {
		return nil, custom_error.NotFound("component", id)
	}

	component.Attachments = []models.Attachment{}
	query := r.repository.GoquDBWrapper.
		From("attachments").
		Select("id", "component_id", "file_path", "file_name", "file_type", "created_at").
		Where(goqu.Ex{"component_id": id}).
		Order(goqu.C("id").Asc())
	if err := query.Executor().ScanStructs(&component.Attachments); err != nil {
		return nil, custom_error.FromStore(err, "unable to list attachments")
	}
	component.LoadStatus()

	return &component, nil
}

// FindOccupant returns the id of the component stored at the cell, if any.
func (r *componentRepositoryImpl) FindOccupant(sectionID int, gridPosition string) (int, bool, error) {
	var id int
	found, err := r.repository.GoquDBWrapper.
		From("components").
		Select("id").
		Where(goqu.Ex{"section_id": sectionID, "grid_position": gridPosition}).
		Executor().ScanVal(&id)
	if err != nil {
		return 0, false, custom_error.FromStore(err, "unable to check cell")
	}
	return id, found, nil
}

func (r *componentRepositoryImpl) CreateComponent(component models.Component, attachments []models.Attachment) (*models.Component, error) {
	var componentID int
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("components").
			Rows(goqu.Record{
				"section_id":      component.SectionID,
				"grid_position":   component.GridPosition,
				"name":            component.Name,
				"quantity":        component.Quantity,
				"min_quantity":    component.MinQuantity,
				"specification":   component.Specification,
				"category":        component.Category,
				"custom_category": component.CustomCategory,
				"value":           component.Value,
				"package_type":    component.PackageType,
				"manufacturer":    component.Manufacturer,
				"part_number":     component.PartNumber,
				"purchase_link":   component.PurchaseLink,
				"datasheet_url":   component.DatasheetURL,
				"custom_data":     component.CustomData,
				"image_path":      component.ImagePath,
			}).
			Returning("id")
		if _, err := query.Executor().ScanVal(&componentID); err != nil {
			return custom_error.FromStore(err, "unable to insert component")
		}

		return insertAttachments(tx, componentID, attachments)
	})
	if err != nil {
		return nil, err
	}

	return r.GetComponent(componentID)
}

// UpdateComponent writes only the fields set on req.
func (r *componentRepositoryImpl) UpdateComponent(id int, req models.ComponentRequest, imagePath *string, attachments []models.Attachment) (*models.Component, error) {
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := lockComponent(tx, id); err != nil {
			return err
		}

		record := changeRecord(req)
		if imagePath != nil {
			record["image_path"] = *imagePath
		}
		record["updated_at"] = goqu.L("NOW()")

		query := tx.Update("components").Set(record).Where(goqu.Ex{"id": id})
		if _, err := query.Executor().Exec(); err != nil {
			return custom_error.FromStore(err, "unable to update component")
		}

		return insertAttachments(tx, id, attachments)
	})
	if err != nil {
		return nil, err
	}

	return r.GetComponent(id)
}

func (r *componentRepositoryImpl) MoveComponent(id, sectionID int, gridPosition string) (*models.Component, error) {
	record := goqu.Record{
		"section_id":    sectionID,
		"grid_position": gridPosition,
		"updated_at":    goqu.L("NOW()"),
	}
	if err := r.updateOne(id, record, "unable to move component"); err != nil {
		return nil, err
	}
	return r.GetComponent(id)
}

func (r *componentRepositoryImpl) SetQuantity(id, quantity int) (*models.Component, error) {
	record := goqu.Record{
		"quantity":   quantity,
		"updated_at": goqu.L("NOW()"),
	}
	if err := r.updateOne(id, record, "unable to update quantity"); err != nil {
		return nil, err
	}
	return r.GetComponent(id)
}

// DeleteComponent removes the component with its attachments and returns the blob paths
// they referenced.
func (r *componentRepositoryImpl) DeleteComponent(id int) ([]string, error) {
	var paths []string
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		imagePath, err := lockComponent(tx, id)
		if err != nil {
			return err
		}
		if imagePath != "" {
			paths = append(paths, imagePath)
		}

		var files []string
		query := tx.From("attachments").Select("file_path").Where(goqu.Ex{"component_id": id})
		if err := query.Executor().ScanVals(&files); err != nil {
			return custom_error.FromStore(err, "unable to collect attachments")
		}
		paths = append(paths, files...)

		if _, err := tx.Delete("components").Where(goqu.Ex{"id": id}).Executor().Exec(); err != nil {
			return custom_error.FromStore(err, "unable to delete component")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (r *componentRepositoryImpl) DeleteAttachment(id int) (*models.Attachment, error) {
	var attachment models.Attachment
	query := r.repository.GoquDBWrapper.
		Delete("attachments").
		Where(goqu.Ex{"id": id}).
		Returning("id", "component_id", "file_path", "file_name", "file_type", "created_at")

	found, err := query.Executor().ScanStruct(&attachment)
	if err != nil {
		return nil, custom_error.FromStore(err, "unable to delete attachment")
	}
	if !found {
		return nil, custom_error.NotFound("attachment", id)
	}

	return &attachment, nil
}

func (r *componentRepositoryImpl) updateOne(id int, record goqu.Record, message string) error {
	result, err := r.repository.GoquDBWrapper.
		Update("components").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return custom_error.FromStore(err, message)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return custom_error.FromStore(err, message)
	}
	if affected == 0 {
		return custom_error.NotFound("component", id)
	}
	return nil
}

func lockComponent(tx *goqu.TxDatabase, id int) (string, error) {
	var imagePath string
	found, err := tx.From("components").
		Select("image_path").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait).
		Executor().ScanVal(&imagePath)
	if err != nil {
		return "", custom_error.FromStore(err, "unable to lock component")
	}
	if !found {
		return "", custom_error.NotFound("component", id)
	}
	return imagePath, nil
}

func insertAttachments(tx *goqu.TxDatabase, componentID int, attachments []models.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(attachments))
	for _, attachment := range attachments {
		rows = append(rows, goqu.Record{
			"component_id": componentID,
			"file_path":    attachment.FilePath,
			"file_name":    attachment.FileName,
			"file_type":    attachment.FileType,
		})
	}

	if _, err := tx.Insert("attachments").Rows(rows...).Executor().Exec(); err != nil {
		return custom_error.FromStore(err, "unable to insert attachments")
	}
	return nil
}

func changeRecord(req models.ComponentRequest) goqu.Record {
	record := goqu.Record{}
	if req.SectionID != nil {
		record["section_id"] = *req.SectionID
	}
	if req.GridPosition != nil {
		record["grid_position"] = *req.GridPosition
	}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Quantity != nil {
		record["quantity"] = *req.Quantity
	}
	if req.MinQuantity != nil {
		record["min_quantity"] = *req.MinQuantity
	}
	if req.Specification != nil {
		record["specification"] = *req.Specification
	}
	if req.Category != nil {
		record["category"] = *req.Category
	}
	if req.CustomCategory != nil {
		record["custom_category"] = *req.CustomCategory
	}
	if req.Value != nil {
		record["value"] = *req.Value
	}
	if req.PackageType != nil {
		record["package_type"] = *req.PackageType
	}
	if req.Manufacturer != nil {
		record["manufacturer"] = *req.Manufacturer
	}
	if req.PartNumber != nil {
		record["part_number"] = *req.PartNumber
	}
	if req.PurchaseLink != nil {
		record["purchase_link"] = *req.PurchaseLink
	}
	if req.DatasheetURL != nil {
		record["datasheet_url"] = *req.DatasheetURL
	}
	if req.CustomData != nil {
		record["custom_data"] = *req.CustomData
	}
	return record
}
