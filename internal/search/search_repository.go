package search

import (
	"strings"

	"github.com/JungleeAadmi/component-storage/internal/repository"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type SearchRepository interface {
	Search(term string) ([]models.ComponentWithLocation, error)
}

type searchRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) SearchRepository {
	return &searchRepositoryImpl{repository: r}
}

// queryRoot is satisfied by both *goqu.Database and goqu.DialectWrapper.
type queryRoot interface {
	From(from ...interface{}) *goqu.SelectDataset
}

// searchedColumns are the component and location columns a term is matched against.
var searchedColumns = []string{
	"co.name", "co.category", "co.custom_category", "co.value", "co.manufacturer",
	"co.part_number", "co.specification", "co.grid_position", "c.name", "s.name",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring ILIKE with its wildcards taken literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func buildSearchQuery(root queryRoot, term string) *goqu.SelectDataset {
	columns := make([]interface{}, 0, len(models.ComponentFields)+4)
	for _, field := range models.ComponentFields {
		columns = append(columns, goqu.I("co."+field).As(field))
	}
	columns = append(columns,
		goqu.I("c.id").As("container_id"),
		goqu.I("c.name").As("container_name"),
		goqu.I("s.name").As("section_name"),
		goqu.I("s.designation").As("section_designation"),
	)

	query := root.
		From(goqu.T("components").As("co")).
		Join(goqu.T("sections").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("co.section_id")})).
		Join(goqu.T("containers").As("c"), goqu.On(goqu.Ex{"c.id": goqu.I("s.container_id")})).
		Select(columns...).
		Order(goqu.I("co.created_at").Desc(), goqu.I("co.id").Desc())

	term = strings.TrimSpace(term)
	if term == "" {
		return query
	}

	pattern := likePattern(term)
	matches := make([]exp.Expression, 0, len(searchedColumns)+1)
	for _, column := range searchedColumns {
		matches = append(matches, goqu.I(column).ILike(pattern))
	}

	attachments := root.
		From(goqu.T("attachments").As("a")).
		Select(goqu.L("1")).
		Where(
			goqu.Ex{"a.component_id": goqu.I("co.id")},
			goqu.I("a.file_name").ILike(pattern),
		)
	matches = append(matches, goqu.L("EXISTS ?", attachments))

	return query.Where(goqu.Or(matches...))
}

func (r *searchRepositoryImpl) Search(term string) ([]models.ComponentWithLocation, error) {
	results := []models.ComponentWithLocation{}
	query := buildSearchQuery(r.repository.GoquDBWrapper, term)
	if err := query.Executor().ScanStructs(&results); err != nil {
		return nil, custom_error.FromStore(err, "unable to search components")
	}
	for i := range results {
		results[i].LoadStatus()
	}
	return results, nil
}
