package search

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Search(term string) ([]models.ComponentWithLocation, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComponentWithLocation), args.Error(1)
}

func resistor() models.ComponentWithLocation {
	return models.ComponentWithLocation{
		Component: models.Component{
			ID:           1,
			Name:         "10kΩ Resistor",
			Category:     "Passives",
			GridPosition: "A-1A",
			Attachments:  []models.Attachment{{FileName: "yageo-datasheet.pdf"}},
		},
		ContainerName: "Blue cabinet",
		SectionName:   "Top drawer",
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%resistor%", likePattern("resistor"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, likePattern(`c:\tmp`))
}

// quotedColumn renders an "alias.column" identifier the way the postgres dialect does.
func quotedColumn(column string) string {
	alias, name, _ := strings.Cut(column, ".")
	return `"` + alias + `"."` + name + `"`
}

func TestBuildSearchQuery(t *testing.T) {
	for _, term := range []string{"resistor", "RESISTOR", "10k", " 10k "} {
		t.Run(term, func(t *testing.T) {
			sql, _, err := buildSearchQuery(goqu.Dialect("postgres"), term).ToSQL()
			require.NoError(t, err)

			pattern := "'%" + strings.TrimSpace(term) + "%'"
			for _, column := range searchedColumns {
				assert.Contains(t, sql, quotedColumn(column)+" ILIKE "+pattern, column)
			}
			assert.Contains(t, sql, `EXISTS (SELECT 1 FROM "attachments" AS "a" WHERE`)
			assert.Contains(t, sql, `"a"."component_id" = "co"."id"`)
			assert.Contains(t, sql, `"a"."file_name" ILIKE `+pattern)
			assert.Equal(t, len(searchedColumns), strings.Count(sql, " OR "))
			assert.Contains(t, sql, `ORDER BY "co"."created_at" DESC, "co"."id" DESC`)
		})
	}
}

func TestBuildSearchQueryEscapesWildcards(t *testing.T) {
	sql, _, err := buildSearchQuery(goqu.Dialect("postgres"), "5_0%").ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `"co"."name" ILIKE '%5\_0\%%'`)
	assert.NotContains(t, sql, `'%5_0%%'`)
}

func TestBuildSearchQueryBlankTerm(t *testing.T) {
	sql, _, err := buildSearchQuery(goqu.Dialect("postgres"), "   ").ToSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "ILIKE")
	assert.Contains(t, sql, `"s"."designation" AS "section_designation"`)
}

func TestSearchHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockSearchRepository)
	repo.On("Search", "resistor").Return([]models.ComponentWithLocation{resistor()}, nil)
	repo.On("Search", "").Return(nil, custom_error.StorageIO(errors.New("timeout"), "unable to search components"))

	router := gin.New()
	NewSearchHandler(repo).RegisterRoutes(router.Group("/api"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=resistor", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"container_name":"Blue cabinet"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
