package components

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionComponentsQueryOrdersByRowThenColumn(t *testing.T) {
	sql, _, err := sectionComponentsQuery(goqu.Dialect("postgres"), 4).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `WHERE ("co"."section_id" = 4)`)
	assert.Contains(t, sql, `ORDER BY substring(co.grid_position from '-([0-9]+)')::int ASC, right(co.grid_position, 1) ASC, "co"."id" ASC`)
	assert.NotContains(t, sql, `"co"."grid_position" ASC`)
}
