package repository

import "github.com/doug-martin/goqu/v9"

// QueryBuilder collects filter conditions keyed by logical name. Repositories translate the
// keys into qualified columns through an alias map.
type QueryBuilder interface {
	AddCondition(key string, value interface{})
	BuildConditions(aliases map[string]string) goqu.Ex
}
