package dto

import (
	"carrental/shared/constant"
	"fmt"
	"strings"
)

// QueryParams controls ordering and size of a list query.
type QueryParams struct {
	Limit   int
	SortBy  string
	SortDir string
}

// NewestFirst orders by the given column, descending.
func NewestFirst(table, column string) QueryParams {
	return QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", table, column),
		SortDir: constant.SortDirDesc,
	}
}

// OrderClause renders the ORDER BY clause, or an empty string when unsorted.
func (q QueryParams) OrderClause() string {
	if q.SortBy == "" {
		return ""
	}

	dir := strings.ToUpper(q.SortDir)
	if dir != constant.SortDirAsc && dir != constant.SortDirDesc {
		dir = constant.SortDirAsc
	}

	return fmt.Sprintf("ORDER BY %s %s", q.SortBy, dir)
}
