package dto_test

import (
	"carrental/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "id", Value: int64(3), Operator: dto.FilterOperatorEq, Table: "rentals"},
			wantWhere: "rentals.id = :id",
			wantArgs:  map[string]any{"id": int64(3)},
		},
		{
			name:      "in expands one argument per value",
			filter:    dto.Filter{Field: "status", Value: []string{"Active", "Reserved"}, Operator: dto.FilterOperatorIn, Table: "rentals"},
			wantWhere: "rentals.status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "Active", "status_1": "Reserved"},
		},
		{
			name:      "custom argument name",
			filter:    dto.Filter{ArgName: "current", Field: "status", Value: "Active", Operator: dto.FilterOperatorEq},
			wantWhere: "status = :current",
			wantArgs:  map[string]any{"current": "Active"},
		},
		{
			name:      "in with a single value",
			filter:    dto.Filter{Field: "status", Value: "Active", Operator: dto.FilterOperatorIn},
			wantWhere: "status = :status",
			wantArgs:  map[string]any{"status": "Active"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Operator: "like"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "username", Value: "admin", Operator: dto.FilterOperatorEq, Table: "users"},
			dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq, Table: "users"},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(users.username = :username AND users.is_active = :is_active)", where)
	assert.Equal(t, map[string]any{"username": "admin", "is_active": true}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestEq(t *testing.T) {
	group := dto.Eq("vehicles", "id", int64(9))
	where, args := group.GetWhereClause()

	assert.Equal(t, "(vehicles.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(9)}, args)
}

func TestQueryParams_OrderClause(t *testing.T) {
	assert.Equal(t, "ORDER BY vehicles.created_at DESC", dto.NewestFirst("vehicles", "created_at").OrderClause())
	assert.Equal(t, "ORDER BY make ASC", dto.QueryParams{SortBy: "make", SortDir: "sideways"}.OrderClause())
	assert.Empty(t, dto.QueryParams{}.OrderClause())
}
