package shared_test

import (
	"carrental/shared"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID         int64     `db:"id"`
	Make       string    `db:"make"`
	Available  bool      `db:"is_available"`
	CreatedAt  time.Time `db:"created_at"`
	ClientName string    `db:"client_name" expr:"clients.first_name"`
	Plate      string    `db:"plate" table:"vehicles" column:"license_plate"`
	Ignored    string
}

func TestUpdateColumns(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := record{ID: 4, Make: "Ford", Available: false, CreatedAt: created, ClientName: "x", Plate: "y"}

	columns := shared.UpdateColumns(rec, "id", "created_at")

	assert.Equal(t, map[string]any{"make": "Ford", "is_available": false}, columns)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID(12, "id", "payments")
	where, args := group.GetWhereClause()

	assert.Equal(t, "(payments.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(12)}, args)
}
