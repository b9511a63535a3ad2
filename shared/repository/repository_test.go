package repository_test

import (
	"carrental/infras/otel/mocks"
	"carrental/infras/postgres"
	"carrental/shared/dto"
	"carrental/shared/repository"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

type rentalRow struct {
	ID         int64  `db:"id"`
	Status     string `db:"status"`
	ClientName string `db:"client_name" expr:"clients.first_name || ' ' || clients.last_name"`
	Plate      string `db:"plate"       table:"vehicles"                                    column:"license_plate"`
}

func (rentalRow) GetJoinQuery() string {
	return "JOIN clients ON clients.id = rentals.client_id JOIN vehicles ON vehicles.id = rentals.vehicle_id"
}

const selectList = "SELECT rentals.id, rentals.status, clients.first_name || ' ' || clients.last_name AS client_name, " +
	"vehicles.license_plate AS plate FROM rentals JOIN clients ON clients.id = rentals.client_id " +
	"JOIN vehicles ON vehicles.id = rentals.vehicle_id"

func newRepo(t *testing.T) (repository.Repository[rentalRow], sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { sqlxDB.Close() })

	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[rentalRow]("rental", "rentals", "id", conn, mocks.NewOtel()), mock, sqlxDB
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo, _, _ := newRepo(t)

	assert.Equal(t, []string{"status"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name: "returns generated id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO rentals (status) VALUES ($1) RETURNING id")).
					ExpectQuery().
					WithArgs("Reserved").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
			},
			wantID: 42,
		},
		{
			name: "constraint violation",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO rentals")).
					ExpectQuery().
					WillReturnError(errors.New("duplicate key"))
			},
			wantErr: true,
		},
		{
			name: "prepare failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO rentals")).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newRepo(t)
			tt.setupMock(mock)

			id, err := repo.Insert(context.Background(), rentalRow{Status: "Reserved", ClientName: "ignored"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta(selectList + " WHERE (rentals.status = $1) ORDER BY rentals.created_at DESC")).
		ExpectQuery().
		WithArgs("Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "client_name", "plate"}).
			AddRow(2, "Active", "Jane Doe", "AB-123").
			AddRow(1, "Active", "John Roe", "CD-456"))

	rows, err := repo.GetAll(context.Background(),
		dto.NewestFirst("rentals", "created_at"),
		dto.Eq("rentals", "status", "Active"))

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Jane Doe", rows[0].ClientName)
	assert.Equal(t, "CD-456", rows[1].Plate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_Empty(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta(selectList)).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "client_name", "plate"}))

	rows, err := repo.GetAll(context.Background(), dto.QueryParams{}, dto.FilterGroup{})

	assert.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRepository_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta(selectList + " WHERE (rentals.id = $1) LIMIT 1")).
					ExpectQuery().
					WithArgs(int64(5)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "status", "client_name", "plate"}).
						AddRow(5, "Completed", "Jane Doe", "AB-123"))
			},
			wantID: 5,
		},
		{
			name: "absent is the zero record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta(selectList)).
					ExpectQuery().
					WillReturnRows(sqlmock.NewRows([]string{"id", "status", "client_name", "plate"}))
			},
			wantID: 0,
		},
		{
			name: "query failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta(selectList)).
					ExpectQuery().
					WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newRepo(t)
			tt.setupMock(mock)

			row, err := repo.Get(context.Background(), dto.Eq("rentals", "id", int64(5)))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, row.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(rentals.id) FROM rentals JOIN clients")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Exist(t *testing.T) {
	repo, mock, _ := newRepo(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM rentals WHERE (rentals.id = $1))")).
		ExpectQuery().
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), dto.Eq("rentals", "id", int64(9)))

	assert.NoError(t, err)
	assert.True(t, exist)
}

func TestRepository_Update(t *testing.T) {
	tests := []struct {
		name      string
		mod       map[string]any
		filter    dto.FilterGroup
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:   "updates by id",
			mod:    map[string]any{"status": "Cancelled"},
			filter: dto.Eq("rentals", "id", int64(3)),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE rentals SET status = $1 WHERE (rentals.id = $2)")).
					WithArgs("Cancelled", int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:      "refuses an unfiltered update",
			mod:       map[string]any{"status": "Cancelled"},
			filter:    dto.FilterGroup{},
			setupMock: func(sqlmock.Sqlmock) {},
			wantErr:   true,
		},
		{
			name:      "refuses an empty update",
			mod:       map[string]any{},
			filter:    dto.Eq("rentals", "id", int64(3)),
			setupMock: func(sqlmock.Sqlmock) {},
			wantErr:   true,
		},
		{
			name:   "driver error",
			mod:    map[string]any{"status": "Cancelled"},
			filter: dto.Eq("rentals", "id", int64(3)),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE rentals")).
					WillReturnError(errors.New("deadlock"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newRepo(t)
			tt.setupMock(mock)

			err := repo.Update(context.Background(), tt.mod, tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_InsertBulkTx(t *testing.T) {
	repo, mock, db := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rentals (status) VALUES")).
		WithArgs("Reserved", "Active").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	assert.NoError(t, err)

	err = repo.InsertBulkTx(context.Background(), tx, []rentalRow{{Status: "Reserved"}, {Status: "Active"}})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
