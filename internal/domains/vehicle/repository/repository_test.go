package repository_test

import (
	"carrental/infras/otel/mocks"
	"carrental/infras/postgres"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/domains/vehicle/repository"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var columns = []string{
	"id", "make", "model", "year", "license_plate", "color",
	"daily_rate", "is_available", "vehicle_type", "created_at",
}

func newRepo(t *testing.T) (repository.Vehicle, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { sqlxDB.Close() })

	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.New(conn, postgres.NewTransactor(conn), mocks.NewOtel()), mock
}

func TestVehicleRepository_ListAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "newest first",
			setupMock: func(mock sqlmock.Sqlmock) {
				created := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

				mock.ExpectPrepare(regexp.QuoteMeta("FROM vehicles ORDER BY vehicles.created_at DESC")).
					ExpectQuery().
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow(2, "Toyota", "Corolla", 2022, "AB-123", "White", "45.00", true, "Economy", created).
						AddRow(1, "BMW", "X5", 2021, "CD-456", "Black", "120.00", false, "SUV", created))
			},
			wantLen: 2,
		},
		{
			name: "store unreachable",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta("FROM vehicles")).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setupMock(mock)

			got, err := repo.ListAll(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
				assert.Equal(t, "120", got[1].DailyRate.String())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVehicleRepository_ListAvailable(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("WHERE (vehicles.is_available = $1) ORDER BY vehicles.created_at DESC")).
		ExpectQuery().
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListAvailable(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_Add(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta(
		"INSERT INTO vehicles (make, model, year, license_plate, color, daily_rate, is_available, vehicle_type, created_at) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := repo.Add(context.Background(), model.Vehicle{
		Make:      "Toyota",
		Model:     "Corolla",
		DailyRate: decimal.NewFromInt(45),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_UpdateAvailability(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles SET is_available = $1 WHERE (vehicles.id = $2)")).
		WithArgs(false, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateAvailability(context.Background(), 4, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_AddBulk(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "commits",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vehicles")).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vehicles")).
					WillReturnError(errors.New("duplicate license plate"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setupMock(mock)

			err := repo.AddBulk(context.Background(), []model.Vehicle{{Make: "A"}, {Make: "B"}})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
