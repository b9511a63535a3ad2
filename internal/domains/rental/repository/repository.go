package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/internal/domains/rental/model"
	"carrental/shared"
	gDto "carrental/shared/dto"
	gRepo "carrental/shared/repository"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Rental interface {
	ListAll(ctx context.Context) ([]model.Rental, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]model.Rental, error)
	GetByID(ctx context.Context, id int64) (model.Rental, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Add(ctx context.Context, rental model.Rental) (int64, error)
	AddTx(ctx context.Context, tx *sqlx.Tx, rental model.Rental) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id int64, status string) error
	CompleteTx(ctx context.Context, tx *sqlx.Tx, id int64, returnDate time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Rental]
}

func New(db *postgres.Connection, otel otel.Otel) Rental {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rental](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func newestFirst() gDto.QueryParams {
	return gDto.NewestFirst(model.TableName, model.FieldCreatedAt)
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]model.Rental, error) {
	return r.GetAll(ctx, newestFirst(), gDto.FilterGroup{})
}

func (r *repositoryImpl) ListByStatus(ctx context.Context, statuses ...string) ([]model.Rental, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    statuses,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	return r.GetAll(ctx, newestFirst(), filter)
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.Rental, error) {
	return r.Get(ctx, byID(id))
}

func (r *repositoryImpl) Add(ctx context.Context, rental model.Rental) (int64, error) {
	return r.Insert(ctx, rental)
}

func (r *repositoryImpl) AddTx(ctx context.Context, tx *sqlx.Tx, rental model.Rental) (int64, error) {
	return r.InsertTx(ctx, tx, rental)
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.Update(ctx, map[string]any{model.FieldStatus: status}, byID(id))
}

func (r *repositoryImpl) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id int64, status string) error {
	return r.UpdateTx(ctx, tx, map[string]any{model.FieldStatus: status}, byID(id))
}

// CompleteTx marks the rental Completed and stamps the actual return date.
func (r *repositoryImpl) CompleteTx(ctx context.Context, tx *sqlx.Tx, id int64, returnDate time.Time) error {
	return r.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:           model.StatusCompleted,
		model.FieldActualReturnDate: returnDate,
	}, byID(id))
}
