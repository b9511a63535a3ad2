package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/internal/domains/vehicle/model"
	"carrental/shared"
	gDto "carrental/shared/dto"
	gRepo "carrental/shared/repository"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Vehicle interface {
	ListAll(ctx context.Context) ([]model.Vehicle, error)
	ListAvailable(ctx context.Context) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id int64) (model.Vehicle, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Add(ctx context.Context, vehicle model.Vehicle) (int64, error)
	AddBulk(ctx context.Context, vehicles []model.Vehicle) error
	Update(ctx context.Context, vehicle model.Vehicle) error
	UpdateAvailability(ctx context.Context, id int64, available bool) error
	UpdateAvailabilityTx(ctx context.Context, tx *sqlx.Tx, id int64, available bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Vehicle]
	tx postgres.Transactor
}

func New(db *postgres.Connection, tx postgres.Transactor, otel otel.Otel) Vehicle {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Vehicle](model.EntityName, model.TableName, model.FieldID, db, otel),
		tx:         tx,
	}
}

func newestFirst() gDto.QueryParams {
	return gDto.NewestFirst(model.TableName, model.FieldCreatedAt)
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]model.Vehicle, error) {
	return r.GetAll(ctx, newestFirst(), gDto.FilterGroup{})
}

func (r *repositoryImpl) ListAvailable(ctx context.Context) ([]model.Vehicle, error) {
	return r.GetAll(ctx, newestFirst(), gDto.Eq(model.TableName, model.FieldIsAvailable, true))
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.Vehicle, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) Add(ctx context.Context, vehicle model.Vehicle) (int64, error) {
	return r.Insert(ctx, vehicle)
}

// AddBulk stores imported vehicles all-or-nothing.
func (r *repositoryImpl) AddBulk(ctx context.Context, vehicles []model.Vehicle) error {
	err := r.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		return r.InsertBulkTx(ctx, tx, vehicles)
	})
	if err != nil {
		return fmt.Errorf("failed to import vehicles: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Update(ctx context.Context, vehicle model.Vehicle) error {
	return r.Repository.Update(ctx,
		shared.UpdateColumns(vehicle, model.FieldID, model.FieldCreatedAt),
		shared.FilterByID(vehicle.ID, model.FieldID, model.TableName))
}

func (r *repositoryImpl) UpdateAvailability(ctx context.Context, id int64, available bool) error {
	return r.Repository.Update(ctx,
		map[string]any{model.FieldIsAvailable: available},
		shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) UpdateAvailabilityTx(ctx context.Context, tx *sqlx.Tx, id int64, available bool) error {
	return r.UpdateTx(ctx, tx,
		map[string]any{model.FieldIsAvailable: available},
		shared.FilterByID(id, model.FieldID, model.TableName))
}
