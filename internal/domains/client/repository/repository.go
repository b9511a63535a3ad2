package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/internal/domains/client/model"
	"carrental/shared"
	gDto "carrental/shared/dto"
	gRepo "carrental/shared/repository"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Client interface {
	ListAll(ctx context.Context) ([]model.Client, error)
	GetByID(ctx context.Context, id int64) (model.Client, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Add(ctx context.Context, client model.Client) (int64, error)
	AddBulk(ctx context.Context, clients []model.Client) error
	Update(ctx context.Context, client model.Client) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
	tx postgres.Transactor
}

func New(db *postgres.Connection, tx postgres.Transactor, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel),
		tx:         tx,
	}
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]model.Client, error) {
	return r.GetAll(ctx, gDto.NewestFirst(model.TableName, model.FieldCreatedAt), gDto.FilterGroup{})
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.Client, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) Add(ctx context.Context, client model.Client) (int64, error) {
	return r.Insert(ctx, client)
}

func (r *repositoryImpl) AddBulk(ctx context.Context, clients []model.Client) error {
	err := r.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		return r.InsertBulkTx(ctx, tx, clients)
	})
	if err != nil {
		return fmt.Errorf("failed to import clients: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Update(ctx context.Context, client model.Client) error {
	return r.Repository.Update(ctx,
		shared.UpdateColumns(client, model.FieldID, model.FieldCreatedAt),
		shared.FilterByID(client.ID, model.FieldID, model.TableName))
}
