package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/internal/domains/payment/model"
	"carrental/shared"
	gDto "carrental/shared/dto"
	gRepo "carrental/shared/repository"
	"context"
	"time"
)

type Payment interface {
	ListAll(ctx context.Context) ([]model.Payment, error)
	GetByID(ctx context.Context, id int64) (model.Payment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Add(ctx context.Context, payment model.Payment) (int64, error)
	Update(ctx context.Context, payment model.Payment) error
	UpdateStatus(ctx context.Context, id int64, status string, paidAt time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// ListAll returns payments with the latest payment date first.
func (r *repositoryImpl) ListAll(ctx context.Context) ([]model.Payment, error) {
	return r.GetAll(ctx, gDto.NewestFirst(model.TableName, model.FieldPaymentDate), gDto.FilterGroup{})
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.Payment, error) {
	return r.Get(ctx, byID(id))
}

func (r *repositoryImpl) Add(ctx context.Context, payment model.Payment) (int64, error) {
	return r.Insert(ctx, payment)
}

func (r *repositoryImpl) Update(ctx context.Context, payment model.Payment) error {
	return r.Repository.Update(ctx,
		shared.UpdateColumns(payment, model.FieldID, model.FieldTransactionID, model.FieldRentalID),
		byID(payment.ID))
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status string, paidAt time.Time) error {
	return r.Repository.Update(ctx, map[string]any{
		model.FieldStatus:      status,
		model.FieldPaymentDate: paidAt,
	}, byID(id))
}
