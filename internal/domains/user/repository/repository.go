package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/internal/domains/user/model"
	"carrental/shared"
	"carrental/shared/constant"
	gDto "carrental/shared/dto"
	"carrental/shared/password"
	gRepo "carrental/shared/repository"
	"context"
	"errors"
	"fmt"
)

type User interface {
	ListAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	ExistUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Add(ctx context.Context, user model.User) (int64, error)
	Update(ctx context.Context, user model.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	Authenticate(ctx context.Context, username, plain string) (model.User, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func byUsername(username string) gDto.FilterGroup {
	return gDto.Eq(model.TableName, model.FieldUsername, username)
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]model.User, error) {
	return r.GetAll(ctx, gDto.NewestFirst(model.TableName, model.FieldCreatedAt), gDto.FilterGroup{})
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.User, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.Get(ctx, byUsername(username))
}

func (r *repositoryImpl) ExistUsername(ctx context.Context, username string) (bool, error) {
	return r.Exist(ctx, byUsername(username))
}

func (r *repositoryImpl) Add(ctx context.Context, user model.User) (int64, error) {
	return r.Insert(ctx, user)
}

func (r *repositoryImpl) Update(ctx context.Context, user model.User) error {
	return r.Repository.Update(ctx,
		shared.UpdateColumns(user, model.FieldID, model.FieldUsername, model.FieldCreatedAt),
		shared.FilterByID(user.ID, model.FieldID, model.TableName))
}

func (r *repositoryImpl) SetActive(ctx context.Context, id int64, active bool) error {
	return r.Repository.Update(ctx,
		map[string]any{model.FieldIsActive: active},
		shared.FilterByID(id, model.FieldID, model.TableName))
}

// Authenticate looks up an active user by username and checks the bcrypt hash.
// Unknown, inactive and mismatched credentials all yield the zero User.
func (r *repositoryImpl) Authenticate(ctx context.Context, username, plain string) (user model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Authenticate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUsername, Value: username, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	user, err = r.Get(ctx, filter)
	if err != nil {
		return model.User{}, err
	}

	if user.ID == 0 {
		return model.User{}, nil
	}

	err = password.Verify(plain, user.PasswordHash)
	if errors.Is(err, password.ErrInvalidPassword) {
		return model.User{}, nil
	}

	if err != nil {
		return model.User{}, fmt.Errorf("failed to verify password: %w", err)
	}

	return user, nil
}
