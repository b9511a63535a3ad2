package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/user/model"
	"carrental/internal/domains/user/model/dto"
	"carrental/internal/domains/user/repository"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/password"
	"carrental/shared/timezone"
	"carrental/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type User interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	Add(ctx context.Context, req dto.AddUserRequest) (int64, error)
	Update(ctx context.Context, req dto.UpdateUserRequest) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type serviceImpl struct {
	repo  repository.User
	audit logger.Recorder
	otel  otel.Otel
}

func New(repo repository.User, audit logger.Recorder, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		audit: audit,
		otel:  otel,
	}
}

func (s *serviceImpl) record(ctx context.Context, action string, user model.User) {
	logger.UserActivity(user.Username, action, user.Role)

	if err := s.audit.Record(session.Actor(ctx), action, fmt.Sprintf("user#%d", user.ID), user.Username); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

func (s *serviceImpl) List(ctx context.Context) (users []model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer logger.Track("user.List")()

	users, err = s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")

		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err = s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return user, failure.NotFound(fmt.Sprintf("user #%d not found", id)) // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddUserRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	exists, err := s.repo.ExistUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return 0, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return 0, failure.Conflict(fmt.Sprintf("username %q is already taken", req.Username)) // nolint:wrapcheck
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hash, timezone.Now())

	user.ID, err = s.repo.Add(ctx, user)
	logger.DatabaseOperation("insert", model.TableName, user.ID, err == nil)

	if err != nil {
		log.Error().Err(err).Msg("failed to add user")

		return 0, fmt.Errorf("failed to add user: %w", err)
	}

	s.record(ctx, "add", user)

	return user.ID, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return err
	}

	var hash string

	if req.Password != "" {
		hash, err = password.Hash(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
	}

	updated := req.ApplyTo(current, hash)

	err = s.repo.Update(ctx, updated)
	logger.DatabaseOperation("update", model.TableName, updated.ID, err == nil)

	if err != nil {
		log.Error().Err(err).Int64("id", req.ID).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.record(ctx, "update", updated)

	return nil
}

// SetActive enables or disables login for an account. Operators cannot disable themselves.
func (s *serviceImpl) SetActive(ctx context.Context, id int64, active bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.SetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if current, ok := session.FromContext(ctx); ok && current.UserID == id && !active {
		return failure.Conflict("you cannot deactivate your own account") // nolint:wrapcheck
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.SetActive(ctx, id, active); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to change user status")

		return fmt.Errorf("failed to change user status: %w", err)
	}

	user.IsActive = active
	s.record(ctx, "status:"+user.StatusLabel(), user)

	return nil
}
