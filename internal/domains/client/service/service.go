package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Client=MockClientService

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/client/model"
	"carrental/internal/domains/client/model/dto"
	"carrental/internal/domains/client/repository"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"carrental/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Client interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id int64) (model.Client, error)
	Add(ctx context.Context, req dto.AddClientRequest) (int64, error)
	Update(ctx context.Context, req dto.UpdateClientRequest) error
	Import(ctx context.Context, reqs []dto.AddClientRequest) (int, error)
}

type serviceImpl struct {
	repo  repository.Client
	audit logger.Recorder
	otel  otel.Otel
}

func New(repo repository.Client, audit logger.Recorder, otel otel.Otel) Client {
	return &serviceImpl{
		repo:  repo,
		audit: audit,
		otel:  otel,
	}
}

func (s *serviceImpl) record(ctx context.Context, action, res, details string) {
	if err := s.audit.Record(session.Actor(ctx), action, res, details); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

func (s *serviceImpl) List(ctx context.Context) (clients []model.Client, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer logger.Track("client.List")()

	clients, err = s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list clients")

		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (client model.Client, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	client, err = s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get client")

		return client, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == 0 {
		return client, failure.NotFound(fmt.Sprintf("client #%d not found", id)) // nolint:wrapcheck
	}

	return client, nil
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddClientRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	client := req.ToModel(timezone.Now())

	id, err = s.repo.Add(ctx, client)
	logger.DatabaseOperation("insert", model.TableName, id, err == nil)

	if err != nil {
		log.Error().Err(err).Msg("failed to add client")

		return 0, fmt.Errorf("failed to add client: %w", err)
	}

	logger.UserActivity(session.Actor(ctx), "client added", client.FullName())
	s.record(ctx, "add", fmt.Sprintf("client#%d", id), client.FullName())

	return id, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateClientRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return err
	}

	updated := req.ApplyTo(current)

	err = s.repo.Update(ctx, updated)
	logger.DatabaseOperation("update", model.TableName, req.ID, err == nil)

	if err != nil {
		log.Error().Err(err).Int64("id", req.ID).Msg("failed to update client")

		return fmt.Errorf("failed to update client: %w", err)
	}

	s.record(ctx, "update", fmt.Sprintf("client#%d", req.ID), updated.FullName())

	return nil
}

func (s *serviceImpl) Import(ctx context.Context, reqs []dto.AddClientRequest) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Import")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	clients := make([]model.Client, 0, len(reqs))

	for idx := range reqs {
		if err = validator.ValidateStruct(&reqs[idx]); err != nil {
			return 0, failure.Validation(fmt.Sprintf("row %d: %s", idx+2, err.Error())) // nolint:wrapcheck
		}

		clients = append(clients, reqs[idx].ToModel(now))
	}

	if len(clients) == 0 {
		return 0, nil
	}

	if err = s.repo.AddBulk(ctx, clients); err != nil {
		log.Error().Err(err).Int("rows", len(clients)).Msg("failed to import clients")

		return 0, fmt.Errorf("failed to import clients: %w", err)
	}

	s.record(ctx, "import", model.TableName, fmt.Sprintf("%d clients", len(clients)))

	return len(clients), nil
}
