package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Vehicle=MockVehicleService

import (
	"carrental/config"
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/domains/vehicle/model/dto"
	"carrental/internal/domains/vehicle/repository"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"carrental/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Vehicle interface {
	List(ctx context.Context) ([]model.Vehicle, error)
	ListAvailable(ctx context.Context) ([]model.Vehicle, error)
	Get(ctx context.Context, id int64) (model.Vehicle, error)
	Add(ctx context.Context, req dto.AddVehicleRequest) (int64, error)
	Update(ctx context.Context, req dto.UpdateVehicleRequest) error
	ToggleAvailability(ctx context.Context, id int64) (model.Vehicle, error)
	Import(ctx context.Context, reqs []dto.AddVehicleRequest) (int, error)
}

type serviceImpl struct {
	repo  repository.Vehicle
	cfg   *config.Config
	audit logger.Recorder
	otel  otel.Otel
}

func New(repo repository.Vehicle, cfg *config.Config, audit logger.Recorder, otel otel.Otel) Vehicle {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		audit: audit,
		otel:  otel,
	}
}

func resource(id int64) string {
	return fmt.Sprintf("vehicle#%d", id)
}

func (s *serviceImpl) record(ctx context.Context, action, res, details string) {
	if err := s.audit.Record(session.Actor(ctx), action, res, details); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

func (s *serviceImpl) List(ctx context.Context) (vehicles []model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer logger.Track("vehicle.List")()

	vehicles, err = s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list vehicles")

		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, nil
}

func (s *serviceImpl) ListAvailable(ctx context.Context) (vehicles []model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.ListAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicles, err = s.repo.ListAvailable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list available vehicles")

		return nil, fmt.Errorf("failed to list available vehicles: %w", err)
	}

	return vehicles, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (vehicle model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err = s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get vehicle")

		return vehicle, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == 0 {
		return vehicle, failure.NotFound(fmt.Sprintf("vehicle #%d not found", id)) // nolint:wrapcheck
	}

	return vehicle, nil
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddVehicleRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	vehicle := req.ToModel(timezone.Now())

	id, err = s.repo.Add(ctx, vehicle)
	logger.DatabaseOperation("insert", model.TableName, id, err == nil)

	if err != nil {
		log.Error().Err(err).Msg("failed to add vehicle")

		return 0, fmt.Errorf("failed to add vehicle: %w", err)
	}

	logger.VehicleActivity(id, "added", vehicle.Info())
	s.record(ctx, "add", resource(id), vehicle.Info())

	return id, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVehicleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Update")
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
		log.Error().Err(err).Int64("id", req.ID).Msg("failed to update vehicle")

		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	logger.VehicleActivity(req.ID, "updated", updated.Info())
	s.record(ctx, "update", resource(req.ID), updated.Info())

	return nil
}

// ToggleAvailability flips the availability flag and returns the stored result.
func (s *serviceImpl) ToggleAvailability(ctx context.Context, id int64) (vehicle model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.ToggleAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err = s.Get(ctx, id)
	if err != nil {
		return vehicle, err
	}

	vehicle.IsAvailable = !vehicle.IsAvailable

	if err = s.repo.UpdateAvailability(ctx, id, vehicle.IsAvailable); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update vehicle availability")

		return vehicle, fmt.Errorf("failed to update availability: %w", err)
	}

	logger.VehicleActivity(id, "availability changed", vehicle.AvailabilityLabel())
	s.record(ctx, "toggle availability", resource(id), vehicle.AvailabilityLabel())

	return vehicle, nil
}

// Import validates every row first and stores nothing when one row is invalid.
func (s *serviceImpl) Import(ctx context.Context, reqs []dto.AddVehicleRequest) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Import")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	vehicles := make([]model.Vehicle, 0, len(reqs))

	for idx := range reqs {
		if err = validator.ValidateStruct(&reqs[idx]); err != nil {
			return 0, failure.Validation(fmt.Sprintf("row %d: %s", idx+2, err.Error())) // nolint:wrapcheck
		}

		vehicles = append(vehicles, reqs[idx].ToModel(now))
	}

	if len(vehicles) == 0 {
		return 0, nil
	}

	if err = s.repo.AddBulk(ctx, vehicles); err != nil {
		log.Error().Err(err).Int("rows", len(vehicles)).Msg("failed to import vehicles")

		return 0, fmt.Errorf("failed to import vehicles: %w", err)
	}

	s.record(ctx, "import", model.TableName, fmt.Sprintf("%d vehicles", len(vehicles)))

	return len(vehicles), nil
}
