package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Rental=MockRentalService

import (
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/internal/domains/auth/session"
	clientRepo "carrental/internal/domains/client/repository"
	"carrental/internal/domains/rental/model"
	"carrental/internal/domains/rental/model/dto"
	"carrental/internal/domains/rental/repository"
	vehicleRepo "carrental/internal/domains/vehicle/repository"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"carrental/shared/validator"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Rental interface {
	List(ctx context.Context) ([]model.Rental, error)
	Get(ctx context.Context, id int64) (model.Rental, error)
	Add(ctx context.Context, req dto.AddRentalRequest) (int64, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest) error
	Complete(ctx context.Context, id int64) (model.Rental, error)
	Cancel(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo        repository.Rental
	vehicleRepo vehicleRepo.Vehicle
	clientRepo  clientRepo.Client
	tx          postgres.Transactor
	audit       logger.Recorder
	otel        otel.Otel
}

func New(
	repo repository.Rental,
	vehicleRepo vehicleRepo.Vehicle,
	clientRepo clientRepo.Client,
	tx postgres.Transactor,
	audit logger.Recorder,
	otel otel.Otel,
) Rental {
	return &serviceImpl{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		clientRepo:  clientRepo,
		tx:          tx,
		audit:       audit,
		otel:        otel,
	}
}

func resource(id int64) string {
	return fmt.Sprintf("rental#%d", id)
}

func (s *serviceImpl) record(ctx context.Context, action string, id int64, details string) {
	logger.RentalActivity(id, action, details)

	if err := s.audit.Record(session.Actor(ctx), action, resource(id), details); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

func (s *serviceImpl) List(ctx context.Context) (rentals []model.Rental, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer logger.Track("rental.List")()

	rentals, err = s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rentals")

		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}

	return rentals, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (rental model.Rental, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rental, err = s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get rental")

		return rental, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == 0 {
		return rental, failure.NotFound(fmt.Sprintf("rental #%d not found", id)) // nolint:wrapcheck
	}

	return rental, nil
}

// Add books an available vehicle. The rental row and the vehicle's availability
// change are written in one transaction.
func (s *serviceImpl) Add(ctx context.Context, req dto.AddRentalRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return 0, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == 0 {
		return 0, failure.NotFound(fmt.Sprintf("client #%d not found", req.ClientID)) // nolint:wrapcheck
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return 0, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == 0 {
		return 0, failure.NotFound(fmt.Sprintf("vehicle #%d not found", req.VehicleID)) // nolint:wrapcheck
	}

	if !vehicle.IsAvailable {
		return 0, failure.Conflict(fmt.Sprintf("vehicle %s is not available", vehicle.Info())) // nolint:wrapcheck
	}

	rental := req.ToModel(vehicle.DailyRate, timezone.Now())

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var txErr error

		id, txErr = s.repo.AddTx(ctx, tx, rental)
		if txErr != nil {
			return txErr
		}

		return s.vehicleRepo.UpdateAvailabilityTx(ctx, tx, vehicle.ID, false)
	})
	logger.DatabaseOperation("insert", model.TableName, id, err == nil)

	if err != nil {
		log.Error().Err(err).Msg("failed to add rental")

		return 0, fmt.Errorf("failed to add rental: %w", err)
	}

	s.record(ctx, "add", id, fmt.Sprintf("%s - %s - $%s", client.FullName(), vehicle.Info(), rental.TotalAmount.StringFixed(2)))

	return id, nil
}

// UpdateStatus moves a rental forward. Completed and Cancelled are final.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	switch req.Status {
	case model.StatusCompleted:
		_, err = s.Complete(ctx, req.ID)

		return err
	case model.StatusCancelled:
		return s.Cancel(ctx, req.ID)
	}

	rental, err := s.Get(ctx, req.ID)
	if err != nil {
		return err
	}

	if rental.Status == req.Status {
		return nil
	}

	if model.IsTerminal(rental.Status) {
		return failure.Conflict(fmt.Sprintf("rental #%d is already %s", rental.ID, rental.Status)) // nolint:wrapcheck
	}

	if rental.Status == model.StatusActive && req.Status == model.StatusReserved {
		return failure.Conflict(fmt.Sprintf("rental #%d is already Active", rental.ID)) // nolint:wrapcheck
	}

	if err = s.repo.UpdateStatus(ctx, req.ID, req.Status); err != nil {
		log.Error().Err(err).Int64("id", req.ID).Msg("failed to update rental status")

		return fmt.Errorf("failed to update rental status: %w", err)
	}

	s.record(ctx, "status", req.ID, rental.Status+" -> "+req.Status)

	return nil
}

// Complete closes an open rental and releases its vehicle in one transaction.
func (s *serviceImpl) Complete(ctx context.Context, id int64) (rental model.Rental, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rental, err = s.Get(ctx, id)
	if err != nil {
		return rental, err
	}

	if !rental.CanComplete() {
		return rental, failure.Conflict(fmt.Sprintf("rental #%d is %s and cannot be completed", id, rental.Status)) // nolint:wrapcheck
	}

	returnDate := timezone.Now()

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if txErr := s.repo.CompleteTx(ctx, tx, id, returnDate); txErr != nil {
			return txErr
		}

		return s.vehicleRepo.UpdateAvailabilityTx(ctx, tx, rental.VehicleID, true)
	})
	logger.DatabaseOperation("complete", model.TableName, id, err == nil)

	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to complete rental")

		return rental, fmt.Errorf("failed to complete rental: %w", err)
	}

	rental.Status = model.StatusCompleted
	rental.ActualReturnDate = &returnDate

	s.record(ctx, "complete", id, rental.ClientName)

	return rental, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rental, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !rental.IsOpen() {
		return failure.Conflict(fmt.Sprintf("rental #%d is %s and cannot be cancelled", id, rental.Status)) // nolint:wrapcheck
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if txErr := s.repo.UpdateStatusTx(ctx, tx, id, model.StatusCancelled); txErr != nil {
			return txErr
		}

		return s.vehicleRepo.UpdateAvailabilityTx(ctx, tx, rental.VehicleID, true)
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to cancel rental")

		return fmt.Errorf("failed to cancel rental: %w", err)
	}

	s.record(ctx, "cancel", id, rental.ClientName)

	return nil
}
