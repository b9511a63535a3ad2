package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/payment/model"
	"carrental/internal/domains/payment/model/dto"
	"carrental/internal/domains/payment/repository"
	rentalModel "carrental/internal/domains/rental/model"
	rentalRepo "carrental/internal/domains/rental/repository"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"carrental/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	List(ctx context.Context) ([]model.Payment, error)
	Get(ctx context.Context, id int64) (model.Payment, error)
	EligibleRentals(ctx context.Context) ([]rentalModel.Rental, error)
	Add(ctx context.Context, req dto.AddPaymentRequest) (model.Payment, error)
	Update(ctx context.Context, req dto.UpdatePaymentRequest) error
	Process(ctx context.Context, id int64) (model.Payment, error)
}

type serviceImpl struct {
	repo       repository.Payment
	rentalRepo rentalRepo.Rental
	audit      logger.Recorder
	otel       otel.Otel
}

func New(repo repository.Payment, rentalRepo rentalRepo.Rental, audit logger.Recorder, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:       repo,
		rentalRepo: rentalRepo,
		audit:      audit,
		otel:       otel,
	}
}

func (s *serviceImpl) record(ctx context.Context, action string, payment model.Payment) {
	logger.PaymentActivity(payment.ID, action, payment.Amount, payment.Status)

	details := fmt.Sprintf("%s $%s %s", payment.TransactionID, payment.Amount.StringFixed(2), payment.Status)
	if err := s.audit.Record(session.Actor(ctx), action, fmt.Sprintf("payment#%d", payment.ID), details); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

func (s *serviceImpl) List(ctx context.Context) (payments []model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer logger.Track("payment.List")()

	payments, err = s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list payments")

		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (payment model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, err = s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get payment")

		return payment, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == 0 {
		return payment, failure.NotFound(fmt.Sprintf("payment #%d not found", id)) // nolint:wrapcheck
	}

	return payment, nil
}

// EligibleRentals lists the rentals a payment may be recorded against.
func (s *serviceImpl) EligibleRentals(ctx context.Context) (rentals []rentalModel.Rental, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.EligibleRentals")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rentals, err = s.rentalRepo.ListByStatus(ctx, rentalModel.StatusActive, rentalModel.StatusCompleted)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rentals for payment")

		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}

	return rentals, nil
}

func eligible(rental rentalModel.Rental) bool {
	return rental.Status == rentalModel.StatusActive || rental.Status == rentalModel.StatusCompleted
}

// Add records a Pending payment. Nothing is written unless the request is valid.
func (s *serviceImpl) Add(ctx context.Context, req dto.AddPaymentRequest) (payment model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.RentalID <= 0 {
		return payment, failure.ErrRentalRequired
	}

	if validator.ValidateVar(req.Amount, "required,amount") != nil {
		return payment, failure.ErrInvalidAmount
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return payment, err
	}

	rental, err := s.rentalRepo.GetByID(ctx, req.RentalID)
	if err != nil {
		return payment, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == 0 {
		return payment, failure.NotFound(fmt.Sprintf("rental #%d not found", req.RentalID)) // nolint:wrapcheck
	}

	if !eligible(rental) {
		return payment, failure.Conflict(fmt.Sprintf("rental #%d is %s and cannot take payments", rental.ID, rental.Status)) // nolint:wrapcheck
	}

	payment = req.ToModel(model.NewTransactionID(), timezone.Now())

	payment.ID, err = s.repo.Add(ctx, payment)
	logger.DatabaseOperation("insert", model.TableName, payment.ID, err == nil)

	if err != nil {
		log.Error().Err(err).Int64("rental_id", req.RentalID).Msg("failed to add payment")

		return payment, fmt.Errorf("failed to add payment: %w", err)
	}

	payment.ClientName = rental.ClientName
	s.record(ctx, "add", payment)

	return payment, nil
}

// Update edits amount, method and status. A payment never returns to Pending.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if validator.ValidateVar(req.Amount, "required,amount") != nil {
		return failure.ErrInvalidAmount
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return err
	}

	if current.Status != model.StatusPending && req.Status == model.StatusPending {
		return failure.Conflict(fmt.Sprintf("payment #%d is %s and cannot return to Pending", current.ID, current.Status)) // nolint:wrapcheck
	}

	updated := req.ApplyTo(current)

	err = s.repo.Update(ctx, updated)
	logger.DatabaseOperation("update", model.TableName, updated.ID, err == nil)

	if err != nil {
		log.Error().Err(err).Int64("id", req.ID).Msg("failed to update payment")

		return fmt.Errorf("failed to update payment: %w", err)
	}

	s.record(ctx, "update", updated)

	return nil
}

// Process completes a Pending payment and stamps the payment date.
func (s *serviceImpl) Process(ctx context.Context, id int64) (payment model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Process")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, err = s.Get(ctx, id)
	if err != nil {
		return payment, err
	}

	if !payment.CanProcess() {
		return payment, failure.Conflict(fmt.Sprintf("payment #%d is already %s", id, payment.Status)) // nolint:wrapcheck
	}

	paidAt := timezone.Now()

	if err = s.repo.UpdateStatus(ctx, id, model.StatusCompleted, paidAt); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to process payment")

		return payment, fmt.Errorf("failed to process payment: %w", err)
	}

	payment.Status = model.StatusCompleted
	payment.PaymentDate = paidAt
	s.record(ctx, "process", payment)

	return payment, nil
}
