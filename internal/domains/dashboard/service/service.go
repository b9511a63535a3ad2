package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"carrental/infras/otel"
	clientRepo "carrental/internal/domains/client/repository"
	"carrental/internal/domains/dashboard/model"
	paymentRepo "carrental/internal/domains/payment/repository"
	rentalModel "carrental/internal/domains/rental/model"
	rentalRepo "carrental/internal/domains/rental/repository"
	vehicleModel "carrental/internal/domains/vehicle/model"
	vehicleRepo "carrental/internal/domains/vehicle/repository"
	"carrental/shared/constant"
	gDto "carrental/shared/dto"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Stats(ctx context.Context) (model.Stats, error)
}

type serviceImpl struct {
	vehicles vehicleRepo.Vehicle
	clients  clientRepo.Client
	rentals  rentalRepo.Rental
	payments paymentRepo.Payment
	otel     otel.Otel
}

func New(
	vehicles vehicleRepo.Vehicle,
	clients clientRepo.Client,
	rentals rentalRepo.Rental,
	payments paymentRepo.Payment,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		vehicles: vehicles,
		clients:  clients,
		rentals:  rentals,
		payments: payments,
		otel:     otel,
	}
}

func rentalStatusIn(statuses ...string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    rentalModel.FieldStatus,
				Value:    statuses,
				Operator: gDto.FilterOperatorIn,
				Table:    rentalModel.TableName,
			},
		},
	}
}

// Stats recomputes every figure from the store; nothing is cached between calls.
func (s *serviceImpl) Stats(ctx context.Context) (stats model.Stats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer logger.Track("dashboard.Stats")()

	counts := []struct {
		name  string
		dst   *int
		count func() (int, error)
	}{
		{"vehicles", &stats.TotalVehicles, func() (int, error) {
			return s.vehicles.Count(ctx, gDto.FilterGroup{})
		}},
		{"available vehicles", &stats.AvailableVehicles, func() (int, error) {
			return s.vehicles.Count(ctx, gDto.Eq(vehicleModel.TableName, vehicleModel.FieldIsAvailable, true))
		}},
		{"clients", &stats.TotalClients, func() (int, error) {
			return s.clients.Count(ctx, gDto.FilterGroup{})
		}},
		{"active rentals", &stats.ActiveRentals, func() (int, error) {
			return s.rentals.Count(ctx, rentalStatusIn(rentalModel.StatusActive, rentalModel.StatusReserved))
		}},
		{"completed rentals", &stats.CompletedRentals, func() (int, error) {
			return s.rentals.Count(ctx, rentalStatusIn(rentalModel.StatusCompleted))
		}},
	}

	for _, c := range counts {
		if *c.dst, err = c.count(); err != nil {
			log.Error().Err(err).Str("figure", c.name).Msg("failed to count dashboard figure")

			return stats, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list payments for dashboard")

		return stats, fmt.Errorf("failed to list payments: %w", err)
	}

	now := timezone.Now()
	stats.AddRevenue(payments, timezone.StartOfMonth(now))
	stats.GeneratedAt = now

	return stats, nil
}
