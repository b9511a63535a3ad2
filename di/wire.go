//go:build wireinject
// +build wireinject

package di

import (
	"carrental/config"
	"carrental/infras/jwt"
	"carrental/infras/otel"
	"carrental/infras/postgres"
	"carrental/infras/redis"
	"carrental/internal/domains/auth/session"
	"carrental/internal/export"
	"carrental/permissions"
	"carrental/shared/logger"
	"carrental/transport/cli"
	"carrental/transport/cli/middleware"
	"carrental/transport/cli/router"
	"context"

	"github.com/google/wire"

	authService "carrental/internal/domains/auth/service"
	clientRepository "carrental/internal/domains/client/repository"
	clientService "carrental/internal/domains/client/service"
	dashboardService "carrental/internal/domains/dashboard/service"
	paymentRepository "carrental/internal/domains/payment/repository"
	paymentService "carrental/internal/domains/payment/service"
	rentalRepository "carrental/internal/domains/rental/repository"
	rentalService "carrental/internal/domains/rental/service"
	userRepository "carrental/internal/domains/user/repository"
	userService "carrental/internal/domains/user/service"
	vehicleRepository "carrental/internal/domains/vehicle/repository"
	vehicleService "carrental/internal/domains/vehicle/service"
	authHandler "carrental/internal/handlers/auth"
	clientHandler "carrental/internal/handlers/client"
	dashboardHandler "carrental/internal/handlers/dashboard"
	paymentHandler "carrental/internal/handlers/payment"
	rentalHandler "carrental/internal/handlers/rental"
	userHandler "carrental/internal/handlers/user"
	vehicleHandler "carrental/internal/handlers/vehicle"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	provideBucket,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	logger.NewRecorder,
	session.NewStore,
	provideSink,
	export.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var clientDomain = wire.NewSet(
	clientRepository.New,
	clientService.New,
)

var rentalDomain = wire.NewSet(
	rentalRepository.New,
	rentalService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	authService.New,
	dashboardService.New,
	vehicleDomain,
	clientDomain,
	rentalDomain,
	paymentDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	dashboardHandler.New,
	vehicleHandler.New,
	clientHandler.New,
	rentalHandler.New,
	paymentHandler.New,
	userHandler.New,
	router.New,
)

func InitializeCLI(ctx context.Context) (*cli.CLI, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		cli.New,
	)

	return &cli.CLI{}, nil
}
