//go:build wireinject
// +build wireinject

package di

import (
	"autoecole/config"
	"autoecole/infras/jwt"
	"autoecole/infras/kafka"
	"autoecole/infras/otel"
	"autoecole/infras/postgres"
	"autoecole/infras/redis"
	"autoecole/infras/storage"
	"autoecole/internal/jobs"
	"autoecole/internal/notification"
	"autoecole/permissions"
	"autoecole/shared/cache"
	"autoecole/transport/http"
	"autoecole/transport/http/middleware"
	"autoecole/transport/http/router"

	documentRepository "autoecole/internal/domains/document/repository"
	documentService "autoecole/internal/domains/document/service"
	formulaRepository "autoecole/internal/domains/formula/repository"
	formulaService "autoecole/internal/domains/formula/service"
	rentalRepository "autoecole/internal/domains/rental/repository"
	rentalService "autoecole/internal/domains/rental/service"
	sessionRepository "autoecole/internal/domains/session/repository"
	sessionService "autoecole/internal/domains/session/service"
	trackingService "autoecole/internal/domains/tracking/service"
	userRepository "autoecole/internal/domains/user/repository"
	userService "autoecole/internal/domains/user/service"
	vehicleRepository "autoecole/internal/domains/vehicle/repository"
	vehicleService "autoecole/internal/domains/vehicle/service"

	documentHandler "autoecole/internal/handlers/document"
	formulaHandler "autoecole/internal/handlers/formula"
	rentalHandler "autoecole/internal/handlers/rental"
	sessionHandler "autoecole/internal/handlers/session"
	testHandler "autoecole/internal/handlers/test"
	trackingHandler "autoecole/internal/handlers/tracking"
	userHandler "autoecole/internal/handlers/user"
	vehicleHandler "autoecole/internal/handlers/vehicle"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	storage.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	notification.New,
)

var rentalDomain = wire.NewSet(
	rentalRepository.New,
	rentalService.New,
	wire.Bind(new(documentService.RentalGate), new(rentalService.Rental)),
)

var documentDomain = wire.NewSet(
	documentRepository.New,
	documentService.New,
	wire.Bind(new(rentalService.DocumentCategories), new(documentRepository.Document)),
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var trackingDomain = wire.NewSet(
	trackingService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var formulaDomain = wire.NewSet(
	formulaRepository.New,
	formulaService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	rentalDomain,
	documentDomain,
	sessionDomain,
	trackingDomain,
	vehicleDomain,
	formulaDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	rentalHandler.New,
	documentHandler.New,
	sessionHandler.New,
	trackingHandler.New,
	vehicleHandler.New,
	formulaHandler.New,
	userHandler.New,
	testHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSweeper() *jobs.Sweeper {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		jobs.NewSweeper,
	)

	return &jobs.Sweeper{}
}
