//go:build wireinject
// +build wireinject

package di

import (
	"staysync/config"
	"staysync/infras/feed"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/infras/redis"
	"staysync/infras/s3"
	"staysync/permissions"
	"staysync/shared/cache"
	"staysync/shared/keylock"
	"staysync/transport/http"
	"staysync/transport/http/middleware"
	"staysync/transport/http/router"

	"github.com/google/wire"

	availabilityRepository "staysync/internal/domains/availability/repository"
	availabilityService "staysync/internal/domains/availability/service"
	bookingConsumer "staysync/internal/domains/booking/consumer"
	bookingRepository "staysync/internal/domains/booking/repository"
	bookingService "staysync/internal/domains/booking/service"
	channelsyncRepository "staysync/internal/domains/channelsync/repository"
	channelsyncService "staysync/internal/domains/channelsync/service"
	"staysync/internal/domains/channelsync/worker"
	housekeepingRepository "staysync/internal/domains/housekeeping/repository"
	housekeepingService "staysync/internal/domains/housekeeping/service"
	listingRepository "staysync/internal/domains/listing/repository"
	pricingRepository "staysync/internal/domains/pricing/repository"
	pricingService "staysync/internal/domains/pricing/service"

	bookingHandler "staysync/internal/handlers/booking"
	calendarHandler "staysync/internal/handlers/calendar"
	channelsyncHandler "staysync/internal/handlers/channelsync"
	complianceHandler "staysync/internal/handlers/compliance"
	housekeepingHandler "staysync/internal/handlers/housekeeping"
	pricingHandler "staysync/internal/handlers/pricing"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	feed.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	keylock.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var channelsyncDomain = wire.NewSet(
	listingRepository.New,
	channelsyncRepository.New,
	channelsyncService.New,
	worker.NewPool,
	worker.NewScheduler,
	wire.Bind(new(worker.Enqueuer), new(*worker.Pool)),
	wire.Bind(new(channelsyncHandler.Enqueuer), new(*worker.Scheduler)),
)

var pricingDomain = wire.NewSet(
	pricingRepository.New,
	pricingRepository.NewStrategies,
	pricingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	bookingConsumer.New,
	housekeepingRepository.New,
	housekeepingService.New,
)

var domains = wire.NewSet(
	availabilityDomain,
	channelsyncDomain,
	pricingDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	calendarHandler.New,
	channelsyncHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	housekeepingHandler.New,
	complianceHandler.New,
	router.New,
)

func InitializeApp() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}
