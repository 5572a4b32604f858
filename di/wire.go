//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"huddle/config"
	"huddle/infras/genai"
	"huddle/infras/kafka"
	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/infras/redis"
	availabilityService "huddle/internal/domains/availability/service"
	bookingRepository "huddle/internal/domains/booking/repository"
	bookingService "huddle/internal/domains/booking/service"
	roomRepository "huddle/internal/domains/room/repository"
	roomService "huddle/internal/domains/room/service"
	"huddle/internal/gateway"
	availabilityHandler "huddle/internal/handlers/availability"
	bookingHandler "huddle/internal/handlers/booking"
	roomHandler "huddle/internal/handlers/room"
	rpcHandler "huddle/internal/handlers/rpc"
	"huddle/internal/intent"
	"huddle/internal/notify"
	"huddle/shared/cache"
	"huddle/transport/http"
	"huddle/transport/http/middleware"
	"huddle/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	genai.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	availabilityDomain,
	notify.New,
)

var protocol = wire.NewSet(
	gateway.NewDispatcher,
	intent.New,
	ProvideSessionStore,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.ProvideHandler,
	bookingHandler.ProvideHandler,
	roomHandler.ProvideHandler,
	rpcHandler.ProvideHandler,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		protocol,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
