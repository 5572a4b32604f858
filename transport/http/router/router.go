package router

import (
	"github.com/go-chi/chi/v5"

	"huddle/internal/handlers/availability"
	"huddle/internal/handlers/booking"
	"huddle/internal/handlers/room"
	"huddle/internal/handlers/rpc"
)

type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
	Room         room.Handler
	RPC          rpc.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.RPC.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
