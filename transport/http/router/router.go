package router

import (
	"staysync/internal/handlers/booking"
	"staysync/internal/handlers/calendar"
	"staysync/internal/handlers/channelsync"
	"staysync/internal/handlers/compliance"
	"staysync/internal/handlers/housekeeping"
	"staysync/internal/handlers/pricing"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Calendar     calendar.Handler
	ChannelSync  channelsync.Handler
	Pricing      pricing.Handler
	Booking      booking.Handler
	Housekeeping housekeeping.Handler
	Compliance   compliance.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.ChannelSync.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Housekeeping.Router(routerGroup)
		r.DomainHandlers.Compliance.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
