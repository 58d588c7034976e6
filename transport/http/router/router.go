package router

import (
	"github.com/go-chi/chi/v5"

	"autoecole/internal/handlers/document"
	"autoecole/internal/handlers/formula"
	"autoecole/internal/handlers/rental"
	"autoecole/internal/handlers/session"
	"autoecole/internal/handlers/test"
	"autoecole/internal/handlers/tracking"
	"autoecole/internal/handlers/user"
	"autoecole/internal/handlers/vehicle"
)

type DomainHandlers struct {
	Rental   rental.Handler
	Document document.Handler
	Session  session.Handler
	Tracking tracking.Handler
	Vehicle  vehicle.Handler
	Formula  formula.Handler
	User     user.Handler
	Test     test.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Rental.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
		r.DomainHandlers.Session.Router(routerGroup)
		r.DomainHandlers.Tracking.Router(routerGroup)
		r.DomainHandlers.Vehicle.Router(routerGroup)
		r.DomainHandlers.Formula.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Test.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
