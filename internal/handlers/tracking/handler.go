package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"autoecole/infras/otel"
	"autoecole/internal/domains/tracking/service"
	"autoecole/shared/constant"
	"autoecole/transport/http/response"
)

type Handler struct {
	service service.Tracking
	otel    otel.Otel
}

func New(service service.Tracking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tracking", func(routerGroup chi.Router) {
		routerGroup.Get("/{token}", handler.TrackByToken)
	})
}

// TrackByToken returns the public projection of a booking.
// @Summary Track a booking
// @Description Look up a booking by its tracking token. Public and unauthenticated; the token is the only credential.
// @Tags Tracking
// @Produce json
// @Param token path string true "Tracking token"
// @Success 200 {object} response.Data[dto.TrackingResponse] "Booking status"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tracking/{token} [get]
func (handler *Handler) TrackByToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TrackByToken")
	defer scope.End()

	trackingToken := chi.URLParam(r, constant.RequestParamToken)

	tracking, err := handler.service.TrackByToken(ctx, trackingToken)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to track booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking tracked successfully")

	response.WithJSON(w, http.StatusOK, tracking)
}
