package calendar

import (
	"net/http"
	"staysync/infras/otel"
	"staysync/internal/domains/channelsync/service"
	"staysync/shared/constant"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Orchestrator
	otel    otel.Otel
}

func New(service service.Orchestrator, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/listings/{id}/calendar.ics", handler.GetCalendar)
}

// GetCalendar serves the listing's exported iCalendar feed.
// @Summary Export listing calendar
// @Description Channels poll this URL with their export token. Without a token every authoritative block is exported.
// @Tags Calendar
// @Produce text/calendar
// @Param id path string true "Listing ID"
// @Param token query string false "Channel export token"
// @Success 200 {string} string "iCalendar feed"
// @Success 304 "Feed unchanged since the ETag sent in If-None-Match"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id}/calendar.ics [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)
	token := r.URL.Query().Get(constant.RequestParamToken)

	body, err := handler.service.ExportFeedFor(ctx, listingID, token)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to export calendar")

		response.WithError(w, err)

		return
	}

	response.WithCalendar(w, r, listingID, body)
}
