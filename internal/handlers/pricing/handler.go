package pricing

import (
	"net/http"
	"staysync/infras/otel"
	"staysync/internal/domains/pricing/model/dto"
	"staysync/internal/domains/pricing/service"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	"staysync/shared/failure"
	"staysync/shared/validator"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/pricing/quote", handler.Quote)
	router.Post("/listings/{id}/pricing/apply", handler.ApplyStrategy)
}

// Quote prices a single night without touching stored rates.
// @Summary Quote a nightly price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[engine.Quote]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pricing/quote [post]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote price")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// ApplyStrategy recomputes and stores the nightly rates of a listing for a date window.
// @Summary Apply a pricing strategy
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.ApplyStrategyRequest true "Strategy window"
// @Success 200 {object} response.Data[dto.ApplyStrategyResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/listings/{id}/pricing/apply [post]
// @Security APIKey
func (handler *Handler) ApplyStrategy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyStrategy")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)
	req := dto.ApplyStrategyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	window, err := daterange.Parse(req.Start, req.End)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.ApplyPricingStrategy(ctx, listingID, req.StrategyID, window)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to apply pricing strategy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
