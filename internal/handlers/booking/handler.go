package booking

import (
	"net/http"
	"staysync/infras/otel"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/model/dto"
	"staysync/internal/domains/booking/service"
	"staysync/shared/constant"
	"staysync/shared/validator"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/transitions", handler.TransitionBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Record a booking in pending status. Availability is only blocked once it is confirmed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security APIKey
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		handler.fail(writer, scope, err, log.Warn().Str("listing_id", req.ListingID), "rejected booking request")

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		handler.fail(writer, scope, err, log.Error().Str("listing_id", req.ListingID), "failed to create booking")

		return
	}

	scope.SetAttribute("booking.id", booking.ID)
	scope.AddEvent("booking recorded as pending")

	writer.Header().Set(constant.RequestHeaderLocation, "/v1/bookings/"+booking.ID)
	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security APIKey
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		handler.fail(w, scope, err, log.Error().Str("booking_id", id), "failed to get booking")

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// TransitionBooking moves a booking between statuses and applies the availability and housekeeping side effects.
// @Summary Transition a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.TransitionRequest true "Transition"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/transitions [post]
// @Security APIKey
func (handler *Handler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.TransitionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, log.Warn().Str("booking_id", id), "rejected transition request")

		return
	}

	from, to := model.Status(req.From), model.Status(req.To)
	scope.SetAttribute("booking.transition", req.From+"->"+req.To)

	if err := handler.service.OnBookingTransition(ctx, id, from, to); err != nil {
		handler.fail(w, scope, err, log.Error().Str("booking_id", id).Str("from", req.From).Str("to", req.To), "failed to transition booking")

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking moved to "+req.To)
}

// fail records err on the span and the log event, then answers with its mapped status.
func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, err error, event *zerolog.Event, msg string) {
	scope.TraceError(err)
	event.Err(err).Msg(msg)

	response.WithError(w, err)
}
