package channelsync

import (
	"context"
	"net/http"
	"staysync/infras/otel"
	"staysync/internal/domains/channelsync/model/dto"
	"staysync/internal/domains/channelsync/service"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/validator"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Enqueuer hands a listing's channels to the background sync workers.
type Enqueuer interface {
	EnqueueListing(ctx context.Context, listingID string) (int, error)
}

type Handler struct {
	service service.Orchestrator
	queue   Enqueuer
	otel    otel.Otel
}

func New(service service.Orchestrator, queue Enqueuer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		queue:   queue,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/listings/{id}/sync", handler.SyncAllChannels)
	router.Post("/listings/{id}/sync/enqueue", handler.EnqueueSync)
	router.Post("/listings/{id}/channels/{channelID}/sync", handler.SyncOneChannel)
	router.Get("/listings/{id}/sync-runs", handler.GetSyncRuns)
}

// SyncAllChannels imports every active channel of a listing and waits for the result.
// @Summary Sync all channels
// @Tags Sync
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Data[dto.SyncSummary]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id}/sync [post]
// @Security APIKey
func (handler *Handler) SyncAllChannels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncAllChannels")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)

	summary, err := handler.service.SyncAllChannels(ctx, listingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to sync channels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// SyncOneChannel imports a single channel. The body is optional.
// @Summary Sync one channel
// @Tags Sync
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param channelID path string true "Channel ID"
// @Param request body dto.SyncChannelRequest false "Feed URL override"
// @Success 200 {object} response.Data[dto.SyncSummary]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/listings/{id}/channels/{channelID}/sync [post]
// @Security APIKey
func (handler *Handler) SyncOneChannel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncOneChannel")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)
	channelID := chi.URLParam(r, constant.RequestParamChannelID)

	req := dto.SyncChannelRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	summary, err := handler.service.SyncOneChannel(ctx, listingID, channelID, req.FeedURL)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Str("channel_id", channelID).Msg("failed to sync channel")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// EnqueueSync queues the listing's channels for the background workers and returns at once.
func (handler *Handler) EnqueueSync(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EnqueueSync")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)

	enqueued, err := handler.queue.EnqueueListing(ctx, listingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to enqueue sync")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusAccepted, dto.EnqueueResponse{Enqueued: enqueued})
}

func (handler *Handler) GetSyncRuns(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSyncRuns")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(r, true); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	runs, err := handler.service.ListRuns(ctx, listingID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sync runs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, runs)
}
