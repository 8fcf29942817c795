package housekeeping

import (
	"context"
	"net/http"
	"staysync/infras/otel"
	"staysync/internal/domains/housekeeping/model/dto"
	"staysync/internal/domains/housekeeping/service"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Housekeeping
	otel    otel.Otel
}

func New(service service.Housekeeping, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/listings/{id}/housekeeping", handler.GetTasks)
	router.Route("/housekeeping/{id}", func(routerGroup chi.Router) {
		routerGroup.Post("/start", handler.StartTask)
		routerGroup.Post("/complete", handler.CompleteTask)
	})
}

// GetTasks lists the cleaning tasks of a listing, earliest scheduled first.
// @Summary List housekeeping tasks
// @Tags Housekeeping
// @Produce json
// @Param id path string true "Listing ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetTasksResponse]
// @Failure 400 {object} response.Error
// @Router /v1/listings/{id}/housekeeping [get]
// @Security APIKey
func (handler *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(r, true); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	tasks, err := handler.service.GetAll(ctx, listingID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get housekeeping tasks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tasks)
}

func (handler *Handler) StartTask(w http.ResponseWriter, r *http.Request) {
	handler.progress(w, r, "StartTask", handler.service.Start)
}

func (handler *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	handler.progress(w, r, "CompleteTask", handler.service.Complete)
}

type progressFunc = func(ctx context.Context, id string) (dto.TaskResponse, error)

func (handler *Handler) progress(w http.ResponseWriter, r *http.Request, name string, advance progressFunc) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	task, err := advance(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("task_id", id).Msg("failed to update housekeeping task")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, task)
}
