package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staysync/config"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/internal/domains/housekeeping/model"
	"staysync/internal/domains/housekeeping/model/dto"
	"staysync/internal/domains/housekeeping/repository"
	"staysync/shared"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Housekeeping interface {
	// Schedule creates the task unless the booking already has one of the same kind,
	// in which case the existing task is returned.
	Schedule(ctx context.Context, req dto.ScheduleRequest) (model.Task, error)
	Start(ctx context.Context, id string) (dto.TaskResponse, error)
	Complete(ctx context.Context, id string) (dto.TaskResponse, error)
	GetAll(ctx context.Context, listingID string, params gDto.QueryParams) (dto.GetTasksResponse, error)
}

type serviceImpl struct {
	repo  repository.Task
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
	now   func() time.Time
}

func New(repo repository.Task, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Housekeeping {
	return &serviceImpl{
		repo:  repo,
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
		now:   timezone.Now,
	}
}

// EstimateMinutes sizes a cleaning job from the listing's rooms.
func EstimateMinutes(cfg *config.Config, bedrooms, bathrooms int) int {
	return cfg.Housekeeping.BaseMinutes +
		cfg.Housekeeping.BedroomMinutes*max(bedrooms, 0) +
		cfg.Housekeeping.BathroomMinutes*max(bathrooms, 0)
}

func (s *serviceImpl) Schedule(ctx context.Context, req dto.ScheduleRequest) (task model.Task, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Schedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := s.now()
	task = model.Task{
		ID:               uuid.NewString(),
		ListingID:        req.ListingID,
		BookingID:        req.BookingID,
		Kind:             req.Kind,
		Status:           model.StatusPending,
		ScheduledFor:     daterange.Day(req.ScheduledFor),
		EstimatedMinutes: EstimateMinutes(s.cfg, req.Bedrooms, req.Bathrooms),
		Metadata:         gModel.NewMetadata(constant.SystemActor, now),
	}

	created, err := s.repo.InsertIgnore(ctx, task, model.FieldBookingID, model.FieldKind)
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create housekeeping task")

		return task, fmt.Errorf("failed to create housekeeping task: %w", err)
	}

	// one task per booking and kind; a replayed transition gets the first one back
	if !created {
		existing, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName, map[string]any{
			model.FieldBookingID: req.BookingID,
			model.FieldKind:      req.Kind,
		}))
		if err != nil {
			log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to get housekeeping task")

			return task, fmt.Errorf("failed to get housekeeping task: %w", err)
		}

		return existing, nil
	}

	s.publish(ctx, task, now)

	log.Info().
		Str("task_id", task.ID).
		Str("kind", string(task.Kind)).
		Str("scheduled_for", task.ScheduledFor.Format(constant.DayFormat)).
		Msg("housekeeping task scheduled")

	return task, nil
}

func (s *serviceImpl) Start(ctx context.Context, id string) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.advance(ctx, id, model.StatusInProgress, model.FieldStartedAt)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.advance(ctx, id, model.StatusCompleted, model.FieldCompletedAt)
}

func (s *serviceImpl) advance(ctx context.Context, id string, to model.Status, stampField string) (res dto.TaskResponse, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	task, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("failed to get housekeeping task")

		return res, fmt.Errorf("failed to get housekeeping task: %w", err)
	}

	if task.ID == constant.Empty {
		return res, failure.NotFound("housekeeping task not found") // nolint:wrapcheck
	}

	if !task.Status.CanAdvanceTo(to) {
		return res, failure.Conflict(fmt.Sprintf("task is %s and cannot move to %s", task.Status, to)) // nolint:wrapcheck
	}

	now := s.now()

	err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        to,
		stampField:               now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: constant.SystemActor,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("failed to update housekeeping task")

		return res, fmt.Errorf("failed to update housekeeping task: %w", err)
	}

	task.Status = to
	task.ModifiedAt = now
	task.ModifiedBy = constant.SystemActor

	if to == model.StatusInProgress {
		task.StartedAt = &now
	} else {
		task.CompletedAt = &now
	}

	s.publish(ctx, task, now)

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, task model.Task, at time.Time) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Housekeeping, kafka.Message{Key: task.ListingID, Value: task.Event(at)})
	if err != nil {
		log.Error().Err(err).Str("task_id", task.ID).Msg("failed to publish housekeeping event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, listingID string, params gDto.QueryParams) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = params.Order(model.FieldScheduledFor, gDto.SortDirAsc, model.FieldStatus); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := shared.FilterByFields(model.TableName, map[string]any{model.FieldListingID: listingID})

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count housekeeping tasks")

		return res, fmt.Errorf("failed to count housekeeping tasks: %w", err)
	}

	tasks, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get housekeeping tasks")

		return res, fmt.Errorf("failed to get housekeeping tasks: %w", err)
	}

	res.FromModels(tasks, total, params.Limit)

	return res, nil
}
