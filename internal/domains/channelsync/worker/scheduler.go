package worker

import (
	"context"
	"errors"
	"fmt"
	"staysync/config"
	"staysync/infras/otel"
	listingModel "staysync/internal/domains/listing/model"
	listingRepository "staysync/internal/domains/listing/repository"
	"staysync/shared/constant"
	"staysync/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Enqueuer interface {
	Enqueue(job Job) error
}

// Scheduler periodically queues an import for every active channel.
type Scheduler struct {
	listings listingRepository.Listing
	queue    Enqueuer
	otel     otel.Otel
	schedule string
	cron     *cron.Cron
}

func NewScheduler(listings listingRepository.Listing, queue Enqueuer, cfg *config.Config, otel otel.Otel) *Scheduler {
	return &Scheduler{
		listings: listings,
		queue:    queue,
		otel:     otel,
		schedule: cfg.Sync.Schedule,
		cron:     cron.New(cron.WithLocation(timezone.GetLocation())),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.EnqueueAll(ctx); err != nil {
			log.Error().Err(err).Msg("failed to enqueue scheduled sync")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync %q: %w", s.schedule, err)
	}

	s.cron.Start()

	log.Info().Str("schedule", s.schedule).Msg("sync scheduler started")

	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// EnqueueAll queues every active channel and returns how many were accepted.
// Channels rejected by a full queue are skipped until the next tick.
func (s *Scheduler) EnqueueAll(ctx context.Context) (enqueued int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".EnqueueAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	channels, err := s.listings.ListActiveChannels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list active channels")

		return 0, fmt.Errorf("failed to list active channels: %w", err)
	}

	return s.enqueue(channels)
}

// EnqueueListing queues every active channel of one listing.
func (s *Scheduler) EnqueueListing(ctx context.Context, listingID string) (enqueued int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".EnqueueListing")
	defer scope.End()
	defer scope.TraceIfError(err)

	channels, err := s.listings.ListChannels(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to list channels")

		return 0, fmt.Errorf("failed to list channels: %w", err)
	}

	active := channels[:0]

	for _, channel := range channels {
		if channel.Active && channel.ImportURL != "" {
			active = append(active, channel)
		}
	}

	return s.enqueue(active)
}

func (s *Scheduler) enqueue(channels []listingModel.ChannelSync) (enqueued int, err error) {
	skipped := 0

	for _, channel := range channels {
		err := s.queue.Enqueue(Job{ListingID: channel.ListingID, ChannelID: channel.ChannelID})
		if errors.Is(err, ErrQueueFull) {
			skipped++

			continue
		}

		if err != nil {
			return enqueued, fmt.Errorf("failed to enqueue sync job: %w", err)
		}

		enqueued++
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("sync queue full, channels deferred to next tick")
	}

	return enqueued, nil
}
