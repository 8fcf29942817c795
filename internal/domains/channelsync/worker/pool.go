package worker

import (
	"context"
	"errors"
	"staysync/config"
	"staysync/infras/otel"
	"staysync/internal/domains/channelsync/service"
	"staysync/shared/constant"
	"staysync/shared/logger"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrQueueFull      = errors.New("sync queue is full")
	ErrPoolStopped    = errors.New("sync pool is not running")
	ErrAlreadyRunning = errors.New("sync pool is already running")
)

// Job asks for one channel of a listing to be imported.
type Job struct {
	ListingID string
	ChannelID string
	FeedURL   string
}

// Pool runs queued channel imports on a fixed number of workers.
type Pool struct {
	orchestrator service.Orchestrator
	otel         otel.Otel
	workers      int

	mu     sync.RWMutex
	queue  chan Job
	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewPool(orchestrator service.Orchestrator, cfg *config.Config, otel otel.Otel) *Pool {
	return &Pool{
		orchestrator: orchestrator,
		otel:         otel,
		workers:      max(cfg.Sync.Workers, 1),
		queue:        make(chan Job, max(cfg.Sync.QueueSize, 1)),
	}
}

func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.group != nil {
		return ErrAlreadyRunning
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.group, ctx = errgroup.WithContext(ctx)

	for range p.workers {
		p.group.Go(func() error {
			p.work(ctx)

			return nil
		})
	}

	log.Info().Int("workers", p.workers).Msg("sync pool started")

	return nil
}

// Enqueue adds a job without blocking.
func (p *Pool) Enqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.group == nil {
		return ErrPoolStopped
	}

	select {
	case p.queue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop cancels the workers and waits for in-flight jobs to return.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.group == nil {
		return
	}

	p.cancel()
	_ = p.group.Wait()

	p.group = nil

	log.Info().Msg("sync pool stopped")
}

func (p *Pool) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.queue:
			p.run(ctx, job)
		}
	}
}

func (p *Pool) run(ctx context.Context, job Job) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".SyncChannel")
	defer scope.End()

	summary, err := p.orchestrator.SyncOneChannel(ctx, job.ListingID, job.ChannelID, job.FeedURL)
	if err != nil {
		scope.TraceError(err)
		logger.ForChannel(job.ListingID, job.ChannelID).Error().Err(err).Msg("failed to run sync job")

		return
	}

	logger.ForChannel(job.ListingID, job.ChannelID).Debug().
		Int("items", summary.ItemsProcessed).
		Int("failed", summary.Failed).
		Msg("sync job finished")
}
