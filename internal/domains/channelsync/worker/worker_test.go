package worker_test

import (
	"context"
	"errors"
	"staysync/config"
	otelMocks "staysync/infras/otel/mocks"
	"staysync/internal/domains/channelsync/mocks"
	"staysync/internal/domains/channelsync/model/dto"
	"staysync/internal/domains/channelsync/worker"
	listingMocks "staysync/internal/domains/listing/mocks"
	listingModel "staysync/internal/domains/listing/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func poolConfig(workers, queue int) *config.Config {
	cfg := &config.Config{}
	cfg.Sync.Workers = workers
	cfg.Sync.QueueSize = queue
	cfg.Sync.Schedule = "@every 1h"

	return cfg
}

func TestPool_RunsQueuedJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockOrchestrator(ctrl)

	var wg sync.WaitGroup
	wg.Add(3)

	orchestrator.EXPECT().SyncOneChannel(gomock.Any(), "listing-1", gomock.Any(), "").
		DoAndReturn(func(context.Context, string, string, string) (dto.SyncSummary, error) {
			defer wg.Done()

			return dto.SyncSummary{}, nil
		}).Times(2)
	orchestrator.EXPECT().SyncOneChannel(gomock.Any(), "listing-2", "airbnb", "").
		DoAndReturn(func(context.Context, string, string, string) (dto.SyncSummary, error) {
			defer wg.Done()

			return dto.SyncSummary{}, errors.New("channel not found")
		})

	pool := worker.NewPool(orchestrator, poolConfig(2, 8), otelMocks.NewOtel())
	require.NoError(t, pool.Start(context.Background()))
	defer pool.Stop()

	require.NoError(t, pool.Enqueue(worker.Job{ListingID: "listing-1", ChannelID: "airbnb"}))
	require.NoError(t, pool.Enqueue(worker.Job{ListingID: "listing-1", ChannelID: "vrbo"}))
	require.NoError(t, pool.Enqueue(worker.Job{ListingID: "listing-2", ChannelID: "airbnb"}))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not run")
	}
}

func TestPool_Enqueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockOrchestrator(ctrl)

	pool := worker.NewPool(orchestrator, poolConfig(1, 1), otelMocks.NewOtel())

	assert.ErrorIs(t, pool.Enqueue(worker.Job{ListingID: "listing-1"}), worker.ErrPoolStopped)

	release := make(chan struct{})
	started := make(chan struct{}, 1)

	orchestrator.EXPECT().SyncOneChannel(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, string) (dto.SyncSummary, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release

			return dto.SyncSummary{}, nil
		}).MinTimes(1).MaxTimes(2)

	require.NoError(t, pool.Start(context.Background()))
	assert.ErrorIs(t, pool.Start(context.Background()), worker.ErrAlreadyRunning)

	// The single worker is busy with the first job and the queue holds the second.
	require.NoError(t, pool.Enqueue(worker.Job{ListingID: "listing-1"}))
	<-started
	require.NoError(t, pool.Enqueue(worker.Job{ListingID: "listing-2"}))
	assert.ErrorIs(t, pool.Enqueue(worker.Job{ListingID: "listing-3"}), worker.ErrQueueFull)

	close(release)
	pool.Stop()

	assert.ErrorIs(t, pool.Enqueue(worker.Job{ListingID: "listing-4"}), worker.ErrPoolStopped)
}

type recordingQueue struct {
	jobs []worker.Job
	cap  int
}

func (q *recordingQueue) Enqueue(job worker.Job) error {
	if len(q.jobs) == q.cap {
		return worker.ErrQueueFull
	}

	q.jobs = append(q.jobs, job)

	return nil
}

func TestScheduler_EnqueueAll(t *testing.T) {
	channels := []listingModel.ChannelSync{
		{ListingID: "listing-1", ChannelID: "airbnb"},
		{ListingID: "listing-1", ChannelID: "vrbo"},
		{ListingID: "listing-2", ChannelID: "airbnb"},
	}

	tests := []struct {
		name    string
		cap     int
		repoErr error
		want    int
		wantErr bool
	}{
		{name: "all channels queued", cap: 10, want: 3},
		{name: "full queue defers the rest", cap: 2, want: 2},
		{name: "repository failure", cap: 10, repoErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			listings := listingMocks.NewMockListing(ctrl)
			queue := &recordingQueue{cap: tt.cap}

			if tt.repoErr != nil {
				listings.EXPECT().ListActiveChannels(gomock.Any()).Return(nil, tt.repoErr)
			} else {
				listings.EXPECT().ListActiveChannels(gomock.Any()).Return(channels, nil)
			}

			scheduler := worker.NewScheduler(listings, queue, poolConfig(1, 1), otelMocks.NewOtel())

			enqueued, err := scheduler.EnqueueAll(context.Background())
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, enqueued)
			assert.Equal(t, "listing-1", queue.jobs[0].ListingID)
		})
	}
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := poolConfig(1, 1)
	cfg.Sync.Schedule = "every now and then"

	scheduler := worker.NewScheduler(listingMocks.NewMockListing(ctrl), &recordingQueue{}, cfg, otelMocks.NewOtel())

	require.Error(t, scheduler.Start(context.Background()))
}

func TestScheduler_EnqueueListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	listings := listingMocks.NewMockListing(ctrl)
	queue := &recordingQueue{cap: 10}

	listings.EXPECT().ListChannels(gomock.Any(), "listing-1").Return([]listingModel.ChannelSync{
		{ListingID: "listing-1", ChannelID: "airbnb", ImportURL: "https://airbnb.test/1.ics", Active: true},
		{ListingID: "listing-1", ChannelID: "vrbo", ImportURL: "https://vrbo.test/1.ics"},
		{ListingID: "listing-1", ChannelID: "direct", Active: true},
	}, nil)

	scheduler := worker.NewScheduler(listings, queue, poolConfig(1, 1), otelMocks.NewOtel())

	enqueued, err := scheduler.EnqueueListing(context.Background(), "listing-1")

	require.NoError(t, err)
	assert.Equal(t, 1, enqueued)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "airbnb", queue.jobs[0].ChannelID)
}
