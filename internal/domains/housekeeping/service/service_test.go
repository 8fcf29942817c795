package service_test

import (
	"context"
	"errors"
	"net/http"
	"staysync/config"
	"staysync/infras/kafka"
	kafkaMocks "staysync/infras/kafka/mocks"
	otelMocks "staysync/infras/otel/mocks"
	"staysync/internal/domains/housekeeping/mocks"
	"staysync/internal/domains/housekeeping/model"
	"staysync/internal/domains/housekeeping/model/dto"
	"staysync/internal/domains/housekeeping/service"
	"staysync/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Housekeeping.BaseMinutes = 60
	cfg.Housekeeping.BedroomMinutes = 30
	cfg.Housekeeping.BathroomMinutes = 20
	cfg.Kafka.Topics.Housekeeping = "housekeeping"

	return cfg
}

func TestEstimateMinutes(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, 60, service.EstimateMinutes(cfg, 0, 0))
	assert.Equal(t, 160, service.EstimateMinutes(cfg, 2, 2))
	assert.Equal(t, 90, service.EstimateMinutes(cfg, 1, -1))
}

func TestHousekeeping_Schedule(t *testing.T) {
	checkout := time.Date(2026, 7, 14, 11, 0, 0, 0, time.UTC)
	req := dto.ScheduleRequest{
		ListingID:    "listing-1",
		BookingID:    "booking-1",
		Kind:         model.KindTurnover,
		ScheduledFor: checkout,
		Bedrooms:     3,
		Bathrooms:    2,
	}

	t.Run("creates and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTask(ctrl)
		kafkaClient := kafkaMocks.NewMockClient(ctrl)
		svc := service.New(repo, kafkaClient, testConfig(), otelMocks.NewOtel())

		repo.EXPECT().InsertIgnore(gomock.Any(), gomock.Any(), model.FieldBookingID, model.FieldKind).DoAndReturn(
			func(_ context.Context, task model.Task, _ ...string) (bool, error) {
				assert.Equal(t, model.StatusPending, task.Status)
				assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), task.ScheduledFor)
				assert.Equal(t, 190, task.EstimatedMinutes)

				return true, nil
			})
		kafkaClient.EXPECT().SendMessages(gomock.Any(), "housekeeping", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				event, ok := messages[0].Value.(model.TaskEvent)
				require.True(t, ok)
				assert.Equal(t, model.KindTurnover, event.Kind)

				return nil
			})

		task, err := svc.Schedule(context.Background(), req)
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
	})

	t.Run("existing task is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTask(ctrl)
		svc := service.New(repo, kafkaMocks.NewMockClient(ctrl), testConfig(), otelMocks.NewOtel())

		repo.EXPECT().InsertIgnore(gomock.Any(), gomock.Any(), model.FieldBookingID, model.FieldKind).Return(false, nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Task{ID: "task-1", Kind: model.KindTurnover}, nil)

		task, err := svc.Schedule(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "task-1", task.ID)
	})

	t.Run("insert failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTask(ctrl)
		svc := service.New(repo, kafkaMocks.NewMockClient(ctrl), testConfig(), otelMocks.NewOtel())

		repo.EXPECT().InsertIgnore(gomock.Any(), gomock.Any(), model.FieldBookingID, model.FieldKind).Return(false, errors.New("db down"))

		_, err := svc.Schedule(context.Background(), req)
		require.Error(t, err)
	})
}

func TestHousekeeping_Progress(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.Task
		complete bool
		wantCode int
		want     model.Status
	}{
		{
			name:   "start pending task",
			stored: model.Task{ID: "task-1", Status: model.StatusPending},
			want:   model.StatusInProgress,
		},
		{
			name:     "complete in-progress task",
			stored:   model.Task{ID: "task-1", Status: model.StatusInProgress},
			complete: true,
			want:     model.StatusCompleted,
		},
		{
			name:     "complete pending task",
			stored:   model.Task{ID: "task-1", Status: model.StatusPending},
			complete: true,
			wantCode: http.StatusConflict,
		},
		{
			name:     "start completed task",
			stored:   model.Task{ID: "task-1", Status: model.StatusCompleted},
			wantCode: http.StatusConflict,
		},
		{
			name:     "unknown task",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockTask(ctrl)
			kafkaClient := kafkaMocks.NewMockClient(ctrl)
			svc := service.New(repo, kafkaClient, testConfig(), otelMocks.NewOtel())

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			if tt.wantCode == 0 {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				kafkaClient.EXPECT().SendMessages(gomock.Any(), "housekeeping", gomock.Any()).Return(nil)
			}

			progress := svc.Start
			if tt.complete {
				progress = svc.Complete
			}

			res, err := progress(context.Background(), "task-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.want), res.Status)
		})
	}
}
