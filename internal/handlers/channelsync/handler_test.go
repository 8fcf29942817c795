package channelsync_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	otelMocks "staysync/infras/otel/mocks"
	"staysync/internal/domains/channelsync/mocks"
	"staysync/internal/domains/channelsync/model/dto"
	"staysync/internal/handlers/channelsync"
	gDto "staysync/shared/dto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubQueue struct {
	listingID string
	enqueued  int
	err       error
}

func (q *stubQueue) EnqueueListing(_ context.Context, listingID string) (int, error) {
	q.listingID = listingID

	return q.enqueued, q.err
}

func setup(t *testing.T, queue channelsync.Enqueuer) (*mocks.MockOrchestrator, chi.Router) {
	t.Helper()

	orchestrator := mocks.NewMockOrchestrator(gomock.NewController(t))
	handler := channelsync.New(orchestrator, queue, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return orchestrator, router
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}

func TestHandler_SyncOneChannel(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		feedURL  string
		wantCode int
		call     bool
	}{
		{name: "configured feed", wantCode: http.StatusOK, call: true},
		{name: "feed override", body: `{"feed_url":"https://example.test/cal.ics"}`, feedURL: "https://example.test/cal.ics", wantCode: http.StatusOK, call: true},
		{name: "malformed override", body: `{"feed_url":"not a url"}`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orchestrator, router := setup(t, &stubQueue{})

			if tt.call {
				orchestrator.EXPECT().
					SyncOneChannel(gomock.Any(), "listing-1", "airbnb", tt.feedURL).
					Return(dto.SyncSummary{ListingID: "listing-1", ItemsProcessed: 3}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/listings/listing-1/channels/airbnb/sync", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.call {
				assert.Equal(t, 3, decodeData[dto.SyncSummary](t, rec).ItemsProcessed)
			}
		})
	}
}

func TestHandler_SyncAllChannels(t *testing.T) {
	orchestrator, router := setup(t, &stubQueue{})

	orchestrator.EXPECT().SyncAllChannels(gomock.Any(), "listing-1").Return(dto.SyncSummary{ListingID: "listing-1", Failed: 1, Partial: true}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/listings/listing-1/sync", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	summary := decodeData[dto.SyncSummary](t, rec)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.Partial)
}

func TestHandler_EnqueueSync(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		queue := &stubQueue{enqueued: 2}
		_, router := setup(t, queue)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/listings/listing-1/sync/enqueue", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "listing-1", queue.listingID)
		assert.Equal(t, 2, decodeData[dto.EnqueueResponse](t, rec).Enqueued)
	})

	t.Run("queue failure", func(t *testing.T) {
		_, router := setup(t, &stubQueue{err: errors.New("pool stopped")})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/listings/listing-1/sync/enqueue", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_GetSyncRuns(t *testing.T) {
	orchestrator, router := setup(t, &stubQueue{})

	orchestrator.EXPECT().
		ListRuns(gomock.Any(), "listing-1", gDto.QueryParams{Page: 2, Limit: 5}).
		Return(dto.GetSyncRunsResponse{TotalData: 7, TotalPage: 2}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/listing-1/sync-runs?page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decodeData[dto.GetSyncRunsResponse](t, rec).TotalData)
}
