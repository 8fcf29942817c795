package feed_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"staysync/config"
	"staysync/infras/feed"
	otelMocks "staysync/infras/otel/mocks"
	s3Mocks "staysync/infras/s3/mocks"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const calendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "staysync-test"
	cfg.Sync.FetchTimeoutSeconds = 2
	cfg.Sync.RetryAttempts = 3
	cfg.Sync.RetryBaseSeconds = 0

	return cfg
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantErr      bool
		wantStatus   int
		wantRequests int32
	}{
		{name: "ok", statuses: []int{http.StatusOK}, wantRequests: 1},
		{name: "recovers from a 503", statuses: []int{http.StatusServiceUnavailable, http.StatusOK}, wantRequests: 2},
		{name: "not found is not retried", statuses: []int{http.StatusNotFound}, wantErr: true, wantStatus: http.StatusNotFound, wantRequests: 1},
		{
			name:         "gives up after three attempts",
			statuses:     []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway, http.StatusOK},
			wantErr:      true,
			wantStatus:   http.StatusBadGateway,
			wantRequests: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := requests.Add(1)
				status := tt.statuses[min(int(n), len(tt.statuses))-1]

				assert.Equal(t, "staysync-test", r.Header.Get("User-Agent"))
				w.WriteHeader(status)

				if status == http.StatusOK {
					_, _ = io.WriteString(w, calendar)
				}
			}))
			defer server.Close()

			client := feed.New(testConfig(), nil, otelMocks.NewOtel())
			body, err := client.Fetch(context.Background(), server.URL+"/feed.ics")

			assert.Equal(t, tt.wantRequests, requests.Load())

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, calendar, string(body))

				return
			}

			require.Error(t, err)

			var fetchErr *feed.FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, tt.wantStatus, fetchErr.StatusCode)
		})
	}
}

func TestClient_FetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	client := feed.New(testConfig(), nil, otelMocks.NewOtel())
	_, err := client.Fetch(context.Background(), target)

	var fetchErr *feed.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.True(t, fetchErr.Retryable())
}

func TestClient_FetchRejectsOversizedFeed(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write(make([]byte, 8<<20+1))
	}))
	defer server.Close()

	client := feed.New(testConfig(), nil, otelMocks.NewOtel())
	body, err := client.Fetch(context.Background(), server.URL+"/feed.ics")

	require.Error(t, err)
	assert.Nil(t, body)
	assert.ErrorIs(t, err, feed.ErrFeedTooLarge)
	assert.Equal(t, int32(1), requests.Load())

	var fetchErr *feed.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.False(t, fetchErr.Retryable())
}

func TestClient_FetchAcceptsFeedAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 8<<20))
	}))
	defer server.Close()

	client := feed.New(testConfig(), nil, otelMocks.NewOtel())
	body, err := client.Fetch(context.Background(), server.URL+"/feed.ics")

	require.NoError(t, err)
	assert.Len(t, body, 8<<20)
}

func TestClient_PushHTTP(t *testing.T) {
	var received atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "text/calendar; charset=utf-8", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		received.Store(string(body))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := feed.New(testConfig(), nil, otelMocks.NewOtel())

	require.NoError(t, client.Push(context.Background(), server.URL+"/hook", "listing-1", []byte(calendar)))
	assert.Equal(t, calendar, received.Load())
}

func TestClient_PushS3(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := s3Mocks.NewMockS3(ctrl)
	storage.EXPECT().
		PutObject(gomock.Any(), "calendars", "/exports/vrbo/listing-1.ics", "text/calendar; charset=utf-8", []byte(calendar)).
		Return("https://cdn.example.com/exports/vrbo/listing-1.ics", nil)

	client := feed.New(testConfig(), storage, otelMocks.NewOtel())

	require.NoError(t, client.Push(context.Background(), "s3://calendars/exports/vrbo", "listing-1", []byte(calendar)))
}

func TestClient_PushUnsupportedTarget(t *testing.T) {
	client := feed.New(testConfig(), nil, otelMocks.NewOtel())

	err := client.Push(context.Background(), "ftp://example.com/feed", "listing-1", []byte(calendar))

	var fetchErr *feed.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.False(t, fetchErr.Retryable())
}
