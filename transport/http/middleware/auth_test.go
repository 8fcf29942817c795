package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"staysync/config"
	otelMocks "staysync/infras/otel/mocks"
	"staysync/permissions"
	"staysync/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_APIKey(t *testing.T) {
	access, err := permissions.Parse([]byte(`{"public":[{"method":"get","path":"/v1/listings/{id}/calendar.ics"}]}`))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "secret"

	auth := middleware.NewAuthMiddleware(otelMocks.NewOtel(), access, cfg)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(auth.APIKey)
		r.Route("/v1", func(v1 chi.Router) {
			v1.Get("/listings/{id}/calendar.ics", ok)
			v1.Post("/listings/{id}/sync", ok)
		})
	})

	tests := []struct {
		name     string
		method   string
		path     string
		key      string
		wantCode int
	}{
		{name: "public calendar without key", method: http.MethodGet, path: "/v1/listings/l1/calendar.ics", wantCode: http.StatusNoContent},
		{name: "job endpoint without key", method: http.MethodPost, path: "/v1/listings/l1/sync", wantCode: http.StatusUnauthorized},
		{name: "job endpoint with wrong key", method: http.MethodPost, path: "/v1/listings/l1/sync", key: "guess", wantCode: http.StatusUnauthorized},
		{name: "job endpoint with key", method: http.MethodPost, path: "/v1/listings/l1/sync", key: "secret", wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAccess_Embedded(t *testing.T) {
	access := permissions.Get()
	require.NotNil(t, access)

	assert.True(t, access.IsPublic("/v1/listings/{id}/calendar.ics", http.MethodGet))
	assert.True(t, access.IsPublic("/v1/listings/{id}/calendar.ics", http.MethodHead))
	assert.True(t, access.IsPublic("/v1/pricing/quote", http.MethodPost))
	assert.False(t, access.IsPublic("/v1/listings/{id}/sync", http.MethodPost))
	assert.False(t, access.IsPublic("/v1/pricing/quote", http.MethodGet))
}

func TestAccess_Parse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "valid", data: `{"public":[{"method":"POST","path":"/v1/pricing/quote"}]}`},
		{name: "open", data: `{"open":true}`},
		{name: "missing method", data: `{"public":[{"path":"/v1/pricing/quote"}]}`, wantErr: true},
		{name: "relative path", data: `{"public":[{"method":"GET","path":"v1/pricing"}]}`, wantErr: true},
		{name: "not json", data: `public`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, err := permissions.Parse([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, access)
		})
	}
}

func TestAccess_Open(t *testing.T) {
	access := &permissions.Access{Open: true}
	assert.True(t, access.IsPublic("/v1/listings/{id}/sync", http.MethodPost))

	var missing *permissions.Access
	assert.False(t, missing.IsPublic("/v1/pricing/quote", http.MethodPost))
}
