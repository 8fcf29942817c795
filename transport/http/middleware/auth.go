package middleware

import (
	"crypto/subtle"
	"net/http"
	"staysync/config"
	"staysync/infras/otel"
	"staysync/permissions"
	"staysync/shared/constant"
	"staysync/shared/failure"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Auth guards the job and admin endpoints. Callers are other services, not users.
type Auth interface {
	APIKey(http.Handler) http.Handler
}

type authImpl struct {
	otel   otel.Otel
	access *permissions.Access
	cfg    *config.Config
}

func NewAuthMiddleware(otel otel.Otel, access *permissions.Access, cfg *config.Config) Auth {
	return &authImpl{
		otel:   otel,
		access: access,
		cfg:    cfg,
	}
}

// APIKey rejects requests without a matching X-API-Key header unless the endpoint is public.
// An empty configured key disables the check.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		if m.cfg.App.APIKey == "" || m.isPublic(request) {
			scope.SetAttribute("http.source", "public")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.InvalidAPIKey

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

func (m *authImpl) isPublic(request *http.Request) bool {
	if m.access == nil {
		return false
	}

	if m.access.Open {
		return true
	}

	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return false
	}

	tctx := chi.NewRouteContext()
	if !rctx.Routes.Match(tctx, request.Method, request.URL.Path) {
		return false
	}

	return m.access.IsPublic(tctx.RoutePattern(), request.Method)
}
