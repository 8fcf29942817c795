// Package permissions lists the endpoints reachable without the internal API key.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var accessData []byte

// Route is a chi route pattern plus method, e.g. GET /v1/listings/{id}/calendar.ics.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type Access struct {
	Public []Route `json:"public"`
	// Open lets every request through; local development only.
	Open bool `json:"open"`
}

// IsPublic reports whether pattern may be called without the API key.
func (a *Access) IsPublic(pattern, method string) bool {
	if a == nil {
		return false
	}

	if a.Open {
		return true
	}

	return slices.Contains(a.Public, Route{Method: strings.ToUpper(method), Path: pattern})
}

// Get loads the embedded access list. A broken list closes every endpoint.
func Get() *Access {
	access, err := Parse(accessData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decode embedded access list")

		return nil
	}

	log.Info().Int("public_routes", len(access.Public)).Bool("open", access.Open).Msg("Loaded embedded access list")

	return access
}

func Parse(data []byte) (*Access, error) {
	var access Access

	if err := json.Unmarshal(data, &access); err != nil {
		return nil, fmt.Errorf("decoding access list: %w", err)
	}

	for idx, route := range access.Public {
		method := strings.ToUpper(route.Method)
		if method == "" || !strings.HasPrefix(route.Path, "/") {
			return nil, fmt.Errorf("decoding access list: invalid route %d %q %q", idx, route.Method, route.Path)
		}

		if method == http.MethodGet {
			access.Public = append(access.Public, Route{Method: http.MethodHead, Path: route.Path})
		}

		access.Public[idx].Method = method
	}

	return &access, nil
}
