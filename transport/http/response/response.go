package response

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"staysync/shared/constant"
	"staysync/shared/failure"
	"staysync/shared/logger"
	"strings"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in a data envelope
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its status. Server faults are logged and answered with a generic
// message so storage and feed details stay out of the body.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	errMsg := err.Error()
	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		errMsg = http.StatusText(code)
	}

	response(writer, code, Error{Error: &errMsg})
}

// WithCalendar sends an iCalendar feed as <listingID>.ics. Channels poll the feed often, so
// it carries a strong ETag and answers a matching If-None-Match with 304 and no body.
func WithCalendar(writer http.ResponseWriter, request *http.Request, listingID string, body []byte) {
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	header := writer.Header()
	header.Set(constant.RequestHeaderETag, etag)
	header.Set(constant.RequestHeaderCacheControl, "no-cache")

	if matchesETag(request.Header.Get(constant.RequestHeaderIfNoneMatch), etag) {
		writer.WriteHeader(http.StatusNotModified)

		return
	}

	header.Set(constant.RequestHeaderContentType, constant.ContentTypeCalendar)
	header.Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", listingID+".ics"))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

func matchesETag(ifNoneMatch, etag string) bool {
	for candidate := range strings.SplitSeq(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}

	return false
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
