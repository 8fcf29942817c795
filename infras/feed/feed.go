// Package feed moves calendar feeds over the network: it fetches channel
// feeds and pushes our exported feed to channel push hooks.
package feed

//go:generate go run go.uber.org/mock/mockgen -source=./feed.go -destination=./mocks/feed_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"staysync/config"
	"staysync/infras/otel"
	"staysync/infras/s3"
	"staysync/shared/constant"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

const (
	maxFeedBytes = 8 << 20
	schemeS3     = "s3"
)

// FetchError is a failed fetch or push. StatusCode is zero for transport errors.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed %s: unexpected status %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable is true for timeouts, transport failures, 429 and 5xx.
func (e *FetchError) Retryable() bool {
	if e.StatusCode == 0 {
		return !errors.Is(e.Err, errUnsupportedTarget) && !errors.Is(e.Err, ErrFeedTooLarge)
	}

	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func (e *FetchError) HTTPCode() int {
	return http.StatusBadGateway
}

var (
	errUnsupportedTarget = errors.New("unsupported push target")
	// ErrFeedTooLarge is returned for feeds over 8 MiB.
	ErrFeedTooLarge = errors.New("feed too large")
)

type Client interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
	// Push delivers body to target, an http(s) URL or s3://bucket/prefix.
	Push(ctx context.Context, target, listingID string, body []byte) error
}

type clientImpl struct {
	http    *http.Client
	storage s3.S3
	cfg     *config.Config
	otel    otel.Otel
}

func New(cfg *config.Config, storage s3.S3, otel otel.Otel) Client {
	timeout := time.Duration(cfg.Sync.FetchTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = constant.HTTPTimeout
	}

	return &clientImpl{
		http:    &http.Client{Timeout: timeout},
		storage: storage,
		cfg:     cfg,
		otel:    otel,
	}
}

func (c *clientImpl) retry() []backoff.RetryOption {
	base := time.Duration(c.cfg.Sync.RetryBaseSeconds) * time.Second

	attempts := c.cfg.Sync.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	return []backoff.RetryOption{
		backoff.WithBackOff(&backoff.ExponentialBackOff{
			InitialInterval:     base,
			RandomizationFactor: backoff.DefaultRandomizationFactor,
			Multiplier:          backoff.DefaultMultiplier,
			MaxInterval:         base * 4,
		}),
		backoff.WithMaxTries(uint(attempts)),
	}
}

// classify stops the retry loop on errors that will not go away.
func classify(err *FetchError) error {
	if err.Retryable() {
		return err
	}

	return backoff.Permanent(err)
}

func (c *clientImpl) Fetch(ctx context.Context, feedURL string) (body []byte, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelFeedScopeName, constant.OtelFeedScopeName+".Fetch")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("feed.host", hostOf(feedURL))

	attempt := 0
	notify := backoff.WithNotify(func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Str("host", hostOf(feedURL)).Msg("retrying feed fetch")
	})

	body, err = backoff.Retry(ctx, func() ([]byte, error) {
		attempt++

		return c.fetchOnce(ctx, feedURL)
	}, append(c.retry(), notify)...)
	if err != nil {
		log.Error().Err(err).Str("host", hostOf(feedURL)).Int("attempts", attempt).Msg("failed to fetch feed")

		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	return body, nil
}

func (c *clientImpl) fetchOnce(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{URL: feedURL, Err: err})
	}

	req.Header.Set(constant.RequestHeaderUserAgent, c.cfg.App.Name)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(&FetchError{URL: feedURL, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxFeedBytes))

		return nil, classify(&FetchError{URL: feedURL, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, classify(&FetchError{URL: feedURL, Err: err})
	}

	if len(body) > maxFeedBytes {
		return nil, backoff.Permanent(&FetchError{URL: feedURL, Err: ErrFeedTooLarge})
	}

	return body, nil
}

func (c *clientImpl) Push(ctx context.Context, target, listingID string, body []byte) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelFeedScopeName, constant.OtelFeedScopeName+".Push")
	defer scope.End()
	defer scope.TraceIfError(err)

	parsed, err := url.Parse(target)
	if err != nil {
		return &FetchError{URL: target, Err: fmt.Errorf("%w: %w", errUnsupportedTarget, err)}
	}

	scope.SetAttribute("feed.host", parsed.Host)

	switch strings.ToLower(parsed.Scheme) {
	case schemeS3:
		key := path.Join(parsed.Path, listingID+".ics")

		if _, err = c.storage.PutObject(ctx, parsed.Host, key, constant.ContentTypeCalendar, body); err != nil {
			log.Error().Err(err).Str("bucket", parsed.Host).Str("key", key).Msg("failed to push feed to bucket")

			return fmt.Errorf("failed to push feed to bucket: %w", err)
		}

		return nil
	case "http", "https":
	default:
		return &FetchError{URL: target, Err: errUnsupportedTarget}
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.pushOnce(ctx, target, body)
	}, c.retry()...)
	if err != nil {
		log.Error().Err(err).Str("host", parsed.Host).Msg("failed to push feed")

		return fmt.Errorf("failed to push feed: %w", err)
	}

	return nil
}

func (c *clientImpl) pushOnce(ctx context.Context, target string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(&FetchError{URL: target, Err: err})
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeCalendar)
	req.Header.Set(constant.RequestHeaderUserAgent, c.cfg.App.Name)

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(&FetchError{URL: target, Err: err})
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxFeedBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return classify(&FetchError{URL: target, StatusCode: resp.StatusCode})
	}

	return nil
}

// hostOf keeps credentials and tokens in feed URLs out of logs.
func hostOf(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}

	if host, _, err := net.SplitHostPort(parsed.Host); err == nil {
		return host
	}

	return parsed.Host
}
