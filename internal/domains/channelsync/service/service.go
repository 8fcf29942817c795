package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"staysync/config"
	"staysync/infras/feed"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/internal/domains/availability/codec"
	availabilityModel "staysync/internal/domains/availability/model"
	"staysync/internal/domains/availability/reconciler"
	availability "staysync/internal/domains/availability/service"
	"staysync/internal/domains/channelsync/model"
	"staysync/internal/domains/channelsync/model/dto"
	"staysync/internal/domains/channelsync/repository"
	listingModel "staysync/internal/domains/listing/model"
	listingRepository "staysync/internal/domains/listing/repository"
	"staysync/shared"
	"staysync/shared/cache"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	"staysync/shared/keylock"
	"staysync/shared/logger"
	"staysync/shared/timezone"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	exportAllKey    = "all"
	pushConcurrency = 4
)

var errBudgetExceeded = errors.New("listing sync budget exceeded")

// Orchestrator imports channel feeds into the availability store and fans the
// merged calendar back out to the other channels.
type Orchestrator interface {
	// SyncOneChannel imports one channel. feedURL overrides the configured import URL when set.
	// A failed import is reported through the run in the summary, not as an error.
	SyncOneChannel(ctx context.Context, listingID, channelID, feedURL string) (dto.SyncSummary, error)
	SyncAllChannels(ctx context.Context, listingID string) (dto.SyncSummary, error)
	ExportFeed(ctx context.Context, listingID string) ([]byte, error)
	// ExportFeedFor is the feed served to one channel: its own blocks are left out.
	ExportFeedFor(ctx context.Context, listingID, exportToken string) ([]byte, error)
	ListRuns(ctx context.Context, listingID string, params gDto.QueryParams) (dto.GetSyncRunsResponse, error)
}

type serviceImpl struct {
	runs     repository.SyncRun
	listings listingRepository.Listing
	store    availability.Store
	feed     feed.Client
	kafka    kafka.Client
	cache    cache.RedisCache
	locks    *keylock.Table
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	runs repository.SyncRun,
	listings listingRepository.Listing,
	store availability.Store,
	feedClient feed.Client,
	kafkaClient kafka.Client,
	redisCache cache.RedisCache,
	locks *keylock.Table,
	cfg *config.Config,
	otel otel.Otel,
) Orchestrator {
	return &serviceImpl{
		runs:     runs,
		listings: listings,
		store:    store,
		feed:     feedClient,
		kafka:    kafkaClient,
		cache:    redisCache,
		locks:    locks,
		cfg:      cfg,
		otel:     otel,
	}
}

// retryPersistence runs fn again once when it fails with a storage error.
func retryPersistence[T any](fn func() (T, error)) (T, error) {
	res, err := fn()
	if errors.Is(err, failure.ErrPersistence) {
		log.Warn().Err(err).Msg("retrying after persistence error")

		return fn()
	}

	return res, err
}

func (s *serviceImpl) SyncOneChannel(ctx context.Context, listingID, channelID, feedURL string) (summary dto.SyncSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncOneChannel")
	defer scope.End()
	defer scope.TraceIfError(err)

	channel, err := s.channel(ctx, listingID, channelID)
	if err != nil {
		return summary, err
	}

	if feedURL != "" {
		channel.ImportURL = feedURL
	}

	if channel.ImportURL == "" {
		return summary, failure.BadRequestFromString("channel has no import url") // nolint:wrapcheck
	}

	summary.ListingID = listingID

	run, err := s.syncChannel(ctx, channel)
	if err != nil {
		return summary, err
	}

	summary.Add(run)

	if !run.Failed() {
		s.pushToChannels(ctx, listingID, channelID)
	}

	return summary, nil
}

func (s *serviceImpl) SyncAllChannels(ctx context.Context, listingID string) (summary dto.SyncSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncAllChannels")
	defer scope.End()
	defer scope.TraceIfError(err)

	channels, err := s.listings.ListChannels(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to list channels")

		return summary, fmt.Errorf("failed to list channels: %w", err)
	}

	summary.ListingID = listingID

	budget := time.Duration(s.cfg.Sync.ListingBudgetSeconds) * time.Second
	budgetCtx, cancel := context.WithTimeoutCause(ctx, budget, errBudgetExceeded)
	defer cancel()

	var (
		mu   sync.Mutex
		runs []model.SyncRun
	)

	group := errgroup.Group{}
	group.SetLimit(max(s.cfg.Sync.Workers, 1))

	for _, channel := range channels {
		if !channel.Active || channel.ImportURL == "" {
			continue
		}

		group.Go(func() error {
			run, err := s.syncChannel(budgetCtx, channel)
			if err != nil {
				run = s.recordFailure(budgetCtx, s.newRun(channel), err)
			}

			mu.Lock()
			runs = append(runs, run)
			mu.Unlock()

			return nil
		})
	}

	_ = group.Wait()

	if errors.Is(context.Cause(budgetCtx), errBudgetExceeded) {
		log.Warn().Str("listing_id", listingID).Dur("budget", budget).Msg("listing sync budget exceeded")
	}

	anySucceeded := false

	for _, run := range runs {
		summary.Add(run)

		if !run.Failed() {
			anySucceeded = true
		}
	}

	if anySucceeded {
		s.pushToChannels(ctx, listingID, constant.Empty)
	}

	return summary, nil
}

func (s *serviceImpl) channel(ctx context.Context, listingID, channelID string) (listingModel.ChannelSync, error) {
	channel, err := s.listings.GetChannel(ctx, listingID, channelID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Str("channel_id", channelID).Msg("failed to get channel")

		return channel, fmt.Errorf("failed to get channel: %w", err)
	}

	if channel.ID == "" {
		return channel, failure.NotFound("channel not found") // nolint:wrapcheck
	}

	return channel, nil
}

func (s *serviceImpl) newRun(channel listingModel.ChannelSync) model.SyncRun {
	return model.SyncRun{
		ID:        uuid.NewString(),
		ListingID: channel.ListingID,
		ChannelID: channel.ChannelID,
		StartedAt: timezone.Now(),
	}
}

// syncChannel runs fetch, decode, replace and reconcile for one channel and records the run.
// The returned error is only set when the channel lock could not be taken.
func (s *serviceImpl) syncChannel(ctx context.Context, channel listingModel.ChannelSync) (model.SyncRun, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".syncChannel")
	defer scope.End()

	logCtx := logger.ForChannel(channel.ListingID, channel.ChannelID)
	run := s.newRun(channel)

	unlock, err := s.locks.Lock(ctx, keylock.Key("sync", channel.ListingID, channel.ChannelID))
	if err != nil {
		scope.TraceError(err)

		return run, fmt.Errorf("failed to lock channel: %w", err)
	}
	defer unlock()

	body, err := s.feed.Fetch(ctx, channel.ImportURL)
	if err != nil {
		return s.recordFailure(ctx, run, err), nil
	}

	decoded, err := codec.Decode(body, codec.DefaultOptions(run.StartedAt))
	if err != nil {
		return s.recordFailure(ctx, run, err), nil
	}

	for _, warning := range decoded.Warnings {
		logCtx.Warn().Str("uid", warning.UID).Str("reason", warning.Reason).Msg("skipped feed event")
	}

	stored, err := retryPersistence(func() (int, error) {
		return s.store.ReplaceChannelBlocks(ctx, channel.ListingID, channel.ChannelID, decoded.Blocks)
	})
	if err != nil {
		return s.recordFailure(ctx, run, err), nil
	}

	result, err := retryPersistence(func() (reconciler.Result, error) {
		return s.store.Reconcile(ctx, channel.ListingID)
	})
	if err != nil {
		return s.recordFailure(ctx, run, err), nil
	}

	involved := involving(result.Conflicts, channel.ChannelID)

	run.ItemsProcessed = stored
	run.ConflictsFound = reconciler.Result{Conflicts: involved}.CrossSourceConflicts()
	run.ConflictsResolved = len(involved)
	run.FinishedAt = timezone.Now()

	s.saveRun(ctx, run)
	s.updateStatus(ctx, channel, listingModel.SyncStatusOK, constant.Empty)
	shared.InvalidateCaches(ctx, s.cache, availabilityModel.ExportCachePrefix(channel.ListingID))

	if len(involved) > 0 {
		s.publishConflicts(ctx, run, involved)
	}

	logCtx.Info().Int("blocks", stored).Int("conflicts", run.ConflictsFound).Msg("channel synced")

	return run, nil
}

// involving keeps the conflicts in which channelID won or lost.
func involving(conflicts []reconciler.Conflict, channelID string) []reconciler.Conflict {
	out := []reconciler.Conflict{}

	for _, conflict := range conflicts {
		if conflict.Winner.Source == channelID || conflict.Loser.Source == channelID {
			out = append(out, conflict)
		}
	}

	return out
}

func (s *serviceImpl) recordFailure(ctx context.Context, run model.SyncRun, cause error) model.SyncRun {
	if errors.Is(context.Cause(ctx), errBudgetExceeded) {
		run.Partial = true
	}

	run.Error = cause.Error()
	run.ItemsProcessed = 0
	run.FinishedAt = timezone.Now()

	logger.ForChannel(run.ListingID, run.ChannelID).Error().Err(cause).Bool("partial", run.Partial).Msg("channel sync failed")

	// The run is recorded even when the caller's context is gone.
	persistCtx := context.WithoutCancel(ctx)

	s.saveRun(persistCtx, run)

	status := listingModel.SyncStatusFailed
	if run.Partial {
		status = listingModel.SyncStatusPartial
	}

	s.updateStatus(persistCtx, listingModel.ChannelSync{ListingID: run.ListingID, ChannelID: run.ChannelID}, status, run.Error)

	return run
}

func (s *serviceImpl) saveRun(ctx context.Context, run model.SyncRun) {
	_, err := retryPersistence(func() (struct{}, error) {
		if err := s.runs.Insert(ctx, run); err != nil {
			return struct{}{}, failure.Persistence(err)
		}

		return struct{}{}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to save sync run")
	}
}

func (s *serviceImpl) updateStatus(ctx context.Context, channel listingModel.ChannelSync, status listingModel.SyncStatus, syncErr string) {
	err := s.listings.UpdateSyncStatus(ctx, channel.ListingID, channel.ChannelID, status, syncErr, timezone.Now())
	if err != nil {
		log.Error().Err(err).Str("listing_id", channel.ListingID).Str("channel_id", channel.ChannelID).Msg("failed to update channel sync status")
	}
}

func (s *serviceImpl) publishConflicts(ctx context.Context, run model.SyncRun, conflicts []reconciler.Conflict) {
	event := model.ConflictEvent{
		RunID:      run.ID,
		ListingID:  run.ListingID,
		ChannelID:  run.ChannelID,
		DetectedAt: run.FinishedAt,
		Conflicts:  conflicts,
	}

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Conflicts, kafka.Message{Key: run.ListingID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to publish conflict event")
	}
}

// pushToChannels sends each channel with a push hook its view of the merged calendar.
// The channel that triggered the sync, if any, is skipped.
func (s *serviceImpl) pushToChannels(ctx context.Context, listingID, sourceChannelID string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pushToChannels")
	defer scope.End()

	channels, err := s.listings.ListChannels(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to list channels for push")

		return
	}

	blocks, err := s.store.ListBlocks(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to list blocks for push")

		return
	}

	group := errgroup.Group{}
	group.SetLimit(pushConcurrency)

	for _, channel := range channels {
		if !channel.Active || channel.PushURL == "" || channel.ChannelID == sourceChannelID {
			continue
		}

		group.Go(func() error {
			body := codec.Encode(exportable(blocks, channel.ChannelID), listingID)

			if err := s.feed.Push(ctx, channel.PushURL, listingID, body); err != nil {
				logger.ForChannel(listingID, channel.ChannelID).Error().Err(err).Msg("failed to push calendar")
			}

			return nil
		})
	}

	_ = group.Wait()
}

// exportable keeps the authoritative blocks not owned by excludeChannelID.
func exportable(blocks []availabilityModel.Block, excludeChannelID string) []availabilityModel.Block {
	out := make([]availabilityModel.Block, 0, len(blocks))

	for _, block := range blocks {
		if !block.Authoritative {
			continue
		}

		if excludeChannelID != "" && block.Source == excludeChannelID {
			continue
		}

		out = append(out, block)
	}

	return out
}

func (s *serviceImpl) ExportFeed(ctx context.Context, listingID string) (body []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportFeed")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.export(ctx, listingID, constant.Empty)
}

func (s *serviceImpl) ExportFeedFor(ctx context.Context, listingID, exportToken string) (body []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportFeedFor")
	defer scope.End()
	defer scope.TraceIfError(err)

	if exportToken == "" {
		return s.export(ctx, listingID, constant.Empty)
	}

	channel, err := s.listings.GetChannelByToken(ctx, listingID, exportToken)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to get channel by token")

		return nil, fmt.Errorf("failed to get channel by token: %w", err)
	}

	if channel.ID == "" {
		return nil, failure.NotFound("calendar not found") // nolint:wrapcheck
	}

	return s.export(ctx, listingID, channel.ChannelID)
}

// export renders the listing's feed. The cache key carries a digest of the rendered
// blocks, so a render that raced a sync is stored under a key no later read asks for.
func (s *serviceImpl) export(ctx context.Context, listingID, excludeChannelID string) ([]byte, error) {
	variant := excludeChannelID
	if variant == "" {
		variant = exportAllKey
	}

	blocks, err := s.store.ListBlocks(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to list blocks for export")

		return nil, fmt.Errorf("failed to list blocks for export: %w", err)
	}

	blocks = exportable(blocks, excludeChannelID)
	key := availabilityModel.ExportCachePrefix(listingID) + variant + ":" + exportVersion(blocks)

	var cached []byte
	if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	body := codec.Encode(blocks, listingID)

	if err := s.cache.Save(ctx, key, body, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache exported feed")
	}

	return body, nil
}

// exportVersion digests the fields of blocks that reach the encoded feed.
func exportVersion(blocks []availabilityModel.Block) string {
	digest := xxhash.New()

	for _, block := range blocks {
		_, _ = digest.WriteString(block.ID)
		_, _ = digest.WriteString(block.DateRangeStart.Format(time.DateOnly))
		_, _ = digest.WriteString(block.DateRangeEnd.Format(time.DateOnly))
		_, _ = digest.WriteString(block.Source)
		_, _ = digest.WriteString(block.SourceReference)
		_, _ = digest.WriteString(string(block.Status))
		_, _ = digest.WriteString(block.Summary)
		_, _ = digest.WriteString(strconv.FormatInt(block.ModifiedAt.UnixNano(), 10))
		_, _ = digest.Write([]byte{0})
	}

	return strconv.FormatUint(digest.Sum64(), 16)
}

func (s *serviceImpl) ListRuns(ctx context.Context, listingID string, params gDto.QueryParams) (res dto.GetSyncRunsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListRuns")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = params.Order(model.FieldStartedAt, gDto.SortDirDesc, model.FieldChannelID); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := shared.FilterByFields(model.TableName, map[string]any{model.FieldListingID: listingID})

	total, err := s.runs.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sync runs")

		return res, fmt.Errorf("failed to count sync runs: %w", err)
	}

	runs, err := s.runs.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sync runs")

		return res, fmt.Errorf("failed to get sync runs: %w", err)
	}

	res.FromModels(runs, total, params.Limit)

	return res, nil
}
