package service

import (
	"context"
	"fmt"
	"staysync/config"
	"staysync/infras/otel"
	"staysync/internal/domains/availability/model"
	"staysync/internal/domains/availability/reconciler"
	"staysync/internal/domains/availability/repository"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	"staysync/shared/failure"
	"staysync/shared/keylock"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Store owns the availability blocks of every listing.
type Store interface {
	// ReplaceChannelBlocks swaps the full set of blocks owned by channelID and returns how many were stored.
	ReplaceChannelBlocks(ctx context.Context, listingID, channelID string, blocks []model.Block) (int, error)
	UpsertInternalBlock(ctx context.Context, listingID, bookingID string, stay daterange.Range) (model.Block, error)
	RemoveInternalBlock(ctx context.Context, bookingID string) error
	QueryOverlapping(ctx context.Context, listingID string, window daterange.Range) ([]model.Block, error)
	// OccupancyRate is the share of nights in window covered by confirmed, authoritative blocks.
	OccupancyRate(ctx context.Context, listingID string, window daterange.Range) (float64, error)
	ListBlocks(ctx context.Context, listingID string) ([]model.Block, error)
	// Reconcile recomputes and persists authoritative flags for the listing.
	Reconcile(ctx context.Context, listingID string) (reconciler.Result, error)
}

type serviceImpl struct {
	repo  repository.Block
	locks *keylock.Table
	cfg   *config.Config
	otel  otel.Otel
	now   func() time.Time
}

func New(repo repository.Block, locks *keylock.Table, cfg *config.Config, otel otel.Otel) Store {
	return &serviceImpl{
		repo:  repo,
		locks: locks,
		cfg:   cfg,
		otel:  otel,
		now:   timezone.Now,
	}
}

func (s *serviceImpl) ReplaceChannelBlocks(ctx context.Context, listingID, channelID string, blocks []model.Block) (stored int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReplaceChannelBlocks")
	defer scope.End()
	defer scope.TraceIfError(err)

	if channelID == "" || channelID == model.SourceInternal {
		return 0, failure.BadRequestFromString("invalid channel id") // nolint:wrapcheck
	}

	unlock, err := s.locks.Lock(ctx, keylock.Key("store", listingID, channelID))
	if err != nil {
		return 0, fmt.Errorf("failed to lock channel blocks: %w", err)
	}
	defer unlock()

	// A reconcile in flight must not see the swap half way.
	unlockListing, err := s.locks.Lock(ctx, keylock.Key("reconcile", listingID))
	if err != nil {
		return 0, fmt.Errorf("failed to lock listing: %w", err)
	}
	defer unlockListing()

	existing, err := s.repo.ListBySource(ctx, listingID, channelID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Str("channel_id", channelID).Msg("failed to load channel blocks")

		return 0, fmt.Errorf("failed to load channel blocks: %w", err)
	}

	previous := make(map[string]model.Block, len(existing))
	for _, block := range existing {
		previous[block.ID] = block
	}

	now := s.now()
	source := model.Channel(channelID)
	seen := make(map[string]bool, len(blocks))
	replacement := make([]model.Block, 0, len(blocks))

	for _, block := range blocks {
		block.ID = model.BlockID(listingID, source, block.SourceReference)
		if seen[block.ID] {
			continue
		}

		seen[block.ID] = true

		block.ListingID = listingID
		block.Source = source.Column()
		block.Metadata = gModel.NewMetadata(constant.SystemActor, now)

		if old, ok := previous[block.ID]; ok {
			block.FirstSeenAt = old.FirstSeenAt
			block.Authoritative = old.Authoritative
			block.CreatedAt = old.CreatedAt
			block.CreatedBy = old.CreatedBy

			if sameContent(old, block) {
				block.Metadata = old.Metadata
			}
		} else {
			block.FirstSeenAt = now
			// Confirmed blocks stay out of occupancy and export until reconciled.
			block.Authoritative = !block.IsConfirmed()
		}

		replacement = append(replacement, block)
	}

	if err = s.repo.ReplaceSource(ctx, listingID, source.Column(), replacement); err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Str("channel_id", channelID).Msg("failed to replace channel blocks")

		return 0, fmt.Errorf("failed to replace channel blocks: %w", err)
	}

	return len(replacement), nil
}

func (s *serviceImpl) UpsertInternalBlock(ctx context.Context, listingID, bookingID string, stay daterange.Range) (block model.Block, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertInternalBlock")
	defer scope.End()
	defer scope.TraceIfError(err)

	if stay.Nights() == 0 {
		return block, failure.BadRequest(daterange.ErrEmptyRange) // nolint:wrapcheck
	}

	existing, err := s.repo.GetInternal(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get internal block")

		return block, fmt.Errorf("failed to get internal block: %w", err)
	}

	now := s.now()
	source := model.Internal(bookingID)

	block = model.Block{
		ID:              model.BlockID(listingID, source, bookingID),
		ListingID:       listingID,
		DateRangeStart:  stay.Start,
		DateRangeEnd:    stay.End,
		Source:          source.Column(),
		SourceReference: bookingID,
		Status:          model.StatusConfirmed,
		Summary:         "Reserved",
		Authoritative:   true,
		FirstSeenAt:     now,
		Metadata:        gModel.NewMetadata(constant.SystemActor, now),
	}

	if existing.ID != "" {
		block.FirstSeenAt = existing.FirstSeenAt
		block.CreatedAt = existing.CreatedAt
		block.CreatedBy = existing.CreatedBy
	}

	if err = s.repo.Upsert(ctx, block); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to upsert internal block")

		return model.Block{}, fmt.Errorf("failed to upsert internal block: %w", err)
	}

	return block, nil
}

func (s *serviceImpl) RemoveInternalBlock(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveInternalBlock")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.DeleteBySourceReference(ctx, model.SourceInternal, bookingID); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to remove internal block")

		return fmt.Errorf("failed to remove internal block: %w", err)
	}

	return nil
}

func (s *serviceImpl) QueryOverlapping(ctx context.Context, listingID string, window daterange.Range) (blocks []model.Block, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QueryOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	blocks, err = s.repo.ListOverlapping(ctx, listingID, window)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to query overlapping blocks")

		return nil, fmt.Errorf("failed to query overlapping blocks: %w", err)
	}

	return blocks, nil
}

func (s *serviceImpl) OccupancyRate(ctx context.Context, listingID string, window daterange.Range) (rate float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OccupancyRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	total := window.Nights()
	if total == 0 {
		return 0, failure.BadRequest(daterange.ErrEmptyRange) // nolint:wrapcheck
	}

	blocks, err := s.QueryOverlapping(ctx, listingID, window)
	if err != nil {
		return 0, err
	}

	occupied := map[time.Time]struct{}{}

	for _, block := range blocks {
		if !block.IsConfirmed() || !block.Authoritative {
			continue
		}

		overlap, ok := block.Range().Intersect(window)
		if !ok {
			continue
		}

		for _, night := range overlap.Days() {
			occupied[night] = struct{}{}
		}
	}

	return float64(len(occupied)) / float64(total), nil
}

func (s *serviceImpl) ListBlocks(ctx context.Context, listingID string) (blocks []model.Block, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBlocks")
	defer scope.End()
	defer scope.TraceIfError(err)

	blocks, err = s.repo.ListByListing(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to list blocks")

		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}

	return blocks, nil
}

func (s *serviceImpl) Reconcile(ctx context.Context, listingID string) (result reconciler.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	unlock, err := s.locks.Lock(ctx, keylock.Key("reconcile", listingID))
	if err != nil {
		return result, fmt.Errorf("failed to lock listing: %w", err)
	}
	defer unlock()

	blocks, err := s.ListBlocks(ctx, listingID)
	if err != nil {
		return result, err
	}

	result = reconciler.Reconcile(blocks)

	promote, demote := flagChanges(blocks, result.Demoted)
	if len(promote) == 0 && len(demote) == 0 {
		return result, nil
	}

	if err = s.repo.SetAuthoritative(ctx, listingID, promote, demote); err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to persist reconciliation")

		return result, fmt.Errorf("failed to persist reconciliation: %w", err)
	}

	if len(result.Conflicts) > 0 {
		log.Warn().Str("listing_id", listingID).Int("conflicts", len(result.Conflicts)).
			Strs("demoted", result.Demoted).Msg("overlapping reservations demoted")
	}

	return result, nil
}

// sameContent reports whether a re-fetched block carries what is already stored.
func sameContent(old, fresh model.Block) bool {
	return old.DateRangeStart.Equal(fresh.DateRangeStart) &&
		old.DateRangeEnd.Equal(fresh.DateRangeEnd) &&
		old.Status == fresh.Status &&
		old.Summary == fresh.Summary
}

// flagChanges lists the blocks of the snapshot whose authoritative flag has to flip.
func flagChanges(snapshot []model.Block, demoted []string) (promote, demote []string) {
	losers := make(map[string]bool, len(demoted))
	for _, id := range demoted {
		losers[id] = true
	}

	for _, block := range snapshot {
		want := !losers[block.ID]

		switch {
		case want && !block.Authoritative:
			promote = append(promote, block.ID)
		case !want && block.Authoritative:
			demote = append(demote, block.ID)
		}
	}

	return promote, demote
}
