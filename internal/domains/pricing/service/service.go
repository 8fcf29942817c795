package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"staysync/config"
	"staysync/infras/otel"
	availability "staysync/internal/domains/availability/service"
	listingRepository "staysync/internal/domains/listing/repository"
	"staysync/internal/domains/pricing/engine"
	"staysync/internal/domains/pricing/model"
	"staysync/internal/domains/pricing/model/dto"
	"staysync/internal/domains/pricing/repository"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	"staysync/shared/failure"
	sharedModel "staysync/shared/model"
	"staysync/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (engine.Quote, error)
	// ApplyPricingStrategy prices every night of window for the listing and stores the rates.
	ApplyPricingStrategy(ctx context.Context, listingID, strategyID string, window daterange.Range) (dto.ApplyStrategyResponse, error)
}

type serviceImpl struct {
	rates      repository.RateOverride
	strategies repository.Strategies
	listings   listingRepository.Listing
	store      availability.Store
	cfg        *config.Config
	otel       otel.Otel
	now        func() time.Time
}

func New(
	rates repository.RateOverride,
	strategies repository.Strategies,
	listings listingRepository.Listing,
	store availability.Store,
	cfg *config.Config,
	otel otel.Otel,
) Pricing {
	return &serviceImpl{
		rates:      rates,
		strategies: strategies,
		listings:   listings,
		store:      store,
		cfg:        cfg,
		otel:       otel,
		now:        timezone.Now,
	}
}

func (s *serviceImpl) strategy(id string) (model.Strategy, error) {
	strategy, err := s.strategies.Get(id)
	if errors.Is(err, model.ErrUnknownStrategy) {
		return strategy, failure.NotFound("pricing strategy not found") // nolint:wrapcheck
	}

	return strategy, err
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (quote engine.Quote, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	night, err := time.Parse(constant.DayFormat, req.Date)
	if err != nil {
		return quote, failure.BadRequest(err) // nolint:wrapcheck
	}

	in := engine.Input{
		BasePrice:        req.BasePrice,
		Date:             night,
		OccupancyRate:    req.OccupancyRate,
		DaysUntilCheckIn: req.DaysUntilCheckIn,
		MinimumStay:      req.MinimumStay,
		StayLength:       req.StayLength,
		Season:           model.SeasonType(req.Season),
	}

	if req.StrategyID != "" {
		strategy, err := s.strategy(req.StrategyID)
		if err != nil {
			return quote, err
		}

		if in.Season == "" {
			in.Season = strategy.SeasonFor(night)
		}

		in.Overrides, err = strategy.SeasonOverrides()
		if err != nil {
			return quote, fmt.Errorf("failed to read strategy overrides: %w", err)
		}
	}

	return engine.CalculatePrice(in)
}

func (s *serviceImpl) ApplyPricingStrategy(
	ctx context.Context,
	listingID, strategyID string,
	window daterange.Range,
) (res dto.ApplyStrategyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyPricingStrategy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if window.Nights() == 0 {
		return res, failure.BadRequest(daterange.ErrEmptyRange) // nolint:wrapcheck
	}

	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == "" {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	strategy, err := s.strategy(strategyID)
	if err != nil {
		return res, err
	}

	now := s.now()
	today := daterange.Day(now.In(listing.Location()))

	if window.Start.Before(today) {
		return res, failure.BadRequestFromString("cannot price nights in the past") // nolint:wrapcheck
	}

	if horizon := today.AddDate(0, 0, s.cfg.Sync.HorizonDays); window.End.After(horizon) {
		return res, failure.BadRequestFromString(fmt.Sprintf("window ends after the %d day horizon", s.cfg.Sync.HorizonDays)) // nolint:wrapcheck
	}

	overrides, err := strategy.SeasonOverrides()
	if err != nil {
		return res, fmt.Errorf("failed to read strategy overrides: %w", err)
	}

	occupancyDays := strategy.OccupancyWindowDays
	if occupancyDays <= 0 {
		occupancyDays = s.cfg.Pricing.OccupancyWindowDays
	}

	rates := make([]model.RateOverride, 0, window.Nights())
	res.Rates = make([]dto.RateResponse, 0, window.Nights())

	for _, night := range window.Days() {
		occupancy, err := s.store.OccupancyRate(ctx, listingID, daterange.Range{Start: night, End: night.AddDate(0, 0, occupancyDays)})
		if err != nil {
			log.Error().Err(err).Str("listing_id", listingID).Msg("failed to compute occupancy")

			return res, fmt.Errorf("failed to compute occupancy: %w", err)
		}

		quote, err := engine.CalculatePrice(engine.Input{
			BasePrice:        listing.BasePrice,
			Date:             night,
			OccupancyRate:    occupancy,
			DaysUntilCheckIn: int(night.Sub(today).Hours() / constant.HoursInDay),
			MinimumStay:      listing.MinimumStay,
			Season:           strategy.SeasonFor(night),
			Overrides:        overrides,
		})
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		breakdown, err := json.Marshal(quote.Breakdown)
		if err != nil {
			return res, fmt.Errorf("failed to encode breakdown: %w", err)
		}

		rate := model.RateOverride{
			ID:         uuid.NewString(),
			ListingID:  listingID,
			Night:      night,
			Price:      quote.Price,
			PriceMinor: quote.PriceMinor,
			StrategyID: strategy.ID,
			Breakdown:  string(breakdown),
			Metadata:   sharedModel.NewMetadata(constant.SystemActor, now),
		}
		rates = append(rates, rate)

		line := dto.RateResponse{}
		line.FromModel(rate, quote.Breakdown)
		res.Rates = append(res.Rates, line)
	}

	if err := s.rates.ReplaceRange(ctx, listingID, window, rates); err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to store rate overrides")

		return res, fmt.Errorf("failed to store rate overrides: %w", err)
	}

	res.ListingID = listingID
	res.StrategyID = strategy.ID
	res.NightsUpdated = len(rates)

	log.Info().Str("listing_id", listingID).Str("strategy_id", strategy.ID).Int("nights", len(rates)).Msg("pricing strategy applied")

	return res, nil
}
