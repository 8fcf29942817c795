package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"staysync/config"
	"staysync/infras/otel"
	availabilityModel "staysync/internal/domains/availability/model"
	availability "staysync/internal/domains/availability/service"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/model/dto"
	"staysync/internal/domains/booking/repository"
	"staysync/internal/domains/compliance"
	housekeepingModel "staysync/internal/domains/housekeeping/model"
	housekeepingDto "staysync/internal/domains/housekeeping/model/dto"
	housekeeping "staysync/internal/domains/housekeeping/service"
	listingModel "staysync/internal/domains/listing/model"
	listingRepository "staysync/internal/domains/listing/repository"
	"staysync/shared"
	"staysync/shared/cache"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	"staysync/shared/failure"
	"staysync/shared/keylock"
	"staysync/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const cacheGetBooking = "booking:get"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	// OnBookingTransition moves a booking from one status to another and applies the side effects on
	// availability, taxes and housekeeping. The stored status must equal from.
	OnBookingTransition(ctx context.Context, bookingID string, from, to model.Status) error
}

type serviceImpl struct {
	repo         repository.Booking
	listings     listingRepository.Listing
	store        availability.Store
	housekeeping housekeeping.Housekeeping
	cache        cache.RedisCache
	locks        *keylock.Table
	cfg          *config.Config
	otel         otel.Otel
	now          func() time.Time
}

func New(
	repo repository.Booking,
	listings listingRepository.Listing,
	store availability.Store,
	housekeepingService housekeeping.Housekeeping,
	redisCache cache.RedisCache,
	locks *keylock.Table,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		listings:     listings,
		store:        store,
		housekeeping: housekeepingService,
		cache:        redisCache,
		locks:        locks,
		cfg:          cfg,
		otel:         otel,
		now:          timezone.Now,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel(constant.SystemActor)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if booking.Stay().Nights() == 0 {
		return res, failure.BadRequest(daterange.ErrEmptyRange) // nolint:wrapcheck
	}

	if _, err = s.listing(ctx, booking.ListingID); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.booking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) booking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) listing(ctx context.Context, id string) (listingModel.Listing, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("listing_id", id).Msg("failed to get listing")

		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return listing, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return listing, nil
}

func (s *serviceImpl) OnBookingTransition(ctx context.Context, bookingID string, from, to model.Status) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OnBookingTransition")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !from.Valid() || !to.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown booking status in %s -> %s", from, to)) // nolint:wrapcheck
	}

	unlock, err := s.locks.Lock(ctx, keylock.Key("booking", bookingID))
	if err != nil {
		return fmt.Errorf("failed to lock booking: %w", err)
	}
	defer unlock()

	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return err
	}

	switch {
	case booking.Status != from:
		return &model.InvalidTransitionError{From: from, To: to, Reason: "booking is " + string(booking.Status)}
	case from.Terminal():
		return &model.InvalidTransitionError{From: from, To: to, Reason: "status is terminal"}
	case !from.CanTransitionTo(to):
		return &model.InvalidTransitionError{From: from, To: to, Reason: "transition not allowed"}
	}

	listing, err := s.listing(ctx, booking.ListingID)
	if err != nil {
		return err
	}

	update := dto.TransitionUpdate{Status: to}

	// undo reverts the calendar change when the status write does not land.
	var undo func(context.Context)

	switch to {
	case model.StatusConfirmed:
		update.TouristTax, update.TouristTaxMinor, undo, err = s.confirm(ctx, booking, listing)
	case model.StatusCancelled:
		undo, err = s.release(ctx, booking, listing, from)
	}

	if err != nil {
		return err
	}

	moved, err := s.repo.Transition(ctx, bookingID, from, shared.TransformFields(update, constant.SystemActor))
	if (err != nil || !moved) && undo != nil {
		undo(context.WithoutCancel(ctx))
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if !moved {
		return &model.InvalidTransitionError{From: from, To: to, Reason: "booking was changed by another writer"}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	if err := s.followUp(ctx, booking, listing, from, to); err != nil {
		return err
	}

	log.Info().Str("booking_id", bookingID).Str("from", string(from)).Str("to", string(to)).Msg("booking transitioned")

	return nil
}

// confirm checks the listing licence, blocks the stay and returns the tourist tax owed.
func (s *serviceImpl) confirm(ctx context.Context, booking model.Booking, listing listingModel.Listing) (float64, int64, func(context.Context), error) {
	today := daterange.Day(s.now().In(listing.Location()))

	if err := compliance.ValidateLicense(listing.Jurisdiction, listing.LicenseNumber, listing.LicenseExpiresAt, today); err != nil {
		log.Warn().Err(err).Str("listing_id", listing.ID).Msg("booking confirmation rejected by licence check")

		return 0, 0, nil, err //nolint:wrapcheck
	}

	tax, err := compliance.TouristTax(listing.TouristTaxRule.TaxRule, compliance.Stay{
		Nights:             booking.Stay().Nights(),
		Adults:             booking.Adults,
		Children:           booking.Children,
		AccommodationTotal: booking.TotalAmount,
	})
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to compute tourist tax: %w", err)
	}

	if _, err := s.store.UpsertInternalBlock(ctx, listing.ID, booking.ID, booking.Stay()); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to block stay: %w", err)
	}

	s.reconcile(ctx, listing.ID)

	undo := func(ctx context.Context) {
		if err := s.store.RemoveInternalBlock(ctx, booking.ID); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to release stay of unconfirmed booking")
		}

		s.reconcile(ctx, listing.ID)
	}

	return tax.Amount, tax.AmountMinor, undo, nil
}

// release frees the nights of a cancelled booking. Only a confirmed booking holds a block to restore.
func (s *serviceImpl) release(ctx context.Context, booking model.Booking, listing listingModel.Listing, from model.Status) (func(context.Context), error) {
	if err := s.store.RemoveInternalBlock(ctx, booking.ID); err != nil {
		return nil, fmt.Errorf("failed to release stay: %w", err)
	}

	s.reconcile(ctx, listing.ID)

	if from != model.StatusConfirmed {
		return nil, nil
	}

	undo := func(ctx context.Context) {
		if _, err := s.store.UpsertInternalBlock(ctx, listing.ID, booking.ID, booking.Stay()); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to restore stay of uncancelled booking")
		}

		s.reconcile(ctx, listing.ID)
	}

	return undo, nil
}

// followUp schedules the housekeeping a transition needs once its status is stored.
func (s *serviceImpl) followUp(ctx context.Context, booking model.Booking, listing listingModel.Listing, from, to model.Status) error {
	req := housekeepingDto.ScheduleRequest{
		ListingID: listing.ID,
		BookingID: booking.ID,
		Bedrooms:  listing.Bedrooms,
		Bathrooms: listing.Bathrooms,
	}

	switch {
	case to == model.StatusCheckedOut:
		req.Kind = housekeepingModel.KindTurnover
		req.ScheduledFor = booking.CheckOut
	case to == model.StatusCancelled && from == model.StatusConfirmed:
		window := time.Duration(s.cfg.Housekeeping.ShortNoticeHours) * time.Hour
		if booking.CheckIn.Sub(s.now()) > window {
			return nil
		}

		req.Kind = housekeepingModel.KindShortNoticeReset
		req.ScheduledFor = booking.CheckIn
	default:
		return nil
	}

	if _, err := s.housekeeping.Schedule(ctx, req); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("kind", string(req.Kind)).Msg("failed to schedule housekeeping")

		return fmt.Errorf("failed to schedule %s: %w", req.Kind, err)
	}

	return nil
}

// reconcile refreshes the listing's authoritative view after an internal block changed.
// Failures are logged; the next channel sync reconciles again.
func (s *serviceImpl) reconcile(ctx context.Context, listingID string) {
	if _, err := s.store.Reconcile(ctx, listingID); err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to reconcile after booking change")
	}

	shared.InvalidateCaches(ctx, s.cache, availabilityModel.ExportCachePrefix(listingID))
}
