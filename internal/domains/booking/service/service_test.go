package service_test

import (
	"context"
	"errors"
	"net/http"
	"staysync/config"
	otelMocks "staysync/infras/otel/mocks"
	availabilityRepository "staysync/internal/domains/availability/repository"
	availability "staysync/internal/domains/availability/service"
	"staysync/internal/domains/booking/mocks"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/model/dto"
	"staysync/internal/domains/booking/service"
	"staysync/internal/domains/compliance"
	housekeepingMocks "staysync/internal/domains/housekeeping/mocks"
	housekeepingModel "staysync/internal/domains/housekeeping/model"
	housekeepingDto "staysync/internal/domains/housekeeping/model/dto"
	listingMocks "staysync/internal/domains/listing/mocks"
	listingModel "staysync/internal/domains/listing/model"
	cacheMocks "staysync/shared/cache/mocks"
	"staysync/shared/failure"
	"staysync/shared/keylock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	checkIn  = time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut = time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo         *mocks.MockBooking
	listings     *listingMocks.MockListing
	housekeeping *housekeepingMocks.MockHousekeeping
	store        availability.Store
	service      service.Booking
}

func setup(t *testing.T, now time.Time) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Housekeeping.ShortNoticeHours = 48
	cfg.Cache.TTL = 60

	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	locks := keylock.New()
	f := fixture{
		repo:         mocks.NewMockBooking(ctrl),
		listings:     listingMocks.NewMockListing(ctrl),
		housekeeping: housekeepingMocks.NewMockHousekeeping(ctrl),
		store:        availability.New(availabilityRepository.NewMemory(), locks, cfg, otelMocks.NewOtel()),
	}

	f.service = service.New(f.repo, f.listings, f.store, f.housekeeping, redisCache, locks, cfg, otelMocks.NewOtel())
	service.SetNow(f.service, func() time.Time { return now })

	return f
}

func booking(status model.Status) model.Booking {
	return model.Booking{
		ID:          "booking-1",
		ListingID:   "listing-1",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Adults:      2,
		Children:    1,
		TotalAmount: 300,
		Status:      status,
	}
}

func listing() listingModel.Listing {
	return listingModel.Listing{
		ID:        "listing-1",
		Bedrooms:  2,
		Bathrooms: 1,
		TouristTaxRule: listingModel.TaxRule{TaxRule: compliance.TaxRule{
			Basis: compliance.TaxPerPersonPerNight, Amount: 2.5, ChildExempt: true,
		}},
	}
}

func TestBooking_Confirm(t *testing.T) {
	ctx := context.Background()
	f := setup(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
	f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
	f.repo.EXPECT().Transition(gomock.Any(), "booking-1", model.StatusPending, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ model.Status, fields map[string]any) (bool, error) {
			assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
			// 2 adults x 3 nights x 2.50, the child is exempt.
			assert.InDelta(t, 15.0, fields[model.FieldTouristTax], 0.001)
			assert.Equal(t, int64(1500), fields[model.FieldTouristTaxMinor])

			return true, nil
		})

	require.NoError(t, f.service.OnBookingTransition(ctx, "booking-1", model.StatusPending, model.StatusConfirmed))

	blocks, err := f.store.ListBlocks(ctx, "listing-1")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].BlockSource().IsInternal())
	assert.True(t, blocks[0].Authoritative)
	assert.Equal(t, checkIn, blocks[0].DateRangeStart)
	assert.Equal(t, checkOut, blocks[0].DateRangeEnd)
}

func TestBooking_ConfirmRejectsInvalidLicense(t *testing.T) {
	ctx := context.Background()
	f := setup(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))

	unlicensed := listing()
	unlicensed.Jurisdiction = "US-CA-SF"
	unlicensed.LicenseNumber = "12345"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
	f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(unlicensed, nil)

	err := f.service.OnBookingTransition(ctx, "booking-1", model.StatusPending, model.StatusConfirmed)
	require.Error(t, err)
	assert.ErrorIs(t, err, compliance.ErrInvalidLicense)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

	blocks, err := f.store.ListBlocks(ctx, "listing-1")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestBooking_Cancel(t *testing.T) {
	tests := []struct {
		name          string
		from          model.Status
		now           time.Time
		wantScheduled bool
	}{
		{
			name:          "confirmed booking cancelled a day before check-in",
			from:          model.StatusConfirmed,
			now:           checkIn.Add(-24 * time.Hour),
			wantScheduled: true,
		},
		{
			name: "confirmed booking cancelled a month ahead",
			from: model.StatusConfirmed,
			now:  checkIn.AddDate(0, -1, 0),
		},
		{
			name: "pending booking cancelled at short notice",
			from: model.StatusPending,
			now:  checkIn.Add(-24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := setup(t, tt.now)

			if tt.from == model.StatusConfirmed {
				_, err := f.store.UpsertInternalBlock(ctx, "listing-1", "booking-1", booking(tt.from).Stay())
				require.NoError(t, err)
			}

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(tt.from), nil)
			f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
			f.repo.EXPECT().Transition(gomock.Any(), "booking-1", tt.from, gomock.Any()).Return(true, nil)

			if tt.wantScheduled {
				f.housekeeping.EXPECT().Schedule(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req housekeepingDto.ScheduleRequest) (housekeepingModel.Task, error) {
						assert.Equal(t, housekeepingModel.KindShortNoticeReset, req.Kind)
						assert.Equal(t, checkIn, req.ScheduledFor)

						return housekeepingModel.Task{ID: "task-1"}, nil
					})
			}

			require.NoError(t, f.service.OnBookingTransition(ctx, "booking-1", tt.from, model.StatusCancelled))

			blocks, err := f.store.ListBlocks(ctx, "listing-1")
			require.NoError(t, err)
			assert.Empty(t, blocks)
		})
	}
}

func TestBooking_CheckOutSchedulesTurnover(t *testing.T) {
	f := setup(t, checkOut.Add(10*time.Hour))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusCheckedIn), nil)
	f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
	f.housekeeping.EXPECT().Schedule(gomock.Any(), housekeepingDto.ScheduleRequest{
		ListingID:    "listing-1",
		BookingID:    "booking-1",
		Kind:         housekeepingModel.KindTurnover,
		ScheduledFor: checkOut,
		Bedrooms:     2,
		Bathrooms:    1,
	}).Return(housekeepingModel.Task{ID: "task-1"}, nil).Times(1)
	f.repo.EXPECT().Transition(gomock.Any(), "booking-1", model.StatusCheckedIn, gomock.Any()).Return(true, nil)

	require.NoError(t, f.service.OnBookingTransition(context.Background(), "booking-1", model.StatusCheckedIn, model.StatusCheckedOut))
}

func TestBooking_TransitionLosesRace(t *testing.T) {
	f := setup(t, checkIn.Add(15*time.Hour))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)
	f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
	f.repo.EXPECT().Transition(gomock.Any(), "booking-1", model.StatusConfirmed, gomock.Any()).Return(false, nil)

	err := f.service.OnBookingTransition(context.Background(), "booking-1", model.StatusConfirmed, model.StatusCheckedIn)
	require.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBooking_StatusWriteFailureRevertsCalendar(t *testing.T) {
	tests := []struct {
		name       string
		from       model.Status
		to         model.Status
		moved      bool
		writeErr   error
		wantBlocks int
		wantErr    error
	}{
		{
			name:     "confirm with database down",
			from:     model.StatusPending,
			to:       model.StatusConfirmed,
			writeErr: errors.New("db down"),
		},
		{
			name:    "confirm loses the race",
			from:    model.StatusPending,
			to:      model.StatusConfirmed,
			wantErr: model.ErrInvalidTransition,
		},
		{
			name:       "cancel with database down",
			from:       model.StatusConfirmed,
			to:         model.StatusCancelled,
			writeErr:   errors.New("db down"),
			wantBlocks: 1,
		},
		{
			name:       "cancel loses the race",
			from:       model.StatusConfirmed,
			to:         model.StatusCancelled,
			wantBlocks: 1,
			wantErr:    model.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			// a day before check-in, so a landed cancellation would also schedule a reset
			f := setup(t, checkIn.Add(-24*time.Hour))

			if tt.from == model.StatusConfirmed {
				_, err := f.store.UpsertInternalBlock(ctx, "listing-1", "booking-1", booking(tt.from).Stay())
				require.NoError(t, err)
			}

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(tt.from), nil)
			f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
			f.repo.EXPECT().Transition(gomock.Any(), "booking-1", tt.from, gomock.Any()).Return(tt.moved, tt.writeErr)

			err := f.service.OnBookingTransition(ctx, "booking-1", tt.from, tt.to)
			require.Error(t, err)

			if tt.writeErr != nil {
				assert.ErrorIs(t, err, tt.writeErr)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			blocks, err := f.store.ListBlocks(ctx, "listing-1")
			require.NoError(t, err)
			require.Len(t, blocks, tt.wantBlocks)

			for _, block := range blocks {
				assert.True(t, block.BlockSource().IsInternal())
				assert.True(t, block.Authoritative)
				assert.Equal(t, checkIn, block.DateRangeStart)
				assert.Equal(t, checkOut, block.DateRangeEnd)
			}
		})
	}
}

func TestBooking_HousekeepingFailureAfterCheckOut(t *testing.T) {
	f := setup(t, checkOut.Add(10*time.Hour))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusCheckedIn), nil)
	f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
	f.repo.EXPECT().Transition(gomock.Any(), "booking-1", model.StatusCheckedIn, gomock.Any()).Return(true, nil)
	f.housekeeping.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return(housekeepingModel.Task{}, errors.New("queue full"))

	err := f.service.OnBookingTransition(context.Background(), "booking-1", model.StatusCheckedIn, model.StatusCheckedOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule turnover")
}

func TestBooking_RejectedTransitions(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.Booking
		from     model.Status
		to       model.Status
		wantCode int
		wantIs   error
	}{
		{
			name:     "stored status differs",
			stored:   booking(model.StatusConfirmed),
			from:     model.StatusPending,
			to:       model.StatusConfirmed,
			wantCode: http.StatusConflict,
			wantIs:   model.ErrInvalidTransition,
		},
		{
			name:     "terminal status",
			stored:   booking(model.StatusCancelled),
			from:     model.StatusCancelled,
			to:       model.StatusConfirmed,
			wantCode: http.StatusConflict,
			wantIs:   model.ErrInvalidTransition,
		},
		{
			name:     "skipping check-in",
			stored:   booking(model.StatusConfirmed),
			from:     model.StatusConfirmed,
			to:       model.StatusCheckedOut,
			wantCode: http.StatusConflict,
			wantIs:   model.ErrInvalidTransition,
		},
		{
			name:     "unknown booking",
			from:     model.StatusPending,
			to:       model.StatusConfirmed,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, checkIn.AddDate(0, -1, 0))

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			err := f.service.OnBookingTransition(context.Background(), "booking-1", tt.from, tt.to)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestBooking_UnknownStatus(t *testing.T) {
	f := setup(t, checkIn)

	err := f.service.OnBookingTransition(context.Background(), "booking-1", model.Status("archived"), model.StatusConfirmed)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBooking_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "stored as pending",
			req: dto.CreateBookingRequest{
				ListingID: "listing-1", GuestName: "Ana", CheckIn: "2026-07-10", CheckOut: "2026-07-13", Adults: 2,
			},
			setupMock: func(f fixture) {
				f.listings.EXPECT().Get(gomock.Any(), "listing-1").Return(listing(), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
					assert.Equal(t, model.StatusPending, b.Status)

					return nil
				})
			},
		},
		{
			name: "checkout before check-in",
			req: dto.CreateBookingRequest{
				ListingID: "listing-1", GuestName: "Ana", CheckIn: "2026-07-13", CheckOut: "2026-07-10", Adults: 2,
			},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown listing",
			req: dto.CreateBookingRequest{
				ListingID: "listing-9", GuestName: "Ana", CheckIn: "2026-07-10", CheckOut: "2026-07-13", Adults: 2,
			},
			setupMock: func(f fixture) {
				f.listings.EXPECT().Get(gomock.Any(), "listing-9").Return(listingModel.Listing{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, checkIn.AddDate(0, -1, 0))
			tt.setupMock(f)

			res, err := f.service.Create(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 3, res.Nights)
			assert.Equal(t, string(model.StatusPending), res.Status)
		})
	}
}
