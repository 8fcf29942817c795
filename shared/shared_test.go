package shared_test

import (
	"context"
	"errors"
	"staysync/shared"
	"staysync/shared/cache/mocks"
	"staysync/shared/constant"
	"staysync/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no runs", total: 0, limit: 20, want: 1},
		{name: "no limit", total: 45, limit: 0, want: 1},
		{name: "negative limit", total: 45, limit: -1, want: 1},
		{name: "exact pages", total: 40, limit: 20, want: 2},
		{name: "partial last page", total: 41, limit: 20, want: 3},
		{name: "fewer than a page", total: 3, limit: 20, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type bookingUpdate struct {
	Status    string     `db:"status"`
	Guests    int        `db:"guests"`
	CheckOut  *time.Time `db:"check_out"`
	Note      string
	Projected string `db:"-"`
}

func TestTransformFields(t *testing.T) {
	checkOut := time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		data any
		want map[string]any
	}{
		{
			name: "only non zero tagged fields",
			data: bookingUpdate{Status: "confirmed", Note: "late arrival", Projected: "x"},
			want: map[string]any{"status": "confirmed"},
		},
		{
			name: "pointer input",
			data: &bookingUpdate{Guests: 3, CheckOut: &checkOut},
			want: map[string]any{"guests": 3, "check_out": &checkOut},
		},
		{
			name: "nothing set",
			data: bookingUpdate{},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.TransformFields(tt.data, constant.SystemActor)

			assert.Equal(t, constant.SystemActor, got[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, got[constant.FieldModifiedAt])

			delete(got, constant.FieldModifiedAt)
			delete(got, constant.FieldModifiedBy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByFields(t *testing.T) {
	group := shared.FilterByFields("housekeeping_tasks", map[string]any{
		"kind":       "turnover",
		"booking_id": "bk-1",
	})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(housekeeping_tasks.booking_id = :booking_id AND housekeeping_tasks.kind = :kind)", where)
	assert.Equal(t, map[string]any{"booking_id": "bk-1", "kind": "turnover"}, args)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("bk-1", "id", "bookings")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{Field: "id", Value: "bk-1", Operator: dto.FilterOperatorEq, Table: "bookings"}, group.Filters[0])

	where, args := group.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "bk-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		parts  []string
		want   string
	}{
		{name: "prefix only", prefix: "calendar:export", want: "calendar:export"},
		{name: "single part", prefix: "calendar:export", parts: []string{"listing-1"}, want: "calendar:export:listing-1"},
		{name: "empty parts skipped", prefix: "limiter", parts: []string{"10.0.0.1", ""}, want: "limiter:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.BuildCacheKey(tt.prefix, tt.parts...))
		})
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "calendar:export:listing-1:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "calendar:export:listing-1:")

	redisCache.EXPECT().Clear(gomock.Any(), "calendar:export:listing-2:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "calendar:export:listing-2:")
}
