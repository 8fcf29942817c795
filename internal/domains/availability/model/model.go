package model

import (
	"cmp"
	"staysync/shared/daterange"
	"staysync/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "availability_blocks"
	EntityName = "availability_block"

	FieldID              = "id"
	FieldListingID       = "listing_id"
	FieldDateRangeStart  = "date_range_start"
	FieldDateRangeEnd    = "date_range_end"
	FieldSource          = "source"
	FieldSourceReference = "source_reference"
	FieldStatus          = "status"
	FieldAuthoritative   = "authoritative"
	FieldFirstSeenAt     = "first_seen_at"
)

// SourceInternal is the persisted source value of blocks owned by a booking.
const SourceInternal = "internal-booking"

const exportCacheKey = "calendar:export"

// ExportCachePrefix prefixes the cache keys of every rendered feed of the listing.
func ExportCachePrefix(listingID string) string {
	return exportCacheKey + ":" + listingID + ":"
}

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusTentative Status = "tentative"
	StatusBlocked   Status = "blocked"
)

type SourceKind int

const (
	SourceKindInternal SourceKind = iota + 1
	SourceKindChannel
)

// BlockSource identifies who owns a block: a booking, or an external channel.
type BlockSource struct {
	Kind SourceKind
	// ID is the booking id for internal sources and the channel id otherwise.
	ID string
}

func Internal(bookingID string) BlockSource {
	return BlockSource{Kind: SourceKindInternal, ID: bookingID}
}

func Channel(channelID string) BlockSource {
	return BlockSource{Kind: SourceKindChannel, ID: channelID}
}

func (s BlockSource) IsInternal() bool {
	return s.Kind == SourceKindInternal
}

// Column is the value stored in the source column.
func (s BlockSource) Column() string {
	if s.IsInternal() {
		return SourceInternal
	}

	return s.ID
}

type Block struct {
	ID              string    `db:"id"               json:"id"`
	ListingID       string    `db:"listing_id"       json:"listing_id"`
	DateRangeStart  time.Time `db:"date_range_start" json:"date_range_start"`
	DateRangeEnd    time.Time `db:"date_range_end"   json:"date_range_end"`
	Source          string    `db:"source"           json:"source"`
	SourceReference string    `db:"source_reference" json:"source_reference"`
	Status          Status    `db:"status"           json:"status"`
	Summary         string    `db:"summary"          json:"summary"`
	Authoritative   bool      `db:"authoritative"    json:"authoritative"`
	FirstSeenAt     time.Time `db:"first_seen_at"    json:"first_seen_at"`
	model.Metadata
}

func (b Block) Range() daterange.Range {
	return daterange.Range{Start: b.DateRangeStart, End: b.DateRangeEnd}
}

func (b Block) BlockSource() BlockSource {
	if b.Source == SourceInternal {
		return Internal(b.SourceReference)
	}

	return Channel(b.Source)
}

func (b Block) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

var blockNamespace = uuid.MustParse("8f6b7a39-3c1e-4d53-9a57-5f0c2a1e4b11")

// BlockID derives a stable id so that re-importing the same event yields the same row.
func BlockID(listingID string, source BlockSource, reference string) string {
	return uuid.NewSHA1(blockNamespace, []byte(listingID+"|"+source.Column()+"|"+reference)).String()
}

// ComparePrecedence orders blocks by who wins a conflict. A negative result means a wins.
// Internal bookings beat channels, then the earliest fetched channel block wins,
// then source id and reference break ties.
func ComparePrecedence(a, b Block) int {
	aInternal := a.BlockSource().IsInternal()
	bInternal := b.BlockSource().IsInternal()

	switch {
	case aInternal && !bInternal:
		return -1
	case !aInternal && bInternal:
		return 1
	}

	if !aInternal {
		if c := a.FirstSeenAt.Compare(b.FirstSeenAt); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(a.Source, b.Source); c != 0 {
		return c
	}

	if c := cmp.Compare(a.SourceReference, b.SourceReference); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}
