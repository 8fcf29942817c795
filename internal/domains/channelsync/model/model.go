package model

import (
	"staysync/internal/domains/availability/reconciler"
	"time"
)

const (
	TableName  = "sync_runs"
	EntityName = "sync_run"

	FieldID        = "id"
	FieldListingID = "listing_id"
	FieldChannelID = "channel_id"
	FieldStartedAt = "started_at"
)

// SyncRun records one attempt to import a channel feed.
type SyncRun struct {
	ID                string    `db:"id"                 json:"id"`
	ListingID         string    `db:"listing_id"         json:"listing_id"`
	ChannelID         string    `db:"channel_id"         json:"channel_id"`
	StartedAt         time.Time `db:"started_at"         json:"started_at"`
	FinishedAt        time.Time `db:"finished_at"        json:"finished_at"`
	ItemsProcessed    int       `db:"items_processed"    json:"items_processed"`
	ConflictsFound    int       `db:"conflicts_found"    json:"conflicts_found"`
	ConflictsResolved int       `db:"conflicts_resolved" json:"conflicts_resolved"`
	Error             string    `db:"error"              json:"error"`
	// Partial is set when the listing budget ran out before the run completed.
	Partial bool `db:"partial" json:"partial"`
}

func (r SyncRun) Failed() bool {
	return r.Error != ""
}

// ConflictEvent is published for operator review whenever a sync finds overlapping reservations.
type ConflictEvent struct {
	RunID      string                `json:"run_id"`
	ListingID  string                `json:"listing_id"`
	ChannelID  string                `json:"channel_id"`
	DetectedAt time.Time             `json:"detected_at"`
	Conflicts  []reconciler.Conflict `json:"conflicts"`
}
