package model

import (
	"staysync/shared/model"
	"time"
)

const (
	TableName  = "housekeeping_tasks"
	EntityName = "housekeeping_task"

	FieldID           = "id"
	FieldListingID    = "listing_id"
	FieldBookingID    = "booking_id"
	FieldKind         = "kind"
	FieldStatus       = "status"
	FieldScheduledFor = "scheduled_for"
	FieldStartedAt    = "started_at"
	FieldCompletedAt  = "completed_at"
)

type Kind string

const (
	KindTurnover         Kind = "turnover"
	KindShortNoticeReset Kind = "short_notice_reset"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// next lists the status each status may advance to.
var next = map[Status]Status{
	StatusPending:    StatusInProgress,
	StatusInProgress: StatusCompleted,
}

func (s Status) CanAdvanceTo(to Status) bool {
	return next[s] == to
}

type Task struct {
	ID               string     `db:"id"                json:"id"`
	ListingID        string     `db:"listing_id"        json:"listing_id"`
	BookingID        string     `db:"booking_id"        json:"booking_id"`
	Kind             Kind       `db:"kind"              json:"kind"`
	Status           Status     `db:"status"            json:"status"`
	ScheduledFor     time.Time  `db:"scheduled_for"     json:"scheduled_for"`
	EstimatedMinutes int        `db:"estimated_minutes" json:"estimated_minutes"`
	StartedAt        *time.Time `db:"started_at"        json:"started_at"`
	CompletedAt      *time.Time `db:"completed_at"      json:"completed_at"`
	model.Metadata
}

// TaskEvent is published whenever a task is scheduled or changes status.
type TaskEvent struct {
	TaskID           string    `json:"task_id"`
	ListingID        string    `json:"listing_id"`
	BookingID        string    `json:"booking_id"`
	Kind             Kind      `json:"kind"`
	Status           Status    `json:"status"`
	ScheduledFor     time.Time `json:"scheduled_for"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func (t Task) Event(at time.Time) TaskEvent {
	return TaskEvent{
		TaskID:           t.ID,
		ListingID:        t.ListingID,
		BookingID:        t.BookingID,
		Kind:             t.Kind,
		Status:           t.Status,
		ScheduledFor:     t.ScheduledFor,
		EstimatedMinutes: t.EstimatedMinutes,
		OccurredAt:       at,
	}
}
