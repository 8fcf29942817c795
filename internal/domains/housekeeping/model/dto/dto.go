package dto

import (
	"staysync/internal/domains/housekeeping/model"
	"staysync/shared"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/timezone"
	"time"
)

// ScheduleRequest describes a cleaning job derived from a booking transition.
type ScheduleRequest struct {
	ListingID    string
	BookingID    string
	Kind         model.Kind
	ScheduledFor time.Time
	Bedrooms     int
	Bathrooms    int
}

type TaskResponse struct {
	ID               string `json:"id"`
	ListingID        string `json:"listing_id"`
	BookingID        string `json:"booking_id"`
	Kind             string `json:"kind"`
	Status           string `json:"status"`
	ScheduledFor     string `json:"scheduled_for"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	StartedAt        string `json:"started_at,omitempty"`
	CompletedAt      string `json:"completed_at,omitempty"`
	gDto.Metadata
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

func (r *TaskResponse) FromModel(task model.Task) {
	r.ID = task.ID
	r.ListingID = task.ListingID
	r.BookingID = task.BookingID
	r.Kind = string(task.Kind)
	r.Status = string(task.Status)
	r.ScheduledFor = task.ScheduledFor.Format(constant.DayFormat)
	r.EstimatedMinutes = task.EstimatedMinutes
	r.StartedAt = formatOptional(task.StartedAt)
	r.CompletedAt = formatOptional(task.CompletedAt)
	r.Metadata.FromModel(task.Metadata)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTasksResponse) FromModels(tasks []model.Task, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tasks = make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		r.Tasks[i].FromModel(task)
	}
}
