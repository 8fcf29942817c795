package dto

import (
	"staysync/internal/domains/channelsync/model"
	"staysync/shared"
	"staysync/shared/constant"
	"staysync/shared/timezone"
)

type SyncRunResponse struct {
	ID                string `json:"id"`
	ChannelID         string `json:"channel_id"`
	StartedAt         string `json:"started_at"`
	FinishedAt        string `json:"finished_at"`
	ItemsProcessed    int    `json:"items_processed"`
	ConflictsFound    int    `json:"conflicts_found"`
	ConflictsResolved int    `json:"conflicts_resolved"`
	Error             string `json:"error,omitempty"`
	Partial           bool   `json:"partial"`
}

func (r *SyncRunResponse) FromModel(run model.SyncRun) {
	r.ID = run.ID
	r.ChannelID = run.ChannelID
	r.StartedAt = timezone.Format(run.StartedAt, constant.DateFormat)
	r.FinishedAt = timezone.Format(run.FinishedAt, constant.DateFormat)
	r.ItemsProcessed = run.ItemsProcessed
	r.ConflictsFound = run.ConflictsFound
	r.ConflictsResolved = run.ConflictsResolved
	r.Error = run.Error
	r.Partial = run.Partial
}

// SyncSummary aggregates the runs of one sync request.
type SyncSummary struct {
	ListingID         string            `json:"listing_id"`
	Runs              []SyncRunResponse `json:"runs"`
	ItemsProcessed    int               `json:"items_processed"`
	ConflictsFound    int               `json:"conflicts_found"`
	ConflictsResolved int               `json:"conflicts_resolved"`
	Failed            int               `json:"failed"`
	Partial           bool              `json:"partial"`
}

func (s *SyncSummary) Add(run model.SyncRun) {
	res := SyncRunResponse{}
	res.FromModel(run)

	s.Runs = append(s.Runs, res)
	s.ItemsProcessed += run.ItemsProcessed
	s.ConflictsFound += run.ConflictsFound
	s.ConflictsResolved += run.ConflictsResolved

	if run.Failed() {
		s.Failed++
	}

	if run.Partial {
		s.Partial = true
	}
}

type GetSyncRunsResponse struct {
	Runs      []SyncRunResponse `json:"runs"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetSyncRunsResponse) FromModels(models []model.SyncRun, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Runs = make([]SyncRunResponse, len(models))
	for i, mod := range models {
		r.Runs[i].FromModel(mod)
	}
}

type EnqueueResponse struct {
	Enqueued int `json:"enqueued"`
}

type SyncChannelRequest struct {
	// FeedURL replaces the configured import URL for this run only.
	FeedURL string `json:"feed_url" validate:"omitempty,url"`
}
