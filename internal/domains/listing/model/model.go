package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"staysync/internal/domains/compliance"
	"staysync/shared/model"
	"staysync/shared/timezone"
	"time"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID = "id"
)

const (
	ChannelTableName  = "channel_syncs"
	ChannelEntityName = "channel_sync"

	FieldChannelID      = "channel_id"
	FieldListingID      = "listing_id"
	FieldExportToken    = "export_token"
	FieldImportURL      = "import_url"
	FieldActive         = "active"
	FieldLastSyncedAt   = "last_synced_at"
	FieldLastSyncStatus = "last_sync_status"
	FieldLastSyncError  = "last_sync_error"
)

type SyncStatus string

const (
	SyncStatusNever   SyncStatus = "never"
	SyncStatusOK      SyncStatus = "ok"
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusPartial SyncStatus = "partial"
)

// TaxRule stores a compliance.TaxRule as JSON.
type TaxRule struct {
	compliance.TaxRule
}

func (r TaxRule) Value() (driver.Value, error) {
	return json.Marshal(r.TaxRule)
}

func (r *TaxRule) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		r.TaxRule = compliance.TaxRule{}

		return nil
	case []byte:
		return json.Unmarshal(value, &r.TaxRule)
	case string:
		return json.Unmarshal([]byte(value), &r.TaxRule)
	default:
		return errors.New("unsupported tourist tax rule type")
	}
}

type Listing struct {
	ID               string     `db:"id"                 json:"id"`
	CompanyID        string     `db:"company_id"         json:"company_id"`
	Name             string     `db:"name"               json:"name"`
	BasePrice        float64    `db:"base_price"         json:"base_price"`
	MinimumStay      int        `db:"minimum_stay"       json:"minimum_stay"`
	Timezone         string     `db:"timezone"           json:"timezone"`
	Bedrooms         int        `db:"bedrooms"           json:"bedrooms"`
	Bathrooms        int        `db:"bathrooms"          json:"bathrooms"`
	Jurisdiction     string     `db:"jurisdiction"       json:"jurisdiction"`
	LicenseNumber    string     `db:"license_number"     json:"license_number"`
	LicenseExpiresAt *time.Time `db:"license_expires_at" json:"license_expires_at"`
	TouristTaxRule   TaxRule    `db:"tourist_tax_rule"   json:"tourist_tax_rule"`
	model.Metadata
}

// Location returns the listing timezone, falling back to UTC when unset or unknown.
func (l Listing) Location() *time.Location {
	return timezone.Load(l.Timezone)
}

// ChannelSync is the import/export configuration of one external channel for a listing.
type ChannelSync struct {
	ID        string `db:"id"         json:"id"`
	ListingID string `db:"listing_id" json:"listing_id"`
	ChannelID string `db:"channel_id" json:"channel_id"`
	ImportURL string `db:"import_url" json:"import_url"`
	// ExportToken authenticates the channel when it pulls our merged feed.
	ExportToken    string     `db:"export_token"     json:"-"`
	PushURL        string     `db:"push_url"         json:"push_url"`
	Active         bool       `db:"active"           json:"active"`
	LastSyncedAt   *time.Time `db:"last_synced_at"   json:"last_synced_at"`
	LastSyncStatus SyncStatus `db:"last_sync_status" json:"last_sync_status"`
	LastSyncError  string     `db:"last_sync_error"  json:"last_sync_error"`
	model.Metadata
}
