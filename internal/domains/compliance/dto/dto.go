package dto

import (
	"staysync/internal/domains/compliance"
	"staysync/shared/constant"
	"time"
)

type TouristTaxRequest struct {
	Rule compliance.TaxRule `json:"rule"`
	Stay compliance.Stay    `json:"stay"`
}

type LicenseRequest struct {
	Jurisdiction string `json:"jurisdiction" validate:"required,max=20"`
	Number       string `json:"number"       validate:"max=64"`
	ExpiresAt    string `json:"expires_at"   validate:"omitempty,day"`
	// On is the day the license must be valid; today when empty.
	On string `json:"on" validate:"omitempty,day"`
}

// Dates returns the parsed expiry (nil when absent) and check day. Both fields are validated beforehand.
func (r *LicenseRequest) Dates(today time.Time) (*time.Time, time.Time) {
	var expiresAt *time.Time

	if r.ExpiresAt != "" {
		t, _ := time.Parse(constant.DayFormat, r.ExpiresAt)
		expiresAt = &t
	}

	on := today
	if r.On != "" {
		on, _ = time.Parse(constant.DayFormat, r.On)
	}

	return expiresAt, on
}

type LicenseResponse struct {
	Jurisdiction    string `json:"jurisdiction"`
	RequiresLicense bool   `json:"requires_license"`
	Valid           bool   `json:"valid"`
	Reason          string `json:"reason,omitempty"`
}
