package compliance

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidLicense = errors.New("invalid rental license")

// LicenseError explains why a license was refused.
type LicenseError struct {
	Jurisdiction string
	Reason       string
}

func (e *LicenseError) Error() string {
	return ErrInvalidLicense.Error() + " for " + e.Jurisdiction + ": " + e.Reason
}

func (e *LicenseError) Is(target error) bool {
	return target == ErrInvalidLicense
}

func (e *LicenseError) HTTPCode() int {
	return http.StatusUnprocessableEntity
}

type licenseFormat struct {
	name    string
	pattern *regexp.Regexp
}

// Jurisdictions absent from this table do not require a registration number.
var licenseFormats = map[string]licenseFormat{
	"US-CA-SF":  {name: "San Francisco business registration", pattern: regexp.MustCompile(`^STR-\d{7}$`)},
	"US-NY-NYC": {name: "NYC short-term rental registration", pattern: regexp.MustCompile(`^OSE-STRREG-\d{7}$`)},
	"US-HI":     {name: "Hawaii TAT license", pattern: regexp.MustCompile(`^TA-\d{3}-\d{3}-\d{4}-\d{2}$`)},
	"ES-CT":     {name: "Catalonia tourist use registration", pattern: regexp.MustCompile(`^HUT[BGLT]-\d{6}(-\d{2})?$`)},
	"PT":        {name: "Portugal alojamento local", pattern: regexp.MustCompile(`^\d{1,6}/AL$`)},
	"FR-75":     {name: "Paris registration number", pattern: regexp.MustCompile(`^\d{13}$`)},
	"IT":        {name: "Italian CIN", pattern: regexp.MustCompile(`^IT\d{3}[A-Z]\d{3}[A-Z0-9]{5}$`)},
	"NL-AMS":    {name: "Amsterdam registration number", pattern: regexp.MustCompile(`^[0-9A-F]{4}( [0-9A-F]{4}){4}$`)},
}

// RequiresLicense reports whether the jurisdiction has a registration scheme.
func RequiresLicense(jurisdiction string) bool {
	_, ok := licenseFormats[strings.ToUpper(jurisdiction)]

	return ok
}

// ValidateLicense checks number against the jurisdiction's format and that it has not
// expired on the given day. A nil expiry means the license does not expire.
func ValidateLicense(jurisdiction, number string, expiresAt *time.Time, on time.Time) error {
	format, ok := licenseFormats[strings.ToUpper(jurisdiction)]
	if !ok {
		return nil
	}

	number = strings.TrimSpace(number)

	switch {
	case number == "":
		return &LicenseError{Jurisdiction: jurisdiction, Reason: format.name + " is required"}
	case !format.pattern.MatchString(strings.ToUpper(number)):
		return &LicenseError{Jurisdiction: jurisdiction, Reason: "malformed " + format.name}
	case expiresAt != nil && !on.Before(*expiresAt):
		return &LicenseError{Jurisdiction: jurisdiction, Reason: format.name + " expired on " + expiresAt.Format(time.DateOnly)}
	}

	return nil
}
