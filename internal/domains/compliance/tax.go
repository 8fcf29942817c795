// Package compliance holds the tourist-tax and short-term-rental license rules
// applied when a booking is confirmed. Everything here is pure.
package compliance

import (
	"staysync/shared/money"
	"staysync/shared/validator"
)

type TaxBasis string

const (
	TaxPerPersonPerNight TaxBasis = "per_person_per_night"
	TaxPerNight          TaxBasis = "per_night"
	// TaxPercentage charges Amount percent of the accommodation total.
	TaxPercentage TaxBasis = "percentage"
)

// TaxRule is the tourist tax levied by a jurisdiction. The zero rule levies nothing.
type TaxRule struct {
	Basis  TaxBasis `json:"basis"  validate:"omitempty,oneof=per_person_per_night per_night percentage"`
	Amount float64  `json:"amount" validate:"gte=0"`
	// MaxNights caps the taxable nights of one stay; zero means no cap.
	MaxNights   int  `json:"max_nights"   validate:"gte=0"`
	ChildExempt bool `json:"child_exempt"`
}

type Stay struct {
	Nights             int     `json:"nights"              validate:"gte=0"`
	Adults             int     `json:"adults"              validate:"gte=0"`
	Children           int     `json:"children"            validate:"gte=0"`
	AccommodationTotal float64 `json:"accommodation_total" validate:"gte=0"`
}

type Tax struct {
	Amount        float64 `json:"amount"`
	AmountMinor   int64   `json:"amount_minor"`
	TaxableNights int     `json:"taxable_nights"`
	TaxableGuests int     `json:"taxable_guests"`
}

// TouristTax computes the tax owed for stay under rule.
func TouristTax(rule TaxRule, stay Stay) (Tax, error) {
	if err := validator.ValidateStruct(&rule); err != nil {
		return Tax{}, err //nolint:wrapcheck
	}

	if err := validator.ValidateStruct(&stay); err != nil {
		return Tax{}, err //nolint:wrapcheck
	}

	nights := stay.Nights
	if rule.MaxNights > 0 && nights > rule.MaxNights {
		nights = rule.MaxNights
	}

	guests := stay.Adults
	if !rule.ChildExempt {
		guests += stay.Children
	}

	tax := Tax{TaxableNights: nights, TaxableGuests: guests}

	var amount float64

	switch rule.Basis {
	case TaxPerPersonPerNight:
		amount = rule.Amount * float64(guests) * float64(nights)
	case TaxPerNight:
		amount = rule.Amount * float64(nights)
	case TaxPercentage:
		if stay.Nights > 0 {
			share := float64(nights) / float64(stay.Nights)
			amount = stay.AccommodationTotal * share * rule.Amount / 100
		}
	default:
		return Tax{}, nil
	}

	tax.AmountMinor = money.Minor(amount)
	tax.Amount = money.Round(amount)

	return tax, nil
}
