package model

import (
	"errors"
	"fmt"
	"net/http"
	"staysync/shared/daterange"
	"staysync/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldListingID       = "listing_id"
	FieldStatus          = "status"
	FieldCheckIn         = "check_in"
	FieldTouristTax      = "tourist_tax"
	FieldTouristTaxMinor = "tourist_tax_minor"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: nil,
	StatusCancelled:  nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}

	return false
}

var ErrInvalidTransition = errors.New("invalid booking transition")

type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s: %s", e.From, e.To, e.Reason)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func (e *InvalidTransitionError) HTTPCode() int {
	return http.StatusConflict
}

type Booking struct {
	ID         string    `db:"id"          json:"id"`
	ListingID  string    `db:"listing_id"  json:"listing_id"`
	Channel    string    `db:"channel"     json:"channel"`
	GuestName  string    `db:"guest_name"  json:"guest_name"`
	GuestEmail string    `db:"guest_email" json:"guest_email"`
	CheckIn    time.Time `db:"check_in"    json:"check_in"`
	CheckOut   time.Time `db:"check_out"   json:"check_out"`
	Adults     int       `db:"adults"      json:"adults"`
	Children   int       `db:"children"    json:"children"`
	// TotalAmount is the accommodation price before taxes.
	TotalAmount     float64 `db:"total_amount"      json:"total_amount"`
	TouristTax      float64 `db:"tourist_tax"       json:"tourist_tax"`
	TouristTaxMinor int64   `db:"tourist_tax_minor" json:"tourist_tax_minor"`
	Status          Status  `db:"status"            json:"status"`
	model.Metadata
}

func (b Booking) Stay() daterange.Range {
	return daterange.Range{Start: daterange.Day(b.CheckIn), End: daterange.Day(b.CheckOut)}
}

// TransitionCommand asks for a booking to move between statuses. It arrives over the
// bookings topic or the transitions endpoint.
type TransitionCommand struct {
	BookingID string `json:"booking_id"`
	From      Status `json:"from"`
	To        Status `json:"to"`
}
