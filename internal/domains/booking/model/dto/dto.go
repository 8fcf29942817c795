package dto

import (
	"staysync/internal/domains/booking/model"
	"staysync/shared"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID   string  `json:"listing_id"   validate:"required"`
	Channel     string  `json:"channel"      validate:"omitempty,max=50"`
	GuestName   string  `json:"guest_name"   validate:"required,max=100"`
	GuestEmail  string  `json:"guest_email"  validate:"omitempty,email,max=100"`
	CheckIn     string  `json:"check_in"     validate:"required,day"`
	CheckOut    string  `json:"check_out"    validate:"required,day"`
	Adults      int     `json:"adults"       validate:"gte=1"`
	Children    int     `json:"children"     validate:"gte=0"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.DayFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	checkOut, err := time.Parse(constant.DayFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	return model.Booking{
		ID:          uuid.NewString(),
		ListingID:   c.ListingID,
		Channel:     c.Channel,
		GuestName:   c.GuestName,
		GuestEmail:  c.GuestEmail,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Adults:      c.Adults,
		Children:    c.Children,
		TotalAmount: c.TotalAmount,
		Status:      model.StatusPending,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type TransitionRequest struct {
	From string `json:"from" validate:"required,oneof=pending confirmed checked_in checked_out cancelled"`
	To   string `json:"to"   validate:"required,oneof=pending confirmed checked_in checked_out cancelled"`
}

// TransitionUpdate holds the columns written by a status change; zero values are skipped.
type TransitionUpdate struct {
	Status          model.Status `db:"status"`
	TouristTax      float64      `db:"tourist_tax"`
	TouristTaxMinor int64        `db:"tourist_tax_minor"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	ListingID       string  `json:"listing_id"`
	Channel         string  `json:"channel"`
	GuestName       string  `json:"guest_name"`
	GuestEmail      string  `json:"guest_email"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Nights          int     `json:"nights"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	TotalAmount     float64 `json:"total_amount"`
	TouristTax      float64 `json:"tourist_tax"`
	TouristTaxMinor int64   `json:"tourist_tax_minor"`
	Status          string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.Channel = model.Channel
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.CheckIn = model.CheckIn.Format(constant.DayFormat)
	r.CheckOut = model.CheckOut.Format(constant.DayFormat)
	r.Nights = model.Stay().Nights()
	r.Adults = model.Adults
	r.Children = model.Children
	r.TotalAmount = model.TotalAmount
	r.TouristTax = model.TouristTax
	r.TouristTaxMinor = model.TouristTaxMinor
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
