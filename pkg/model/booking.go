package model

import (
	"time"
)

// BookingRequest is the request body for booking seats on a bus. The bus is
// addressed by the URL path; seat_numbers are normalized and de-duplicated
// before the availability check.
type BookingRequest struct {
	SeatNumbers    []string `json:"seat_numbers" validate:"required,min=1,max=100,dive,seat_number"`
	PassengerName  string   `json:"passenger_name" validate:"required,min=2,max=50"`
	PassengerEmail string   `json:"passenger_email" validate:"required,email"`
	PassengerPhone string   `json:"passenger_phone" validate:"required,e164"`
}

const BookingStatusConfirmed = "confirmed"

// BookingConfirmation is minted once per successful booking. BookingID is a
// fresh ObjectID hex; it is not persisted anywhere, the seats themselves are
// the record. Bus carries the post-booking document.
type BookingConfirmation struct {
	BookingID      string    `json:"booking_id"`
	BusID          string    `json:"bus_id"`
	BusNumber      string    `json:"bus_number"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	SeatNumbers    []string  `json:"seat_numbers"`
	PassengerName  string    `json:"passenger_name"`
	PassengerEmail string    `json:"passenger_email"`
	PassengerPhone string    `json:"passenger_phone"`
	TotalAmount    float64   `json:"total_amount"`
	BookingStatus  string    `json:"booking_status"`
	BookedAt       time.Time `json:"booked_at"`
	Bus            *Bus      `json:"bus,omitempty"`
}
