package testutil

import (
	"time"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
)

type BusBuilder struct {
	bus model.BusCreate
}

// NewBusBuilder starts from a valid overnight Mumbai-Pune bus departing a
// week out, so tests only override what they assert on.
func NewBusBuilder() *BusBuilder {
	day := time.Now().UTC().AddDate(0, 0, 7)
	departure := time.Date(day.Year(), day.Month(), day.Day(), 22, 30, 0, 0, time.UTC)

	return &BusBuilder{
		bus: model.BusCreate{
			BusNumber:     "MH12AB1234",
			BusName:       "Shivneri Express",
			BusType:       model.BusTypeAC,
			Source:        "Mumbai",
			Destination:   "Pune",
			DepartureTime: departure,
			ArrivalTime:   departure.Add(4 * time.Hour),
			TotalSeats:    4,
		},
	}
}

func (b *BusBuilder) WithBusNumber(busNumber string) *BusBuilder {
	b.bus.BusNumber = busNumber
	return b
}

func (b *BusBuilder) WithName(name string) *BusBuilder {
	b.bus.BusName = name
	return b
}

func (b *BusBuilder) WithType(busType model.BusType) *BusBuilder {
	b.bus.BusType = busType
	return b
}

func (b *BusBuilder) WithRoute(source, destination string) *BusBuilder {
	b.bus.Source = source
	b.bus.Destination = destination
	return b
}

func (b *BusBuilder) WithDeparture(departure time.Time) *BusBuilder {
	b.bus.DepartureTime = departure
	b.bus.ArrivalTime = departure.Add(4 * time.Hour)
	return b
}

func (b *BusBuilder) WithArrival(arrival time.Time) *BusBuilder {
	b.bus.ArrivalTime = arrival
	return b
}

func (b *BusBuilder) WithTotalSeats(totalSeats int) *BusBuilder {
	b.bus.TotalSeats = totalSeats
	return b
}

func (b *BusBuilder) WithSeats(seats []model.Seat) *BusBuilder {
	b.bus.Seats = seats
	b.bus.TotalSeats = len(seats)
	return b
}

func (b *BusBuilder) Build() model.BusCreate {
	return b.bus
}

// ValidBooking books two seats of the default generated layout.
func ValidBooking() *model.BookingRequest {
	return &model.BookingRequest{
		SeatNumbers:    []string{"A1", "A2"},
		PassengerName:  "Asha Rao",
		PassengerEmail: "asha.rao@example.com",
		PassengerPhone: "+919876543210",
	}
}

// TravelDate formats a departure time as the search query expects it.
func TravelDate(departure time.Time) string {
	return departure.UTC().Format("2006-01-02")
}
