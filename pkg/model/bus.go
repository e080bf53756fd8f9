package model

import "time"

type BusType string

const (
	BusTypeAC          BusType = "ac"
	BusTypeNonAC       BusType = "non_ac"
	BusTypeSleeper     BusType = "sleeper"
	BusTypeSemiSleeper BusType = "semi_sleeper"
)

type SeatType string

const (
	SeatTypeWindow SeatType = "window"
	SeatTypeAisle  SeatType = "aisle"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBooked    SeatStatus = "booked"
	SeatStatusReserved  SeatStatus = "reserved"
)

// Bus is the top-level document in the buses collection. Seats are embedded
// and share the document's lifecycle; total_seats always equals
// available_seats + booked_seats.
type Bus struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BusNumber      string    `json:"bus_number" bson:"bus_number" validate:"required,min=3,max=20"`
	BusName        string    `json:"bus_name" bson:"bus_name" validate:"required,min=2,max=50"`
	BusType        BusType   `json:"bus_type" bson:"bus_type" validate:"required,oneof=ac non_ac sleeper semi_sleeper"`
	Source         string    `json:"source" bson:"source" validate:"required,min=2,max=50"`
	Destination    string    `json:"destination" bson:"destination" validate:"required,min=2,max=50"`
	DepartureTime  time.Time `json:"departure_time" bson:"departure_time" validate:"required"`
	ArrivalTime    time.Time `json:"arrival_time" bson:"arrival_time" validate:"required"`
	TotalSeats     int       `json:"total_seats" bson:"total_seats" validate:"required,min=1,max=100"`
	AvailableSeats int       `json:"available_seats" bson:"available_seats" validate:"min=0"`
	BookedSeats    int       `json:"booked_seats" bson:"booked_seats" validate:"min=0"`
	Seats          []Seat    `json:"seats" bson:"seats" validate:"omitempty,dive"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Seat is embedded in a Bus. Passenger fields are set only while the seat is
// booked.
type Seat struct {
	SeatNumber     string     `json:"seat_number" bson:"seat_number" validate:"required,seat_number"`
	SeatType       SeatType   `json:"seat_type" bson:"seat_type" validate:"required,oneof=window aisle"`
	Price          float64    `json:"price" bson:"price" validate:"required,gt=0"`
	Status         SeatStatus `json:"status" bson:"status" validate:"required,oneof=available booked reserved"`
	PassengerName  string     `json:"passenger_name,omitempty" bson:"passenger_name,omitempty" validate:"omitempty,min=2,max=50"`
	PassengerEmail string     `json:"passenger_email,omitempty" bson:"passenger_email,omitempty" validate:"omitempty,email"`
	PassengerPhone string     `json:"passenger_phone,omitempty" bson:"passenger_phone,omitempty" validate:"omitempty,e164"`
}

// BusCreate is the request body for creating a bus. Seats may be supplied
// explicitly; when omitted the service generates them from total_seats.
type BusCreate struct {
	BusNumber     string    `json:"bus_number" validate:"required,min=3,max=20"`
	BusName       string    `json:"bus_name" validate:"required,min=2,max=50"`
	BusType       BusType   `json:"bus_type" validate:"required,oneof=ac non_ac sleeper semi_sleeper"`
	Source        string    `json:"source" validate:"required,min=2,max=50"`
	Destination   string    `json:"destination" validate:"required,min=2,max=50"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
	TotalSeats    int       `json:"total_seats" validate:"required,min=1,max=100"`
	Seats         []Seat    `json:"seats,omitempty" validate:"omitempty,dive"`
}

// BusUpdate carries the mutable bus attributes. Absent fields keep their
// stored values. Seat layout and counters are never updatable through this
// model.
type BusUpdate struct {
	BusName       string     `json:"bus_name,omitempty" validate:"omitempty,min=2,max=50"`
	BusType       BusType    `json:"bus_type,omitempty" validate:"omitempty,oneof=ac non_ac sleeper semi_sleeper"`
	Source        string     `json:"source,omitempty" validate:"omitempty,min=2,max=50"`
	Destination   string     `json:"destination,omitempty" validate:"omitempty,min=2,max=50"`
	DepartureTime *time.Time `json:"departure_time,omitempty" validate:"omitempty"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty" validate:"omitempty"`
}

// SearchQuery is the decoded form of the bus search query string.
// TravelDate is a calendar date in YYYY-MM-DD form; matching against
// departure_time covers that whole day.
type SearchQuery struct {
	Source      string `json:"source" validate:"required,min=2,max=50"`
	Destination string `json:"destination" validate:"required,min=2,max=50"`
	TravelDate  string `json:"travel_date" validate:"required,datetime=2006-01-02"`
}
