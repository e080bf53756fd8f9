package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	buserrors "github.com/reshmacodewarrior/BusBookingSystem/internal/buses/errors"
	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/repository"
	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/validator"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/config"
	apperrors "github.com/reshmacodewarrior/BusBookingSystem/pkg/errors"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/sanitizer"
)

// seatsPerRow fixes the generated layout: four seats per lettered row,
// outer columns window, inner columns aisle.
const seatsPerRow = 4

const travelDateLayout = "2006-01-02"

type BusService interface {
	Create(ctx context.Context, create *model.BusCreate) (*model.Bus, error)
	GetByID(ctx context.Context, id string) (*model.Bus, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Bus, int64, error)
	Update(ctx context.Context, id string, updates *model.BusUpdate) (*model.Bus, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query *model.SearchQuery) ([]*model.Bus, error)
	Book(ctx context.Context, busID string, booking *model.BookingRequest) (*model.BookingConfirmation, error)
	RenderTicket(ctx context.Context, busID, seatNumber string) ([]byte, string, error)
}

type busService struct {
	repo      repository.BusRepository
	validator *validator.BusValidator
	events    *EventPublisher
	cfg       *config.Config
}

func NewBusService(
	repo repository.BusRepository,
	validator *validator.BusValidator,
	events *EventPublisher,
	cfg *config.Config,
) BusService {
	return &busService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *busService) Create(ctx context.Context, create *model.BusCreate) (*model.Bus, error) {
	s.sanitizeCreate(create)
	if err := s.validator.ValidateCreate(create); err != nil {
		s.cfg.Log.Warn("Bus validation failed", "bus_number", create.BusNumber, "error", err)
		return nil, apperrors.Validation("Bus validation failed", map[string]any{"error": err.Error()})
	}

	bus := &model.Bus{
		BusNumber:      create.BusNumber,
		BusName:        create.BusName,
		BusType:        create.BusType,
		Source:         create.Source,
		Destination:    create.Destination,
		DepartureTime:  create.DepartureTime,
		ArrivalTime:    create.ArrivalTime,
		TotalSeats:     create.TotalSeats,
		AvailableSeats: create.TotalSeats,
		BookedSeats:    0,
		Seats:          create.Seats,
	}
	if len(bus.Seats) == 0 {
		bus.Seats = generateSeats(create.TotalSeats, s.cfg.DefaultSeatPrice)
	}

	if err := s.repo.Create(ctx, bus); err != nil {
		s.cfg.Log.Error("Failed to create bus", "bus_number", bus.BusNumber, "error", err)
		return nil, apperrors.Internal("Failed to create bus", err)
	}

	s.events.BusCreated(ctx, bus)

	s.cfg.Log.Info("Bus created successfully",
		"id", bus.ID,
		"bus_number", bus.BusNumber,
		"source", bus.Source,
		"destination", bus.Destination,
		"total_seats", bus.TotalSeats,
	)
	return bus, nil
}

func (s *busService) GetByID(ctx context.Context, id string) (*model.Bus, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Bus ID cannot be empty")
	}

	bus, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bus", id)
		}
		if errors.Is(err, buserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid bus ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve bus", err)
	}

	return bus, nil
}

func (s *busService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Bus, int64, error) {

	var count int64
	var buses []*model.Bus
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count buses", "error", errCount)
			errCount = apperrors.Internal("Failed to count buses", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		buses, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list buses", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve buses", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	if buses == nil {
		buses = []*model.Bus{}
	}
	return buses, count, nil
}

func (s *busService) Update(ctx context.Context, id string, updates *model.BusUpdate) (*model.Bus, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Bus ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bus", id)
		}
		if errors.Is(err, buserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid bus ID format")
		}
		return nil, apperrors.Internal("Failed to check bus existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Bus update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBusUpdates(existing, updates)
	s.sanitizeBus(merged)

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bus", id)
		}
		s.cfg.Log.Error("Failed to update bus", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update bus", err)
	}

	s.cfg.Log.Info("Bus updated successfully", "id", id)
	return merged, nil
}

func (s *busService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Bus ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Bus", id)
		}
		if errors.Is(err, buserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid bus ID format")
		}
		return apperrors.Internal("Failed to delete bus", err)
	}

	s.events.BusDeleted(ctx, id)

	s.cfg.Log.Info("Bus deleted successfully", "id", id)
	return nil
}

func (s *busService) Search(ctx context.Context, query *model.SearchQuery) ([]*model.Bus, error) {
	query.Source = sanitizer.NormalizeRoute(query.Source)
	query.Destination = sanitizer.NormalizeRoute(query.Destination)
	query.TravelDate = sanitizer.TrimAndNormalize(query.TravelDate)

	if err := s.validator.ValidateSearch(query); err != nil {
		s.cfg.Log.Warn("Bus search validation failed", "error", err)
		return nil, apperrors.InvalidInput(err.Error())
	}

	dayStart, err := time.ParseInLocation(travelDateLayout, query.TravelDate, time.UTC)
	if err != nil {
		return nil, apperrors.InvalidInput("travel_date must be a valid YYYY-MM-DD date")
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	buses, err := s.repo.Search(ctx, query.Source, query.Destination, dayStart, dayEnd)
	if err != nil {
		s.cfg.Log.Error("Failed to search buses",
			"source", query.Source,
			"destination", query.Destination,
			"travel_date", query.TravelDate,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search buses", err)
	}

	if buses == nil {
		buses = []*model.Bus{}
	}

	s.cfg.Log.Debug("Bus search completed",
		"source", query.Source,
		"destination", query.Destination,
		"travel_date", query.TravelDate,
		"count", len(buses),
	)
	return buses, nil
}

func (s *busService) Book(ctx context.Context, busID string, booking *model.BookingRequest) (*model.BookingConfirmation, error) {
	if busID == "" {
		return nil, apperrors.InvalidInput("Bus ID cannot be empty")
	}

	s.sanitizeBooking(booking)
	if err := s.validator.ValidateBooking(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "bus_id", busID, "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	bus, err := s.repo.FindByID(ctx, busID)
	if err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bus", busID)
		}
		if errors.Is(err, buserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid bus ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve bus", err)
	}

	seatIndex := make(map[string]int, len(bus.Seats))
	for i, seat := range bus.Seats {
		seatIndex[seat.SeatNumber] = i
	}

	var missing, unavailable []string
	for _, seatNumber := range booking.SeatNumbers {
		i, ok := seatIndex[seatNumber]
		if !ok {
			missing = append(missing, seatNumber)
			continue
		}
		if bus.Seats[i].Status != model.SeatStatusAvailable {
			unavailable = append(unavailable, seatNumber)
		}
	}
	if len(missing) > 0 || len(unavailable) > 0 {
		details := map[string]any{}
		if len(missing) > 0 {
			details["missing_seats"] = missing
		}
		if len(unavailable) > 0 {
			details["unavailable_seats"] = unavailable
		}
		s.cfg.Log.Warn("Booking rejected",
			"bus_id", busID,
			"missing_seats", missing,
			"unavailable_seats", unavailable,
		)
		return nil, apperrors.Validation("Requested seats are not available", details)
	}

	// No lock between the availability check above and the write below:
	// two concurrent requests for the same seat can both pass the check,
	// and the later write overwrites the passenger fields.
	if err := s.repo.BookSeats(ctx, busID, booking.SeatNumbers, booking); err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bus", busID)
		}
		s.cfg.Log.Error("Failed to book seats", "bus_id", busID, "seats", booking.SeatNumbers, "error", err)
		return nil, apperrors.Internal("Failed to book seats", err)
	}

	var totalAmount float64
	for _, seatNumber := range booking.SeatNumbers {
		i := seatIndex[seatNumber]
		bus.Seats[i].Status = model.SeatStatusBooked
		bus.Seats[i].PassengerName = booking.PassengerName
		bus.Seats[i].PassengerEmail = booking.PassengerEmail
		bus.Seats[i].PassengerPhone = booking.PassengerPhone
		totalAmount += bus.Seats[i].Price
	}
	bus.AvailableSeats -= len(booking.SeatNumbers)
	bus.BookedSeats += len(booking.SeatNumbers)

	confirmation := &model.BookingConfirmation{
		BookingID:      primitive.NewObjectID().Hex(),
		BusID:          bus.ID,
		BusNumber:      bus.BusNumber,
		Source:         bus.Source,
		Destination:    bus.Destination,
		DepartureTime:  bus.DepartureTime,
		SeatNumbers:    booking.SeatNumbers,
		PassengerName:  booking.PassengerName,
		PassengerEmail: booking.PassengerEmail,
		PassengerPhone: booking.PassengerPhone,
		TotalAmount:    totalAmount,
		BookingStatus:  model.BookingStatusConfirmed,
		BookedAt:       time.Now().UTC(),
		Bus:            bus,
	}

	s.events.BookingConfirmed(ctx, confirmation)

	s.cfg.Log.Info("Seats booked successfully",
		"booking_id", confirmation.BookingID,
		"bus_id", bus.ID,
		"seats", booking.SeatNumbers,
		"total_amount", totalAmount,
	)
	return confirmation, nil
}

// --- Helpers ---

func (s *busService) sanitizeCreate(create *model.BusCreate) {
	create.BusNumber = sanitizer.NormalizeBusNumber(create.BusNumber)
	create.BusName = sanitizer.NormalizeName(create.BusName)
	create.Source = sanitizer.NormalizeRoute(create.Source)
	create.Destination = sanitizer.NormalizeRoute(create.Destination)
	for i := range create.Seats {
		create.Seats[i].SeatNumber = sanitizer.NormalizeSeatNumber(create.Seats[i].SeatNumber)
	}
}

func (s *busService) sanitizeBus(bus *model.Bus) {
	bus.BusName = sanitizer.NormalizeName(bus.BusName)
	bus.Source = sanitizer.NormalizeRoute(bus.Source)
	bus.Destination = sanitizer.NormalizeRoute(bus.Destination)
}

func (s *busService) sanitizeBooking(booking *model.BookingRequest) {
	booking.SeatNumbers = sanitizer.NormalizeSeatNumbers(booking.SeatNumbers)
	booking.PassengerName = sanitizer.NormalizeName(booking.PassengerName)
	booking.PassengerEmail = sanitizer.NormalizeEmail(booking.PassengerEmail)
	booking.PassengerPhone = sanitizer.NormalizePhone(booking.PassengerPhone)
}

func (s *busService) mergeBusUpdates(existing *model.Bus, updates *model.BusUpdate) *model.Bus {
	merged := *existing

	if updates.BusName != "" {
		merged.BusName = updates.BusName
	}
	if updates.BusType != "" {
		merged.BusType = updates.BusType
	}
	if updates.Source != "" {
		merged.Source = updates.Source
	}
	if updates.Destination != "" {
		merged.Destination = updates.Destination
	}
	if updates.DepartureTime != nil {
		merged.DepartureTime = *updates.DepartureTime
	}
	if updates.ArrivalTime != nil {
		merged.ArrivalTime = *updates.ArrivalTime
	}

	return &merged
}

// generateSeats lays seats out in lettered rows of four: A1..A4, B1..B4 and
// so on, outer columns window and inner columns aisle. The final row is
// truncated so exactly total seats exist.
func generateSeats(total int, price float64) []model.Seat {
	seats := make([]model.Seat, 0, total)
	for i := 0; i < total; i++ {
		row := rune('A' + i/seatsPerRow)
		col := i%seatsPerRow + 1

		seatType := model.SeatTypeAisle
		if col == 1 || col == seatsPerRow {
			seatType = model.SeatTypeWindow
		}

		seats = append(seats, model.Seat{
			SeatNumber: fmt.Sprintf("%c%d", row, col),
			SeatType:   seatType,
			Price:      price,
			Status:     model.SeatStatusAvailable,
		})
	}
	return seats
}
