package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	buserrors "github.com/reshmacodewarrior/BusBookingSystem/internal/buses/errors"
	apperrors "github.com/reshmacodewarrior/BusBookingSystem/pkg/errors"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/locale"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/sanitizer"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/sealer"
)

const ticketTimeLayout = "2006-01-02 15:04 MST"

// RenderTicket builds a printable PDF e-ticket for a booked seat. The seat
// itself is the booking record, so the ticket is rendered from the bus
// document alone.
func (s *busService) RenderTicket(ctx context.Context, busID, seatNumber string) ([]byte, string, error) {
	if busID == "" {
		return nil, "", apperrors.InvalidInput("Bus ID cannot be empty")
	}
	seatNumber = sanitizer.NormalizeSeatNumber(seatNumber)
	if seatNumber == "" {
		return nil, "", apperrors.InvalidInput("seat_number query parameter is required")
	}

	bus, err := s.repo.FindByID(ctx, busID)
	if err != nil {
		if errors.Is(err, buserrors.ErrNotFound) {
			return nil, "", apperrors.NotFoundWithID("Bus", busID)
		}
		if errors.Is(err, buserrors.ErrInvalidID) {
			return nil, "", apperrors.InvalidInput("Invalid bus ID format")
		}
		return nil, "", apperrors.Internal("Failed to retrieve bus", err)
	}

	seat, err := bookedSeat(bus, seatNumber)
	if err != nil {
		if errors.Is(err, buserrors.ErrSeatNotFound) {
			return nil, "", apperrors.NotFoundWithID("Seat", seatNumber)
		}
		if errors.Is(err, buserrors.ErrSeatUnavailable) {
			return nil, "", apperrors.Validation("Seat is not booked", map[string]any{
				"seat_number": seatNumber,
				"status":      seat.Status,
			})
		}
		return nil, "", apperrors.Internal("Failed to resolve seat", err)
	}

	code, err := sealer.CreateTicketCode(bus.ID, seat.SeatNumber)
	if err != nil {
		s.cfg.Log.Error("Failed to seal ticket code", "bus_id", busID, "seat_number", seatNumber, "error", err)
		return nil, "", apperrors.Internal("Failed to render ticket", err)
	}

	pdfBytes, err := buildTicketPDF(bus, seat, code)
	if err != nil {
		s.cfg.Log.Error("Failed to render ticket", "bus_id", busID, "seat_number", seatNumber, "error", err)
		return nil, "", apperrors.Internal("Failed to render ticket", err)
	}

	filename := fmt.Sprintf("eticket_%s_%s.pdf",
		safeFilenamePart(bus.BusNumber),
		safeFilenamePart(seat.SeatNumber),
	)

	s.cfg.Log.Info("Ticket rendered", "bus_id", busID, "seat_number", seatNumber)
	return pdfBytes, filename, nil
}

// bookedSeat returns the seat when it exists and is booked. On
// ErrSeatUnavailable the seat is still returned so callers can report its
// actual status.
func bookedSeat(bus *model.Bus, seatNumber string) (*model.Seat, error) {
	for i := range bus.Seats {
		if bus.Seats[i].SeatNumber != seatNumber {
			continue
		}
		if bus.Seats[i].Status != model.SeatStatusBooked {
			return &bus.Seats[i], buserrors.ErrSeatUnavailable
		}
		return &bus.Seats[i], nil
	}
	return nil, buserrors.ErrSeatNotFound
}

func buildTicketPDF(bus *model.Bus, seat *model.Seat, code string) ([]byte, error) {
	// Departure and arrival are stored in UTC; show them in the passenger's
	// local time, inferred from their phone country.
	loc := passengerLocation(seat.PassengerPhone)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger   : %s", orDash(seat.PassengerName)),
		fmt.Sprintf("Phone       : %s", orDash(seat.PassengerPhone)),
		fmt.Sprintf("Email       : %s", orDash(seat.PassengerEmail)),
		fmt.Sprintf("Seat        : %s (%s)", seat.SeatNumber, seat.SeatType),
		fmt.Sprintf("Bus         : %s (%s)", orDash(bus.BusName), orDash(bus.BusNumber)),
		fmt.Sprintf("Route       : %s -> %s", orDash(bus.Source), orDash(bus.Destination)),
		fmt.Sprintf("Departure   : %s", bus.DepartureTime.In(loc).Format(ticketTimeLayout)),
		fmt.Sprintf("Arrival     : %s", bus.ArrivalTime.In(loc).Format(ticketTimeLayout)),
		fmt.Sprintf("Price       : %.2f", seat.Price),
		fmt.Sprintf("Ticket code : %s", code),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket covers one passenger on one seat. Present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func passengerLocation(phone string) *time.Location {
	loc, err := time.LoadLocation(locale.InferTimezoneFromPhone(phone))
	if err != nil {
		return time.UTC
	}
	return loc
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(
		" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
