package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/logger"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
)

// Seat labels are a row letter followed by a column number, e.g. "A1", "K12".
// Requests are normalized to upper case before validation.
var seatNumberRegex = regexp.MustCompile(`^[A-Z][0-9]{1,2}$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BusValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBusValidator(log *logger.Logger) *BusValidator {
	v := validator.New()

	if err := v.RegisterValidation("seat_number", validateSeatNumber); err != nil {
		log.Fatal("Failed to register 'seat_number' validator",
			"error", err,
		)
	}

	log.Info("Bus validator initialized successfully")

	return &BusValidator{
		validate: v,
		logger:   log,
	}
}

func validateSeatNumber(fl validator.FieldLevel) bool {
	return seatNumberRegex.MatchString(fl.Field().String())
}

// ValidateCreate checks a bus creation request. When the request carries an
// explicit seat layout it must have exactly total_seats entries with unique
// seat numbers, and every seat must be available: a bus is always created
// with its full inventory open.
func (v *BusValidator) ValidateCreate(bus *model.BusCreate) error {
	if err := v.validate.Struct(bus); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if len(bus.Seats) == 0 {
		return nil
	}

	if len(bus.Seats) != bus.TotalSeats {
		return ValidationErrors{
			ValidationError{
				Field:   "Seats",
				Message: fmt.Sprintf("seats count (%d) must equal total_seats (%d)", len(bus.Seats), bus.TotalSeats),
			},
		}
	}

	seen := make(map[string]struct{}, len(bus.Seats))
	for _, seat := range bus.Seats {
		if _, ok := seen[seat.SeatNumber]; ok {
			return ValidationErrors{
				ValidationError{
					Field:   "Seats",
					Message: fmt.Sprintf("duplicate seat number %s", seat.SeatNumber),
				},
			}
		}
		seen[seat.SeatNumber] = struct{}{}

		if seat.Status != model.SeatStatusAvailable {
			return ValidationErrors{
				ValidationError{
					Field:   "Seats",
					Message: fmt.Sprintf("seat %s must be created as available, got %s", seat.SeatNumber, seat.Status),
				},
			}
		}
	}

	return nil
}

func (v *BusValidator) ValidateUpdate(update *model.BusUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BusValidator) ValidateBooking(booking *model.BookingRequest) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BusValidator) ValidateSearch(search *model.SearchQuery) error {
	if err := v.validate.Struct(search); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BusValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +12125551234)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match the %s format", err.Field(), err.Param())
		case "seat_number":
			message = fmt.Sprintf("%s must be a row letter followed by a column number (e.g., A1)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
