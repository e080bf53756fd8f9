package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/locale"
)

// NormalizePhone converts a passenger phone to E.164. Numbers without a
// country code are tried against locale.RegionPriority in order. Anything
// that does not parse as a valid number comes back empty so required-field
// validation rejects it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range locale.RegionPriority {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
