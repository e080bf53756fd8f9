package locale

import "strings"

// matchCountry finds the served country whose dialing prefix starts the
// number. Prefixes across countries do not overlap, so scan order is
// irrelevant.
func matchCountry(phone string) (Country, bool) {
	phone = strings.TrimSpace(phone)
	for _, c := range Countries {
		for _, prefix := range c.PhonePrefixes {
			if strings.HasPrefix(phone, prefix) {
				return c, true
			}
		}
	}
	return Country{}, false
}

// InferCountryFromPhone maps a phone number to a served country by dialing
// prefix, or nil when the prefix is not recognized.
func InferCountryFromPhone(phone string) *Country {
	if c, ok := matchCountry(phone); ok {
		return &c
	}
	return nil
}

// InferTimezoneFromPhone returns the default timezone of the number's
// country, falling back to UTC for unrecognized prefixes.
func InferTimezoneFromPhone(phone string) string {
	if c, ok := matchCountry(phone); ok {
		return c.DefaultTimezone
	}
	return DefaultTimezone
}
