package http

import (
	"net/http"
	"strconv"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/config"
	apperrors "github.com/reshmacodewarrior/BusBookingSystem/pkg/errors"
)

// ExtractLimitOffset reads pagination parameters from the query string.
// A missing or zero limit means no limit.
func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}
