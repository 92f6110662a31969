package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rustyeddy/fxsim/market"
)

const dateFormat = "2006-01-02"

const (
	defaultLimit = 20
	maxLimit     = 100
)

// parsePaging reads limit/offset query parameters, clamping limit to
// [1, 100] with a default of 20.
func parsePaging(r *http.Request) (limit, offset int) {
	limit = defaultLimit

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, err)
	}
	return t, nil
}

func validatePair(pair string) error {
	if pair == "" {
		return fmt.Errorf("currency_pair is required")
	}
	if !market.ValidPair(pair) {
		return fmt.Errorf("unknown currency pair %q", pair)
	}
	return nil
}

func validateTimeframe(tf string) error {
	if !market.ValidTimeframe(tf) {
		return fmt.Errorf("unknown timeframe %q", tf)
	}
	return nil
}
