package utils

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultListLimit is the page size used when a request does not pass one.
const DefaultListLimit = 50

var (
	ErrLimitNotInteger = errors.New("limit must be an integer")
	ErrLimitNegative   = errors.New("limit must be greater than or equal to 0")
)

// ParseLimit reads a result-count limit from a query value.
// Blank means def; 0 means unbounded; there is no upper bound.
func ParseLimit(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrLimitNotInteger
	}
	if n < 0 {
		return 0, ErrLimitNegative
	}
	return n, nil
}
