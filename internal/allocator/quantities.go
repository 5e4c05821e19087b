package allocator

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQuantities parses a comma-separated list of string quantities into a
// slice of integers. Whitespace around tokens is ignored and empty tokens are
// skipped. Non-integer tokens, negative values, and lists that end up empty
// are rejected with ErrInvalidQuantity.
func ParseQuantities(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	quantities := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidQuantity, part)
		}
		if value < 0 {
			return nil, fmt.Errorf("%w: negative string quantity %d", ErrInvalidQuantity, value)
		}
		quantities = append(quantities, value)
	}
	if len(quantities) == 0 {
		return nil, fmt.Errorf("%w: no string quantities provided", ErrInvalidQuantity)
	}
	return quantities, nil
}
