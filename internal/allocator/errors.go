package allocator

import "errors"

var (
	// ErrInvalidQuantity is returned when a string quantity is negative or the
	// textual quantity list cannot be parsed.
	ErrInvalidQuantity = errors.New("invalid string quantities")
	// ErrInvalidInverterCount is returned when fewer than one inverter is requested.
	ErrInvalidInverterCount = errors.New("number of inverters must be at least 1")
)
