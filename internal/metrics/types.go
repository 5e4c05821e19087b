package metrics

import "errors"

// ErrInvalidParameters is returned when plant design parameters fall outside
// their allowed ranges.
var ErrInvalidParameters = errors.New("invalid plant parameters")

// Parameters holds the scalar plant design values used to convert string
// counts into electrical figures.
type Parameters struct {
	ModulesPerString int
	ModulePowerW     float64
	InverterACKVA    float64
}

// InverterMetrics holds the derived figures for one inverter slot.
// LoadingRatio is DC power over the inverter's AC rating; values above 1.0
// indicate DC oversizing.
type InverterMetrics struct {
	Slot         int
	TotalStrings int
	DCPowerKW    float64
	LoadingRatio float64
}

// AggregateStats summarises the loading ratios across all inverter slots.
// StdDev is the sample standard deviation and is 0 for fewer than two slots.
type AggregateStats struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}
