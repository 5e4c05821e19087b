package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Compute derives per-inverter electrical figures and aggregate loading-ratio
// statistics from the per-slot string totals produced by the allocator.
// The slice index of sums is the inverter slot.
func Compute(sums []int, params Parameters) ([]InverterMetrics, AggregateStats, error) {
	if err := params.Validate(); err != nil {
		return nil, AggregateStats{}, err
	}

	perInverter := make([]InverterMetrics, len(sums))
	ratios := make([]float64, len(sums))
	for i, totalStrings := range sums {
		dcPowerKW := float64(totalStrings) * float64(params.ModulesPerString) * params.ModulePowerW / 1000.0

		// A 0 kVA rating yields a 0 ratio rather than a division error.
		loadingRatio := 0.0
		if params.InverterACKVA > 0 {
			loadingRatio = dcPowerKW / params.InverterACKVA
		}

		perInverter[i] = InverterMetrics{
			Slot:         i,
			TotalStrings: totalStrings,
			DCPowerKW:    dcPowerKW,
			LoadingRatio: loadingRatio,
		}
		ratios[i] = loadingRatio
	}

	return perInverter, aggregate(ratios), nil
}

// aggregate summarises the loading ratios. The standard deviation is the
// sample (n-1) form and is defined as 0 for fewer than two slots, where
// gonum would return NaN.
func aggregate(ratios []float64) AggregateStats {
	if len(ratios) == 0 {
		return AggregateStats{}
	}

	stats := AggregateStats{
		Mean: stat.Mean(ratios, nil),
		Min:  floats.Min(ratios),
		Max:  floats.Max(ratios),
	}
	if len(ratios) > 1 {
		stats.StdDev = stat.StdDev(ratios, nil)
	}
	return stats
}

// Validate checks the plant design parameters against their allowed ranges.
func (p Parameters) Validate() error {
	if p.ModulesPerString < 1 {
		return fmt.Errorf("%w: modules per string must be at least 1, got %d", ErrInvalidParameters, p.ModulesPerString)
	}
	if p.ModulePowerW <= 0 {
		return fmt.Errorf("%w: module power must be positive, got %g", ErrInvalidParameters, p.ModulePowerW)
	}
	if p.InverterACKVA < 0 {
		return fmt.Errorf("%w: inverter AC rating must not be negative, got %g", ErrInvalidParameters, p.InverterACKVA)
	}
	return nil
}
