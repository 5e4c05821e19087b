package allocator

import (
	"fmt"
	"sort"
)

type lptAllocator struct{}

// New creates an Allocator based on the greedy longest-processing-time-first
// heuristic: string quantities are placed in descending order, each onto the
// inverter with the lowest running total.
func New() Allocator {
	return &lptAllocator{}
}

func (a *lptAllocator) Distribute(quantities []int, inverters int) (Result, error) {
	if inverters < 1 {
		return Result{}, ErrInvalidInverterCount
	}
	for _, qty := range quantities {
		if qty < 0 {
			return Result{}, fmt.Errorf("%w: negative string quantity %d", ErrInvalidQuantity, qty)
		}
	}

	sorted := make([]int, len(quantities))
	copy(sorted, quantities)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	groups := make([][]int, inverters)
	for i := range groups {
		groups[i] = []int{}
	}
	sums := make([]int, inverters)

	for _, qty := range sorted {
		// Strict < keeps the lowest-indexed inverter on ties.
		idx := 0
		for i := 1; i < inverters; i++ {
			if sums[i] < sums[idx] {
				idx = i
			}
		}
		groups[idx] = append(groups[idx], qty)
		sums[idx] += qty
	}

	return Result{Groups: groups, Sums: sums}, nil
}
