package allocator

// Result represents one complete distribution run. Groups holds the string
// quantities assigned to each inverter slot in slot order; Sums is the
// parallel list of per-slot totals, cached so callers never re-add.
// Sums always has one entry per requested inverter, including empty slots.
type Result struct {
	Groups [][]int
	Sums   []int
}

// TotalStrings returns the sum across all slots, which equals the sum of the
// input quantities.
func (r Result) TotalStrings() int {
	total := 0
	for _, sum := range r.Sums {
		total += sum
	}
	return total
}

// Allocator describes the behaviour required from a string distributor.
type Allocator interface {
	Distribute(quantities []int, inverters int) (Result, error)
}
