package storage

import (
	"sync"

	"github.com/rrc-engineering/ilr-calculator/internal/metrics"
)

// Defaults match the reference plant design: 27 modules per string, 625 W
// modules, 1100 kVA inverters.
var defaultParameters = metrics.Parameters{
	ModulesPerString: 27,
	ModulePowerW:     625,
	InverterACKVA:    1100,
}

// Storage provides access to the plant design parameters used by the
// metrics calculator.
type Storage interface {
	GetParameters() (metrics.Parameters, error)
	SetParameters(params metrics.Parameters) error
}

// MemoryStorage keeps plant parameters in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu     sync.RWMutex
	params metrics.Parameters
}

// NewMemoryStorage initialises storage with the default plant parameters.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		params: defaultParameters,
	}
}

// DefaultParameters returns a copy of the default plant parameters.
func DefaultParameters() metrics.Parameters {
	return defaultParameters
}

// GetParameters returns the currently configured plant parameters.
func (s *MemoryStorage) GetParameters() (metrics.Parameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.params, nil
}

// SetParameters validates and stores the provided plant parameters.
func (s *MemoryStorage) SetParameters(params metrics.Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.params = params
	s.mu.Unlock()

	return nil
}
