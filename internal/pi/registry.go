package pi

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory is an interface for creating Calculator instances.
// It allows for flexible calculator instantiation and registration,
// enabling dependency injection and easier testing.
type CalculatorFactory interface {
	// Create creates a new Calculator instance by name.
	// Returns an error if the calculator type is not registered.
	Create(name string) (Calculator, error)

	// Get returns an existing Calculator instance by name.
	// Returns an error if the calculator type is not registered.
	Get(name string) (Calculator, error)

	// List returns a sorted list of registered calculator names.
	List() []string

	// Register adds a new calculator type to the factory.
	Register(name string, creator func() coreCalculator) error

	// GetAll returns a map of all registered calculators.
	GetAll() map[string]Calculator
}

// DefaultFactory is the default implementation of CalculatorFactory.
// It maintains a thread-safe registry of kernel creators and caches
// Calculator instances for reuse.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// NewDefaultFactory creates a new DefaultFactory with the standard π
// kernels pre-registered:
//   - "machin": Machin arctangent series (linear convergence)
//   - "agm": Gauss–Legendre iteration (quadratic convergence)
//
// Additional kernels may register themselves (the GMP-backed series kernel
// does so behind the `gmp` build tag).
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreCalculator),
		calculators: make(map[string]Calculator),
	}

	_ = f.Register("machin", func() coreCalculator { return &MachinSeries{} })
	_ = f.Register("agm", func() coreCalculator { return &GaussLegendre{} })

	return f
}

// Register adds a new calculator type to the factory.
// The creator function is called lazily when the calculator is first
// requested. If a calculator with the same name already exists, it is
// replaced.
func (f *DefaultFactory) Register(name string, creator func() coreCalculator) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.calculators, name)
	return nil
}

// Create creates a new Calculator instance by name.
// Unlike Get(), this always creates a fresh instance without caching.
func (f *DefaultFactory) Create(name string) (Calculator, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown calculator: %s", name)
	}
	return NewCalculator(creator()), nil
}

// Get returns a Calculator instance by name.
// Instances are cached and reused for subsequent calls with the same name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if calc, exists := f.calculators[name]; exists {
		f.mu.RUnlock()
		return calc, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if calc, exists := f.calculators[name]; exists {
		return calc, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator: %s", name)
	}

	calc := NewCalculator(creator())
	f.calculators[name] = calc
	return calc, nil
}

// List returns a sorted list of all registered calculator names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a map of all registered calculators, lazily initializing
// any that have not been created yet. The returned map is a copy.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.calculators[name]; !exists {
			f.calculators[name] = NewCalculator(creator())
		}
	}

	result := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		result[name] = calc
	}
	return result
}

// Has checks if a calculator with the given name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

// globalFactory is the default global factory instance.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the global factory instance. This is a convenience
// for applications that don't need multiple factory instances.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterCalculator registers a kernel in the global factory.
func RegisterCalculator(name string, creator func() coreCalculator) error {
	return globalFactory.Register(name, creator)
}
