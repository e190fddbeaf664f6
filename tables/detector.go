package tables

import (
	"sort"
	"sync"

	"github.com/tsawler/pagetree/model"
)

// BoxDetector is the interface for box detection algorithms. It turns
// ruling segments into the enclosed rectangular regions they form.
type BoxDetector interface {
	// DetectBoxes returns the boxes formed by the grid components
	DetectBoxes(grid []*model.Component) ([]*model.Component, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Maximum gap between two ruling bands for them to form one level (points)
	LevelTolerance float64

	// Minimum length a ruling must overlap a cell edge to cover it (points)
	CoverageTolerance float64

	// Rulings thicker than this in both directions are outlined rectangles
	// and contribute their four edges (points)
	MaxRuleThickness float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		LevelTolerance:    0.5,
		CoverageTolerance: 0.5,
		MaxRuleThickness:  3.0,
	}
}

// Factory creates a detector with its default configuration
type Factory func() BoxDetector

// DetectorRegistry holds registered detector factories. Every lookup
// builds a new detector, so configuring one never affects another.
type DetectorRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		factories: make(map[string]Factory),
	}
}

// Register registers a detector factory under name
func (r *DetectorRegistry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new detector by name, or nil if none is registered
func (r *DetectorRegistry) Get(name string) BoxDetector {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector factory globally
func RegisterDetector(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// GetDetector returns a new detector by name
func GetDetector(name string) BoxDetector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	RegisterDetector("grid", func() BoxDetector { return NewGridDetector() })
}
