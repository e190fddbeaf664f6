package pagetree

import (
	"context"
	"log/slog"

	"github.com/tsawler/pagetree/layout"
	"github.com/tsawler/pagetree/tables"
)

// ExtractOptions holds configuration for layout reconstruction.
type ExtractOptions struct {
	// Page selection (1-indexed); ranges are inclusive and expanded only
	// once the page count is known
	pages  []int
	ranges [][2]int

	// Containment tolerance in points
	tolerance float64

	// Registered name and optional configuration of the box detector
	detector       string
	detectorConfig *tables.Config

	// Margin detection
	noMargins    bool
	marginConfig layout.MarginConfig

	// Processing options
	concurrency       int
	verifyContainment bool
	logger            *slog.Logger
	ctx               context.Context
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:        nil, // nil means all pages
		tolerance:    0,
		detector:     "grid",
		marginConfig: layout.DefaultMarginConfig(),
		concurrency:  1,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	newOpts.pages = nil
	newOpts.ranges = nil

	// Deep copy page selection
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.ranges != nil {
		newOpts.ranges = make([][2]int, len(o.ranges))
		copy(newOpts.ranges, o.ranges)
	}
	if o.detectorConfig != nil {
		config := *o.detectorConfig
		newOpts.detectorConfig = &config
	}

	return newOpts
}

// context returns the configured context or a background context
func (o ExtractOptions) context() context.Context {
	if o.ctx != nil {
		return o.ctx
	}
	return context.Background()
}
