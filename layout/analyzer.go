package layout

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/pagetree/model"
	"github.com/tsawler/pagetree/tables"
)

// Locator retrieves the primitives of a page. page is 1-based. Results must
// be deterministic for a given page.
type Locator interface {
	// LocateGridComponents returns the ruling segments and rectangles
	LocateGridComponents(ctx context.Context, page int) ([]*model.Component, error)

	// LocateTextComponents returns the text fragments with their fonts
	LocateTextComponents(ctx context.Context, page int) ([]*model.Component, error)
}

// AnalyzerConfig holds configuration for page analysis
type AnalyzerConfig struct {
	// Tolerance is the slack allowed when testing whether a component lies
	// inside a container
	// Default: 0
	Tolerance float64

	// BoxDetector finds the boxes formed by the rulings
	// Default: tables.NewGridDetector()
	BoxDetector tables.BoxDetector

	// MarginDetector finds the margin regions
	// Default: NewBandMarginDetector()
	MarginDetector MarginDetector

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger

	// VerifyContainment checks every parent/child pair of the finished tree
	// and fails the page when a child escapes its parent
	VerifyContainment bool
}

// DefaultAnalyzerConfig returns sensible default configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Tolerance:      0,
		BoxDetector:    tables.NewGridDetector(),
		MarginDetector: NewBandMarginDetector(),
	}
}

// Analyzer builds the component tree of a page from its rulings and text.
// An Analyzer holds no per-page state and may be shared between goroutines
// as long as its detectors may.
type Analyzer struct {
	config AnalyzerConfig
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with the specified configuration.
// Missing detectors are replaced by the defaults.
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	if config.BoxDetector == nil {
		config.BoxDetector = tables.NewGridDetector()
	}
	if config.MarginDetector == nil {
		config.MarginDetector = NewBandMarginDetector()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{config: config, logger: logger}
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// ReadPage locates the primitives of a page and analyzes them. Failures are
// returned as a *PageError wrapping ErrPageRead or ErrInconsistent.
func (a *Analyzer) ReadPage(ctx context.Context, loc Locator, page int) ([]*model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PageError{Page: page, Err: err}
	}
	grid, err := loc.LocateGridComponents(ctx, page)
	if err != nil {
		return nil, &PageError{Page: page, Err: fmt.Errorf("%w: locating rulings: %w", ErrPageRead, err)}
	}
	text, err := loc.LocateTextComponents(ctx, page)
	if err != nil {
		return nil, &PageError{Page: page, Err: fmt.Errorf("%w: locating text: %w", ErrPageRead, err)}
	}

	components, err := a.Analyze(grid, text)
	if err != nil {
		return nil, &PageError{Page: page, Err: err}
	}
	a.logger.Debug("page analyzed",
		"page", page,
		"rulings", len(grid),
		"fragments", len(text),
		"first_level", len(components),
		"components", model.Count(components))
	return components, nil
}

// Analyze builds the sorted first-level component list of one page:
//
//  1. boxes are detected from the rulings
//  2. rulings and boxes are grouped into connected regions
//  3. boxes are placed into groups, then rulings into any container
//  4. margins are detected over the first level and the loose text
//  5. text is placed into any container, margins included
//  6. the tree is sequenced and margins are expanded
//
// Detector failures wrap ErrPageRead; a broken invariant wraps
// ErrInconsistent.
func (a *Analyzer) Analyze(grid, text []*model.Component) ([]*model.Component, error) {
	tol := a.config.Tolerance

	boxes, err := a.config.BoxDetector.DetectBoxes(grid)
	if err != nil {
		return nil, fmt.Errorf("%w: box detector %s: %w", ErrPageRead, a.config.BoxDetector.Name(), err)
	}

	containers := make([]*model.Component, 0, len(grid)+len(boxes))
	containers = append(containers, grid...)
	containers = append(containers, boxes...)
	groups, err := GroupConnectedComponents(containers)
	if err != nil {
		return nil, fmt.Errorf("%w: grouping: %w", ErrInconsistent, err)
	}

	all := NewContainerSet(tol, containers...)
	all.Add(groups...)

	var firstLevel []*model.Component
	firstLevel = append(firstLevel, groups...)
	firstLevel = NewContainerSet(tol, groups...).Place(boxes, firstLevel)
	firstLevel = all.Place(grid, firstLevel)

	candidates := append([]*model.Component(nil), firstLevel...)
	candidates = append(candidates, NewContainerSet(tol, firstLevel...).Unplaced(text)...)
	margins, err := a.config.MarginDetector.DetectMargins(candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: margin detector: %w", ErrPageRead, err)
	}
	for _, m := range margins {
		if !m.IsMargin() {
			return nil, fmt.Errorf("%w: margin detector returned %v", ErrInconsistent, m)
		}
	}
	all.Add(margins...)
	firstLevel = append(firstLevel, margins...)
	firstLevel = all.Place(text, firstLevel)

	Sequence(firstLevel)
	firstLevel, err = ExpandMargins(firstLevel)
	if err != nil {
		return nil, err
	}

	if a.config.VerifyContainment {
		if err := model.CheckContainment(firstLevel, tol); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInconsistent, err)
		}
	}

	a.logger.Debug("layout built",
		"boxes", len(boxes),
		"groups", len(groups),
		"margins", len(margins))
	return firstLevel, nil
}
