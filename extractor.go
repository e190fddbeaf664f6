package pagetree

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pagetree/layout"
	"github.com/tsawler/pagetree/markup"
	"github.com/tsawler/pagetree/model"
	"github.com/tsawler/pagetree/reader"
	"github.com/tsawler/pagetree/render"
	"github.com/tsawler/pagetree/tables"
)

// Extractor provides a fluent interface for reconstructing page layouts.
// Each configuration method returns a new Extractor instance, so a
// configured Extractor can be reused as a template.
type Extractor struct {
	// Source
	filename string
	source   Source
	closer   io.Closer

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		closer:   e.closer,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ensureSource opens the file if no source is open yet.
func (e *Extractor) ensureSource() error {
	if e.source != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	config := reader.DefaultLocatorConfig()
	config.Logger = e.options.logger
	loc, err := reader.OpenWithConfig(e.filename, config)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.source = loc
	e.closer = loc
	return nil
}

// Close releases the file opened by Open. Sources passed to FromSource are
// left open. It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.closer == nil {
		return nil
	}
	err := e.closer.Close()
	e.closer = nil
	e.source = nil
	return err
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to read (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	lines, err := pagetree.Open("doc.pdf").Pages(1, 3, 5).TextLines()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to read (1-indexed, inclusive).
// Both ends must lie within the document. An empty range selects nothing.
//
// Example:
//
//	lines, err := pagetree.Open("doc.pdf").PageRange(5, 10).TextLines()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	newExt.options.ranges = append(newExt.options.ranges, [2]int{start, end})
	return newExt
}

// Tolerance sets the slack, in points, allowed when testing whether a
// component lies inside a container. Negative values are an error.
func (e *Extractor) Tolerance(tolerance float64) *Extractor {
	newExt := e.clone()
	if tolerance < 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("negative tolerance %v", tolerance)
	}
	newExt.options.tolerance = tolerance
	return newExt
}

// BoxDetector selects a registered box detector by name.
//
// Example:
//
//	doc, err := pagetree.Open("doc.pdf").BoxDetector("grid").Document()
func (e *Extractor) BoxDetector(name string) *Extractor {
	newExt := e.clone()
	if tables.GetDetector(name) == nil && newExt.err == nil {
		newExt.err = fmt.Errorf("unknown box detector %q (available: %v)", name, tables.ListDetectors())
	}
	newExt.options.detector = name
	return newExt
}

// DetectorConfig configures the box detector of this extractor. The
// detector is created per extraction, so the configuration never leaks
// into other extractors.
func (e *Extractor) DetectorConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.detectorConfig = &config
	if detector := tables.GetDetector(newExt.options.detector); detector != nil {
		if err := detector.Configure(config); err != nil && newExt.err == nil {
			newExt.err = err
		}
	}
	return newExt
}

// WithoutMargins disables margin detection.
func (e *Extractor) WithoutMargins() *Extractor {
	newExt := e.clone()
	newExt.options.noMargins = true
	return newExt
}

// MarginConfig sets the configuration of the header and footer bands.
func (e *Extractor) MarginConfig(config layout.MarginConfig) *Extractor {
	newExt := e.clone()
	newExt.options.marginConfig = config
	return newExt
}

// Concurrency sets how many pages are analyzed in parallel. Values below 1
// mean one page at a time.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = max(n, 1)
	return newExt
}

// VerifyContainment checks every finished page tree and fails the page
// when a child escapes its parent.
func (e *Extractor) VerifyContainment() *Extractor {
	newExt := e.clone()
	newExt.options.verifyContainment = true
	return newExt
}

// Logger sets the logger for debug output.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Context sets the context that bounds page reads.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.options.ctx = ctx
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages of the source.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	defer e.Close()
	return e.source.PageCount(), nil
}

// Document reconstructs the selected pages.
// This is a terminal operation that closes the underlying file.
//
// Example:
//
//	doc, err := pagetree.Open("document.pdf").Document()
//	for _, page := range doc.Pages {
//	    fmt.Printf("Page %d: %d components\n", page.Number, model.Count(page.Components))
//	}
func (e *Extractor) Document() (*model.Document, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, err
	}
	defer e.Close()
	return e.document()
}

// FirstLevel returns the first-level components of one page.
// This is a terminal operation that closes the underlying file.
func (e *Extractor) FirstLevel(page int) ([]*model.Component, error) {
	newExt := e.clone()
	newExt.options.pages = []int{page}
	newExt.options.ranges = nil
	doc, err := newExt.Document()
	if err != nil {
		return nil, err
	}
	return doc.Pages[0].Components, nil
}

// TextLines returns the text lines of the selected pages in page order.
// Lines never continue across pages.
// This is a terminal operation that closes the underlying file.
func (e *Extractor) TextLines() ([]string, error) {
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, page := range doc.Pages {
		lines = append(lines, layout.TextLines(page.Components)...)
	}
	return lines, nil
}

// Markup returns the component trees of the selected pages as a nested
// markup document.
// This is a terminal operation that closes the underlying file.
func (e *Extractor) Markup() (string, error) {
	doc, err := e.Document()
	if err != nil {
		return "", err
	}
	return markup.RenderString(doc)
}

// Image paints one page.
// This is a terminal operation that closes the underlying file.
//
// Example:
//
//	opts := render.DefaultOptions()
//	opts.ShowStructure = true
//	img, err := pagetree.Open("document.pdf").Image(1, opts)
func (e *Extractor) Image(page int, opts render.Options) (*image.RGBA, error) {
	newExt := e.clone()
	newExt.options.pages = []int{page}
	newExt.options.ranges = nil
	doc, err := newExt.Document()
	if err != nil {
		return nil, err
	}
	return render.Page(doc.Pages[0], opts)
}

// ============================================================================
// Internal
// ============================================================================

// analyzer builds the page analyzer from the options, with a box detector
// of its own.
func (e *Extractor) analyzer() (*layout.Analyzer, error) {
	detector := tables.GetDetector(e.options.detector)
	if detector == nil {
		return nil, fmt.Errorf("unknown box detector %q", e.options.detector)
	}
	if e.options.detectorConfig != nil {
		if err := detector.Configure(*e.options.detectorConfig); err != nil {
			return nil, err
		}
	}

	config := layout.DefaultAnalyzerConfig()
	config.Tolerance = e.options.tolerance
	config.BoxDetector = detector
	if e.options.noMargins {
		config.MarginDetector = layout.NoMarginDetector{}
	} else {
		config.MarginDetector = layout.NewBandMarginDetectorWithConfig(e.options.marginConfig)
	}
	config.Logger = e.options.logger
	config.VerifyContainment = e.options.verifyContainment
	return layout.NewAnalyzerWithConfig(config), nil
}

// document analyzes the selected pages, several at a time when configured.
// Every page gets its own working state; the first failure cancels the rest.
func (e *Extractor) document() (*model.Document, error) {
	numbers, err := e.resolvePages()
	if err != nil {
		return nil, err
	}

	analyzer, err := e.analyzer()
	if err != nil {
		return nil, err
	}
	pages := make([]*model.Page, len(numbers))

	g, ctx := errgroup.WithContext(e.options.context())
	g.SetLimit(e.options.concurrency)
	for i, number := range numbers {
		i, number := i, number
		g.Go(func() error {
			width, height, err := e.source.PageSize(number)
			if err != nil {
				return &layout.PageError{Page: number, Err: fmt.Errorf("%w: %w", layout.ErrPageRead, err)}
			}
			components, err := analyzer.ReadPage(ctx, e.source, number)
			if err != nil {
				return err
			}
			page := model.NewPage(width, height)
			page.Number = number
			page.Components = components
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := model.NewDocument()
	for _, page := range pages {
		doc.AddPage(page)
	}
	return doc, nil
}

// resolvePages returns the selected page numbers, sorted and deduplicated.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := e.source.PageCount()

	// If no pages specified, use all pages
	if len(e.options.pages) == 0 && len(e.options.ranges) == 0 {
		numbers := make([]int, pageCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}

	seen := make(map[int]bool)
	var numbers []int
	add := func(p int) {
		if !seen[p] {
			seen[p] = true
			numbers = append(numbers, p)
		}
	}
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		add(p)
	}
	for _, r := range e.options.ranges {
		if r[1] < r[0] {
			continue
		}
		for _, p := range r {
			if p < 1 || p > pageCount {
				return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
			}
		}
		for p := r[0]; p <= r[1]; p++ {
			add(p)
		}
	}

	sort.Ints(numbers)
	return numbers, nil
}
