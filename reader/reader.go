package reader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/pagetree/model"
)

// Default page size (US Letter) used when a page has no usable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// LocatorConfig holds configuration for locating page primitives
type LocatorConfig struct {
	// WordGap is the gap between glyphs, in font sizes, from which a space
	// is inserted
	// Default: 0.2
	WordGap float64

	// FragmentGap is the gap between glyphs, in font sizes, from which a new
	// text fragment starts
	// Default: 1.0
	FragmentGap float64

	// Logger receives debug and warning output. Nil discards it.
	Logger *slog.Logger
}

// DefaultLocatorConfig returns sensible default configuration
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		WordGap:     0.2,
		FragmentGap: 1.0,
	}
}

// PDFLocator locates the rulings and text fragments of the pages of a PDF
// file. It is safe for concurrent use: access to the underlying reader is
// serialized and decoded pages are cached.
type PDFLocator struct {
	config LocatorConfig
	logger *slog.Logger
	closer io.Closer

	mu     sync.Mutex
	reader *lpdf.Reader
	cache  map[int]*pageContent
}

// pageContent is the decoded content of one page
type pageContent struct {
	left, top     float64
	width, height float64
	fragments     []fragment
	rulings       []ruling
}

// Open opens a PDF file with default configuration
func Open(filename string) (*PDFLocator, error) {
	return OpenWithConfig(filename, DefaultLocatorConfig())
}

// OpenWithConfig opens a PDF file with the specified configuration
func OpenWithConfig(filename string, config LocatorConfig) (*PDFLocator, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	loc, err := NewPDFLocator(file, info.Size(), config)
	if err != nil {
		file.Close()
		return nil, err
	}
	loc.closer = file
	return loc, nil
}

// NewPDFLocator reads a PDF from r. The caller keeps ownership of r.
func NewPDFLocator(r io.ReaderAt, size int64, config LocatorConfig) (loc *PDFLocator, err error) {
	defer func() {
		if p := recover(); p != nil {
			loc, err = nil, fmt.Errorf("%w: %v", ErrMalformed, p)
		}
	}()

	ok, err := IsPDF(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF header: %w", err)
	}
	if !ok {
		return nil, ErrNotPDF
	}

	reader, err := lpdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PDFLocator{
		config: config,
		logger: logger,
		reader: reader,
		cache:  make(map[int]*pageContent),
	}, nil
}

// Close releases the file opened by Open
func (l *PDFLocator) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// PageCount returns the number of pages
func (l *PDFLocator) PageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reader.NumPage()
}

// PageSize returns the width and height of a page in points
func (l *PDFLocator) PageSize(page int) (width, height float64, err error) {
	content, err := l.content(page)
	if err != nil {
		return 0, 0, err
	}
	return content.width, content.height, nil
}

// LocateGridComponents returns the page's painted rulings in drawing order:
// stroked straight segments as line components and filled or stroked
// axis-aligned rectangles as rect components. Clipping paths and curves are
// not rulings. The row index of each component is its drawing position.
func (l *PDFLocator) LocateGridComponents(ctx context.Context, page int) ([]*model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := l.content(page)
	if err != nil {
		return nil, err
	}

	grid := make([]*model.Component, 0, len(content.rulings))
	for i, r := range content.rulings {
		c, err := model.NewGridComponent(r.typ, r.bbox(content.left, content.top), i)
		if err != nil {
			l.logger.Debug("skipping ruling", "page", page, "index", i, "error", err)
			continue
		}
		grid = append(grid, c)
	}
	return grid, nil
}

// LocateTextComponents returns the page's text fragments in content order
func (l *PDFLocator) LocateTextComponents(ctx context.Context, page int) ([]*model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := l.content(page)
	if err != nil {
		return nil, err
	}

	text := make([]*model.Component, 0, len(content.fragments))
	for _, f := range content.fragments {
		c, err := model.NewTextComponent(f.text, f.font, f.size, f.bbox(content.left, content.top))
		if err != nil {
			l.logger.Debug("skipping text", "page", page, "text", f.text, "error", err)
			continue
		}
		text = append(text, c)
	}
	return text, nil
}

// content decodes a page once and caches the result
func (l *PDFLocator) content(page int) (*pageContent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.cache[page]; ok {
		return c, nil
	}
	if page < 1 || page > l.reader.NumPage() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, page, l.reader.NumPage())
	}
	c, err := l.decode(page)
	if err != nil {
		l.logger.Warn("page content unreadable", "page", page, "error", err)
		return nil, err
	}
	l.cache[page] = c
	return c, nil
}

func (l *PDFLocator) decode(page int) (content *pageContent, err error) {
	defer func() {
		if p := recover(); p != nil {
			content, err = nil, fmt.Errorf("%w: page %d: %v", ErrMalformed, page, p)
		}
	}()

	p := l.reader.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d has no dictionary", ErrMalformed, page)
	}

	content = &pageContent{width: defaultPageWidth, height: defaultPageHeight, top: defaultPageHeight}
	if box := p.V.Key("MediaBox"); box.Kind() == lpdf.Array && box.Len() == 4 {
		x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
		x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
		if x1 > x0 && y1 > y0 {
			content.left, content.top = x0, y1
			content.width, content.height = x1-x0, y1-y0
		}
	}

	raw := p.Content()
	content.fragments = mergeGlyphs(raw.Text, l.config)
	content.rulings = locateRulings(p.V.Key("Contents"))
	l.logger.Debug("page decoded",
		"page", page,
		"glyphs", len(raw.Text),
		"fragments", len(content.fragments),
		"rulings", len(content.rulings))
	return content, nil
}
