package pagetree

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/pagetree/layout"
	"github.com/tsawler/pagetree/model"
	"github.com/tsawler/pagetree/reader"
	"github.com/tsawler/pagetree/render"
	"github.com/tsawler/pagetree/tables"
)

func newText(t *testing.T, s string, b model.BBox) *model.Component {
	t.Helper()
	c, err := model.NewTextComponent(s, "Helvetica", b.Height(), b)
	if err != nil {
		t.Fatalf("NewTextComponent(%q) failed: %v", s, err)
	}
	return c
}

func newRect(t *testing.T, b model.BBox) *model.Component {
	t.Helper()
	c, err := model.NewGridComponent(model.TypeRect, b, 0)
	if err != nil {
		t.Fatalf("NewGridComponent(%v) failed: %v", b, err)
	}
	return c
}

// sampleSource has two letter-sized pages. The first has a running title,
// a ruled box holding one fragment and a page number; the second holds a
// single fragment.
func sampleSource(t *testing.T) *reader.StaticLocator {
	t.Helper()
	return reader.NewStaticLocator(
		reader.StaticPage{
			Width:  612,
			Height: 792,
			Grid:   []*model.Component{newRect(t, model.NewBBox(10, 100, 300, 200))},
			Text: []*model.Component{
				newText(t, "Page 1", model.NewBBox(20, 700, 60, 710)),
				newText(t, "inside", model.NewBBox(20, 110, 100, 120)),
				newText(t, "Header", model.NewBBox(20, 20, 80, 30)),
			},
		},
		reader.StaticPage{
			Width:  612,
			Height: 792,
			Text:   []*model.Component{newText(t, "Second", model.NewBBox(20, 50, 80, 60))},
		},
	)
}

// ============================================================================
// Configuration Tests
// ============================================================================

func TestExtractor_Immutability(t *testing.T) {
	base := FromSource(sampleSource(t))
	selected := base.Pages(1).Tolerance(2).WithoutMargins()

	if base.options.pages != nil {
		t.Errorf("base pages = %v, want nil", base.options.pages)
	}
	if base.options.tolerance != 0 || base.options.noMargins {
		t.Error("configuring a derived extractor changed the base")
	}
	if !reflect.DeepEqual(selected.options.pages, []int{1}) {
		t.Errorf("selected pages = %v, want [1]", selected.options.pages)
	}
}

func TestExtractor_PageRange(t *testing.T) {
	e := FromSource(sampleSource(t)).PageRange(1, 2).Pages(2)
	if !reflect.DeepEqual(e.options.ranges, [][2]int{{1, 2}}) {
		t.Errorf("ranges = %v, want [[1 2]]", e.options.ranges)
	}
	if !reflect.DeepEqual(e.options.pages, []int{2}) {
		t.Errorf("pages = %v, want [2]", e.options.pages)
	}

	numbers, err := e.resolvePages()
	if err != nil {
		t.Fatalf("resolvePages() error = %v", err)
	}
	if !reflect.DeepEqual(numbers, []int{1, 2}) {
		t.Errorf("resolvePages() = %v, want [1 2]", numbers)
	}
}

func TestExtractor_PageRangeBounds(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		want    []int
		wantErr string
	}{
		{"whole document", 1, 2, []int{1, 2}, ""},
		{"empty range", 2, 1, nil, ""},
		{"huge range", 1, 2000000000, nil, "page 2000000000 out of range (1-2)"},
		{"before first page", 0, 1, nil, "page 0 out of range (1-2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromSource(sampleSource(t)).PageRange(tt.start, tt.end)
			numbers, err := e.resolvePages()
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("resolvePages() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolvePages() error = %v", err)
			}
			if !reflect.DeepEqual(numbers, tt.want) {
				t.Errorf("resolvePages() = %v, want %v", numbers, tt.want)
			}
		})
	}

	_, err := FromSource(sampleSource(t)).PageRange(1, 2000000000).TextLines()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("TextLines() error = %v, want out of range", err)
	}
}

func TestExtractor_DetectorConfig(t *testing.T) {
	bad := tables.DefaultConfig()
	bad.LevelTolerance = -1
	if _, err := FromSource(sampleSource(t)).DetectorConfig(bad).TextLines(); err == nil {
		t.Error("DetectorConfig() with a negative tolerance should fail")
	}

	config := tables.DefaultConfig()
	config.LevelTolerance = 2
	e := FromSource(sampleSource(t)).DetectorConfig(config)
	analyzer, err := e.analyzer()
	if err != nil {
		t.Fatalf("analyzer() error = %v", err)
	}
	if analyzer == nil {
		t.Fatal("analyzer() = nil")
	}
	if _, err := FromSource(sampleSource(t)).analyzer(); err != nil {
		t.Errorf("analyzer() without configuration error = %v", err)
	}
}

func TestExtractor_Concurrency(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{4, 4},
		{1, 1},
		{0, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		e := FromSource(sampleSource(t)).Concurrency(tt.n)
		if e.options.concurrency != tt.want {
			t.Errorf("Concurrency(%d) = %d, want %d", tt.n, e.options.concurrency, tt.want)
		}
	}
}

func TestExtractor_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		ext  *Extractor
		want string
	}{
		{"negative tolerance", FromSource(sampleSource(t)).Tolerance(-1), "negative tolerance"},
		{"unknown detector", FromSource(sampleSource(t)).BoxDetector("nope"), "unknown box detector"},
		{"page zero", FromSource(sampleSource(t)).Pages(0), "out of range"},
		{"page past end", FromSource(sampleSource(t)).Pages(3), "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.ext.TextLines()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("TextLines() error = %v, want %q", err, tt.want)
			}
		})
	}
}

// ============================================================================
// Terminal Operation Tests
// ============================================================================

func TestExtractor_PageCount(t *testing.T) {
	n, err := FromSource(sampleSource(t)).PageCount()
	if err != nil {
		t.Fatalf("PageCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("PageCount() = %d, want 2", n)
	}
}

func TestExtractor_TextLines(t *testing.T) {
	tests := []struct {
		name string
		ext  *Extractor
		want []string
	}{
		{"all pages", FromSource(sampleSource(t)), []string{"Header", "inside", "Page 1", "Second"}},
		{"second page", FromSource(sampleSource(t)).Pages(2), []string{"Second"}},
		{"unsorted selection", FromSource(sampleSource(t)).Pages(2, 1, 2), []string{"Header", "inside", "Page 1", "Second"}},
		{"parallel", FromSource(sampleSource(t)).Concurrency(2), []string{"Header", "inside", "Page 1", "Second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := tt.ext.TextLines()
			if err != nil {
				t.Fatalf("TextLines() failed: %v", err)
			}
			if !reflect.DeepEqual(lines, tt.want) {
				t.Errorf("TextLines() = %q, want %q", lines, tt.want)
			}
		})
	}
}

func TestExtractor_Document(t *testing.T) {
	doc, err := FromSource(sampleSource(t)).Concurrency(2).VerifyContainment().Document()
	if err != nil {
		t.Fatalf("Document() failed: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}
	for i, page := range doc.Pages {
		if page.Number != i+1 {
			t.Errorf("page %d has number %d", i, page.Number)
		}
		if page.Width != 612 || page.Height != 792 {
			t.Errorf("page %d size = %vx%v, want 612x792", page.Number, page.Width, page.Height)
		}
	}
	if got := model.Count(doc.Pages[0].Components); got != 8 {
		t.Errorf("page 1 has %d components, want 8", got)
	}
}

func TestExtractor_FirstLevel(t *testing.T) {
	tests := []struct {
		name string
		ext  *Extractor
		want []model.ComponentType
	}{
		{"margins", FromSource(sampleSource(t)), []model.ComponentType{model.TypeMargin, model.TypeGroup, model.TypeMargin}},
		{"without margins", FromSource(sampleSource(t)).WithoutMargins(), []model.ComponentType{model.TypeText, model.TypeGroup, model.TypeText}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components, err := tt.ext.FirstLevel(1)
			if err != nil {
				t.Fatalf("FirstLevel() failed: %v", err)
			}
			var got []model.ComponentType
			for _, c := range components {
				got = append(got, c.Type())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FirstLevel() types = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractor_Markup(t *testing.T) {
	out, err := FromSource(sampleSource(t)).Markup()
	if err != nil {
		t.Fatalf("Markup() failed: %v", err)
	}
	if !strings.HasPrefix(out, "<document>") {
		t.Errorf("Markup() does not start with the document element:\n%s", out)
	}
	if n := strings.Count(out, "<page "); n != 2 {
		t.Errorf("Markup() has %d page elements, want 2", n)
	}
	if !strings.Contains(out, ">inside</text>") {
		t.Errorf("Markup() lacks the boxed fragment:\n%s", out)
	}
}

func TestExtractor_Image(t *testing.T) {
	opts := render.DefaultOptions()
	opts.Scale = 2
	img, err := FromSource(sampleSource(t)).Image(2, opts)
	if err != nil {
		t.Fatalf("Image() failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1224 || b.Dy() != 1584 {
		t.Errorf("Image() bounds = %v, want 1224x1584", b)
	}
}

func TestExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromSource(sampleSource(t)).Context(ctx).Document()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Document() error = %v, want context.Canceled", err)
	}
	var pageErr *layout.PageError
	if !errors.As(err, &pageErr) {
		t.Errorf("Document() error = %T, want *layout.PageError", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("testdata/does-not-exist.pdf").TextLines()
	if err == nil {
		t.Fatal("TextLines() on a missing file should fail")
	}
	if !strings.Contains(err.Error(), "failed to open PDF") {
		t.Errorf("error = %v, want open failure", err)
	}
}

func TestOpen_NoFilename(t *testing.T) {
	if _, err := Open("").PageCount(); err == nil {
		t.Error("PageCount() without a filename should fail")
	}
}

func TestAnalyzeSource(t *testing.T) {
	doc, err := AnalyzeSource(sampleSource(t), layout.DefaultAnalyzerConfig())
	if err != nil {
		t.Fatalf("AnalyzeSource() failed: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}
	if boxes := doc.GetPage(1).ComponentsOfType(model.TypeBox); len(boxes) != 1 {
		t.Errorf("page 1 has %d boxes, want 1", len(boxes))
	}
}

func TestMust(t *testing.T) {
	if got := Must(3, nil); got != 3 {
		t.Errorf("Must() = %d, want 3", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must() with an error should panic")
		}
	}()
	Must(0, errors.New("boom"))
}
