package tables

import (
	"sort"
	"strings"
	"testing"

	"github.com/tsawler/pagetree/model"
)

// Fixtures are drawn with box-drawing characters. Every character cell is
// one unit wide and tall, and cells are two units apart.
const (
	horizontalRunes = "├┬┼┤└┴┌┐┘─"
	verticalRunes   = "├┬┼┤└┴┌┐┘│"
)

func coordFrom(index int) float64 { return float64(index * 2) }
func coordTo(index int) float64   { return coordFrom(index) + 1 }

// parseGrid turns a drawing into rect rulings: one per horizontal run of a
// row and one per vertical run of a column.
func parseGrid(t *testing.T, lines ...string) []*model.Component {
	t.Helper()

	var out []*model.Component
	add := func(b model.BBox) {
		c, err := model.NewGridComponent(model.TypeRect, b, 1)
		if err != nil {
			t.Fatalf("NewGridComponent(%v) failed: %v", b, err)
		}
		out = append(out, c)
	}

	openFrom := map[int]float64{}
	openTo := map[int]float64{}
	flushVertical := func(col int) {
		if from, ok := openFrom[col]; ok {
			add(model.NewBBox(coordFrom(col), from, coordTo(col), openTo[col]))
			delete(openFrom, col)
			delete(openTo, col)
		}
	}

	for row, line := range lines {
		inRun := false
		var runFrom, runTo float64
		flushHorizontal := func() {
			if inRun {
				add(model.NewBBox(runFrom, coordFrom(row), runTo, coordTo(row)))
				inRun = false
			}
		}
		for col, r := range []rune(line) {
			if strings.ContainsRune(horizontalRunes, r) {
				if !inRun {
					runFrom = coordFrom(col)
					inRun = true
				}
				runTo = coordTo(col)
			} else {
				flushHorizontal()
			}
			if strings.ContainsRune(verticalRunes, r) {
				if _, ok := openFrom[col]; !ok {
					openFrom[col] = coordFrom(row)
				}
				openTo[col] = coordTo(row)
			} else {
				flushVertical(col)
			}
		}
		flushHorizontal()
	}

	cols := make([]int, 0, len(openFrom))
	for col := range openFrom {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	for _, col := range cols {
		flushVertical(col)
	}
	return out
}

// parseBox returns the extent of the box drawn in the lines
func parseBox(lines ...string) model.BBox {
	var b model.BBox
	seenH, seenV := false, false
	for row, line := range lines {
		for col, r := range []rune(line) {
			if strings.ContainsRune(horizontalRunes, r) {
				if !seenH {
					b.FromX = coordFrom(col)
					seenH = true
				}
				b.ToX = coordTo(col)
			}
			if strings.ContainsRune(verticalRunes, r) {
				if !seenV {
					b.FromY = coordFrom(row)
					seenV = true
				}
				b.ToY = coordTo(row)
			}
		}
	}
	return b
}

func assertBoxes(t *testing.T, detected []*model.Component, want ...model.BBox) {
	t.Helper()
	if len(detected) != len(want) {
		t.Fatalf("DetectBoxes() returned %d boxes %v, want %d", len(detected), detected, len(want))
	}
	for i, box := range detected {
		if box.Type() != model.TypeBox {
			t.Errorf("box %d has type %q, want %q", i, box.Type(), model.TypeBox)
		}
		if box.BBox() != want[i] {
			t.Errorf("box %d = %+v, want %+v", i, box.BBox(), want[i])
		}
	}
}

func detect(t *testing.T, grid []*model.Component) []*model.Component {
	t.Helper()
	boxes, err := NewGridDetector().DetectBoxes(grid)
	if err != nil {
		t.Fatalf("DetectBoxes() failed: %v", err)
	}
	return boxes
}

func TestGridDetector_Name(t *testing.T) {
	d := NewGridDetector()
	if name := d.Name(); name != "grid" {
		t.Errorf("Name() = %q, want 'grid'", name)
	}
}

func TestGridDetector_Configure(t *testing.T) {
	d := NewGridDetector()

	config := Config{LevelTolerance: 1, CoverageTolerance: 0.25, MaxRuleThickness: 2}
	if err := d.Configure(config); err != nil {
		t.Errorf("Configure() failed: %v", err)
	}
	if d.config != config {
		t.Errorf("config = %+v, want %+v", d.config, config)
	}

	if err := d.Configure(Config{LevelTolerance: -1}); err == nil {
		t.Error("Configure() with negative tolerance should fail")
	}
}

func TestRegistry(t *testing.T) {
	if GetDetector("grid") == nil {
		t.Fatal("grid detector is not registered")
	}
	names := ListDetectors()
	if len(names) == 0 || names[0] != "grid" {
		t.Errorf("ListDetectors() = %v, want [grid]", names)
	}
}

func TestGetDetector_NewInstances(t *testing.T) {
	a, b := GetDetector("grid"), GetDetector("grid")
	if a == b {
		t.Fatal("GetDetector() returned the same detector twice")
	}
	if err := a.Configure(Config{LevelTolerance: 9}); err != nil {
		t.Fatal(err)
	}
	if got := b.(*GridDetector).config; got != DefaultConfig() {
		t.Errorf("configuring one detector changed another: %+v", got)
	}
	if GetDetector("missing") != nil {
		t.Error("GetDetector(\"missing\") should be nil")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("b", func() BoxDetector { return NewGridDetector() })
	r.Register("a", func() BoxDetector { return NewGridDetector() })
	if names := r.List(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("List() = %v, want [a b]", names)
	}
	if r.Get("a") == nil {
		t.Error("Get(\"a\") = nil")
	}
}

func TestDetectNoBoxes(t *testing.T) {
	grid := parseGrid(t,
		" ─────┬───── ",
		"      │      ",
	)
	if boxes := detect(t, grid); len(boxes) != 0 {
		t.Errorf("DetectBoxes() = %v, want none", boxes)
	}
}

func TestDetectColumnBoxes(t *testing.T) {
	grid := parseGrid(t,
		" ─────┬───── ",
		"      │      ",
		" ─────┴───── ",
	)
	assertBoxes(t, detect(t, grid),
		parseBox(
			" ┌────┐      ",
			" │    │      ",
			" └────┘      ",
		),
		parseBox(
			"      ┌────┐ ",
			"      │    │ ",
			"      └────┘ ",
		),
	)
}

func TestDetectRowBoxes(t *testing.T) {
	grid := parseGrid(t,
		" ─────────── ",
		"             ",
		" ─────────── ",
		"             ",
		" ─────────── ",
	)
	assertBoxes(t, detect(t, grid),
		parseBox(
			" ┌─────────┐ ",
			" │         │ ",
			" └─────────┘ ",
			"             ",
			"             ",
		),
		parseBox(
			"             ",
			"             ",
			" ┌─────────┐ ",
			" │         │ ",
			" └─────────┘ ",
		),
	)
}

func TestDetectMixedBoxes(t *testing.T) {
	grid := parseGrid(t,
		" ┌────┬────┐ ",
		" │    │    │ ",
		" │    ├────┤ ",
		" │    │    │ ",
		" └────┴────┘ ",
	)
	assertBoxes(t, detect(t, grid),
		parseBox(
			" ┌────┐      ",
			" │    │      ",
			" │    │      ",
			" │    │      ",
			" └────┘      ",
		),
		parseBox(
			"      ┌────┐ ",
			"      │    │ ",
			"      └────┘ ",
			"             ",
			"             ",
		),
		parseBox(
			"             ",
			"             ",
			"      ┌────┐ ",
			"      │    │ ",
			"      └────┘ ",
		),
	)
}

func TestDetectUncoveredBoxes(t *testing.T) {
	grid := parseGrid(t,
		" │         │ ",
		" ├─────────┤ ",
		" │         │ ",
		" │         │ ",
	)
	assertBoxes(t, detect(t, grid),
		parseBox(
			" ┌─────────┐ ",
			" └─────────┘ ",
			"             ",
			"             ",
		),
		parseBox(
			"             ",
			" ┌─────────┐ ",
			" │         │ ",
			" └─────────┘ ",
		),
	)
}

func TestDetectBoxes_OrderIndependent(t *testing.T) {
	grid := parseGrid(t,
		" ┌────┬────┐ ",
		" │    │    │ ",
		" │    ├────┤ ",
		" │    │    │ ",
		" └────┴────┘ ",
	)
	reversed := make([]*model.Component, len(grid))
	for i, c := range grid {
		reversed[len(grid)-1-i] = c
	}

	a, b := detect(t, grid), detect(t, reversed)
	if len(a) != len(b) {
		t.Fatalf("got %d and %d boxes", len(a), len(b))
	}
	for i := range a {
		if a[i].BBox() != b[i].BBox() {
			t.Errorf("box %d = %v and %v", i, a[i], b[i])
		}
	}
}

func TestDetectBoxes_OutlinedRectangle(t *testing.T) {
	rect, err := model.NewGridComponent(model.TypeRect, model.NewBBox(10, 20, 110, 70), 0)
	if err != nil {
		t.Fatal(err)
	}
	assertBoxes(t, detect(t, []*model.Component{rect}), model.NewBBox(10, 20, 110, 70))
}

func TestDetectBoxes_IgnoresDiagonalsAndText(t *testing.T) {
	diagonal, err := model.NewGridComponent(model.TypeLine, model.NewBBox(0, 0, 100, 100), 0)
	if err != nil {
		t.Fatal(err)
	}
	text, err := model.NewTextComponent("cell", "Helvetica", 10, model.NewBBox(0, 0, 20, 10))
	if err != nil {
		t.Fatal(err)
	}
	if boxes := detect(t, []*model.Component{diagonal, text}); len(boxes) != 0 {
		t.Errorf("DetectBoxes() = %v, want none", boxes)
	}
}

func TestDetectBoxes_Empty(t *testing.T) {
	boxes, err := NewGridDetector().DetectBoxes(nil)
	if err != nil {
		t.Errorf("DetectBoxes() failed: %v", err)
	}
	if boxes != nil {
		t.Errorf("DetectBoxes(nil) = %v, want nil", boxes)
	}
}

func newLine(t *testing.T, b model.BBox, row int) *model.Component {
	t.Helper()
	c, err := model.NewGridComponent(model.TypeLine, b, row)
	if err != nil {
		t.Fatalf("NewGridComponent(%v) failed: %v", b, err)
	}
	return c
}

func TestDetectBoxes_DisjointUnderlines(t *testing.T) {
	tests := []struct {
		name string
		grid []*model.Component
	}{
		{"horizontal", []*model.Component{
			newLine(t, model.NewBBox(0, 10, 100, 10), 0),
			newLine(t, model.NewBBox(300, 500, 400, 500), 1),
		}},
		{"vertical", []*model.Component{
			newLine(t, model.NewBBox(10, 0, 10, 100), 0),
			newLine(t, model.NewBBox(500, 300, 500, 400), 1),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if boxes := detect(t, tt.grid); len(boxes) != 0 {
				t.Errorf("DetectBoxes() = %v, want none", boxes)
			}
		})
	}
}

func TestDistinct(t *testing.T) {
	first := newLine(t, model.NewBBox(0, 10, 100, 10), 1)
	again := newLine(t, model.NewBBox(0, 10, 100, 10), 4)
	other := newLine(t, model.NewBBox(0, 20, 100, 20), 2)
	rect, err := model.NewGridComponent(model.TypeRect, model.NewBBox(0, 10, 100, 10), 3)
	if err != nil {
		t.Fatal(err)
	}

	got := distinct([]*model.Component{again, other, first, rect})
	want := []*model.Component{first, other, rect}
	if len(got) != len(want) {
		t.Fatalf("distinct() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("distinct()[%d] = %v row %d, want row %d", i, got[i], got[i].Row(), want[i].Row())
		}
	}
}
