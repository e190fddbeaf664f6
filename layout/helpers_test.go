package layout

import (
	"testing"

	"github.com/tsawler/pagetree/model"
)

func bbox(fromX, fromY, toX, toY float64) model.BBox {
	return model.NewBBox(fromX, fromY, toX, toY)
}

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

func newLine(t *testing.T, b model.BBox) *model.Component {
	t.Helper()
	c, err := model.NewGridComponent(model.TypeLine, b, 0)
	if err != nil {
		t.Fatalf("NewGridComponent(%v) failed: %v", b, err)
	}
	return c
}

func newBox(t *testing.T, b model.BBox) *model.Component {
	t.Helper()
	c, err := model.NewBoxComponent(b)
	if err != nil {
		t.Fatalf("NewBoxComponent(%v) failed: %v", b, err)
	}
	return c
}

func newMargin(t *testing.T, b model.BBox) *model.Component {
	t.Helper()
	c, err := model.NewMarginComponent(b)
	if err != nil {
		t.Fatalf("NewMarginComponent(%v) failed: %v", b, err)
	}
	return c
}
