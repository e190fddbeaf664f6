package layout

import (
	"testing"

	"github.com/tsawler/pagetree/model"
)

func TestGroupConnectedComponents_Disjoint(t *testing.T) {
	components := []*model.Component{
		newBox(t, bbox(0, 0, 10, 10)),
		newBox(t, bbox(20, 0, 30, 10)),
		newLine(t, bbox(0, 20, 30, 20)),
	}
	groups, err := GroupConnectedComponents(components)
	if err != nil {
		t.Fatalf("GroupConnectedComponents() failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("GroupConnectedComponents() = %v, want no groups", groups)
	}
}

func TestGroupConnectedComponents_Chain(t *testing.T) {
	for _, n := range []int{2, 3, 10} {
		var components []*model.Component
		for i := 0; i < n; i++ {
			x := float64(i * 10)
			components = append(components, newBox(t, bbox(x, float64(i), x+12, float64(i)+5)))
		}
		groups, err := GroupConnectedComponents(components)
		if err != nil {
			t.Fatalf("GroupConnectedComponents() failed: %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("chain of %d: got %d groups, want 1", n, len(groups))
		}
		want := bbox(0, 0, float64((n-1)*10+12), float64(n-1)+5)
		if groups[0].BBox() != want {
			t.Errorf("chain of %d: group = %v, want %v", n, groups[0].BBox(), want)
		}
		if groups[0].Type() != model.TypeGroup {
			t.Errorf("group type = %q, want %q", groups[0].Type(), model.TypeGroup)
		}
	}
}

func TestGroupConnectedComponents_Touching(t *testing.T) {
	components := []*model.Component{
		newLine(t, bbox(0, 0, 10, 0)),
		newLine(t, bbox(10, 0, 10, 10)),
	}
	groups, err := GroupConnectedComponents(components)
	if err != nil {
		t.Fatalf("GroupConnectedComponents() failed: %v", err)
	}
	if len(groups) != 1 || groups[0].BBox() != bbox(0, 0, 10, 10) {
		t.Errorf("GroupConnectedComponents() = %v, want one group [0 0 10 10]", groups)
	}
}

func TestGroupConnectedComponents_SeparateSets(t *testing.T) {
	components := []*model.Component{
		newBox(t, bbox(100, 0, 110, 10)),
		newBox(t, bbox(0, 0, 10, 10)),
		newBox(t, bbox(105, 5, 120, 15)),
		newBox(t, bbox(5, 5, 20, 15)),
		newBox(t, bbox(50, 50, 60, 60)),
	}
	groups, err := GroupConnectedComponents(components)
	if err != nil {
		t.Fatalf("GroupConnectedComponents() failed: %v", err)
	}
	want := []model.BBox{bbox(100, 0, 120, 15), bbox(0, 0, 20, 15)}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i := range want {
		if groups[i].BBox() != want[i] {
			t.Errorf("group %d = %v, want %v", i, groups[i].BBox(), want[i])
		}
	}
}

func TestGroupConnectedComponents_Empty(t *testing.T) {
	groups, err := GroupConnectedComponents(nil)
	if err != nil || len(groups) != 0 {
		t.Errorf("GroupConnectedComponents(nil) = %v, %v", groups, err)
	}
}
