package layout

import (
	"fmt"
	"math"

	"github.com/tsawler/pagetree/model"
)

// alignmentTolerance is how far the left and right edges of a margin and
// its neighbour may differ for the neighbour to be absorbed.
const alignmentTolerance = 1.0

// ExpandMargins absorbs into each first-level margin the nearest first-level
// component directly above or below it when both share the same left and
// right edges. A merge replaces the margin and the neighbour by a new margin
// covering both, whose children are the margin's children followed by the
// neighbour, in reading order. Merging repeats until no margin can grow.
//
// components must be sorted; the returned list is sorted as well.
func ExpandMargins(components []*model.Component) ([]*model.Component, error) {
	out := make([]*model.Component, len(components))
	copy(out, components)

	// Every merge removes one first-level component, so more merges than
	// components means the list is not shrinking.
	limit := len(components)
	for merges := 0; ; merges++ {
		merged, err := expandOnce(out)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			return out, nil
		}
		if merges >= limit {
			return nil, fmt.Errorf("%w: margin expansion did not converge after %d merges", ErrInconsistent, merges)
		}
		out = merged
	}
}

// expandOnce performs the first possible merge and returns the new list, or
// nil when no margin can grow.
func expandOnce(components []*model.Component) ([]*model.Component, error) {
	for _, margin := range components {
		if !margin.IsMargin() {
			continue
		}
		for _, near := range []*model.Component{above(margin, components), below(margin, components)} {
			if near == nil || !aligned(margin, near) {
				continue
			}
			return mergeMargin(margin, near, components)
		}
	}
	return nil, nil
}

func mergeMargin(margin, near *model.Component, components []*model.Component) ([]*model.Component, error) {
	grown, err := model.NewMarginComponent(margin.BBox().Union(near.BBox()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistent, err)
	}
	for _, child := range margin.Children() {
		grown.AddChild(child)
	}
	grown.AddChild(near)
	grown.SortChildren()

	out := make([]*model.Component, 0, len(components)-1)
	for _, c := range components {
		if c != margin && c != near {
			out = append(out, c)
		}
	}
	out = append(out, grown)
	model.SmartSort(out)
	return out, nil
}

func aligned(a, b *model.Component) bool {
	return math.Abs(a.FromX()-b.FromX()) < alignmentTolerance &&
		math.Abs(a.ToX()-b.ToX()) < alignmentTolerance
}

// above returns the horizontally overlapping component that ends closest
// above c
func above(c *model.Component, components []*model.Component) *model.Component {
	var nearest *model.Component
	for _, other := range components {
		if other == c || other.ToY() > c.FromY() || !overlapsHorizontally(c, other) {
			continue
		}
		if nearest == nil || other.ToY() > nearest.ToY() {
			nearest = other
		}
	}
	return nearest
}

// below returns the horizontally overlapping component that starts closest
// below c
func below(c *model.Component, components []*model.Component) *model.Component {
	var nearest *model.Component
	for _, other := range components {
		if other == c || other.FromY() < c.ToY() || !overlapsHorizontally(c, other) {
			continue
		}
		if nearest == nil || other.FromY() < nearest.FromY() {
			nearest = other
		}
	}
	return nearest
}

func overlapsHorizontally(a, b *model.Component) bool {
	return a.BBox().HorizontalOverlap(b.BBox()) > 0
}
