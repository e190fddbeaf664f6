package layout

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/tsawler/pagetree/model"
)

// spatialIndex finds registered components whose boxes, expanded by pad,
// intersect a query box. Results are registration indices in ascending
// order, so callers see components in the order they were added.
type spatialIndex struct {
	tree       rtree.RTreeG[int]
	components []*model.Component
	pad        float64
}

func newSpatialIndex(pad float64) *spatialIndex {
	return &spatialIndex{pad: pad}
}

func (s *spatialIndex) add(c *model.Component) {
	b := c.BBox().Expand(s.pad)
	s.tree.Insert([2]float64{b.FromX, b.FromY}, [2]float64{b.ToX, b.ToY}, len(s.components))
	s.components = append(s.components, c)
}

func (s *spatialIndex) len() int {
	return len(s.components)
}

func (s *spatialIndex) search(b model.BBox) []int {
	var hits []int
	s.tree.Search([2]float64{b.FromX, b.FromY}, [2]float64{b.ToX, b.ToY},
		func(_, _ [2]float64, i int) bool {
			hits = append(hits, i)
			return true
		})
	sort.Ints(hits)
	return hits
}
