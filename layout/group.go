package layout

import (
	"github.com/tsawler/pagetree/internal/unionfind"
	"github.com/tsawler/pagetree/model"
)

// GroupConnectedComponents unions every pair of intersecting components,
// touching ones included, and returns one group per connected set of two
// or more members. A group's box is the union of its members' boxes.
// Components that intersect nothing produce no group. Groups are ordered
// by the first member of each set.
func GroupConnectedComponents(components []*model.Component) ([]*model.Component, error) {
	index := newSpatialIndex(0)
	for _, c := range components {
		index.add(c)
	}

	uf := unionfind.New(len(components))
	for i, c := range components {
		for _, j := range index.search(c.BBox()) {
			if j > i && c.Intersects(components[j]) {
				uf.Union(i, j)
			}
		}
	}

	envelopes := make(map[int]model.BBox)
	var roots []int
	for i, c := range components {
		if uf.Size(i) < 2 {
			continue
		}
		root := uf.Find(i)
		if env, ok := envelopes[root]; ok {
			envelopes[root] = env.Union(c.BBox())
		} else {
			envelopes[root] = c.BBox()
			roots = append(roots, root)
		}
	}

	groups := make([]*model.Component, 0, len(roots))
	for _, root := range roots {
		group, err := model.NewGroupComponent(envelopes[root])
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
