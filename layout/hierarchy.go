package layout

import (
	"math"

	"github.com/tsawler/pagetree/model"
)

// ContainerSet is an ordered, growing set of candidate containers. A
// component is placed into the container of smallest area that contains it
// within the tolerance; on equal areas the container added first wins.
type ContainerSet struct {
	tolerance float64
	index     *spatialIndex
}

// NewContainerSet creates a set holding the given containers
func NewContainerSet(tolerance float64, containers ...*model.Component) *ContainerSet {
	s := &ContainerSet{
		tolerance: tolerance,
		index:     newSpatialIndex(tolerance),
	}
	s.Add(containers...)
	return s
}

// Add registers more containers after the existing ones
func (s *ContainerSet) Add(containers ...*model.Component) {
	for _, c := range containers {
		s.index.add(c)
	}
}

// Len returns the number of registered containers
func (s *ContainerSet) Len() int {
	return s.index.len()
}

// FindContainer returns the tightest container of c, or nil. A component
// is never its own container, nor the container of one of its ancestors.
func (s *ContainerSet) FindContainer(c *model.Component) *model.Component {
	var container *model.Component
	area := math.Inf(1)
	for _, i := range s.index.search(c.BBox()) {
		candidate := s.index.components[i]
		if !candidate.Contains(c, s.tolerance) || candidate.Area() >= area {
			continue
		}
		if model.IsDescendant(c, candidate) {
			continue
		}
		container = candidate
		area = candidate.Area()
	}
	return container
}

// Place makes each component a child of its container, or appends it to
// firstLevel when it has none. It returns the extended first level.
func (s *ContainerSet) Place(components []*model.Component, firstLevel []*model.Component) []*model.Component {
	for _, c := range components {
		if container := s.FindContainer(c); container != nil {
			container.AddChild(c)
		} else {
			firstLevel = append(firstLevel, c)
		}
	}
	return firstLevel
}

// Unplaced returns the components no container in the set contains, in
// their original order
func (s *ContainerSet) Unplaced(components []*model.Component) []*model.Component {
	var free []*model.Component
	for _, c := range components {
		if s.FindContainer(c) == nil {
			free = append(free, c)
		}
	}
	return free
}
