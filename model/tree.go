package model

import "fmt"

// WalkFunc is called for every component visited by Walk. parent is nil for
// first-level components. Returning false skips the component's children.
type WalkFunc func(c, parent *Component) bool

// Walk visits the forest depth first in child order
func Walk(components []*Component, fn WalkFunc) {
	for _, c := range components {
		walk(c, nil, fn)
	}
}

func walk(c, parent *Component, fn WalkFunc) {
	if !fn(c, parent) {
		return
	}
	for _, child := range c.children {
		walk(child, c, fn)
	}
}

// Count returns the number of components in the forest
func Count(components []*Component) int {
	n := 0
	Walk(components, func(*Component, *Component) bool {
		n++
		return true
	})
	return n
}

// TextComponents returns the text fragments of the forest in tree order
func TextComponents(components []*Component) []*Component {
	var texts []*Component
	Walk(components, func(c, _ *Component) bool {
		if c.IsText() {
			texts = append(texts, c)
		}
		return true
	})
	return texts
}

// CheckContainment verifies that every child lies within its parent's box
// expanded by tolerance and that no component is owned twice.
func CheckContainment(components []*Component, tolerance float64) error {
	seen := make(map[*Component]bool)
	var err error
	Walk(components, func(c, parent *Component) bool {
		if err != nil {
			return false
		}
		if seen[c] {
			err = fmt.Errorf("model: %v is owned more than once", c)
			return false
		}
		seen[c] = true
		if parent != nil && !parent.bbox.Contains(c.bbox, tolerance) {
			err = fmt.Errorf("model: %v escapes its parent %v", c, parent)
			return false
		}
		return true
	})
	return err
}

// IsDescendant reports whether c is reachable from root through children
func IsDescendant(root, c *Component) bool {
	for _, child := range root.children {
		if child == c || IsDescendant(child, c) {
			return true
		}
	}
	return false
}
