package model

// Page is the reconstructed layout of a single page
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	// Components are the first-level components in reading order
	Components []*Component
}

// NewPage creates a new page with given dimensions
func NewPage(width, height float64) *Page {
	return &Page{
		Width:      width,
		Height:     height,
		Components: make([]*Component, 0),
	}
}

// TextComponents returns the page's text fragments in reading order
func (p *Page) TextComponents() []*Component {
	return TextComponents(p.Components)
}

// ComponentsOfType returns every component of the page tree with the given
// type tag, in reading order
func (p *Page) ComponentsOfType(typ ComponentType) []*Component {
	var found []*Component
	Walk(p.Components, func(c, _ *Component) bool {
		if c.Type() == typ {
			found = append(found, c)
		}
		return true
	})
	return found
}

// GetComponentsInRegion returns first-level components intersecting a box
func (p *Page) GetComponentsInRegion(bbox BBox) []*Component {
	var components []*Component
	for _, c := range p.Components {
		if bbox.Intersects(c.BBox()) {
			components = append(components, c)
		}
	}
	return components
}
