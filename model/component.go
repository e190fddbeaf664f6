package model

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ErrInvalidGeometry is returned when a component is constructed with a
// box that cannot take part in geometric comparisons.
var ErrInvalidGeometry = errors.New("model: invalid geometry")

// ComponentType is the type tag of a component. Serializers select their
// output template by this tag.
type ComponentType string

const (
	TypeLine   ComponentType = "line"
	TypeRect   ComponentType = "rect"
	TypeBox    ComponentType = "box"
	TypeGroup  ComponentType = "group"
	TypeMargin ComponentType = "margin"
	TypeText   ComponentType = "text"
)

// IsGrid reports whether the tag denotes a ruling primitive
func (t ComponentType) IsGrid() bool {
	return t == TypeLine || t == TypeRect
}

// Component is a node of the layout tree. It owns its children exclusively;
// the order of the children is the reading order once the tree is sorted.
//
// The bounding box never changes after construction. Text components carry
// the recognized text and font; grid components carry the row index used
// by box detection bookkeeping.
type Component struct {
	typ      ComponentType
	bbox     BBox
	text     string
	fontName string
	fontSize float64
	row      int
	children []*Component
}

// NewGridComponent creates a ruling segment. typ must be TypeLine or
// TypeRect. The box may be one-dimensional.
func NewGridComponent(typ ComponentType, bbox BBox, row int) (*Component, error) {
	if !typ.IsGrid() {
		return nil, fmt.Errorf("%w: %q is not a grid type", ErrInvalidGeometry, typ)
	}
	if err := validate(typ, bbox, false); err != nil {
		return nil, err
	}
	return &Component{typ: typ, bbox: bbox, row: row}, nil
}

// NewTextComponent creates a text fragment with its font metrics
func NewTextComponent(text, fontName string, fontSize float64, bbox BBox) (*Component, error) {
	if err := validate(TypeText, bbox, true); err != nil {
		return nil, err
	}
	return &Component{
		typ:      TypeText,
		bbox:     bbox,
		text:     text,
		fontName: fontName,
		fontSize: fontSize,
	}, nil
}

// NewBoxComponent creates a detected enclosed region. Only box detectors
// are expected to call it.
func NewBoxComponent(bbox BBox) (*Component, error) {
	if err := validate(TypeBox, bbox, true); err != nil {
		return nil, err
	}
	return &Component{typ: TypeBox, bbox: bbox}, nil
}

// NewGroupComponent creates the envelope of a connected region
func NewGroupComponent(bbox BBox) (*Component, error) {
	if err := validate(TypeGroup, bbox, false); err != nil {
		return nil, err
	}
	return &Component{typ: TypeGroup, bbox: bbox}, nil
}

// NewMarginComponent creates a margin region
func NewMarginComponent(bbox BBox) (*Component, error) {
	if err := validate(TypeMargin, bbox, false); err != nil {
		return nil, err
	}
	return &Component{typ: TypeMargin, bbox: bbox}, nil
}

func validate(typ ComponentType, bbox BBox, needArea bool) error {
	if !bbox.IsValid() {
		return fmt.Errorf("%w: %s %v", ErrInvalidGeometry, typ, bbox)
	}
	if needArea && bbox.IsEmpty() {
		return fmt.Errorf("%w: %s has zero area %v", ErrInvalidGeometry, typ, bbox)
	}
	if bbox.Width() == 0 && bbox.Height() == 0 {
		return fmt.Errorf("%w: %s is a point %v", ErrInvalidGeometry, typ, bbox)
	}
	return nil
}

// Type returns the type tag
func (c *Component) Type() ComponentType { return c.typ }

// BBox returns the bounding box
func (c *Component) BBox() BBox { return c.bbox }

func (c *Component) FromX() float64  { return c.bbox.FromX }
func (c *Component) FromY() float64  { return c.bbox.FromY }
func (c *Component) ToX() float64    { return c.bbox.ToX }
func (c *Component) ToY() float64    { return c.bbox.ToY }
func (c *Component) Width() float64  { return c.bbox.Width() }
func (c *Component) Height() float64 { return c.bbox.Height() }
func (c *Component) Area() float64   { return c.bbox.Area() }

// Text returns the recognized text of a text component
func (c *Component) Text() string { return c.text }

// FontName returns the font name of a text component
func (c *Component) FontName() string { return c.fontName }

// FontSize returns the font size of a text component
func (c *Component) FontSize() float64 { return c.fontSize }

// Row returns the grid bookkeeping index
func (c *Component) Row() int { return c.row }

// IsText reports whether c is a text fragment
func (c *Component) IsText() bool { return c.typ == TypeText }

// IsMargin reports whether c is a margin region
func (c *Component) IsMargin() bool { return c.typ == TypeMargin }

// Children returns the owned children in their current order. The slice
// must not be modified by callers.
func (c *Component) Children() []*Component { return c.children }

// AddChild appends a child. The caller guarantees that child has no other
// parent.
func (c *Component) AddChild(child *Component) {
	c.children = append(c.children, child)
}

// Detached returns a copy of c without children. Locators hand out
// detached copies so that every page read builds a fresh tree.
func (c *Component) Detached() *Component {
	d := *c
	d.children = nil
	return &d
}

// SortChildren puts the children in reading order
func (c *Component) SortChildren() {
	SmartSort(c.children)
}

// AverageCharacterWidth returns the width divided by the number of
// characters of the text.
func (c *Component) AverageCharacterWidth() float64 {
	n := utf8.RuneCountInString(c.text)
	if n == 0 {
		return c.Width()
	}
	return c.Width() / float64(n)
}

// Contains reports whether other lies within c's box expanded by
// tolerance. A component never contains itself.
func (c *Component) Contains(other *Component, tolerance float64) bool {
	if c == other {
		return false
	}
	return c.bbox.Contains(other.bbox, tolerance)
}

// Intersects reports whether the boxes of c and other overlap or touch
func (c *Component) Intersects(other *Component) bool {
	return c.bbox.Intersects(other.bbox)
}

// String returns the type tag followed by the box edges, and the text for
// text components.
func (c *Component) String() string {
	s := string(c.typ) + "[" + fmtCoord(c.bbox.FromX) + ", " + fmtCoord(c.bbox.FromY) + ", " +
		fmtCoord(c.bbox.ToX) + ", " + fmtCoord(c.bbox.ToY) + "]"
	if c.typ == TypeText {
		s += " " + strconv.Quote(c.text)
	}
	return s
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
