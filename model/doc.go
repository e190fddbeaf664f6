// Package model provides the component tree produced by layout
// reconstruction.
//
// # Components
//
// Every node of a page tree is a [Component]: a bounding box in top-down
// page space, a [ComponentType] tag, and an ordered list of owned children.
// The tags are:
//
//   - line, rect - ruling segments located on the page
//   - box - an enclosed region detected from rulings
//   - group - the envelope of connected rulings and boxes
//   - margin - a page margin region
//   - text - a positioned text fragment with font metrics
//
// Components are created through validating constructors such as
// [NewTextComponent] and [NewGridComponent]; boxes that are NaN, infinite
// or inverted are rejected with [ErrInvalidGeometry].
//
// # Geometry
//
//   - [BBox] - bounding box with containment, intersection and union
//   - [Point] - 2D point with distance calculation
//
// # Reading Order
//
// [SmartSort] orders a list top-to-bottom and left-to-right, treating
// components that share most of their height as one row.
// [SortRecursively] applies it to every level of a tree:
//
//	model.SortRecursively(page.Components)
//	model.Walk(page.Components, func(c, parent *model.Component) bool {
//	    fmt.Println(c)
//	    return true
//	})
package model
