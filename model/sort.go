package model

import (
	"math"
	"sort"
)

// rowOverlapRatio is the fraction of the smaller height two components must
// share vertically to be read as the same row.
const rowOverlapRatio = 0.5

// SmartSort orders components top-to-bottom, then left-to-right. Components
// that materially overlap in Y with the first component of a row are read
// as part of that row and ordered purely by X.
//
// The first stage orders by a total key, so the result depends only on the
// set of components and a second call leaves the order unchanged.
func SmartSort(components []*Component) {
	if len(components) < 2 {
		return
	}

	sort.SliceStable(components, func(i, j int) bool {
		return lessTopDown(components[i], components[j])
	})

	start := 0
	for start < len(components) {
		anchor := components[start]
		end := start + 1
		for end < len(components) && sameRow(anchor, components[end]) {
			end++
		}
		row := components[start:end]
		sort.SliceStable(row, func(i, j int) bool {
			return lessLeftRight(row[i], row[j])
		})
		start = end
	}
}

// SortRecursively applies SmartSort to the list and then to the children of
// every component, depth first.
func SortRecursively(components []*Component) {
	SmartSort(components)
	for _, c := range components {
		SortRecursively(c.children)
	}
}

func sameRow(anchor, c *Component) bool {
	overlap := anchor.bbox.VerticalOverlap(c.bbox)
	if overlap <= 0 {
		return false
	}
	return overlap >= rowOverlapRatio*math.Min(anchor.Height(), c.Height())
}

func lessTopDown(a, b *Component) bool {
	ka := [4]float64{a.bbox.FromY, a.bbox.FromX, a.bbox.ToY, a.bbox.ToX}
	kb := [4]float64{b.bbox.FromY, b.bbox.FromX, b.bbox.ToY, b.bbox.ToX}
	return lessKey(ka, kb, a, b)
}

func lessLeftRight(a, b *Component) bool {
	ka := [4]float64{a.bbox.FromX, a.bbox.FromY, a.bbox.ToX, a.bbox.ToY}
	kb := [4]float64{b.bbox.FromX, b.bbox.FromY, b.bbox.ToX, b.bbox.ToY}
	return lessKey(ka, kb, a, b)
}

func lessKey(ka, kb [4]float64, a, b *Component) bool {
	for i := range ka {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	if a.typ != b.typ {
		return a.typ < b.typ
	}
	return a.text < b.text
}
