package layout

import "github.com/tsawler/pagetree/model"

// Sequence puts the first-level list and the children of every component
// into reading order: top to bottom, and left to right within a row.
// Sequencing an already sequenced tree leaves it unchanged.
func Sequence(components []*model.Component) {
	model.SortRecursively(components)
}
