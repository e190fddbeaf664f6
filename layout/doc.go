// Package layout builds the component tree of a PDF page.
//
// The [Analyzer] takes the rulings and text fragments of a page, as found
// by a [Locator], and arranges them into a forest of containers:
//
//	analyzer := layout.NewAnalyzer()
//	components, err := analyzer.ReadPage(ctx, locator, 1)
//
// # Pipeline
//
// A page is processed in a fixed order:
//
//   - boxes are detected from the rulings by a [tables.BoxDetector]
//   - intersecting rulings and boxes are merged into groups by
//     [GroupConnectedComponents]
//   - boxes, rulings and finally text are placed into the tightest
//     container of a [ContainerSet]
//   - a [MarginDetector] reports header and footer regions, which become
//     containers before text is placed
//   - the tree is put in reading order by [Sequence], and margins absorb
//     aligned neighbours through [ExpandMargins]
//
// # Text Lines
//
// A [LineJoiner] walks a sorted tree and joins fragments that continue one
// another, removing hyphenation at line ends:
//
//	lines := layout.TextLines(components)
//
// # Errors
//
// Locator and detector failures wrap [ErrPageRead]. A broken invariant,
// such as margin expansion that does not converge, wraps [ErrInconsistent].
// [Analyzer.ReadPage] reports both as a [*PageError].
package layout
