// Package tables detects enclosed rectangular boxes from ruling segments.
//
// # Detectors
//
// Box detection is performed by types implementing the [BoxDetector]
// interface. The package provides:
//
//   - [GridDetector] - builds a level grid from the rulings and merges cells
//
// Detector factories are registered globally. Every lookup by name
// returns a new detector:
//
//	detector := tables.GetDetector("grid")
//	boxes, err := detector.DetectBoxes(gridComponents)
//
// # Grid Detection
//
// The [GridDetector] uses a multi-step algorithm:
//
//  1. Classify rulings as horizontal or vertical segments
//  2. Cluster the rulings, and the end caps of the crossing rulings, into
//     horizontal and vertical levels
//  3. Record which cell edges between adjacent levels a ruling covers
//  4. Merge neighbouring cells across uncovered edges
//  5. Accept a merged rectangle when its top and bottom edges are both
//     covered over a common column, or its left and right edges over a
//     common row
//
// A rectangle may therefore be reported with sides that no ruling draws,
// when the surrounding rulings imply them.
//
// Rulings drawn twice at the same place count once; the first drawn, by
// grid row index, is kept.
//
// # Configuration
//
//	config := tables.DefaultConfig()
//	config.LevelTolerance = 1
//	detector.Configure(config)
package tables
