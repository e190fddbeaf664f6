// Package reader locates the primitives of PDF pages: ruling rectangles and
// positioned text fragments, in top-down page space.
//
// # Opening PDF Files
//
// Use [Open] to read a PDF file:
//
//	loc, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer loc.Close()
//
//	grid, err := loc.LocateGridComponents(ctx, 1)
//	text, err := loc.LocateTextComponents(ctx, 1)
//
// Pages are numbered from 1. Glyphs are merged into fragments while they
// share font and baseline and follow each other closely; see
// [LocatorConfig] for the gap thresholds.
//
// # In-memory Pages
//
// [StaticLocator] serves primitives that were extracted elsewhere, which is
// convenient for tests and for callers with their own PDF stack.
//
// # Errors
//
// Page numbers outside the document return [ErrPageRange]. Content the PDF
// library cannot decode, including content that makes it panic, returns
// [ErrMalformed].
package reader
