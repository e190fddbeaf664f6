// Package render paints component trees into images for visual
// inspection of layout reconstruction.
//
// Rulings and text are painted in the ink colour. With
// [Options.ShowStructure], boxes, groups and margins are outlined in grey,
// cyan and yellow, each XOR-ed with the background:
//
//	opts := render.DefaultOptions()
//	opts.Scale = 2
//	opts.ShowStructure = true
//	img, err := render.Page(page, opts)
//
// Text is drawn with a fixed 7x13 bitmap face whatever its font size.
package render
