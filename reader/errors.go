package reader

import "errors"

var (
	// ErrPageRange is returned for page numbers outside 1..PageCount
	ErrPageRange = errors.New("reader: page out of range")

	// ErrNotPDF is returned when the input has no PDF header
	ErrNotPDF = errors.New("reader: not a PDF file")

	// ErrMalformed is returned when a page's content cannot be decoded
	ErrMalformed = errors.New("reader: malformed page content")
)
