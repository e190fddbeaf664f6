// Package pagetree reconstructs the layout of PDF pages as trees of
// components and reads their text in reading order.
//
// Basic usage:
//
//	lines, err := pagetree.Open("document.pdf").TextLines()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	doc, err := pagetree.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    Tolerance(0.5).
//	    Concurrency(4).
//	    Document()
//
// Each page of the returned document holds its first-level components in
// reading order; boxes, groups and margins own the components they
// enclose. For advanced use cases the layout, reader, markup and render
// packages are also available.
package pagetree

import (
	"github.com/tsawler/pagetree/layout"
)

// Source provides the primitives and sizes of the pages of a document.
// Pages are numbered from 1. reader.PDFLocator and reader.StaticLocator
// are sources.
type Source interface {
	layout.Locator
	PageCount() int
	PageSize(page int) (width, height float64, err error)
}

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is opened lazily and closed by terminal operations such as
// TextLines, or explicitly via Close.
//
// Example:
//
//	lines, err := pagetree.Open("document.pdf").TextLines()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already opened source. The
// caller is responsible for closing the source.
//
// Example:
//
//	loc, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer loc.Close()
//	doc, err := pagetree.FromSource(loc).Document()
func FromSource(src Source) *Extractor {
	return &Extractor{
		source:  src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagetree.Must(pagetree.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
