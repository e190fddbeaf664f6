package pagetree

import (
	"context"
	"fmt"

	"github.com/tsawler/pagetree/layout"
	"github.com/tsawler/pagetree/model"
	"github.com/tsawler/pagetree/reader"
)

// AnalyzeDocument reconstructs every page of a PDF file with the default
// configuration.
//
// Example:
//
//	doc, err := pagetree.AnalyzeDocument("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range doc.Pages {
//	    fmt.Printf("Page %d: %d boxes\n", page.Number, len(page.ComponentsOfType(model.TypeBox)))
//	}
func AnalyzeDocument(path string) (*model.Document, error) {
	return AnalyzeDocumentWithConfig(path, layout.DefaultAnalyzerConfig())
}

// AnalyzeDocumentWithConfig reconstructs every page of a PDF file with a
// custom analyzer configuration. Pages are read one at a time; the first
// failing page fails the document.
func AnalyzeDocumentWithConfig(path string, config layout.AnalyzerConfig) (*model.Document, error) {
	locConfig := reader.DefaultLocatorConfig()
	locConfig.Logger = config.Logger
	loc, err := reader.OpenWithConfig(path, locConfig)
	if err != nil {
		return nil, err
	}
	defer loc.Close()

	return AnalyzeSource(loc, config)
}

// AnalyzeSource reconstructs every page of a source
func AnalyzeSource(src Source, config layout.AnalyzerConfig) (*model.Document, error) {
	analyzer := layout.NewAnalyzerWithConfig(config)
	doc := model.NewDocument()
	for number := 1; number <= src.PageCount(); number++ {
		width, height, err := src.PageSize(number)
		if err != nil {
			return nil, &layout.PageError{Page: number, Err: fmt.Errorf("%w: %w", layout.ErrPageRead, err)}
		}
		components, err := analyzer.ReadPage(context.Background(), src, number)
		if err != nil {
			return nil, err
		}
		page := model.NewPage(width, height)
		page.Number = number
		page.Components = components
		doc.AddPage(page)
	}
	return doc, nil
}
