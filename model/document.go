package model

// Document holds the reconstructed pages of a document
type Document struct {
	Pages []*Page
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document. A page without a number is
// numbered after its position.
func (d *Document) AddPage(page *Page) {
	if page.Number == 0 {
		page.Number = len(d.Pages) + 1
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by its 1-indexed number, or nil
func (d *Document) GetPage(number int) *Page {
	if number >= 1 && number <= len(d.Pages) && d.Pages[number-1].Number == number {
		return d.Pages[number-1]
	}
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}
