package reader

import (
	"context"
	"fmt"

	"github.com/tsawler/pagetree/model"
)

// StaticPage holds already extracted primitives of one page
type StaticPage struct {
	Width, Height float64
	Grid          []*model.Component
	Text          []*model.Component
}

// StaticLocator serves pages held in memory. Every call returns detached
// copies, so a page can be analyzed any number of times.
type StaticLocator struct {
	pages []StaticPage
}

// NewStaticLocator creates a locator over the given pages, numbered from 1
func NewStaticLocator(pages ...StaticPage) *StaticLocator {
	return &StaticLocator{pages: pages}
}

// PageCount returns the number of pages
func (l *StaticLocator) PageCount() int {
	return len(l.pages)
}

// PageSize returns the width and height of a page
func (l *StaticLocator) PageSize(page int) (float64, float64, error) {
	p, err := l.page(page)
	if err != nil {
		return 0, 0, err
	}
	return p.Width, p.Height, nil
}

// LocateGridComponents returns copies of the page's grid components
func (l *StaticLocator) LocateGridComponents(ctx context.Context, page int) ([]*model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := l.page(page)
	if err != nil {
		return nil, err
	}
	return detach(p.Grid), nil
}

// LocateTextComponents returns copies of the page's text fragments
func (l *StaticLocator) LocateTextComponents(ctx context.Context, page int) ([]*model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := l.page(page)
	if err != nil {
		return nil, err
	}
	return detach(p.Text), nil
}

func (l *StaticLocator) page(page int) (*StaticPage, error) {
	if page < 1 || page > len(l.pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, page, len(l.pages))
	}
	return &l.pages[page-1], nil
}

func detach(components []*model.Component) []*model.Component {
	out := make([]*model.Component, len(components))
	for i, c := range components {
		out[i] = c.Detached()
	}
	return out
}
