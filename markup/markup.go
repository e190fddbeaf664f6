package markup

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pagetree/model"
)

// Element names of the document and page levels
const (
	DocumentElement = "document"
	PageElement     = "page"
)

const indent = "\t"

// Build returns the markup tree of a document. Every component becomes an
// element named by its type tag, with its box as fromX, fromY, toX and toY
// attributes. Text components also carry font and size attributes and
// their text as content. Children keep their order in the tree.
func Build(doc *model.Document) *html.Node {
	root := element(DocumentElement)
	for _, page := range doc.Pages {
		appendChild(root, BuildPage(page), 1)
	}
	closeElement(root, 0)
	return root
}

// BuildPage returns the markup tree of a single page
func BuildPage(page *model.Page) *html.Node {
	n := element(PageElement, html.Attribute{Key: "number", Val: strconv.Itoa(page.Number)})
	for _, c := range page.Components {
		appendChild(n, component(c, 2), 2)
	}
	closeElement(n, 1)
	return n
}

// Render writes the markup of a document to w
func Render(w io.Writer, doc *model.Document) error {
	if err := html.Render(w, Build(doc)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// RenderString returns the markup of a document as a string
func RenderString(doc *model.Document) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// component builds the element of c, which is indented depth levels
func component(c *model.Component, depth int) *html.Node {
	attrs := []html.Attribute{
		{Key: "fromX", Val: coord(c.FromX())},
		{Key: "fromY", Val: coord(c.FromY())},
		{Key: "toX", Val: coord(c.ToX())},
		{Key: "toY", Val: coord(c.ToY())},
	}
	if c.IsText() {
		attrs = append(attrs,
			html.Attribute{Key: "font", Val: c.FontName()},
			html.Attribute{Key: "size", Val: coord(c.FontSize())})
	}
	n := element(string(c.Type()), attrs...)

	if c.IsText() {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: c.Text()})
	}
	for _, child := range c.Children() {
		appendChild(n, component(child, depth+1), depth+1)
	}
	if len(c.Children()) > 0 {
		closeElement(n, depth)
	}
	return n
}

func element(name string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: name, Attr: attrs}
}

// appendChild adds child on its own line, indented depth levels
func appendChild(parent, child *html.Node, depth int) {
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: "\n" + strings.Repeat(indent, depth)})
	parent.AppendChild(child)
}

// closeElement puts the closing tag of a non-empty element on its own line
func closeElement(n *html.Node, depth int) {
	if n.FirstChild != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: "\n" + strings.Repeat(indent, depth)})
	}
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
