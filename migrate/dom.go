package migrate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImageElement is one <img> in a parsed field.
type ImageElement interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Document is a parsed rich-text field.
type Document interface {
	// Images returns every <img> in document order.
	Images() []ImageElement
	// HTML serialises the (possibly mutated) field back to text.
	HTML() (string, error)
}

type Parser interface {
	Parse(text string) (Document, error)
}

// GoqueryParser parses fields with goquery, i.e. the lenient HTML5 parser from x/net/html.
// Fields are fragments, so they're parsed in a <body> context: nothing gets hoisted into a
// <head>, and whatever the field held comes back out in place.
type GoqueryParser struct{}

func (GoqueryParser) Parse(text string) (Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), body)
	if err != nil {
		return nil, fmt.Errorf("migrate: goquery couldn't parse document: %w", err)
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	return &goqueryDocument{doc: goquery.NewDocumentFromNode(root)}, nil
}

type goqueryDocument struct {
	doc *goquery.Document
}

func (d *goqueryDocument) Images() []ImageElement {
	images := []ImageElement{}
	d.doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		images = append(images, goqueryImage{sel: s})
	})
	return images
}

// HTML renders the children of the wrapper node, i.e. the field as it was with our edits.
func (d *goqueryDocument) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("migrate: couldn't render document: %w", err)
	}
	return out, nil
}

type goqueryImage struct {
	sel *goquery.Selection
}

func (i goqueryImage) Attr(name string) (string, bool) { return i.sel.Attr(name) }
func (i goqueryImage) SetAttr(name, value string)      { i.sel.SetAttr(name, value) }
func (i goqueryImage) RemoveAttr(name string)          { i.sel.RemoveAttr(name) }
