// Package dom is the rendering surface backed by parsed HTML documents.
package dom

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/XS227/StreamerSite/internal/canvas"
)

// Document is a parsed, mutable page document.
type Document struct {
	doc       *goquery.Document
	listeners []canvas.ClickListener
}

var _ canvas.Document = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// EditableElements implements canvas.Document.
func (d *Document) EditableElements() []canvas.Element {
	sel := d.doc.Find("[" + canvas.EditableAttr + "]")
	out := make([]canvas.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{sel: s})
	})
	return out
}

// Markup implements canvas.Document.
func (d *Document) Markup() (string, error) {
	return goquery.OuterHtml(d.doc.Find("html").First())
}

// AddClickListener implements canvas.Document.
func (d *Document) AddClickListener(l canvas.ClickListener) {
	d.listeners = append(d.listeners, l)
}

// Click implements canvas.Document. Listeners sit on the document, so every
// one of them sees the event regardless of StopPropagation.
func (d *Document) Click(selector string) (*canvas.ClickEvent, error) {
	target := d.doc.Find(selector).First()
	if target.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", canvas.ErrNoTarget, selector)
	}
	ev := canvas.NewClickEvent(element{sel: target})
	for _, l := range d.listeners {
		l(ev)
	}
	return ev, nil
}

// Title is the text of the document's <title>.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

type element struct {
	sel *goquery.Selection
}

func (e element) Tag() string { return goquery.NodeName(e.sel) }

// Path is a readable "html > body > div#hero > h1" locator.
func (e element) Path() string {
	var parts []string
	e.sel.Parents().Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, segment(s))
	})
	slices.Reverse(parts)
	parts = append(parts, segment(e.sel))
	return strings.Join(parts, " > ")
}

func (e element) Editable() bool {
	v, _ := e.sel.Attr("contenteditable")
	return v == "true"
}

func (e element) SetEditable(editable bool) {
	e.sel.SetAttr("contenteditable", strconv.FormatBool(editable))
}

func segment(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	if id, ok := s.Attr("id"); ok && id != "" {
		name += "#" + id
	}
	return name
}
