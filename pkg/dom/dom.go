// Package dom implements page.Document over a static HTML snapshot parsed
// with goquery. Nothing re-renders on its own: a click only has an effect
// when a handler was registered for the clicked element with OnClick.
package dom

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
	"golang.org/x/net/html"
)

// ClickFunc reacts to a click on target and may mutate doc.
type ClickFunc func(doc *goquery.Document, target *goquery.Selection)

type clickHandler struct {
	selector string
	fn       ClickFunc
}

// Document is a goquery-backed snapshot of a page.
type Document struct {
	doc      *goquery.Document
	url      string
	handlers []clickHandler
}

// New wraps an already parsed goquery document.
func New(doc *goquery.Document, url string) *Document {
	return &Document{doc: doc, url: url}
}

// Parse reads HTML from r.
func Parse(r io.Reader, url string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return New(doc, url), nil
}

// ParseString parses an HTML string.
func ParseString(s, url string) (*Document, error) {
	return Parse(strings.NewReader(s), url)
}

// OnClick registers fn to run when an element matching selector is clicked.
func (d *Document) OnClick(selector string, fn ClickFunc) {
	d.handlers = append(d.handlers, clickHandler{selector: selector, fn: fn})
}

// SetURL changes the URL the snapshot reports.
func (d *Document) SetURL(url string) {
	d.url = url
}

// Goquery exposes the underlying document.
func (d *Document) Goquery() *goquery.Document {
	return d.doc
}

func (d *Document) Query(_ context.Context, selector string) (page.Node, error) {
	return d.query(d.doc.Selection, selector)
}

func (d *Document) query(scope *goquery.Selection, selector string) (page.Node, error) {
	sel := scope.Find(selector).First()
	if sel.Length() == 0 {
		return nil, page.ErrNotFound
	}
	return &Node{doc: d, sel: sel}, nil
}

// Title returns the <title> text with whitespace collapsed, as document.title does.
func (d *Document) Title(_ context.Context) (string, error) {
	return strings.Join(strings.Fields(d.doc.Find("title").First().Text()), " "), nil
}

func (d *Document) URL(_ context.Context) (string, error) {
	return d.url, nil
}

// Node is one element of a snapshot.
type Node struct {
	doc *Document
	sel *goquery.Selection
}

func (n *Node) Query(_ context.Context, selector string) (page.Node, error) {
	return n.doc.query(n.sel, selector)
}

func (n *Node) Text(_ context.Context) (string, error) {
	return innerText(n.sel.Get(0)), nil
}

// Visible is false when the element or any ancestor is hidden.
func (n *Node) Visible(_ context.Context) (bool, error) {
	for node := n.sel.Get(0); node != nil; node = node.Parent {
		if node.Type == html.ElementNode && isHidden(node) {
			return false, nil
		}
	}
	return true, nil
}

// Click runs every handler whose selector matches this element.
func (n *Node) Click(_ context.Context) error {
	for _, h := range n.doc.handlers {
		if n.sel.Is(h.selector) {
			h.fn(n.doc.doc, n.sel)
		}
	}
	return nil
}

var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

// isBlock treats custom elements as blocks; the page renders them that way.
// preTags keep their whitespace as written.
var preTags = map[string]bool{"pre": true, "textarea": true, "listing": true, "plaintext": true}

// cssSpace is the whitespace CSS collapses outside pre; nbsp is not part of it.
var cssSpace = regexp.MustCompile(`[ \t\n\r\f]+`)

func isBlock(tag string) bool {
	return blockTags[tag] || strings.Contains(tag, "-")
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "style":
			style := strings.ToLower(strings.ReplaceAll(a.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// innerText approximates the browser's innerText: hidden and non-rendered
// subtrees are skipped and block boundaries become line breaks.
func innerText(root *html.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	pre := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if pre > 0 {
				b.WriteString(n.Data)
			} else {
				b.WriteString(cssSpace.ReplaceAllString(n.Data, " "))
			}
			return
		case html.ElementNode:
			if skipTags[n.Data] || isHidden(n) {
				return
			}
			if n.Data == "br" {
				b.WriteByte('\n')
				return
			}
			if preTags[n.Data] {
				pre++
				defer func() { pre-- }()
			}
		}
		block := n.Type == html.ElementNode && isBlock(n.Data)
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return b.String()
}
