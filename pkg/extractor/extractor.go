package extractor

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
)

// multiSpace matches runs of whitespace, including the non-breaking and
// line-separator characters a rendered page tends to contain.
var multiSpace = regexp.MustCompile(`[\s\x{00a0}\x{feff}\x{2028}\x{2029}\p{Zs}\v]{2,}`)

// Extractor reads transcript text and the video title from a page. It
// never clicks or otherwise changes the page.
type Extractor struct {
	sel models.SelectorConfig
}

// New creates an Extractor for the given selectors.
func New(sel models.SelectorConfig) *Extractor {
	return &Extractor{sel: sel}
}

// Normalize turns every newline into a space, collapses whitespace runs
// to a single space and trims the result.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimFunc(s, isSpace)
}

// isSpace matches the same characters as multiSpace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff' || unicode.Is(unicode.Zs, r)
}

// Extract returns the normalized transcript text. ok is false when the
// container is missing, cannot be read, or holds no text.
func (e *Extractor) Extract(ctx context.Context, doc page.Document) (text string, ok bool) {
	container, found := page.Find(ctx, doc, e.sel.TranscriptContainer)
	if !found {
		return "", false
	}
	raw, err := container.Text(ctx)
	if err != nil {
		return "", false
	}
	text = Normalize(raw)
	return text, text != ""
}

// ExtractTitle prefers the page heading and falls back to the document
// title without the site suffix.
func (e *Extractor) ExtractTitle(ctx context.Context, doc page.Document) string {
	if heading, ok := page.Find(ctx, doc, e.sel.TitleHeading); ok {
		if text, err := heading.Text(ctx); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
		}
	}
	title, err := doc.Title(ctx)
	if err != nil {
		return ""
	}
	title = strings.TrimSpace(title)
	if e.sel.TitleSuffix != "" {
		title = strings.TrimSuffix(title, e.sel.TitleSuffix)
	}
	return strings.TrimSpace(title)
}
