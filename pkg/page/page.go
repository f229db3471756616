// Package page abstracts the document a transcript is read from, so the
// extractor and orchestrator work the same on a live tab and a saved snapshot.
package page

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Query when no element matches the selector.
var ErrNotFound = errors.New("page: node not found")

// Querier looks up elements by CSS selector.
type Querier interface {
	// Query returns the first match, or ErrNotFound.
	Query(ctx context.Context, selector string) (Node, error)
}

// Document is the page currently shown to the user.
type Document interface {
	Querier
	Title(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)
}

// Node is a single element of a Document. Query searches its descendants.
type Node interface {
	Querier
	// Text returns the rendered text of the element, roughly innerText.
	Text(ctx context.Context) (string, error)
	// Visible reports whether the element is currently rendered.
	Visible(ctx context.Context) (bool, error)
	// Click activates the element as a user would.
	Click(ctx context.Context) error
}

// Find is Query with lookup failures folded into a false return.
func Find(ctx context.Context, q Querier, selector string) (Node, bool) {
	n, err := q.Query(ctx, selector)
	if err != nil || n == nil {
		return nil, false
	}
	return n, true
}
