package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dtnitsch/yt-summarizer/pkg/page"
)

// Node addresses an element by the JavaScript expression that finds it.
// The expression is re-evaluated on every call, so a node keeps working
// across re-renders as long as its selector still matches.
type Node struct {
	tab  *Tab
	expr string
}

// jsString encodes s as a JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func childExpr(parent, selector string) string {
	return fmt.Sprintf("(%s)?.querySelector(%s)", parent, jsString(selector))
}

func existsExpr(expr string) string {
	return fmt.Sprintf("!!(%s)", expr)
}

func textExpr(expr string) string {
	return fmt.Sprintf("(%s)?.innerText ?? ''", expr)
}

func visibleExpr(expr string) string {
	return fmt.Sprintf("(() => { const el = %s; return !!el && el.offsetParent !== null; })()", expr)
}

func clickExpr(expr string) string {
	return fmt.Sprintf("(() => { const el = %s; if (!el) return false; el.click(); return true; })()", expr)
}

func (n *Node) Query(ctx context.Context, selector string) (page.Node, error) {
	child := childExpr(n.expr, selector)
	var ok bool
	if err := n.tab.eval(ctx, existsExpr(child), &ok); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", selector, err)
	}
	if !ok {
		return nil, page.ErrNotFound
	}
	return &Node{tab: n.tab, expr: child}, nil
}

func (n *Node) Text(ctx context.Context) (string, error) {
	var text string
	if err := n.tab.eval(ctx, textExpr(n.expr), &text); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return text, nil
}

func (n *Node) Visible(ctx context.Context) (bool, error) {
	var v bool
	if err := n.tab.eval(ctx, visibleExpr(n.expr), &v); err != nil {
		return false, fmt.Errorf("failed to check visibility: %w", err)
	}
	return v, nil
}

func (n *Node) Click(ctx context.Context) error {
	var clicked bool
	if err := n.tab.eval(ctx, clickExpr(n.expr), &clicked); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	if !clicked {
		return page.ErrNotFound
	}
	return nil
}
