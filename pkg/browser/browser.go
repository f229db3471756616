// Package browser drives a live Chrome tab through the DevTools protocol
// and exposes it as a page.Document.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/messaging"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
)

// DefaultMatch selects watch-page tabs when no match is given.
const DefaultMatch = "youtube.com/watch"

// ErrNoTab is returned when no open tab matches and there is no URL to open.
var ErrNoTab = errors.New("browser: no matching tab")

type Options struct {
	// CDP is the DevTools endpoint of a running browser, e.g.
	// http://127.0.0.1:9222. Empty launches a new browser.
	CDP string
	// Match picks an existing tab by URL substring.
	Match string
	// URL is opened when no tab matches, or always for a launched browser.
	URL      string
	Headless bool
	Logger   *slog.Logger
}

// Tab is one attached browser tab.
type Tab struct {
	mu       sync.Mutex
	browser  context.Context
	ctx      context.Context
	targetID target.ID
	opts     Options
	closers  []closer
}

// closer releases one context. A borrowed context belongs to a tab the
// user opened; cancelling it would close that tab, so Close skips it.
type closer struct {
	cancel   context.CancelFunc
	borrowed bool
}

// Connect attaches to a matching tab of a remote browser, or launches one
// and navigates to opts.URL.
func Connect(ctx context.Context, opts Options) (*Tab, error) {
	if opts.Match == "" {
		opts.Match = DefaultMatch
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	t := &Tab{opts: opts}

	var allocCtx context.Context
	var cancelAlloc context.CancelFunc
	if opts.CDP != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, opts.CDP)
	} else {
		if opts.URL == "" {
			return nil, fmt.Errorf("browser: a URL is required when launching a browser")
		}
		allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
		)
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, allocOpts...)
	}
	t.closers = append(t.closers, closer{cancel: cancelAlloc})

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	t.closers = append(t.closers, closer{cancel: cancelBrowser})
	t.browser = browserCtx

	if err := t.attach(ctx); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// attach points the tab at a matching target, opening opts.URL when none
// exists.
func (t *Tab) attach(ctx context.Context) error {
	if t.opts.CDP == "" {
		// A launched browser owns its first tab through the browser context.
		if t.ctx == nil {
			if err := chromedp.Run(t.browser, chromedp.Navigate(t.opts.URL)); err != nil {
				return fmt.Errorf("failed to open %s: %w", t.opts.URL, err)
			}
			t.ctx = t.browser
			return nil
		}
		return t.openNew()
	}

	targets, err := chromedp.Targets(t.browser)
	if err != nil {
		return fmt.Errorf("failed to list tabs: %w", err)
	}
	if info := pickTarget(targets, t.targetID, t.opts.Match); info != nil {
		// Shutting down the browser context must not reach this tab.
		tabCtx, cancel := chromedp.NewContext(context.WithoutCancel(t.browser), chromedp.WithTargetID(info.TargetID))
		t.ctx, t.targetID = tabCtx, info.TargetID
		t.closers = append(t.closers, closer{cancel: cancel, borrowed: true})
		t.opts.Logger.Info("attached to tab", "target", string(info.TargetID), "url", info.URL, "title", info.Title)
		return nil
	}
	if t.opts.URL == "" {
		return fmt.Errorf("%w: %q", ErrNoTab, t.opts.Match)
	}
	return t.openNew()
}

func (t *Tab) openNew() error {
	ctx, cancel := chromedp.NewContext(t.browser)
	if err := chromedp.Run(ctx, chromedp.Navigate(t.opts.URL)); err != nil {
		cancel()
		return fmt.Errorf("failed to open %s: %w", t.opts.URL, err)
	}
	t.ctx = ctx
	t.closers = append(t.closers, closer{cancel: cancel})
	if c := chromedp.FromContext(ctx); c != nil && c.Target != nil {
		t.targetID = c.Target.TargetID
	}
	t.opts.Logger.Info("opened tab", "url", t.opts.URL)
	return nil
}

// pickTarget prefers the previously attached target, then the first page
// whose URL contains match.
func pickTarget(targets []*target.Info, prev target.ID, match string) *target.Info {
	var found *target.Info
	for _, info := range targets {
		if info == nil || info.Type != "page" {
			continue
		}
		if prev != "" && info.TargetID == prev {
			return info
		}
		if found == nil && strings.Contains(info.URL, match) {
			found = info
		}
	}
	return found
}

// Inject re-attaches to the tab, as after a reload or crash.
func (t *Tab) Inject(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attach(ctx)
}

// Alive reports whether the tab still answers.
func (t *Tab) Alive(ctx context.Context) bool {
	var ok bool
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return t.eval(ctx, "true", &ok) == nil && ok
}

// Close shuts down anything Connect started. Tabs that were already open
// stay open; dropping the browser connection detaches from them.
func (t *Tab) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.closers) - 1; i >= 0; i-- {
		if t.closers[i].borrowed {
			continue
		}
		t.closers[i].cancel()
	}
	t.closers = nil
}

// eval runs expr in the tab, stopping early if ctx is done.
func (t *Tab) eval(ctx context.Context, expr string, res interface{}) error {
	t.mu.Lock()
	tabCtx := t.ctx
	t.mu.Unlock()
	if tabCtx == nil {
		return messaging.ErrUnreachable
	}
	if err := tabCtx.Err(); err != nil {
		return fmt.Errorf("%w: %v", messaging.ErrUnreachable, err)
	}

	runCtx, cancel := context.WithCancel(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, chromedp.Evaluate(expr, res))
}

func (t *Tab) Query(ctx context.Context, selector string) (page.Node, error) {
	return t.root().Query(ctx, selector)
}

func (t *Tab) root() *Node {
	return &Node{tab: t, expr: "document"}
}

func (t *Tab) Title(ctx context.Context) (string, error) {
	var title string
	if err := t.eval(ctx, "document.title ?? ''", &title); err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

func (t *Tab) URL(ctx context.Context) (string, error) {
	var u string
	if err := t.eval(ctx, "location.href", &u); err != nil {
		return "", fmt.Errorf("failed to read URL: %w", err)
	}
	return u, nil
}

// Channel serves GET_TRANSCRIPT from this tab. A tab that does not answer
// is reported as unreachable so the caller can reattach.
func (t *Tab) Channel(acq messaging.Acquirer) messaging.Channel {
	return &tabChannel{tab: t, handler: messaging.ContentHandler(acq, t)}
}

type tabChannel struct {
	tab     *Tab
	handler messaging.Handler
}

func (c *tabChannel) Send(ctx context.Context, req models.Request) (models.Response, error) {
	if req.Action != models.ActionGetTranscript {
		return models.Response{}, fmt.Errorf("%w: tab does not handle %s", messaging.ErrUnreachable, req.Action)
	}
	if !c.tab.Alive(ctx) {
		return models.Response{}, messaging.ErrUnreachable
	}
	return c.handler(ctx, req), nil
}
