// Package messaging carries requests between the coordinator, the page side
// that reads transcripts and the background side that calls the model.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dtnitsch/yt-summarizer/models"
)

// ErrUnreachable means no receiver is listening on the other end, as when
// the page side was never attached or the tab went away.
var ErrUnreachable = errors.New("messaging: receiving end does not exist")

// ErrChannelFailure is returned when a request still fails after one
// reinjection.
var ErrChannelFailure = errors.New("messaging: channel failed after reinjection")

// Channel delivers one request and waits for its response.
type Channel interface {
	Send(ctx context.Context, req models.Request) (models.Response, error)
}

// Injector re-establishes the receiving end of a Channel.
type Injector interface {
	Inject(ctx context.Context) error
}

// Handler answers a single request.
type Handler func(ctx context.Context, req models.Request) models.Response

// Router is an in-process Channel that dispatches by action.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Handle registers h for action, replacing any earlier handler.
func (r *Router) Handle(action string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = h
}

// Remove unregisters action, so later sends for it are unreachable.
func (r *Router) Remove(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, action)
}

func (r *Router) Send(ctx context.Context, req models.Request) (models.Response, error) {
	r.mu.RLock()
	h, ok := r.handlers[req.Action]
	r.mu.RUnlock()
	if !ok {
		return models.Response{}, fmt.Errorf("%w: no handler for %s", ErrUnreachable, req.Action)
	}
	if err := ctx.Err(); err != nil {
		return models.Response{}, err
	}
	return h(ctx, req), nil
}

// SendWithReinject sends req once. If the receiver is unreachable it calls
// inj exactly once, waits delay and resends. Any failure after that, or a
// failed injection, returns ErrChannelFailure.
func SendWithReinject(ctx context.Context, ch Channel, inj Injector, delay time.Duration, req models.Request) (models.Response, error) {
	resp, err := ch.Send(ctx, req)
	if err == nil {
		return resp, nil
	}
	if !errors.Is(err, ErrUnreachable) || inj == nil {
		return models.Response{}, fmt.Errorf("%w: %v", ErrChannelFailure, err)
	}

	if err := inj.Inject(ctx); err != nil {
		return models.Response{}, fmt.Errorf("%w: injection failed: %v", ErrChannelFailure, err)
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return models.Response{}, fmt.Errorf("%w: %v", ErrChannelFailure, ctx.Err())
		}
	}

	resp, err = ch.Send(ctx, req)
	if err != nil {
		return models.Response{}, fmt.Errorf("%w: %v", ErrChannelFailure, err)
	}
	return resp, nil
}

// InjectFunc adapts a function to Injector.
type InjectFunc func(ctx context.Context) error

func (f InjectFunc) Inject(ctx context.Context) error { return f(ctx) }
