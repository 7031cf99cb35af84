package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
)

// GateState is the load state of the player API script
type GateState int

const (
	Unloaded GateState = iota
	Loading
	Ready
)

func (s GateState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return "unloaded"
}

const defaultInjectTimeout = 30 * time.Second

// ScriptInjector loads the third-party player API
type ScriptInjector interface {
	Inject(ctx context.Context) error
}

// attempt is one injection shared by every caller that arrived while it ran
type attempt struct {
	done chan struct{}
	err  error
}

// ReadinessGate loads the player API at most once at a time and lets any
// number of callers wait for it. After a failed load the gate returns to
// Unloaded and the next Ensure tries again.
type ReadinessGate struct {
	injector ScriptInjector
	timeout  time.Duration

	mu      sync.Mutex
	state   GateState
	current *attempt
	ready   chan struct{}
}

// NewReadinessGate creates a gate in the Unloaded state
func NewReadinessGate(injector ScriptInjector) *ReadinessGate {
	return &ReadinessGate{
		injector: injector,
		timeout:  defaultInjectTimeout,
		ready:    make(chan struct{}),
	}
}

// State returns the current gate state
func (g *ReadinessGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Ensure starts the injection if nobody has and waits for its outcome.
// The injection itself is not bound to ctx, so one impatient caller does not
// fail the load for the others.
func (g *ReadinessGate) Ensure(ctx context.Context) error {
	g.mu.Lock()
	if g.state == Ready {
		g.mu.Unlock()
		return nil
	}
	if g.state == Unloaded {
		g.state = Loading
		g.current = &attempt{done: make(chan struct{})}
		go g.load(g.current)
	}
	a := g.current
	g.mu.Unlock()

	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait returns once the gate is Ready, the running injection fails or ctx is
// done. It never starts an injection itself.
func (g *ReadinessGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	if g.state == Ready {
		g.mu.Unlock()
		return nil
	}
	a, ready := g.current, g.ready
	g.mu.Unlock()

	if a == nil {
		select {
		case <-ready:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *ReadinessGate) load(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	err := g.injector.Inject(ctx)

	g.mu.Lock()
	if err != nil {
		a.err = fmt.Errorf("%w: %v", apperrors.ErrScriptLoad, err)
		g.state = Unloaded
		g.current = nil
	} else {
		g.state = Ready
		close(g.ready)
	}
	g.mu.Unlock()
	close(a.done)
}

// HTTPScriptInjector checks that the player API script is reachable
type HTTPScriptInjector struct {
	URL    string
	Client *http.Client
}

// Inject fetches the script once and fails on a non-2xx answer
func (i *HTTPScriptInjector) Inject(ctx context.Context) error {
	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.URL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return &apperrors.TransportError{Method: req.Method, URL: i.URL, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.HTTPError{Method: req.Method, URL: i.URL, Status: resp.StatusCode}
	}
	return nil
}
