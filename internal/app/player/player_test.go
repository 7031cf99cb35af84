package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
)

type countingInjector struct {
	calls int32
	delay time.Duration
	fail  int32
}

func (i *countingInjector) Inject(ctx context.Context) error {
	n := atomic.AddInt32(&i.calls, 1)
	time.Sleep(i.delay)
	if n <= atomic.LoadInt32(&i.fail) {
		return errors.New("script blocked")
	}
	return nil
}

func ptr(b bool) *bool { return &b }

func TestConcurrentCreatePlayerInjectsOnce(t *testing.T) {
	injector := &countingInjector{delay: 20 * time.Millisecond}
	bridge := NewBridge(NewReadinessGate(injector), &EmbedFactory{}, zerolog.Nop())

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = bridge.CreatePlayer(context.Background(), fmt.Sprintf("player-%d", i), PlayerOptions{VideoID: "dQw4w9WgXcQ"}, Handlers{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&injector.calls))
	assert.Equal(t, 8, bridge.Registry().Len())
	assert.Equal(t, Ready, bridge.gate.State())
}

func TestGateRetriesAfterFailure(t *testing.T) {
	injector := &countingInjector{fail: 1}
	gate := NewReadinessGate(injector)

	err := gate.Ensure(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrScriptLoad))
	assert.Equal(t, Unloaded, gate.State())

	require.NoError(t, gate.Ensure(context.Background()))
	assert.Equal(t, Ready, gate.State())
	assert.Equal(t, int32(2), atomic.LoadInt32(&injector.calls))
}

func TestGateWait(t *testing.T) {
	gate := NewReadinessGate(&countingInjector{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, gate.Wait(ctx), context.DeadlineExceeded)

	waited := make(chan error, 1)
	go func() { waited <- gate.Wait(context.Background()) }()

	require.NoError(t, gate.Ensure(context.Background()))
	select {
	case err := <-waited:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the gate became ready")
	}
	assert.NoError(t, gate.Wait(context.Background()))
}

func TestPlayerVars(t *testing.T) {
	vars := PlayerOptions{VideoID: "abc"}.PlayerVars()
	assert.Equal(t, "1", vars["modestbranding"])
	assert.Equal(t, "1", vars["controls"])
	assert.Equal(t, "0", vars["rel"])
	assert.Equal(t, "0", vars["autoplay"])
	assert.NotContains(t, vars, "playlist")

	vars = PlayerOptions{
		VideoID:        "abc",
		Loop:           true,
		Autoplay:       true,
		ModestBranding: ptr(false),
		Controls:       ptr(false),
		Rel:            ptr(true),
	}.PlayerVars()
	assert.Equal(t, "abc", vars["playlist"])
	assert.Equal(t, "1", vars["loop"])
	assert.Equal(t, "1", vars["autoplay"])
	assert.Equal(t, "0", vars["modestbranding"])
	assert.Equal(t, "0", vars["controls"])
	assert.Equal(t, "1", vars["rel"])

	opts := PlayerOptions{}.withDefaults()
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, 360, opts.Height)
}

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=4": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                    "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://example.com/videos":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractVideoID(in), in)
	}
}

func TestCreatePlayerErrorRunsHandlerFirst(t *testing.T) {
	bridge := NewBridge(NewReadinessGate(&countingInjector{}), &EmbedFactory{}, zerolog.Nop())

	var handled []int
	p, err := bridge.CreatePlayer(context.Background(), "lesson-player", PlayerOptions{}, Handlers{
		OnError: func(code int) { handled = append(handled, code) },
		OnReady: func(Player) { t.Error("ready not expected") },
	})

	assert.Nil(t, p)
	var perr *PlayerError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrCodeInvalidParam, perr.Code)
	assert.Equal(t, []int{ErrCodeInvalidParam}, handled)
	assert.Equal(t, 0, bridge.Registry().Len())
}

type fakePlayer struct {
	id         string
	events     chan Event
	destroyErr error
	destroyed  int32
}

func (p *fakePlayer) ElementID() string    { return p.id }
func (p *fakePlayer) VideoID() string      { return "vid" }
func (p *fakePlayer) Events() <-chan Event { return p.events }
func (p *fakePlayer) Destroy() error {
	atomic.AddInt32(&p.destroyed, 1)
	return p.destroyErr
}

type fakeFactory struct {
	players map[string]*fakePlayer
}

func (f *fakeFactory) NewPlayer(ctx context.Context, elementID string, opts PlayerOptions) (Player, error) {
	return f.players[elementID], nil
}

func TestCreatePlayerDispatchesInOrder(t *testing.T) {
	fp := &fakePlayer{id: "main", events: make(chan Event, 4)}
	fp.events <- Event{Type: EventStateChange, State: StateBuffering}
	fp.events <- Event{Type: EventReady}
	fp.events <- Event{Type: EventRateChange, Rate: 1.5}
	close(fp.events)

	bridge := NewBridge(NewReadinessGate(&countingInjector{}), &fakeFactory{players: map[string]*fakePlayer{"main": fp}}, zerolog.Nop())

	var mu sync.Mutex
	var seen []string
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	}

	p, err := bridge.CreatePlayer(context.Background(), "main", PlayerOptions{VideoID: "vid"}, Handlers{
		OnStateChange: func(s PlaybackState) { record(fmt.Sprintf("state:%d", s)) },
		OnReady:       func(Player) { record("ready") },
		OnRateChange:  func(r float64) { record(fmt.Sprintf("rate:%.1f", r)) },
	})
	require.NoError(t, err)
	assert.Equal(t, "main", p.ElementID())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{"state:3", "ready", "rate:1.5"}, seen)
}

func TestDestroyAlwaysRemoves(t *testing.T) {
	fp := &fakePlayer{id: "main", events: make(chan Event), destroyErr: errors.New("iframe gone")}
	reg := NewRegistry()
	reg.Put("main", fp)

	found, err := reg.Destroy("main")
	assert.True(t, found)
	assert.EqualError(t, err, "iframe gone")
	assert.Equal(t, int32(1), atomic.LoadInt32(&fp.destroyed))
	assert.Equal(t, 0, reg.Len())

	found, err = reg.Destroy("main")
	assert.False(t, found)
	assert.NoError(t, err)
}

func TestCreatePlayerReplacesExisting(t *testing.T) {
	bridge := NewBridge(NewReadinessGate(&countingInjector{}), &EmbedFactory{BaseURL: "https://www.youtube-nocookie.com/embed/"}, zerolog.Nop())
	ctx := context.Background()

	first, err := bridge.CreatePlayer(ctx, "hero", PlayerOptions{VideoID: "aaa"}, Handlers{})
	require.NoError(t, err)
	second, err := bridge.CreatePlayer(ctx, "hero", PlayerOptions{VideoID: "https://youtu.be/bbb", Loop: true}, Handlers{})
	require.NoError(t, err)

	assert.True(t, first.(*EmbedPlayer).Destroyed())
	got, ok := bridge.Get("hero")
	require.True(t, ok)
	assert.Same(t, second, got)

	desc := second.(*EmbedPlayer).Descriptor()
	assert.Equal(t, "bbb", desc.VideoID)
	assert.True(t, strings.HasPrefix(desc.EmbedURL, "https://www.youtube-nocookie.com/embed/bbb?"))
	assert.Contains(t, desc.EmbedURL, "playlist=bbb")
	assert.Equal(t, 640, desc.Width)
}

func TestHTTPScriptInjector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/iframe_api" {
			_, _ = w.Write([]byte("var YT;"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ok := &HTTPScriptInjector{URL: srv.URL + "/iframe_api", Client: srv.Client()}
	assert.NoError(t, ok.Inject(context.Background()))

	missing := &HTTPScriptInjector{URL: srv.URL + "/nope", Client: srv.Client()}
	err := missing.Inject(context.Background())
	assert.True(t, apperrors.IsNotFound(err))
}
