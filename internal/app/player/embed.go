package player

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
)

// DefaultEmbedBaseURL is the iframe embed endpoint of the third-party player
const DefaultEmbedBaseURL = "https://www.youtube.com/embed"

// EmbedFactory builds iframe embed players. It has no live connection to
// the player, so a created player reports Ready at once, or an
// invalid-parameter Error when the video id is missing.
type EmbedFactory struct {
	BaseURL string
}

// NewPlayer implements PlayerFactory
func (f *EmbedFactory) NewPlayer(ctx context.Context, elementID string, opts PlayerOptions) (Player, error) {
	base := strings.TrimRight(f.BaseURL, "/")
	if base == "" {
		base = DefaultEmbedBaseURL
	}
	opts.VideoID = ExtractVideoID(opts.VideoID)

	p := &EmbedPlayer{
		elementID: elementID,
		opts:      opts,
		vars:      opts.PlayerVars(),
		events:    make(chan Event, 1),
	}
	p.embedURL = embedURL(base, opts.VideoID, p.vars)

	if opts.VideoID == "" {
		p.events <- Event{Type: EventError, Code: ErrCodeInvalidParam}
	} else {
		p.events <- Event{Type: EventReady}
	}
	close(p.events)
	return p, nil
}

func embedURL(base, videoID string, vars map[string]string) string {
	q := url.Values{}
	for k, v := range vars {
		q.Set(k, v)
	}
	return base + "/" + url.PathEscape(videoID) + "?" + q.Encode()
}

// EmbedPlayer is an iframe embed description
type EmbedPlayer struct {
	elementID string
	opts      PlayerOptions
	vars      map[string]string
	embedURL  string
	events    chan Event

	mu        sync.Mutex
	destroyed bool
}

// ElementID implements Player
func (p *EmbedPlayer) ElementID() string { return p.elementID }

// VideoID implements Player
func (p *EmbedPlayer) VideoID() string { return p.opts.VideoID }

// Events implements Player
func (p *EmbedPlayer) Events() <-chan Event { return p.events }

// EmbedURL is the iframe src
func (p *EmbedPlayer) EmbedURL() string { return p.embedURL }

// Destroy implements Teardown
func (p *EmbedPlayer) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
	return nil
}

// Destroyed reports whether Destroy was called
func (p *EmbedPlayer) Destroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// Descriptor renders the player for the gateway
func (p *EmbedPlayer) Descriptor() dto.PlayerDescriptor {
	vars := make(map[string]string, len(p.vars))
	for k, v := range p.vars {
		vars[k] = v
	}
	return dto.PlayerDescriptor{
		ElementID: p.elementID,
		VideoID:   p.opts.VideoID,
		EmbedURL:  p.embedURL,
		Width:     p.opts.Width,
		Height:    p.opts.Height,
		Vars:      vars,
	}
}
