// Package player embeds a third-party video player behind a readiness gate
// and a registry of live players keyed by element id.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Player is a created player handle
type Player interface {
	ElementID() string
	VideoID() string
	// Events yields player notifications until the player goes away.
	Events() <-chan Event
}

// PlayerFactory builds a player once the API is ready
type PlayerFactory interface {
	NewPlayer(ctx context.Context, elementID string, opts PlayerOptions) (Player, error)
}

// Bridge creates players through the gate and keeps them in a Registry
type Bridge struct {
	gate     *ReadinessGate
	factory  PlayerFactory
	registry *Registry
	logger   zerolog.Logger
}

// NewBridge creates a Bridge
func NewBridge(gate *ReadinessGate, factory PlayerFactory, logger zerolog.Logger) *Bridge {
	return &Bridge{
		gate:     gate,
		factory:  factory,
		registry: NewRegistry(),
		logger:   logger,
	}
}

// Registry returns the live players
func (b *Bridge) Registry() *Registry {
	return b.registry
}

// CreatePlayer waits for the player API, builds the player and settles on
// its first Ready or Error event. The matching handler runs before
// CreatePlayer returns. A ready player is registered under elementID,
// replacing and tearing down any previous one; events after Ready keep
// flowing to h in the background.
func (b *Bridge) CreatePlayer(ctx context.Context, elementID string, opts PlayerOptions, h Handlers) (Player, error) {
	if elementID == "" {
		return nil, errors.New("element id is required")
	}
	if err := b.gate.Ensure(ctx); err != nil {
		b.logger.Error().Err(err).Str("elementId", elementID).Msg("Player API not ready")
		return nil, err
	}

	opts = opts.withDefaults()
	p, err := b.factory.NewPlayer(ctx, elementID, opts)
	if err != nil {
		b.logger.Error().Err(err).Str("elementId", elementID).Msg("Failed to create player")
		return nil, fmt.Errorf("failed to create player %s: %w", elementID, err)
	}

	events := p.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil, fmt.Errorf("player %s closed before ready", elementID)
			}
			if !h.dispatch(p, ev) {
				continue
			}
			if ev.Type == EventError {
				teardown(p)
				perr := &PlayerError{ElementID: elementID, Code: ev.Code}
				b.logger.Warn().Err(perr).Msg("Player reported an error")
				return nil, perr
			}
			if prev := b.registry.Put(elementID, p); prev != nil {
				teardown(prev)
			}
			go forward(p, events, h)
			b.logger.Debug().Str("elementId", elementID).Str("videoId", p.VideoID()).Msg("Player ready")
			return p, nil
		case <-ctx.Done():
			teardown(p)
			return nil, ctx.Err()
		}
	}
}

// Get returns the live player registered under elementID
func (b *Bridge) Get(elementID string) (Player, bool) {
	return b.registry.Get(elementID)
}

// Destroy tears down and forgets the player registered under elementID
func (b *Bridge) Destroy(elementID string) (bool, error) {
	found, err := b.registry.Destroy(elementID)
	if err != nil {
		b.logger.Warn().Err(err).Str("elementId", elementID).Msg("Player teardown failed")
	}
	return found, err
}

func forward(p Player, events <-chan Event, h Handlers) {
	for ev := range events {
		h.dispatch(p, ev)
	}
}

func teardown(p Player) {
	if t, ok := p.(Teardown); ok {
		_ = t.Destroy()
	}
}
