package player

import "fmt"

// EventType tags an Event
type EventType int

const (
	EventReady EventType = iota
	EventStateChange
	EventQualityChange
	EventRateChange
	EventError
)

// PlaybackState follows the third-party player's numeric states
type PlaybackState int

const (
	StateUnstarted PlaybackState = -1
	StateEnded     PlaybackState = 0
	StatePlaying   PlaybackState = 1
	StatePaused    PlaybackState = 2
	StateBuffering PlaybackState = 3
	StateCued      PlaybackState = 5
)

// Event is one notification from a player. Only the field matching Type is set.
type Event struct {
	Type    EventType
	State   PlaybackState
	Quality string
	Rate    float64
	Code    int
}

// Handlers are the optional callbacks of CreatePlayer
type Handlers struct {
	OnReady         func(p Player)
	OnStateChange   func(s PlaybackState)
	OnQualityChange func(q string)
	OnRateChange    func(r float64)
	OnError         func(code int)
}

// dispatch routes ev to its handler and reports whether it settles creation
func (h Handlers) dispatch(p Player, ev Event) (settled bool) {
	switch ev.Type {
	case EventReady:
		if h.OnReady != nil {
			h.OnReady(p)
		}
		return true
	case EventError:
		if h.OnError != nil {
			h.OnError(ev.Code)
		}
		return true
	case EventStateChange:
		if h.OnStateChange != nil {
			h.OnStateChange(ev.State)
		}
	case EventQualityChange:
		if h.OnQualityChange != nil {
			h.OnQualityChange(ev.Quality)
		}
	case EventRateChange:
		if h.OnRateChange != nil {
			h.OnRateChange(ev.Rate)
		}
	}
	return false
}

// Player error codes
const (
	ErrCodeInvalidParam   = 2
	ErrCodeHTML5          = 5
	ErrCodeNotFound       = 100
	ErrCodeNotEmbeddable  = 101
	ErrCodeNotEmbeddable2 = 150
)

// PlayerError is a player-reported failure
type PlayerError struct {
	ElementID string
	Code      int
}

func (e *PlayerError) Error() string {
	return fmt.Sprintf("player %s: %s (code %d)", e.ElementID, describeCode(e.Code), e.Code)
}

func describeCode(code int) string {
	switch code {
	case ErrCodeInvalidParam:
		return "invalid parameter"
	case ErrCodeHTML5:
		return "html5 player error"
	case ErrCodeNotFound:
		return "video not found"
	case ErrCodeNotEmbeddable, ErrCodeNotEmbeddable2:
		return "embedding not allowed"
	}
	return "unknown error"
}
