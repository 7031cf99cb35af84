package player

import (
	"net/url"
	"strings"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 360
)

// PlayerOptions configures one embedded player. ModestBranding and Controls
// default to on and Rel to off when left nil.
type PlayerOptions struct {
	VideoID        string
	Width          int
	Height         int
	Autoplay       bool
	Loop           bool
	Mute           bool
	PlaysInline    bool
	ModestBranding *bool
	Controls       *bool
	Rel            *bool
}

// withDefaults fills in the player size
func (o PlayerOptions) withDefaults() PlayerOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// PlayerVars renders the options as the third-party player flags
func (o PlayerOptions) PlayerVars() map[string]string {
	vars := map[string]string{
		"autoplay":       flag(o.Autoplay),
		"controls":       flag(boolOr(o.Controls, true)),
		"modestbranding": flag(boolOr(o.ModestBranding, true)),
		"rel":            flag(boolOr(o.Rel, false)),
		"loop":           flag(o.Loop),
		"mute":           flag(o.Mute),
		"playsinline":    flag(o.PlaysInline),
	}
	// looping a single video needs the video listed as its own playlist
	if o.Loop {
		vars["playlist"] = o.VideoID
	}
	return vars
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ExtractVideoID accepts a bare video id or a watch, short or embed URL.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "/") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	switch {
	case strings.HasSuffix(u.Host, "youtu.be"):
		return segments[0]
	case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "v"):
		return segments[1]
	}
	return ""
}
