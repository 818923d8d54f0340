// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package viewport decides when a gallery tile may load and play its
// video. The browser reports visibility and hover transitions; the gate
// answers with load/play directives so that off-screen tiles never cost
// bandwidth and at most a bounded number of players run at once.
package viewport

import (
	"sync"
	"time"
)

// State is the playback state of a single gallery tile.
type State string

const (
	// StateOffScreen is a tile outside the viewport margin. Its player
	// is not loaded.
	StateOffScreen State = "off_screen"

	// StateVisibleIdle is a tile inside the viewport margin with its
	// player loaded but paused on the poster frame.
	StateVisibleIdle State = "visible_idle"

	// StateVisiblePlaying is a tile inside the viewport that is actively
	// playing.
	StateVisiblePlaying State = "visible_playing"
)

// RootMarginPx is the preload margin around the viewport. A tile this
// close to the edge starts loading before it scrolls into view.
const RootMarginPx = 100

// DefaultHoverDebounce filters out cursor fly-overs. A hover shorter
// than this never starts playback.
const DefaultHoverDebounce = 150 * time.Millisecond

// DefaultMaxPlaying caps simultaneous players. When the cap is hit the
// longest-playing tile is demoted back to idle.
const DefaultMaxPlaying = 2

// Decision tells the client what to do with a tile after a transition.
type Decision struct {
	Load bool  `json:"load"`
	Play bool  `json:"play"`
	State State `json:"state"`
}

type tile struct {
	state     State
	hoveredAt time.Time
	playingAt time.Time
}

// Gate tracks tile states for one gallery view. It is safe for
// concurrent use; a browser fires visibility and hover events from
// independent observers.
type Gate struct {
	mu            sync.Mutex
	tiles         map[string]*tile
	hoverDebounce time.Duration
	maxPlaying    int
	eager         bool
	now           func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithHoverDebounce overrides the hover debounce window.
func WithHoverDebounce(d time.Duration) Option {
	return func(g *Gate) { g.hoverDebounce = d }
}

// WithMaxPlaying overrides the simultaneous playback cap.
func WithMaxPlaying(n int) Option {
	return func(g *Gate) { g.maxPlaying = n }
}

// WithEagerLoading degrades the gate for clients without visibility
// reporting. Every tile loads immediately and hover alone gates
// playback.
func WithEagerLoading() Option {
	return func(g *Gate) { g.eager = true }
}

func withClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate returns a gate with empty tile state.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		tiles:         make(map[string]*tile),
		hoverDebounce: DefaultHoverDebounce,
		maxPlaying:    DefaultMaxPlaying,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gate) tileFor(id string) *tile {
	t, ok := g.tiles[id]
	if !ok {
		initial := StateOffScreen
		if g.eager {
			initial = StateVisibleIdle
		}
		t = &tile{state: initial}
		g.tiles[id] = t
	}
	return t
}

// Enter records that a tile crossed into the viewport margin. The tile
// loads its player but stays paused.
func (g *Gate) Enter(id string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tileFor(id)
	if t.state == StateOffScreen {
		t.state = StateVisibleIdle
	}
	return g.decision(t)
}

// Leave records that a tile left the viewport margin. Playback stops
// and the player unloads regardless of hover state.
func (g *Gate) Leave(id string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tileFor(id)
	t.state = StateOffScreen
	t.hoveredAt = time.Time{}
	return g.decision(t)
}

// HoverStart records the cursor entering a tile. Playback does not
// start yet; the caller reports HoverHeld after the debounce window.
func (g *Gate) HoverStart(id string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tileFor(id)
	if t.state != StateOffScreen {
		t.hoveredAt = g.now()
	}
	return g.decision(t)
}

// HoverHeld promotes a debounced hover to playback. Hovers on
// off-screen tiles and hovers shorter than the debounce window are
// ignored. When the playback cap is exceeded the oldest player is
// demoted to idle.
func (g *Gate) HoverHeld(id string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tileFor(id)
	if t.state == StateOffScreen || t.hoveredAt.IsZero() {
		return g.decision(t)
	}
	if g.now().Sub(t.hoveredAt) < g.hoverDebounce {
		return g.decision(t)
	}

	if t.state != StateVisiblePlaying {
		t.state = StateVisiblePlaying
		t.playingAt = g.now()
		g.enforceCap(id)
	}
	return g.decision(t)
}

// HoverEnd records the cursor leaving a tile. A playing tile drops back
// to idle on its poster frame.
func (g *Gate) HoverEnd(id string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tileFor(id)
	t.hoveredAt = time.Time{}
	if t.state == StateVisiblePlaying {
		t.state = StateVisibleIdle
	}
	return g.decision(t)
}

// StateOf reports the current state of a tile.
func (g *Gate) StateOf(id string) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tileFor(id).state
}

// PlayingCount reports how many tiles are currently playing.
func (g *Gate) PlayingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, t := range g.tiles {
		if t.state == StateVisiblePlaying {
			n++
		}
	}
	return n
}

// enforceCap demotes the longest-playing tile when the cap is
// exceeded, never the tile that just started. Caller holds the lock.
func (g *Gate) enforceCap(justStarted string) {
	var (
		playing int
		oldest  *tile
	)
	for id, t := range g.tiles {
		if t.state != StateVisiblePlaying {
			continue
		}
		playing++
		if id == justStarted {
			continue
		}
		if oldest == nil || t.playingAt.Before(oldest.playingAt) {
			oldest = t
		}
	}
	if playing > g.maxPlaying && oldest != nil {
		oldest.state = StateVisibleIdle
	}
}

func (g *Gate) decision(t *tile) Decision {
	return Decision{
		Load:  t.state != StateOffScreen,
		Play:  t.state == StateVisiblePlaying,
		State: t.state,
	}
}
