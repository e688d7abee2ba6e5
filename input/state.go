// Package input holds the keyboard and mouse state that the windowing layer
// writes into the world each frame.
package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Key names a keyboard key. Names follow the windowing layer's key names, for
// example "W", "Space" or "ArrowUp".
type Key string

const (
	KeyW      Key = "W"
	KeyA      Key = "A"
	KeyS      Key = "S"
	KeyD      Key = "D"
	KeyQ      Key = "Q"
	KeyE      Key = "E"
	KeySpace  Key = "Space"
	KeyShift  Key = "Shift"
	KeyEscape Key = "Escape"
	KeyTab    Key = "Tab"
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// State is the input resource. Held keys and buttons persist across frames;
// edges, motion and wheel deltas accumulate during a frame and are cleared by
// EndFrame.
type State struct {
	keys         map[Key]struct{}
	justPressed  map[Key]struct{}
	justReleased map[Key]struct{}
	buttons      map[MouseButton]struct{}

	// Cursor is the last known cursor position in window pixels.
	Cursor mgl64.Vec2
	// CursorDelta is the cursor motion since the previous frame.
	CursorDelta mgl64.Vec2
	// Wheel is the scroll amount since the previous frame.
	Wheel mgl64.Vec2
	// Clicked is set when the left button went down this frame.
	Clicked bool

	hasCursor bool
}

// NewState returns an empty input state.
func NewState() State {
	return State{
		keys:         make(map[Key]struct{}),
		justPressed:  make(map[Key]struct{}),
		justReleased: make(map[Key]struct{}),
		buttons:      make(map[MouseButton]struct{}),
	}
}

// ensure makes the zero State usable without touching cursor or click state.
func (s *State) ensure() {
	if s.keys == nil {
		s.keys = make(map[Key]struct{})
	}
	if s.justPressed == nil {
		s.justPressed = make(map[Key]struct{})
	}
	if s.justReleased == nil {
		s.justReleased = make(map[Key]struct{})
	}
	if s.buttons == nil {
		s.buttons = make(map[MouseButton]struct{})
	}
}

// PressKey records k as held. Pressing a held key again is not a new edge.
func (s *State) PressKey(k Key) {
	s.ensure()
	if _, held := s.keys[k]; held {
		return
	}
	s.keys[k] = struct{}{}
	s.justPressed[k] = struct{}{}
}

// ReleaseKey records k as no longer held.
func (s *State) ReleaseKey(k Key) {
	s.ensure()
	if _, held := s.keys[k]; !held {
		return
	}
	delete(s.keys, k)
	s.justReleased[k] = struct{}{}
}

// KeyDown reports whether k is held.
func (s *State) KeyDown(k Key) bool {
	_, ok := s.keys[k]
	return ok
}

// KeyPressed reports whether k went down this frame.
func (s *State) KeyPressed(k Key) bool {
	_, ok := s.justPressed[k]
	return ok
}

// KeyReleased reports whether k went up this frame.
func (s *State) KeyReleased(k Key) bool {
	_, ok := s.justReleased[k]
	return ok
}

// Keys returns the held keys in name order.
func (s *State) Keys() []Key {
	keys := make([]Key, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Axis returns -1, 0 or 1 from a pair of opposing keys.
func (s *State) Axis(negative, positive Key) float64 {
	var v float64
	if s.KeyDown(negative) {
		v--
	}
	if s.KeyDown(positive) {
		v++
	}
	return v
}

// PressButton records b as held. A left button edge sets Clicked.
func (s *State) PressButton(b MouseButton) {
	s.ensure()
	if _, held := s.buttons[b]; held {
		return
	}
	s.buttons[b] = struct{}{}
	if b == MouseLeft {
		s.Clicked = true
	}
}

// ReleaseButton records b as no longer held.
func (s *State) ReleaseButton(b MouseButton) {
	s.ensure()
	delete(s.buttons, b)
}

// ButtonDown reports whether b is held.
func (s *State) ButtonDown(b MouseButton) bool {
	_, ok := s.buttons[b]
	return ok
}

// MoveCursor records a new cursor position. The first position ever seen
// produces no motion.
func (s *State) MoveCursor(pos mgl64.Vec2) {
	if s.hasCursor {
		s.CursorDelta = s.CursorDelta.Add(pos.Sub(s.Cursor))
	}
	s.Cursor = pos
	s.hasCursor = true
}

// Scroll accumulates wheel motion.
func (s *State) Scroll(delta mgl64.Vec2) {
	s.Wheel = s.Wheel.Add(delta)
}

// EndFrame clears the per-frame edges and deltas.
func (s *State) EndFrame() {
	s.ensure()
	clear(s.justPressed)
	clear(s.justReleased)
	s.CursorDelta = mgl64.Vec2{}
	s.Wheel = mgl64.Vec2{}
	s.Clicked = false
}
