package mandel

import (
	"fmt"
	"time"
)

// Direction is one of the four pan directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right

	numDirections
)

var directionNames = [numDirections]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection returns the direction named s ("up", "down", "left", "right").
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q", ErrUnknownCommand, s)
}

// unit is the velocity of each direction at speed 1.
var unit = [numDirections]Point{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

type panKey struct {
	down     bool
	velocity Point
}

// Viewport is the pan/zoom state of the view. It has a single owner: the
// goroutine driving input and ticks. Workers only ever see FrameTask copies.
//
// Invariant: magnification never drops below 1.
type Viewport struct {
	width, height float64
	anchor        ZoomAnchor

	offset        Point
	magnification float64
	keys          [numDirections]panKey

	dirty bool
}

// NewViewport returns the startup state for a width×height screen: no pan,
// magnification 1, all keys up. It starts dirty so the first frame renders.
func NewViewport(width, height int, opts ...Option) *Viewport {
	cfg := newConfig(opts)
	v := &Viewport{
		width:         float64(width),
		height:        float64(height),
		anchor:        cfg.anchor,
		magnification: 1,
		dirty:         true,
	}
	for d := range numDirections {
		v.keys[d].velocity = Point{unit[d].X * cfg.panSpeed, unit[d].Y * cfg.panSpeed}
	}
	return v
}

// Offset returns the pan offset in pre-scaled pixel units.
func (v *Viewport) Offset() Point { return v.offset }

// Magnification returns the current zoom factor.
func (v *Viewport) Magnification() float64 { return v.magnification }

// IsKeyDown reports whether the pan key for d is held.
func (v *Viewport) IsKeyDown(d Direction) bool {
	if d < 0 || d >= numDirections {
		return false
	}
	return v.keys[d].down
}

// Dirty reports whether the view changed since the last TakeFrame.
func (v *Viewport) Dirty() bool { return v.dirty }

// Task snapshots the current view.
func (v *Viewport) Task() FrameTask {
	return FrameTask{Offset: v.offset, Magnification: v.magnification}
}

// TakeFrame returns a snapshot and clears the dirty flag. The boolean is
// false when nothing changed since the previous call.
func (v *Viewport) TakeFrame() (FrameTask, bool) {
	if !v.dirty {
		return v.Task(), false
	}
	v.dirty = false
	return v.Task(), true
}

// Tick moves the offset by the velocity of every held key times elapsed.
// Held keys compose, so two perpendicular keys pan diagonally.
func (v *Viewport) Tick(elapsed time.Duration) {
	dt := elapsed.Seconds()
	for _, k := range v.keys {
		if !k.down {
			continue
		}
		v.offset.X += k.velocity.X * dt
		v.offset.Y += k.velocity.Y * dt
		v.dirty = true
	}
}

// KeyDown marks the pan key for d as held. Repeated calls are no-ops.
func (v *Viewport) KeyDown(d Direction) {
	v.setKey(d, true)
}

// KeyUp releases the pan key for d.
func (v *Viewport) KeyUp(d Direction) {
	v.setKey(d, false)
}

func (v *Viewport) setKey(d Direction, down bool) {
	if d < 0 || d >= numDirections || v.keys[d].down == down {
		return
	}
	v.keys[d].down = down
	v.dirty = true
}

// ZoomIn doubles the magnification around the cursor pixel.
func (v *Viewport) ZoomIn(cursor Point) {
	v.zoom(cursor, 2*v.magnification)
}

// ZoomOut halves the magnification around the cursor pixel, never going
// below 1. The pivot is applied even when the floor clamps the zoom.
func (v *Viewport) ZoomOut(cursor Point) {
	v.zoom(cursor, max(1, 0.5*v.magnification))
}

func (v *Viewport) zoom(cursor Point, mag float64) {
	old := v.magnification
	pivot := Point{
		X: (v.offset.X + cursor.X) / old * mag,
		Y: (v.offset.Y + cursor.Y) / old * mag,
	}
	v.magnification = mag

	switch v.anchor {
	case AnchorCenter:
		v.offset = Point{X: pivot.X - v.width/2, Y: pivot.Y - v.height/2}
	default:
		v.offset = Point{X: pivot.X - cursor.X, Y: pivot.Y - cursor.Y}
	}
	v.dirty = true
}

// Reset returns to the startup view. Held keys stay held.
func (v *Viewport) Reset() {
	v.offset = Point{}
	v.magnification = 1
	v.dirty = true
}

// GoTo frames region: its width fills the screen (magnification is floored
// at 1) and its centre sits at the screen centre.
func (v *Viewport) GoTo(r Region) {
	mag := 1.0
	if w := r.Xmax - r.Xmin; w > 0 {
		mag = max(1, 4/w)
	}
	cx, cy := r.Center()
	v.magnification = mag
	v.offset = Point{
		X: (cx+2)/4*mag*v.width - v.width/2,
		Y: (cy+2)/4*mag*v.height - v.height/2,
	}
	v.dirty = true
}
