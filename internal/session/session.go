// Package session drives one viewport: it applies input, advances time and
// renders a new frame whenever the view is dirty.
//
// A Session is owned by a single goroutine. Workers only ever receive the
// immutable FrameTask snapshot, so no locking is needed.
package session

import (
	"fmt"
	"time"

	mandel "github.com/marben/mandelview"
)

// Session couples a viewport with a renderer and remembers the last frame
// that rendered completely.
type Session struct {
	viewport *mandel.Viewport
	renderer mandel.FrameRenderer

	last     *mandel.Frame
	rendered int
	aborted  int
}

var _ mandel.FrameSource = (*Session)(nil)

// New creates a session over v rendering with r.
func New(v *mandel.Viewport, r mandel.FrameRenderer) *Session {
	return &Session{viewport: v, renderer: r}
}

// Viewport returns the viewport the session drives.
func (s *Session) Viewport() *mandel.Viewport {
	return s.viewport
}

// Apply performs a client command on the viewport.
func (s *Session) Apply(c mandel.Command) error {
	if err := c.Apply(s.viewport); err != nil {
		return fmt.Errorf("apply %q: %w", c.Op, err)
	}
	return nil
}

// Advance moves held-key panning forward by elapsed.
func (s *Session) Advance(elapsed time.Duration) {
	s.viewport.Tick(elapsed)
}

// Frame renders the view if it changed since the last call. It returns the
// current frame and whether it is new. When rendering fails the previous
// frame stays current and the error is returned; the next change retries.
func (s *Session) Frame() (*mandel.Frame, bool, error) {
	task, dirty := s.viewport.TakeFrame()
	if !dirty {
		return s.last, false, nil
	}

	f, err := s.renderer.Render(task)
	if err != nil {
		s.aborted++
		mandel.Logger().Warn("keeping previous frame",
			"aborted", s.aborted,
			"err", err)
		return s.last, false, fmt.Errorf("render frame %d: %w", s.rendered+1, err)
	}

	s.rendered++
	s.last = f
	return f, true, nil
}

// Last returns the most recent complete frame.
func (s *Session) Last() (*mandel.Frame, bool) {
	return s.last, s.last != nil
}

// Stats returns how many frames rendered and how many were aborted.
func (s *Session) Stats() (rendered, aborted int) {
	return s.rendered, s.aborted
}
