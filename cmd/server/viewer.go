package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/internal/session"
)

// viewerHub hands every connection its own viewport while sharing one
// renderer between all of them.
type viewerHub struct {
	renderer *mandel.Renderer
	start    *mandel.Region
	tick     time.Duration
	opts     []mandel.Option

	viewers int
	m       sync.Mutex
}

func newViewerHub(r *mandel.Renderer, start *mandel.Region, tps int, opts []mandel.Option) *viewerHub {
	return &viewerHub{
		renderer: r,
		start:    start,
		tick:     time.Second / time.Duration(tps),
		opts:     opts,
	}
}

func (h *viewerHub) incViewers() {
	h.m.Lock()
	h.viewers++
	v := h.viewers
	h.m.Unlock()

	log.Printf("viewers: %d", v)
}

func (h *viewerHub) decViewers() {
	h.m.Lock()
	h.viewers--
	v := h.viewers
	h.m.Unlock()

	log.Printf("viewers: %d", v)
}

func (h *viewerHub) newSession() *session.Session {
	v := mandel.NewViewport(h.renderer.Width(), h.renderer.Height(), h.opts...)
	if h.start != nil {
		v.GoTo(*h.start)
	}
	return session.New(v, h.renderer)
}

// serve runs the control loop of one viewer. Commands arrive from a reader
// goroutine; ticks, transitions and renders all happen on this goroutine,
// which is the only one touching the viewport.
func (h *viewerHub) serve(ctx context.Context, c *websocket.Conn, addr string) error {
	h.incViewers()
	defer h.decViewers()

	s := h.newSession()
	mandel.Logger().Info("viewer connected", "addr", addr)

	hello := mandel.Hello{Width: h.renderer.Width(), Height: h.renderer.Height()}
	if err := wsjson.Write(ctx, c, hello); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}

	cmds := make(chan mandel.Command)
	readErr := make(chan error, 1)
	go func() {
		readErr <- readCommands(ctx, c, cmds)
	}()

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-readErr:
			if isClosed(err) {
				mandel.Logger().Info("viewer left", "addr", addr)
				return nil
			}
			return err

		case cmd := <-cmds:
			if err := s.Apply(cmd); err != nil {
				log.Printf("viewer %s: %v", addr, err)
			}

		case now := <-ticker.C:
			s.Advance(now.Sub(last))
			last = now

			f, fresh, err := s.Frame()
			if err != nil {
				// previous frame stays on the client's screen
				log.Printf("viewer %s: %v", addr, err)
				continue
			}
			if !fresh {
				continue
			}
			if err := c.Write(ctx, websocket.MessageBinary, f.Image().Pix); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}

// readCommands decodes client commands until the connection fails.
func readCommands(ctx context.Context, c *websocket.Conn, out chan<- mandel.Command) error {
	for {
		var cmd mandel.Command
		if err := wsjson.Read(ctx, c, &cmd); err != nil {
			return err
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, context.Canceled)
}
