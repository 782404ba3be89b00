package session

import (
	"errors"
	"testing"
	"time"

	mandel "github.com/marben/mandelview"
)

var errFault = errors.New("worker fault")

// stubRenderer records the tasks it is asked to render.
type stubRenderer struct {
	fail  bool
	tasks []mandel.FrameTask
}

func (r *stubRenderer) Render(task mandel.FrameTask) (*mandel.Frame, error) {
	r.tasks = append(r.tasks, task)
	if r.fail {
		return nil, errFault
	}
	return &mandel.Frame{Width: 1, Height: 1, Task: task}, nil
}

func TestSessionRendersOnlyWhenDirty(t *testing.T) {
	r := &stubRenderer{}
	s := New(mandel.NewViewport(100, 100), r)

	f, fresh, err := s.Frame()
	if err != nil || !fresh || f == nil {
		t.Fatalf("first Frame() = %v, %v, %v, want a fresh frame", f, fresh, err)
	}

	again, fresh, err := s.Frame()
	if err != nil || fresh || again != f {
		t.Errorf("Frame() without changes = %v, %v, %v, want previous frame", again, fresh, err)
	}
	if len(r.tasks) != 1 {
		t.Errorf("renderer called %d times, want 1", len(r.tasks))
	}
}

func TestSessionAppliesCommandsAndTicks(t *testing.T) {
	r := &stubRenderer{}
	s := New(mandel.NewViewport(100, 100, mandel.WithPanSpeed(20)), r)
	s.Frame()

	if err := s.Apply(mandel.Command{Op: mandel.OpKeyDown, Dir: "down"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	s.Advance(250 * time.Millisecond)

	f, fresh, err := s.Frame()
	if err != nil || !fresh {
		t.Fatalf("Frame() = %v, %v, want fresh frame", fresh, err)
	}
	if f.Task.Offset != (mandel.Point{X: 0, Y: 5}) {
		t.Errorf("rendered offset = %v, want (0,5)", f.Task.Offset)
	}
}

func TestSessionApplyUnknown(t *testing.T) {
	s := New(mandel.NewViewport(10, 10), &stubRenderer{})
	if err := s.Apply(mandel.Command{Op: "warp"}); !errors.Is(err, mandel.ErrUnknownCommand) {
		t.Errorf("Apply() error = %v, want ErrUnknownCommand", err)
	}
}

func TestSessionKeepsPreviousFrameOnFault(t *testing.T) {
	r := &stubRenderer{}
	s := New(mandel.NewViewport(100, 100), r)
	good, _, _ := s.Frame()

	r.fail = true
	s.Viewport().ZoomIn(mandel.Point{X: 50, Y: 50})
	f, fresh, err := s.Frame()
	if !errors.Is(err, errFault) {
		t.Fatalf("Frame() error = %v, want %v", err, errFault)
	}
	if fresh || f != good {
		t.Errorf("Frame() = %v, %v, want previous frame, not fresh", f, fresh)
	}
	if last, ok := s.Last(); !ok || last != good {
		t.Errorf("Last() = %v, %v, want previous frame", last, ok)
	}

	// a faulted frame is not retried until the view changes again
	r.fail = false
	if _, fresh, _ := s.Frame(); fresh {
		t.Error("Frame() retried without a new change")
	}
	s.Viewport().Reset()
	if f, fresh, err := s.Frame(); err != nil || !fresh || f.Task.Magnification != 1 {
		t.Errorf("Frame() after Reset = %v, %v, %v", f, fresh, err)
	}

	if rendered, aborted := s.Stats(); rendered != 2 || aborted != 1 {
		t.Errorf("Stats() = %d, %d, want 2, 1", rendered, aborted)
	}
}

func TestSessionWithRenderer(t *testing.T) {
	r, err := mandel.NewRenderer(16, 16, mandel.WithWorkers(4))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()

	s := New(mandel.NewViewport(16, 16), r)
	f, fresh, err := s.Frame()
	if err != nil || !fresh {
		t.Fatalf("Frame() = %v, %v", fresh, err)
	}
	if len(f.Pixels) != 16*16 {
		t.Errorf("len(Pixels) = %d, want %d", len(f.Pixels), 16*16)
	}
}

func TestSessionLastEmpty(t *testing.T) {
	s := New(mandel.NewViewport(10, 10), &stubRenderer{})
	if _, ok := s.Last(); ok {
		t.Error("Last() ok before any frame")
	}
}
