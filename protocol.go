package mandel

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ErrUnknownCommand is returned for commands the viewport does not understand.
var ErrUnknownCommand = errors.New("mandel: unknown command")

// Command ops understood by Command.Apply.
const (
	OpKeyDown = "keydown"
	OpKeyUp   = "keyup"
	OpZoomIn  = "zoomin"
	OpZoomOut = "zoomout"
	OpReset   = "reset"
	OpGoTo    = "goto"
)

// Hello is the first message a server sends on a new connection.
// Every following binary message is one frame of Width*Height*4 RGBA bytes.
type Hello struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Command is a viewport transition sent by a client.
type Command struct {
	Op   string  `json:"op"`
	Dir  string  `json:"dir,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Name string  `json:"name,omitempty"`
}

// Apply performs the transition described by c on v.
func (c Command) Apply(v *Viewport) error {
	switch c.Op {
	case OpKeyDown, OpKeyUp:
		d, err := ParseDirection(c.Dir)
		if err != nil {
			return err
		}
		if c.Op == OpKeyDown {
			v.KeyDown(d)
		} else {
			v.KeyUp(d)
		}
	case OpZoomIn:
		v.ZoomIn(Point{X: c.X, Y: c.Y})
	case OpZoomOut:
		v.ZoomOut(Point{X: c.X, Y: c.Y})
	case OpReset:
		v.Reset()
	case OpGoTo:
		r, ok := Landmark(c.Name)
		if !ok {
			return fmt.Errorf("%w: landmark %q", ErrUnknownCommand, c.Name)
		}
		v.GoTo(r)
	default:
		return fmt.Errorf("%w: op %q", ErrUnknownCommand, c.Op)
	}
	return nil
}

// ParseCommand parses the short text form used on command lines:
//
//	reset
//	keydown:up
//	zoomin:250,250
//	goto:seahorse
func ParseCommand(s string) (Command, error) {
	op, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	c := Command{Op: op}
	switch op {
	case OpReset:
	case OpKeyDown, OpKeyUp:
		c.Dir = arg
	case OpGoTo:
		c.Name = arg
	case OpZoomIn, OpZoomOut:
		xs, ys, ok := strings.Cut(arg, ",")
		if !ok {
			return Command{}, fmt.Errorf("%w: %q needs x,y", ErrUnknownCommand, s)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return Command{}, fmt.Errorf("parse x of %q: %w", s, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return Command{}, fmt.Errorf("parse y of %q: %w", s, err)
		}
		c.X, c.Y = x, y
	default:
		return Command{}, fmt.Errorf("%w: op %q", ErrUnknownCommand, op)
	}
	return c, nil
}

// DecodeFrame wraps the raw RGBA bytes of one frame message.
func DecodeFrame(h Hello, data []byte) (*image.RGBA, error) {
	if want := h.Width * h.Height * 4; len(data) != want {
		return nil, fmt.Errorf("frame is %d bytes, want %d", len(data), want)
	}
	return &image.RGBA{
		Pix:    data,
		Stride: h.Width * 4,
		Rect:   image.Rect(0, 0, h.Width, h.Height),
	}, nil
}
