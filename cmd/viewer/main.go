// Command viewer opens a desktop window and explores the Mandelbrot set.
//
//	W A S D / arrows   pan while held
//	E / Q              zoom in / out at the cursor
//	R                  reset the view
//	1 - 7              jump to a landmark
//	P                  save a PNG snapshot
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/internal/session"
	"github.com/marben/mandelview/internal/snapshot"
)

var panKeys = map[ebiten.Key]mandel.Direction{
	ebiten.KeyW:          mandel.Up,
	ebiten.KeyArrowUp:    mandel.Up,
	ebiten.KeyS:          mandel.Down,
	ebiten.KeyArrowDown:  mandel.Down,
	ebiten.KeyA:          mandel.Left,
	ebiten.KeyArrowLeft:  mandel.Left,
	ebiten.KeyD:          mandel.Right,
	ebiten.KeyArrowRight: mandel.Right,
}

var landmarkKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
}

type viewer struct {
	session   *session.Session
	offscreen *ebiten.Image
	width     int
	height    int
	snapshots int
}

func (g *viewer) Update() error {
	v := g.session.Viewport()

	// a direction is held while any of its keys is
	var held [4]bool
	for key, dir := range panKeys {
		if ebiten.IsKeyPressed(key) {
			held[dir] = true
		}
	}
	for _, dir := range []mandel.Direction{mandel.Up, mandel.Down, mandel.Left, mandel.Right} {
		if held[dir] {
			v.KeyDown(dir)
		} else {
			v.KeyUp(dir)
		}
	}

	cx, cy := ebiten.CursorPosition()
	cursor := mandel.Point{X: float64(cx), Y: float64(cy)}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		v.ZoomIn(cursor)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		v.ZoomOut(cursor)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.saveSnapshot()
	}
	for i, key := range landmarkKeys {
		if i < len(mandel.Landmarks) && inpututil.IsKeyJustPressed(key) {
			v.GoTo(mandel.Landmarks[i].Region)
		}
	}

	// Update runs at a fixed TPS, so every call advances one tick
	g.session.Advance(time.Second / time.Duration(ebiten.TPS()))

	f, fresh, err := g.session.Frame()
	if err != nil {
		log.Printf("frame skipped: %v", err)
		return nil
	}
	if fresh {
		g.offscreen.WritePixels(f.Image().Pix)
	}
	return nil
}

func (g *viewer) saveSnapshot() {
	f, ok := g.session.Last()
	if !ok {
		return
	}
	g.snapshots++
	name := fmt.Sprintf("mandel_%03d.png", g.snapshots)
	if err := snapshot.SaveFrame(name, f, 1); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	log.Printf("snapshot saved to %q", name)
}

func (g *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.offscreen, nil)

	v := g.session.Viewport()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.0f\nZoom: x%g\nOffset: (%.1f, %.1f)",
		ebiten.ActualTPS(), v.Magnification(), v.Offset().X, v.Offset().Y))
}

func (g *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	var (
		width      = flag.Int("width", mandel.DefaultWidth, "window width")
		height     = flag.Int("height", mandel.DefaultHeight, "window height")
		workers    = flag.Int("workers", mandel.DefaultWorkers, "column ranges per frame (0 = GOMAXPROCS)")
		iterations = flag.Int("iterations", mandel.DefaultMaxIterations, "iteration cap")
		tps        = flag.Int("tps", 144, "updates per second")
		center     = flag.Bool("center-zoom", false, "bring the zoomed point to the window centre")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	anchor := mandel.AnchorCursor
	if *center {
		anchor = mandel.AnchorCenter
	}
	opts := []mandel.Option{
		mandel.WithWorkers(*workers),
		mandel.WithMaxIterations(*iterations),
		mandel.WithZoomAnchor(anchor),
	}

	renderer, err := mandel.NewRenderer(*width, *height, opts...)
	if err != nil {
		return err
	}
	defer renderer.Close()

	g := &viewer{
		session:   session.New(mandel.NewViewport(*width, *height, opts...), renderer),
		offscreen: ebiten.NewImage(*width, *height),
		width:     *width,
		height:    *height,
	}

	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Mandelbrot Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	return ebiten.RunGame(g)
}
