// cliclient is a CLI client for the Mandelbrot viewer.
// It connects to the server (or renders locally with -local), applies a list
// of view commands and saves the resulting frame as a PNG file.

package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/internal/session"
	"github.com/marben/mandelview/internal/snapshot"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

type commandList []mandel.Command

func (l *commandList) String() string {
	parts := make([]string, len(*l))
	for i, c := range *l {
		parts[i] = c.Op
	}
	return strings.Join(parts, ",")
}

func (l *commandList) Set(s string) error {
	c, err := mandel.ParseCommand(s)
	if err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}

// run parses flags, obtains the frame and saves it.
// Returns an error if any step fails.
func run() error {
	var (
		cmds    commandList
		addr    = flag.String("addr", "ws://localhost:8080/ws", "server websocket URL")
		output  = flag.String("o", "mandel.png", "output file")
		local   = flag.Bool("local", false, "render in-process instead of asking the server")
		scale   = flag.Float64("scale", 1, "resize factor applied to the saved image")
		idle    = flag.Duration("idle", 500*time.Millisecond, "stop waiting once no frame arrived for this long")
		timeout = flag.Duration("timeout", 30*time.Second, "overall deadline")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Var(&cmds, "cmd", "view command, repeatable: reset, keydown:up, zoomin:x,y, zoomout:x,y, goto:name")
	flag.Parse()

	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *local {
		return renderLocal(cmds, *output, *scale)
	}

	log.Printf("Connecting to Mandelbrot server at %s...", *addr)
	img, err := fetchFrame(*addr, cmds, *idle, *timeout)
	if err != nil {
		return fmt.Errorf("fetch frame: %w", err)
	}

	log.Printf("Saving rendered image to %q...", *output)
	caption := fmt.Sprintf("%dx%d  %s", img.Rect.Dx(), img.Rect.Dy(), cmds.String())
	if err := snapshot.Save(*output, img, snapshot.Options{Caption: caption, Scale: *scale}); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}

	log.Printf("Fully rendered image saved to %q", *output)
	return nil
}

// renderLocal applies cmds to a fresh viewport and renders one frame in-process.
func renderLocal(cmds commandList, output string, scale float64) error {
	r, err := mandel.NewRenderer(mandel.DefaultWidth, mandel.DefaultHeight)
	if err != nil {
		return err
	}
	defer r.Close()

	s := session.New(mandel.NewViewport(r.Width(), r.Height()), r)
	for _, c := range cmds {
		if err := s.Apply(c); err != nil {
			return err
		}
	}

	f, _, err := s.Frame()
	if err != nil {
		return err
	}
	if err := snapshot.SaveFrame(output, f, scale); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	log.Printf("Locally rendered image saved to %q", output)
	return nil
}
