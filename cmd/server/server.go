package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	mandel "github.com/marben/mandelview"
)

// main is the entry point for the Mandelbrot viewer server.
// Every websocket client gets its own viewport; all clients share one renderer.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

type config struct {
	addr       string
	static     string
	width      int
	height     int
	workers    int
	iterations int
	threshold  float64
	panSpeed   float64
	tps        int
	anchor     string
	region     string
	verbose    bool
}

func parseFlags() config {
	var c config
	flag.StringVar(&c.addr, "addr", ":8080", "http listen address")
	flag.StringVar(&c.static, "static", "./static", "directory with index.html and main.wasm")
	flag.IntVar(&c.width, "width", mandel.DefaultWidth, "frame width in pixels")
	flag.IntVar(&c.height, "height", mandel.DefaultHeight, "frame height in pixels")
	flag.IntVar(&c.workers, "workers", mandel.DefaultWorkers, "column ranges per frame (0 = GOMAXPROCS)")
	flag.IntVar(&c.iterations, "iterations", mandel.DefaultMaxIterations, "iteration cap")
	flag.Float64Var(&c.threshold, "threshold", mandel.DefaultThreshold, "stability threshold")
	flag.Float64Var(&c.panSpeed, "pan-speed", mandel.DefaultPanSpeed, "held-key pan speed in pixels per second")
	flag.IntVar(&c.tps, "tps", 60, "viewport ticks per second")
	flag.StringVar(&c.anchor, "anchor", "cursor", "zoom anchor: cursor or center")
	flag.StringVar(&c.region, "region", "whole", "landmark every new client starts at ("+landmarkNames()+")")
	flag.BoolVar(&c.verbose, "v", false, "debug logging")
	flag.Parse()
	return c
}

func (c config) options() ([]mandel.Option, error) {
	var anchor mandel.ZoomAnchor
	switch c.anchor {
	case "cursor":
		anchor = mandel.AnchorCursor
	case "center":
		anchor = mandel.AnchorCenter
	default:
		return nil, fmt.Errorf("unknown anchor %q", c.anchor)
	}
	return []mandel.Option{
		mandel.WithWorkers(c.workers),
		mandel.WithMaxIterations(c.iterations),
		mandel.WithThreshold(c.threshold),
		mandel.WithPanSpeed(c.panSpeed),
		mandel.WithZoomAnchor(anchor),
	}, nil
}

func run() error {
	cfg := parseFlags()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	start, err := startRegion(cfg.region)
	if err != nil {
		return err
	}
	if cfg.tps <= 0 {
		return fmt.Errorf("tps must be positive, got %d", cfg.tps)
	}

	// one renderer (and worker pool) backs every connected client
	renderer, err := mandel.NewRenderer(cfg.width, cfg.height, opts...)
	if err != nil {
		return fmt.Errorf("mandel.NewRenderer: %w", err)
	}
	defer renderer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	viewers := newViewerHub(renderer, start, cfg.tps, opts)
	httpServer := webServer(ctx, cfg.addr, cfg.static, viewers)

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("mb server waiting for websocket connections on %s", cfg.addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
