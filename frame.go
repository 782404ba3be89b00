package mandel

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/marben/mandelview/internal/parallel"
)

var (
	// ErrFrameAborted is returned when a worker faulted while computing a
	// frame. No partial frame is ever returned alongside it.
	ErrFrameAborted = errors.New("mandel: frame aborted")

	// ErrInvalidDimensions is returned for non-positive screen sizes.
	ErrInvalidDimensions = errors.New("mandel: invalid dimensions")
)

// PixelColor is the color computed for one screen pixel.
type PixelColor struct {
	X, Y  int
	Color RGB
}

// Frame is a fully computed screen. Pixels are in column-major order:
// all rows of column 0, then all rows of column 1, and so on.
type Frame struct {
	Width, Height int
	Task          FrameTask
	Pixels        []PixelColor
}

// At returns the color of pixel (x, y).
func (f *Frame) At(x, y int) RGB {
	return f.Pixels[x*f.Height+y].Color
}

// Image converts the frame to an RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for _, p := range f.Pixels {
		img.SetRGBA(p.X, p.Y, p.Color.RGBA())
	}
	return img
}

// columnRange is the half-open column interval [start, end) of one worker.
type columnRange struct {
	start, end int
}

// splitColumns partitions [0, width) into n contiguous ranges of width/n
// columns. The last range absorbs the remainder. n is clamped to [1, width].
func splitColumns(width, n int) []columnRange {
	n = max(1, min(n, width))
	per := width / n

	ranges := make([]columnRange, n)
	start := 0
	for i := range n {
		end := start + per
		if i == n-1 {
			end = width
		}
		ranges[i] = columnRange{start: start, end: end}
		start = end
	}
	return ranges
}

// renderColumns computes every pixel of columns [r.start, r.end) into dst,
// which must hold exactly (r.end-r.start)*height entries.
func renderColumns(dst []PixelColor, r columnRange, height int, fw, fh float64, task FrameTask, params Params) {
	i := 0
	for x := r.start; x < r.end; x++ {
		for y := range height {
			c := task.PixelToComplex(float64(x), float64(y), fw, fh)
			dst[i] = PixelColor{
				X:     x,
				Y:     y,
				Color: Hue(Evaluate(c, params.MaxIterations, params.Threshold)),
			}
			i++
		}
	}
}

// Renderer computes frames of a fixed screen size on a reusable worker pool.
//
// Thread safety: Render may be called concurrently; each call works on its
// own output slice.
type Renderer struct {
	width, height int
	workers       int
	params        Params
	pool          *parallel.WorkerPool

	// renderRange computes one column range; replaced in tests.
	renderRange func(dst []PixelColor, r columnRange, height int, fw, fh float64, task FrameTask, params Params)
}

// NewRenderer creates a renderer for a width×height screen.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	cfg := newConfig(opts)
	workers := max(1, min(cfg.workers, width))
	return &Renderer{
		width:   width,
		height:  height,
		workers: workers,
		params:  cfg.params,
		pool:    parallel.NewWorkerPool(workers),

		renderRange: renderColumns,
	}, nil
}

// Width returns the screen width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the screen height in pixels.
func (r *Renderer) Height() int { return r.height }

// Workers returns the number of column ranges per frame.
func (r *Renderer) Workers() int { return r.workers }

// Params returns the escape parameters used for every frame.
func (r *Renderer) Params() Params { return r.params }

// Render computes the frame seen through task. Each column range runs on its
// own worker; results are placed by range index, so the output order does not
// depend on which worker finishes first. If any worker faults the whole frame
// is discarded and ErrFrameAborted is returned.
func (r *Renderer) Render(task FrameTask) (*Frame, error) {
	start := time.Now()

	ranges := splitColumns(r.width, r.workers)
	pixels := make([]PixelColor, r.width*r.height)
	fw, fh := float64(r.width), float64(r.height)

	work := make([]func(), len(ranges))
	for i, cr := range ranges {
		dst := pixels[cr.start*r.height : cr.end*r.height]
		work[i] = func() {
			r.renderRange(dst, cr, r.height, fw, fh, task, r.params)
		}
	}

	if err := r.pool.ExecuteAll(work); err != nil {
		Logger().Warn("frame aborted", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrFrameAborted, err)
	}

	Logger().Debug("frame rendered",
		"width", r.width,
		"height", r.height,
		"workers", len(ranges),
		"magnification", task.Magnification,
		"elapsed", time.Since(start))

	return &Frame{
		Width:  r.width,
		Height: r.height,
		Task:   task,
		Pixels: pixels,
	}, nil
}

// Close stops the renderer's workers.
func (r *Renderer) Close() {
	r.pool.Close()
}

// RenderFrame computes a single frame with a temporary pool of workers.
// Long-running callers should keep a Renderer instead.
func RenderFrame(task FrameTask, width, height, workers int, params Params) (*Frame, error) {
	r, err := NewRenderer(width, height,
		WithWorkers(workers),
		WithMaxIterations(params.MaxIterations),
		WithThreshold(params.Threshold))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Render(task)
}
