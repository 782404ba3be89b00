// Package snapshot writes frames to PNG files, optionally with a caption
// describing the view they were rendered from.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	mandel "github.com/marben/mandelview"
)

const (
	captionSize   = 12
	captionMargin = 4
)

var captionFace = sync.OnceValues(func() (font.Face, error) {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse goregular: %w", err)
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    captionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
})

var printer = message.NewPrinter(language.English)

// Options controls how a snapshot is produced.
type Options struct {
	// Caption is drawn along the bottom edge when non-empty.
	Caption string
	// Scale resizes the image before the caption is drawn. Values <= 0 mean 1.
	Scale float64
}

// Caption describes the view t in one line.
func Caption(t mandel.FrameTask) string {
	return printer.Sprintf("magnification ×%d  offset (%.1f, %.1f)",
		int64(t.Magnification), t.Offset.X, t.Offset.Y)
}

// Render converts img into the final snapshot image.
func Render(img image.Image, opts Options) (*image.RGBA, error) {
	out := scale(img, opts.Scale)
	if opts.Caption == "" {
		return out, nil
	}
	face, err := captionFace()
	if err != nil {
		return nil, err
	}
	drawCaption(out, face, opts.Caption)
	return out, nil
}

func scale(img image.Image, s float64) *image.RGBA {
	b := img.Bounds()
	if s <= 0 || s == 1 {
		out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
		return out
	}
	w := max(1, int(float64(b.Dx())*s))
	h := max(1, int(float64(b.Dy())*s))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

func drawCaption(dst *image.RGBA, face font.Face, text string) {
	m := face.Metrics()
	lineH := (m.Ascent + m.Descent).Ceil()
	b := dst.Bounds()

	band := image.Rect(b.Min.X, b.Max.Y-lineH-2*captionMargin, b.Max.X, b.Max.Y)
	draw.Draw(dst, band, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(b.Min.X+captionMargin, b.Max.Y-captionMargin-m.Descent.Ceil()),
	}
	d.DrawString(text)
}

// Encode writes img as a PNG snapshot to w.
func Encode(w io.Writer, img image.Image, opts Options) error {
	out, err := Render(img, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, out)
}

// Save writes img as a PNG snapshot to path.
func Save(path string, img image.Image, opts Options) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, img, opts)
}

// SaveFrame writes f to path with a caption describing its view.
func SaveFrame(path string, f *mandel.Frame, scale float64) error {
	return Save(path, f.Image(), Options{Caption: Caption(f.Task), Scale: scale})
}
