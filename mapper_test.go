package mandel

import (
	"math"
	"testing"
)

func TestPlaneCoordEndpoints(t *testing.T) {
	for _, extent := range []float64{1, 4, 500, 1920} {
		if got := PlaneCoord(0, extent, 0, 1); got != -2 {
			t.Errorf("PlaneCoord(0, %v) = %v, want -2", extent, got)
		}
		if got := PlaneCoord(extent, extent, 0, 1); got != 2 {
			t.Errorf("PlaneCoord(%v, %v) = %v, want 2", extent, extent, got)
		}
	}
}

func TestPlaneCoordMagnificationAndOffset(t *testing.T) {
	tests := []struct {
		name                       string
		pixel, extent, offset, mag float64
		want                       float64
	}{
		{"center", 250, 500, 0, 1, 0},
		{"zoomed window starts at -2", 0, 500, 0, 2, -2},
		{"zoomed right edge", 500, 500, 0, 2, 0},
		{"offset shifts", 0, 500, 250, 1, 0},
		{"negative offset", 250, 500, -250, 1, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaneCoord(tt.pixel, tt.extent, tt.offset, tt.mag)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PlaneCoord() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameTaskPixelToComplex(t *testing.T) {
	task := FrameTask{Magnification: 1}
	got := task.PixelToComplex(0, 4, 4, 4)
	if want := NewComplex(-2, 2); got != want {
		t.Errorf("PixelToComplex() = %v, want %v", got, want)
	}
}
