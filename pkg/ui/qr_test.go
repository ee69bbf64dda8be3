package ui

import (
	"image"
	"image/color"
	"testing"
)

func setPixel(img *image.Gray, x, y int, dark bool) {
	v := uint8(255)
	if dark {
		v = 0
	}
	img.SetGray(x, y, color.Gray{Y: v})
}

func TestRenderQRHalfBlocks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 4))
	// Column 0 top to bottom: dark dark dark light.
	setPixel(img, 0, 0, true)
	setPixel(img, 0, 1, true)
	setPixel(img, 0, 2, true)
	setPixel(img, 0, 3, false)
	// Column 1 top to bottom: light dark light light.
	setPixel(img, 1, 0, false)
	setPixel(img, 1, 1, true)
	setPixel(img, 1, 2, false)
	setPixel(img, 1, 3, false)

	got := renderQR(img)
	want := "█▄\n▀ \n"
	if got != want {
		t.Errorf("renderQR() = %q, want %q", got, want)
	}
}

func TestRenderQROddHeight(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	setPixel(img, 0, 0, true)

	if got := renderQR(img); got != "▀\n" {
		t.Errorf("renderQR() = %q, want %q", got, "▀\n")
	}
}

func TestRenderQRNilImage(t *testing.T) {
	if got := renderQR(nil); got != "" {
		t.Errorf("renderQR(nil) = %q, want empty", got)
	}
}
