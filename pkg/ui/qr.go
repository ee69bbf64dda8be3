package ui

import (
	"image"
	"image/color"
	"strings"
)

// renderQR draws a QR image with half-block cells, packing two image rows
// into each terminal line so the code stays roughly square.
func renderQR(img image.Image) string {
	if img == nil {
		return ""
	}
	bounds := img.Bounds()
	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := darkAt(img, x, y)
			bottom := y+1 < bounds.Max.Y && darkAt(img, x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func darkAt(img image.Image, x, y int) bool {
	gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
	return gray.Y < 128
}
