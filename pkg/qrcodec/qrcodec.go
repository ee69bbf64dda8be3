// Package qrcodec wraps QR image rendering and decoding behind one small
// interface so the controllers never touch a concrete QR library.
package qrcodec

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

// Codec renders a string into a scannable image and decodes a captured
// frame back into a string. Decode reports false when the frame holds no
// readable QR code; that is an everyday occurrence, not an error.
type Codec interface {
	Render(s string) (image.Image, error)
	Decode(frame image.Image) (string, bool)
}

// ImageCodec is the default Codec.
type ImageCodec struct {
	scale  int
	reader gozxing.Reader
}

// New returns a codec whose rendered images use one pixel per QR module,
// which is what the terminal renderer wants.
func New() *ImageCodec {
	return NewWithScale(-1)
}

// NewWithScale sets the skip2/go-qrcode image size parameter: positive
// values are the edge length in pixels, negative values are pixels per
// module.
func NewWithScale(scale int) *ImageCodec {
	return &ImageCodec{scale: scale, reader: zxqrcode.NewQRCodeReader()}
}

var _ Codec = (*ImageCodec)(nil)

// Render implements Codec.
func (c *ImageCodec) Render(s string) (image.Image, error) {
	qr, err := qrcode.New(s, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.Image(c.scale), nil
}

// Decode implements Codec.
func (c *ImageCodec) Decode(frame image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(frame)
	if err != nil {
		return "", false
	}
	result, err := c.reader.Decode(bmp, nil)
	if err != nil {
		return "", false
	}
	return result.GetText(), true
}
