// Package share renders share links as QR codes.
package share

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/tartampluch/go-fortune/internal/config"
	"rsc.io/qr"
)

// ErrEmptyText is returned when there is nothing to encode.
var ErrEmptyText = errors.New(config.ErrQREmpty)

// Options controls the rendered QR code. A zero Size or color takes the value
// of DefaultOptions; Level is used as given, so start from DefaultOptions.
type Options struct {
	// Size is the width and height in pixels.
	Size int
	// Dark and Light are "#rrggbb" or "#rgb" colors.
	Dark  string
	Light string
	Level qr.Level
}

// DefaultOptions returns 128px, #6c5ce7 on white, error correction level H.
func DefaultOptions() Options {
	return Options{
		Size:  config.QRSize,
		Dark:  config.QRColorDark,
		Light: config.QRColorLight,
		Level: qr.H,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Size <= 0 {
		o.Size = d.Size
	}
	if o.Dark == "" {
		o.Dark = d.Dark
	}
	if o.Light == "" {
		o.Light = d.Light
	}
	return o
}

// RenderQR encodes text and draws it on a Size x Size paletted image.
// Modules are stretched to fill the image exactly.
func RenderQR(text string, opts Options) (image.Image, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	opts = opts.withDefaults()

	dark, err := ParseHexColor(opts.Dark)
	if err != nil {
		return nil, err
	}
	light, err := ParseHexColor(opts.Light)
	if err != nil {
		return nil, err
	}

	code, err := qr.Encode(text, opts.Level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrQREncode, err)
	}

	img := image.NewPaletted(image.Rect(0, 0, opts.Size, opts.Size), color.Palette{light, dark})
	for py := 0; py < opts.Size; py++ {
		my := py * code.Size / opts.Size
		for px := 0; px < opts.Size; px++ {
			if code.Black(px*code.Size/opts.Size, my) {
				img.SetColorIndex(px, py, 1)
			}
		}
	}
	return img, nil
}

// QRCodePNG renders text and encodes the result as PNG.
func QRCodePNG(text string, opts Options) ([]byte, error) {
	img, err := RenderQR(text, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrQREncode, err)
	}
	return buf.Bytes(), nil
}

// ParseHexColor parses "#rrggbb" and "#rgb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%s: %q", config.ErrColorParse, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%s: %q", config.ErrColorParse, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
