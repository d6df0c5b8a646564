package trail

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// DecodeFrame reads one image file and normalizes it to a
// straight-alpha RGBA8 buffer.
func DecodeFrame(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba, nil
	}
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return nrgba, nil
}

// EncodeCanvas writes a composited canvas to path, picking the encoder
// from the file extension. Output is always RGBA8 content regardless
// of the input format (jpeg and gif encoders reduce it as required by
// their formats).
func EncodeCanvas(canvas *image.NRGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, canvas)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, canvas, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(f, canvas, nil)
	case ".bmp":
		err = bmp.Encode(f, canvas)
	case ".tga":
		err = tga.Encode(f, canvas)
	default:
		err = png.Encode(f, canvas)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
