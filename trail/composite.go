package trail

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// TintMode selects how a source pixel's color feeds into the tint.
type TintMode int

const (
	// TintFlat replaces the source color with the configured tint,
	// preserving (scaled) alpha only.
	TintFlat TintMode = iota
	// TintLuminance additionally scales the tint's brightness by the
	// source pixel's luminance before blending.
	TintLuminance
)

// Params are the composition parameters shared by every frame of a run.
type Params struct {
	HistoryLength int
	Background    Color
	CurrentColor  Color
	HistoryColor  Color
	TintMode      TintMode
}

// Validate rejects parameter combinations before any work is scheduled.
func (p Params) Validate() error {
	if p.HistoryLength < 1 {
		return errors.New("history length must be at least 1")
	}
	return nil
}

// Composite renders the output canvas for one frame index: the
// background at full opacity, up to HistoryLength preceding frames
// tinted with a fade that decreases with age, then the current frame
// in the current color at full opacity.
//
// The result depends only on frames [max(0, index-H), index], reads
// the cache without mutating it, and is byte-identical regardless of
// which worker or how many workers invoke it.
func Composite(index int, cache *FrameCache, params Params) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, cache.Width, cache.Height))
	bg := params.Background.NRGBA(255)
	for i := 0; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i] = bg.R
		canvas.Pix[i+1] = bg.G
		canvas.Pix[i+2] = bg.B
		canvas.Pix[i+3] = bg.A
	}

	maxAge := params.HistoryLength
	if index < maxAge {
		maxAge = index
	}

	// Oldest first so newer history paints over older history.
	for age := maxAge; age >= 1; age-- {
		src := cache.Frames[index-age]
		overlayTinted(canvas, src, params.HistoryColor, fadeWeight(age, params.HistoryLength), params.TintMode)
	}

	overlayCurrent(canvas, cache.Frames[index], params.CurrentColor)
	return canvas
}

// fadeWeight maps a history frame's age (1 = most recent) to its
// opacity scale: (H-age)/H, clamped to [0,1]. Weight reaches 0 only
// at age == H.
func fadeWeight(age, historyLength int) float64 {
	w := float64(historyLength-age) / float64(historyLength)
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// overlayTinted blends a tinted rendition of src onto dst: each source
// pixel with non-zero alpha becomes the tint color with alpha scaled
// by the source alpha and the fade weight. Transparent source pixels
// contribute nothing.
func overlayTinted(dst, src *image.NRGBA, tint Color, fade float64, mode TintMode) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			so := src.PixOffset(x, y)
			sa := float64(src.Pix[so+3]) / 255.0
			if sa == 0 {
				continue
			}
			alpha := sa * fade
			if alpha <= 0 {
				continue
			}

			pixel := tint.NRGBA(uint8(math.Round(alpha * 255)))
			if mode == TintLuminance {
				lum := (0.299*float64(src.Pix[so]) +
					0.587*float64(src.Pix[so+1]) +
					0.114*float64(src.Pix[so+2])) / 255.0
				pixel.R = uint8(float64(tint.R) * lum)
				pixel.G = uint8(float64(tint.G) * lum)
				pixel.B = uint8(float64(tint.B) * lum)
			}

			blendPixel(dst.Pix[dst.PixOffset(x, y):], pixel)
		}
	}
}

// overlayCurrent paints the current frame: any source pixel with
// non-zero alpha becomes the current color at full opacity.
func overlayCurrent(dst, src *image.NRGBA, current Color) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	pixel := current.NRGBA(255)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.Pix[src.PixOffset(x, y)+3] == 0 {
				continue
			}
			blendPixel(dst.Pix[dst.PixOffset(x, y):], pixel)
		}
	}
}

// blendPixel applies the straight-alpha "over" operator, compositing
// src onto the destination pixel at dst[0:4]:
//
//	out_a = s_a + d_a*(1-s_a)
//	out_c = (s_c*s_a + d_c*d_a*(1-s_a)) / out_a   (0 when out_a == 0)
//
// Every overlay step uses this same function.
func blendPixel(dst []uint8, src color.NRGBA) {
	da := float64(dst[3]) / 255.0
	sa := float64(src.A) / 255.0
	outA := sa + da*(1-sa)

	blend := func(dc, sc uint8) uint8 {
		if outA == 0 {
			return 0
		}
		d := float64(dc) / 255.0
		s := float64(sc) / 255.0
		return uint8(math.Round((s*sa + d*da*(1-sa)) / outA * 255.0))
	}

	dst[0] = blend(dst[0], src.R)
	dst[1] = blend(dst[1], src.G)
	dst[2] = blend(dst[2], src.B)
	dst[3] = uint8(math.Round(outA * 255.0))
}
