// Package preprocess prepares captured frames for text recognition.
//
// Screen captures differ from scanned documents: text is often small, set in
// light-on-dark themes, and anti-aliased against colored backgrounds. Prepare
// applies the adjustments that help Tesseract with that kind of input.
package preprocess

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultDarkThreshold is the mean CIE L* lightness below which a frame is
// treated as light text on a dark background.
const DefaultDarkThreshold = 0.45

// maxSamples bounds the number of pixels MeanLightness reads.
const maxSamples = 4096

// Options controls Prepare. The zero value leaves the image untouched.
type Options struct {
	// Scale resizes the image before recognition. Values <= 0 or 1 disable
	// resizing. Tesseract reads small UI text better at 2x or 3x.
	Scale float64

	// InvertDark inverts frames whose mean lightness is below DarkThreshold.
	InvertDark bool

	// DarkThreshold overrides DefaultDarkThreshold when > 0.
	DarkThreshold float64

	// Grayscale replaces every pixel with its luminance; R, G and B come out
	// equal.
	Grayscale bool

	// Contrast changes contrast by a factor in [-1, 1]. Zero disables it.
	Contrast float64
}

// Prepare applies opts to img and returns the prepared image together with the
// scale factor that was applied, so callers can map coordinates found in the
// prepared image back by dividing by it.
func Prepare(img image.Image, opts Options) (image.Image, float64) {
	scale := 1.0
	if opts.Scale > 0 && opts.Scale != 1 {
		b := img.Bounds()
		w := int(math.Round(float64(b.Dx()) * opts.Scale))
		h := int(math.Round(float64(b.Dy()) * opts.Scale))
		if w > 0 && h > 0 {
			img = imaging.Resize(img, w, h, imaging.Lanczos)
			scale = float64(w) / float64(b.Dx())
		}
	}

	if opts.InvertDark {
		threshold := opts.DarkThreshold
		if threshold <= 0 {
			threshold = DefaultDarkThreshold
		}
		if IsDark(img, threshold) {
			img = effect.Invert(img)
		}
	}

	if opts.Contrast != 0 {
		img = adjust.Contrast(img, clamp(opts.Contrast, -1, 1))
	}

	if opts.Grayscale {
		img = effect.Grayscale(img)
	}

	return img, scale
}

// IsDark reports whether the mean lightness of img is below threshold.
func IsDark(img image.Image, threshold float64) bool {
	return MeanLightness(img) < threshold
}

// MeanLightness returns the average CIE L* lightness of img in [0, 1].
//
// Pixels are sampled on a regular grid so large captures cost about the same
// as small ones. Fully transparent pixels are skipped. An empty image, or one
// with no opaque pixels, reports 1 (white).
func MeanLightness(img image.Image) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 1
	}

	step := int(math.Ceil(math.Sqrt(float64(b.Dx()*b.Dy()) / maxSamples)))
	if step < 1 {
		step = 1
	}

	var sum float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}

	if n == 0 {
		return 1
	}
	return clamp(sum/float64(n), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
