package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	// ErrNilImage is returned when a frame is built without pixel data.
	ErrNilImage = errors.New("capture: nil image")

	// ErrInvalidRotation is returned for rotations other than 0, 90, 180 or 270.
	ErrInvalidRotation = errors.New("capture: rotation must be 0, 90, 180 or 270")
)

// Frame is a captured image handed to a recognition engine.
//
// Image holds the pixel data as captured. Rotation is the number of degrees
// the image must be turned clockwise to appear upright, matching the
// orientation metadata screen and camera capture pipelines attach to a frame.
//
// Origin is the position of the upright frame's top-left corner within the
// capture it was cropped from, and is zero for whole captures. Engines add it
// to the boxes they report so results stay in capture coordinates.
//
// A Frame is read-only once built; engines must not modify Image.
type Frame struct {
	Image    image.Image
	Rotation int
	Origin   image.Point
}

// NewFrame validates img and rotation and returns a Frame.
//
// Rotation may be given as any multiple of 90, including negative values; it
// is normalized into [0, 360).
func NewFrame(img image.Image, rotation int) (Frame, error) {
	if img == nil {
		return Frame{}, ErrNilImage
	}
	if rotation%90 != 0 {
		return Frame{}, fmt.Errorf("%w: got %d", ErrInvalidRotation, rotation)
	}
	rotation %= 360
	if rotation < 0 {
		rotation += 360
	}
	return Frame{Image: img, Rotation: rotation}, nil
}

// Upright returns the frame's image turned so that its content reads upright.
//
// The returned image is a copy for non-zero rotations and the original image
// otherwise. imaging rotates counter-clockwise, so a clockwise turn of 90
// degrees is a counter-clockwise turn of 270.
func (f Frame) Upright() image.Image {
	switch f.Rotation {
	case 90:
		return imaging.Rotate270(f.Image)
	case 180:
		return imaging.Rotate180(f.Image)
	case 270:
		return imaging.Rotate90(f.Image)
	default:
		return f.Image
	}
}

// Size returns the width and height of the upright frame.
func (f Frame) Size() (width, height int) {
	b := f.Image.Bounds()
	if f.Rotation == 90 || f.Rotation == 270 {
		return b.Dy(), b.Dx()
	}
	return b.Dx(), b.Dy()
}

// Decode reads an encoded PNG, JPEG or GIF image from r and wraps it in a Frame.
// EXIF orientation is applied while decoding, before rotation is considered.
func Decode(r io.Reader, rotation int) (Frame, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return Frame{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return NewFrame(img, rotation)
}

// DecodeBase64 decodes a base64 image payload. A leading data URL header such
// as "data:image/png;base64," is accepted and skipped.
func DecodeBase64(data string, rotation int) (Frame, error) {
	if i := strings.Index(data, ";base64,"); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+len(";base64,"):]
	}
	raw := base64.NewDecoder(base64.StdEncoding, strings.NewReader(strings.TrimSpace(data)))
	return Decode(raw, rotation)
}

// Crop returns a frame holding the part of the upright image inside r, given
// in upright coordinates. The result has rotation 0, and its Origin records
// where the crop sits in the original capture.
//
// r is clipped to the frame; an empty intersection is an error.
func (f Frame) Crop(r image.Rectangle) (Frame, error) {
	up := f.Upright()
	b := up.Bounds()
	clipped := r.Add(b.Min).Intersect(b)
	if clipped.Empty() {
		return Frame{}, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside frame %dx%d",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, b.Dx(), b.Dy())
	}
	cropped, err := NewFrame(imaging.Crop(up, clipped), 0)
	if err != nil {
		return Frame{}, err
	}
	cropped.Origin = f.Origin.Add(clipped.Min.Sub(b.Min))
	return cropped, nil
}
