package frame

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

// ErrInvalidFrame indicates a pixel buffer that fails boundary validation.
var ErrInvalidFrame = errors.New("invalid frame")

// Frame is an RGB pixel buffer with explicit dimensions. Images cross the
// core boundary only as validated Frames; raw uploads are decoded here
// before anything else touches them.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte // row-major RGB, len = Width*Height*Channels
}

// Decode parses encoded image data (JPEG, PNG or BMP) into a Frame.
func Decode(data []byte) (*Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %w", ErrInvalidFrame, err)
	}

	bounds := img.Bounds()
	f := &Frame{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 3,
	}
	f.Pix = make([]byte, f.Width*f.Height*f.Channels)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			f.Pix[i] = byte(r >> 8)
			f.Pix[i+1] = byte(g >> 8)
			f.Pix[i+2] = byte(b >> 8)
			i += 3
		}
	}

	return f, nil
}

// Validate checks the buffer metadata against the pixel data.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidFrame, f.Width, f.Height)
	}
	if f.Channels != 3 {
		return fmt.Errorf("%w: expected 3 channels, got %d", ErrInvalidFrame, f.Channels)
	}
	if len(f.Pix) != f.Width*f.Height*f.Channels {
		return fmt.Errorf("%w: pixel buffer size %d does not match %dx%dx%d",
			ErrInvalidFrame, len(f.Pix), f.Width, f.Height, f.Channels)
	}
	return nil
}

// toImage converts the frame to an image.RGBA for encoding and scaling.
func (f *Frame) toImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}

// EncodeJPEG encodes the frame as a JPEG.
func (f *Frame) EncodeJPEG() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, f.toImage(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale resizes the frame to fit within maxSize (width or height) while
// keeping aspect ratio. Frames already within bounds are returned unchanged.
func (f *Frame) Downscale(maxSize int) *Frame {
	if f.Width <= maxSize && f.Height <= maxSize {
		return f
	}

	var newWidth, newHeight int
	if f.Width > f.Height {
		newWidth = maxSize
		newHeight = int(float64(f.Height) * float64(maxSize) / float64(f.Width))
	} else {
		newHeight = maxSize
		newWidth = int(float64(f.Width) * float64(maxSize) / float64(f.Height))
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	src := f.toImage()
	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := &Frame{
		Width:    newWidth,
		Height:   newHeight,
		Channels: 3,
		Pix:      make([]byte, newWidth*newHeight*3),
	}
	for i, j := 0, 0; j < len(resized.Pix); i, j = i+3, j+4 {
		out.Pix[i] = resized.Pix[j]
		out.Pix[i+1] = resized.Pix[j+1]
		out.Pix[i+2] = resized.Pix[j+2]
	}
	return out
}
