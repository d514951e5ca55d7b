package frame

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodeTestPNG builds a small solid-color PNG for decode tests.
func encodeTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := encodeTestPNG(t, 8, 6, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	f, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Width != 8 || f.Height != 6 {
		t.Errorf("expected 8x6, got %dx%d", f.Width, f.Height)
	}

	if f.Channels != 3 {
		t.Errorf("expected 3 channels, got %d", f.Channels)
	}

	if len(f.Pix) != 8*6*3 {
		t.Errorf("expected %d pixel bytes, got %d", 8*6*3, len(f.Pix))
	}

	if f.Pix[0] != 200 || f.Pix[1] != 100 || f.Pix[2] != 50 {
		t.Errorf("expected first pixel (200,100,50), got (%d,%d,%d)", f.Pix[0], f.Pix[1], f.Pix[2])
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestValidate(t *testing.T) {
	valid := &Frame{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 12)}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error for valid frame: %v", err)
	}

	cases := []struct {
		name  string
		frame *Frame
	}{
		{"nil frame", nil},
		{"zero width", &Frame{Width: 0, Height: 2, Channels: 3, Pix: make([]byte, 12)}},
		{"negative height", &Frame{Width: 2, Height: -1, Channels: 3, Pix: make([]byte, 12)}},
		{"wrong channels", &Frame{Width: 2, Height: 2, Channels: 4, Pix: make([]byte, 16)}},
		{"short buffer", &Frame{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 5)}},
	}

	for _, tc := range cases {
		err := tc.frame.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidFrame) {
			t.Errorf("%s: expected ErrInvalidFrame, got %v", tc.name, err)
		}
	}
}

func TestEncodeJPEG_RoundTrip(t *testing.T) {
	data := encodeTestPNG(t, 10, 10, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded, err := f.EncodeJPEG()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("encoded output is not valid JPEG: %v", err)
	}

	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("expected 10x10 JPEG, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeJPEG_InvalidFrame(t *testing.T) {
	f := &Frame{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 1)}

	_, err := f.EncodeJPEG()
	if !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("expected ErrInvalidFrame, got %v", err)
	}
}

func TestDownscale(t *testing.T) {
	data := encodeTestPNG(t, 400, 200, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	small := f.Downscale(100)

	if small.Width != 100 {
		t.Errorf("expected width 100, got %d", small.Width)
	}

	if small.Height != 50 {
		t.Errorf("expected height 50, got %d", small.Height)
	}

	if err := small.Validate(); err != nil {
		t.Errorf("downscaled frame failed validation: %v", err)
	}
}

func TestDownscale_NoopWhenSmall(t *testing.T) {
	data := encodeTestPNG(t, 50, 40, color.RGBA{A: 255})
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := f.Downscale(100)

	if same != f {
		t.Error("expected same frame instance when already within bounds")
	}
}
