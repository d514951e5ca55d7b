package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/embedding"
	"github.com/kozaktomas/face-attendance/internal/frame"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/kozaktomas/face-attendance/internal/matcher"
	"github.com/kozaktomas/face-attendance/internal/store"
	"github.com/kozaktomas/face-attendance/internal/unrecognized"
)

// stubDetector keys embeddings off the dominant color channel of the posted
// image: red means the known student, anything else has no face.
type stubDetector struct {
	err error
}

func (d *stubDetector) DetectFaces(_ context.Context, imageData []byte) (*embedding.FaceResponse, error) {
	if d.err != nil {
		return nil, d.err
	}

	f, err := frame.Decode(imageData)
	if err != nil {
		return nil, err
	}

	if f.Pix[0] > 200 && f.Pix[1] < 100 {
		return &embedding.FaceResponse{
			FacesCount: 1,
			Faces: []embedding.FaceDetection{
				{Dim: 2, Embedding: []float32{1, 0}, DetScore: 0.9},
			},
		}, nil
	}
	return &embedding.FaceResponse{}, nil
}

// testService assembles a full attendance service over temp directories.
func testService(t *testing.T) (*attendance.Service, *stubDetector, string) {
	t.Helper()
	dir := t.TempDir()

	enrollStore, err := gallery.NewStore(filepath.Join(dir, "students"))
	if err != nil {
		t.Fatalf("failed to create enrollment store: %v", err)
	}

	detector := &stubDetector{}
	g := gallery.New(enrollStore, detector, 0)
	m := matcher.New(0.6, false)

	csvPath := filepath.Join(dir, "attendance.csv")
	l := ledger.New(store.NewCSVStore(csvPath))
	l.SetClock(func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	})

	uLog := store.NewUnrecognizedLog(filepath.Join(dir, "unrecognized_log.csv"))
	recorder, err := unrecognized.NewRecorder(filepath.Join(dir, "unrecognized_faces"), uLog)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}

	return attendance.NewService(g, m, l, recorder, detector), detector, csvPath
}

func redPNG(t *testing.T) []byte {
	t.Helper()
	return solidColorPNG(t, color.RGBA{R: 255, A: 255})
}

func grayPNG(t *testing.T) []byte {
	t.Helper()
	return solidColorPNG(t, color.RGBA{R: 128, G: 128, B: 128, A: 255})
}

func solidColorPNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// multipartRequest builds a multipart request with an optional image part
// and extra form fields.
func multipartRequest(t *testing.T, method, path string, imageData []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if imageData != nil {
		part, err := writer.CreateFormFile("image", "frame.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(imageData); err != nil {
			t.Fatalf("failed to write image part: %v", err)
		}
	}

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	if recorder.Code != want {
		t.Errorf("expected status %d, got %d (body: %s)", want, recorder.Code, recorder.Body.String())
	}
}

func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v (body: %s)", err, recorder.Body.String())
	}
}

// enrollRed enrolls a student whose face the stub detector recognizes.
func enrollRed(t *testing.T, service *attendance.Service, name string) {
	t.Helper()
	if err := service.EnrollStudent(context.Background(), name, redPNG(t)); err != nil {
		t.Fatalf("failed to enroll %s: %v", name, err)
	}
}
