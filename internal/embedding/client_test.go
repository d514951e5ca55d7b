package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectFaces_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed/face" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, "missing file part", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(FaceResponse{
			FacesCount: 1,
			Model:      "dlib",
			Faces: []FaceDetection{
				{
					FaceIndex: 0,
					Dim:       4,
					Embedding: []float32{0.1, 0.2, 0.3, 0.4},
					BBox:      []float64{10, 10, 50, 50},
					DetScore:  0.99,
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "dlib")

	resp, err := client.DetectFaces(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.FacesCount != 1 {
		t.Errorf("expected 1 face, got %d", resp.FacesCount)
	}

	if len(resp.Faces) != 1 {
		t.Fatalf("expected 1 face entry, got %d", len(resp.Faces))
	}

	if resp.Faces[0].Embedding[2] != 0.3 {
		t.Errorf("expected embedding[2]=0.3, got %f", resp.Faces[0].Embedding[2])
	}
}

func TestDetectFaces_NoFaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(FaceResponse{FacesCount: 0, Model: "dlib"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "dlib")

	resp, err := client.DetectFaces(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("zero faces should not be an error, got: %v", err)
	}

	if len(resp.Faces) != 0 {
		t.Errorf("expected no faces, got %d", len(resp.Faces))
	}
}

func TestDetectFaces_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "dlib")

	_, err := client.DetectFaces(context.Background(), []byte("image"))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestDetectFaces_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "dlib")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DetectFaces(ctx, []byte("image"))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDetectMIMEType(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, "image/jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"bmp", []byte{0x42, 0x4D, 0, 0, 0, 0, 0, 0}, "image/bmp"},
		{"unknown", []byte{1, 2, 3, 4, 5, 6, 7, 8}, "application/octet-stream"},
		{"too short", []byte{0xFF}, "application/octet-stream"},
	}

	for _, tc := range cases {
		got := detectMIMEType(tc.data)
		if got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "")

	if client.baseURL != defaultServiceURL {
		t.Errorf("expected default URL %s, got %s", defaultServiceURL, client.baseURL)
	}

	if client.Model() != defaultModel {
		t.Errorf("expected default model %s, got %s", defaultModel, client.Model())
	}
}
