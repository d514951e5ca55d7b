package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed thresholds.yaml
var thresholdsYAML []byte

// defaultThreshold applies when the configured model has no preset.
// Conservative enough that a wrong-model mismatch rejects rather than accepts.
const defaultThreshold = 0.6

type Config struct {
	Embedding  EmbeddingConfig
	Gallery    GalleryConfig
	Attendance AttendanceConfig
	Matcher    MatcherConfig
	Thresholds ThresholdsConfig
}

type EmbeddingConfig struct {
	URL   string // defaults to http://localhost:8000
	Model string // embedding model served by the collaborator (default dlib)
	Dim   int    // defaults to 128
}

type GalleryConfig struct {
	StudentDir string // directory of enrollment reference images (default "students")
	FramesDir  string // directory for archived unrecognized frames (default "unrecognized_faces")
}

type AttendanceConfig struct {
	CSVFile         string // attendance ledger path (default "attendance.csv")
	UnrecognizedLog string // unrecognized attempts log path (default "unrecognized_log.csv")
}

type MatcherConfig struct {
	Threshold   float64 // acceptance threshold override; 0 means use model preset
	HNSWCutoff  int     // gallery size at which the HNSW index kicks in (default 256)
	Approximate bool    // allow approximate candidate search for large galleries
}

type ThresholdsConfig struct {
	Models map[string]ModelThreshold `yaml:"models"`
}

type ModelThreshold struct {
	Threshold float64 `yaml:"threshold"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var thresholds ThresholdsConfig
	if err := yaml.Unmarshal(thresholdsYAML, &thresholds); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded thresholds.yaml: " + err.Error())
	}

	return &Config{
		Embedding: EmbeddingConfig{
			URL:   os.Getenv("EMBEDDING_URL"),
			Model: envString("EMBEDDING_MODEL", "dlib"),
			Dim:   envInt("EMBEDDING_DIM", 128),
		},
		Gallery: GalleryConfig{
			StudentDir: envString("STUDENT_DIR", "students"),
			FramesDir:  envString("UNRECOGNIZED_FRAMES_DIR", "unrecognized_faces"),
		},
		Attendance: AttendanceConfig{
			CSVFile:         envString("ATTENDANCE_CSV", "attendance.csv"),
			UnrecognizedLog: envString("UNRECOGNIZED_LOG", "unrecognized_log.csv"),
		},
		Matcher: MatcherConfig{
			Threshold:   envFloat("FACE_MATCH_THRESHOLD", 0),
			HNSWCutoff:  envInt("GALLERY_HNSW_CUTOFF", 256),
			Approximate: os.Getenv("GALLERY_APPROXIMATE_SEARCH") == "true",
		},
		Thresholds: thresholds,
	}
}

// MatchThreshold resolves the acceptance threshold: explicit override first,
// then the preset for the configured embedding model.
func (c *Config) MatchThreshold() float64 {
	if c.Matcher.Threshold > 0 {
		return c.Matcher.Threshold
	}
	if preset, ok := c.Thresholds.Models[c.Embedding.Model]; ok && preset.Threshold > 0 {
		return preset.Threshold
	}
	return defaultThreshold
}
