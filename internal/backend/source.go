package backend

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

//go:embed sample_tips.yaml
var sampleTips []byte

// Source supplies the per-video tips.
type Source interface {
	Load(ctx context.Context) ([]*TripTips, error)
}

type tipsFile struct {
	Videos []*TripTips `yaml:"videos"`
}

// FileSource reads a YAML tips file on every Load so edits are served
// without a restart.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]*TripTips, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read tips: %w", err)
	}
	return decodeTips(b)
}

// SampleSource serves the bundled sample tips.
type SampleSource struct{}

func (SampleSource) Load(context.Context) ([]*TripTips, error) {
	return decodeTips(sampleTips)
}

// NewSource returns a FileSource for path, or the bundled sample when path is empty.
func NewSource(path string) Source {
	if path == "" {
		return SampleSource{}
	}
	return FileSource{Path: path}
}

func decodeTips(b []byte) ([]*TripTips, error) {
	var f tipsFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode tips: %w", err)
	}
	return f.Videos, nil
}
