package export

//go:generate go run go.uber.org/mock/mockgen -source=./sink.go -destination=./mocks/sink_mock.go -package=mocks

import (
	"carrental/infras/s3"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const s3Scheme = "s3://"

// Sink stores a rendered document and returns where it ended up.
type Sink interface {
	Write(ctx context.Context, target, contentType string, data []byte) (location string, err error)
}

type sinkImpl struct {
	dir    string
	bucket s3.S3
}

// NewSink writes relative paths under dir and s3://bucket/key targets through
// bucket. A nil bucket rejects s3 targets.
func NewSink(dir string, bucket s3.S3) Sink {
	return &sinkImpl{dir: dir, bucket: bucket}
}

func (s *sinkImpl) Write(ctx context.Context, target, contentType string, data []byte) (string, error) {
	if strings.HasPrefix(target, s3Scheme) {
		return s.upload(ctx, target, contentType, data)
	}

	path := target
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // nolint:gosec
		log.Error().Err(err).Str("path", path).Msg("failed to write export")

		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func (s *sinkImpl) upload(ctx context.Context, target, contentType string, data []byte) (string, error) {
	bucket, key, err := ParseS3Target(target)
	if err != nil {
		return "", err
	}

	if s.bucket == nil {
		return "", fmt.Errorf("object storage is not configured, cannot write %s", target)
	}

	return s.bucket.Upload(ctx, bucket, key, contentType, data) // nolint:wrapcheck
}

// ParseS3Target splits s3://bucket/key. An empty bucket means the configured default.
func ParseS3Target(target string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(target, s3Scheme)

	bucket, key, _ = strings.Cut(rest, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("invalid object target %q, expected s3://bucket/key", target)
	}

	return bucket, key, nil
}
