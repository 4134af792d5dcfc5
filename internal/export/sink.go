// Package export delivers generated CSV files to a directory or an
// S3-compatible bucket.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// Sink stores a finished file and reports where it went.
type Sink interface {
	Put(ctx context.Context, name string, body []byte) (location string, err error)
}

// FileName is "<kind>-YYYY-MM-DD.csv" for the day of now.
func FileName(kind string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.Format(domain.DateLayout))
}

// Config selects and configures a sink.
type Config struct {
	// Target is a directory path or s3://bucket/prefix.
	Target string

	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// Open builds the sink named by cfg.Target. An empty target means the
// current directory.
func Open(ctx context.Context, cfg Config) (Sink, error) {
	if bucket, prefix, ok := parseS3(cfg.Target); ok {
		return NewS3Sink(ctx, S3Config{
			Bucket:          bucket,
			Prefix:          prefix,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			PathStyle:       cfg.PathStyle,
		})
	}
	dir := cfg.Target
	if dir == "" {
		dir = "."
	}
	return NewDirSink(dir)
}

func parseS3(target string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(target, "s3://")
	if !found {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, strings.Trim(prefix, "/"), true
}

// ── Directory ────────────────────────────────────────────────────

// DirSink writes files under a root directory.
type DirSink struct {
	root string
}

// NewDirSink creates the root directory if needed.
func NewDirSink(root string) (*DirSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}
	return &DirSink{root: root}, nil
}

// Put writes body to root/name, replacing any existing file.
func (d *DirSink) Put(ctx context.Context, name string, body []byte) (string, error) {
	key, err := sanitizeKey(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeKey rejects names that are empty, absolute or that climb out of
// the root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid absolute key")
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}
