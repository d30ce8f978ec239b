// Package storage re-hosts generated images on a Google Cloud Storage
// bucket. Provider image URLs expire after about an hour, so every portrait
// is downloaded once and written under a stable public key.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
)

const (
	// DefaultPrefix is the key namespace for soulmate portraits.
	DefaultPrefix = "soulmates"
	// DefaultMaxBytes caps a single downloaded image.
	DefaultMaxBytes int64 = 20 << 20

	contentTypePNG = "image/png"
)

var (
	// ErrNotConfigured is returned when no bucket or public URL is set.
	ErrNotConfigured = errors.New("storage: bucket not configured")
	// ErrDownload is returned when the source image cannot be fetched.
	ErrDownload = errors.New("storage: source download failed")
)

// ObjectWriter persists one object. The GCS implementation is used in
// production; tests substitute an in-memory one.
type ObjectWriter interface {
	WriteObject(ctx context.Context, bucket, key, contentType string, r io.Reader) error
}

// Config describes the target bucket.
type Config struct {
	Bucket          string
	CredentialsFile string       // optional; falls back to application default credentials
	PublicURL       string       // CDN or bucket base, e.g. https://cdn.example.com
	Prefix          string
	MaxBytes        int64
	HTTPClient      *http.Client // used to download source images
}

// Uploader downloads a remote image and stores it in the bucket.
type Uploader struct {
	w         ObjectWriter
	closer    io.Closer
	bucket    string
	publicURL string
	prefix    string
	maxBytes  int64
	http      *http.Client
}

// NewGCS opens a storage client for cfg. When cfg.Bucket is empty the
// returned Uploader is inert and every upload returns ErrNotConfigured.
func NewGCS(ctx context.Context, cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return New(nil, cfg), nil
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(gcs.ScopeReadWrite))
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	u := New(&gcsWriter{client: client}, cfg)
	u.closer = client
	return u, nil
}

// New builds an Uploader over any ObjectWriter.
func New(w ObjectWriter, cfg Config) *Uploader {
	u := &Uploader{
		w:         w,
		bucket:    strings.TrimSpace(cfg.Bucket),
		publicURL: strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/"),
		prefix:    strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		maxBytes:  cfg.MaxBytes,
		http:      cfg.HTTPClient,
	}
	if u.prefix == "" {
		u.prefix = DefaultPrefix
	}
	if u.maxBytes <= 0 {
		u.maxBytes = DefaultMaxBytes
	}
	if u.http == nil {
		u.http = &http.Client{Timeout: 60 * time.Second}
	}
	if u.publicURL == "" && u.bucket != "" {
		u.publicURL = "https://storage.googleapis.com/" + u.bucket
	}
	return u
}

// Configured reports whether uploads can succeed.
func (u *Uploader) Configured() bool {
	return u != nil && u.w != nil && u.bucket != ""
}

// Key returns the object key for fileName.
func (u *Uploader) Key(fileName string) string {
	return u.prefix + "/" + strings.TrimLeft(fileName, "/")
}

// PublicURL returns the CDN URL of key.
func (u *Uploader) PublicURL(key string) string {
	return u.publicURL + "/" + key
}

// UploadFromURL fetches sourceURL and stores it as <prefix>/<fileName>
// with content type image/png. It returns the public URL of the object.
func (u *Uploader) UploadFromURL(ctx context.Context, sourceURL, fileName string) (string, error) {
	key := u.Key(fileName)
	ctx, span := otel.Tracer("storage").Start(ctx, "UploadFromURL",
		trace.WithAttributes(attribute.String("storage.key", key)))
	defer span.End()

	if !u.Configured() {
		return "", ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	resp, err := u.http.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrDownload, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrDownload, u.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty body", ErrDownload)
	}

	if err := u.w.WriteObject(ctx, u.bucket, key, contentTypePNG, bytes.NewReader(data)); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	span.SetAttributes(attribute.Int("storage.bytes", len(data)))
	return u.PublicURL(key), nil
}

// Close releases the underlying storage client, if any.
func (u *Uploader) Close() error {
	if u == nil || u.closer == nil {
		return nil
	}
	return u.closer.Close()
}

// SoulmateFileName returns soulmate-<unix-millis>-<random>.png.
func SoulmateFileName(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("soulmate-%d-%s.png", now.UnixMilli(), suffix)
}

type gcsWriter struct {
	client *gcs.Client
}

func (g *gcsWriter) WriteObject(ctx context.Context, bucket, key, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}
