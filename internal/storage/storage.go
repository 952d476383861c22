package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage persists uploaded photos. Save returns nothing; callers build the
// public URL via GetURL so the DB never stores backend-specific paths.
type Storage interface {
	// Save stores the object at the given key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for the object.
	GetURL(ctx context.Context, key string) (string, error)
}

// Config selects and parameterizes a backend.
type Config struct {
	Type       string // local or s3
	BasePath   string // local: directory for uploads
	BaseURL    string // public URL base
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // custom S3-compatible endpoint (e.g. R2, MinIO)
	PublicRead bool
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
