package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/doctorchannel/apiserver/config"
)

// Backend defines common object operations across storage providers.
type Backend interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// ImageStore keeps doctor profile images in an object storage backend.
// One object per doctor; uploading again overwrites the previous image.
type ImageStore struct {
	backend Backend
}

// NewImageStore wraps the provided backend. Returns nil for a nil
// backend so callers can treat "no storage configured" uniformly.
func NewImageStore(backend Backend) *ImageStore {
	if backend == nil {
		return nil
	}
	return &ImageStore{backend: backend}
}

// NewFromConfig builds the configured backend, or returns nil when no
// storage driver is set.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (*ImageStore, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "minio":
		backend, err := NewMinioBackend(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return NewImageStore(backend), nil
	case "gcs":
		backend, err := NewGCSBackend(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return NewImageStore(backend), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// EnsureBucket makes sure the configured bucket exists.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// PutDoctorImage stores the profile image for a doctor.
func (s *ImageStore) PutDoctorImage(ctx context.Context, doctorID string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, doctorImageKey(doctorID), r, size, contentType)
}

// GetDoctorImage opens a reader for a doctor's profile image.
func (s *ImageStore) GetDoctorImage(ctx context.Context, doctorID string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, doctorImageKey(doctorID))
}

// DeleteDoctorImage removes a doctor's profile image.
func (s *ImageStore) DeleteDoctorImage(ctx context.Context, doctorID string) error {
	return s.backend.Delete(ctx, doctorImageKey(doctorID))
}

// Bucket returns the configured bucket name.
func (s *ImageStore) Bucket() string {
	return s.backend.Bucket()
}

func doctorImageKey(doctorID string) string {
	return fmt.Sprintf("doctors/%s/profile", doctorID)
}
