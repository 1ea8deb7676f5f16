// Package filestore hosts uploaded resumes outside the entity store.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
)

// ErrNotConfigured is returned by a store with no credentials.
var ErrNotConfigured = errors.New("file store not configured")

// Store accepts a binary file and returns where it lives.
type Store interface {
	Upload(ctx context.Context, filename string, body io.Reader) (domain.Resume, error)
	Delete(ctx context.Context, publicID string) error
}

// Cloudinary stores files in a Cloudinary folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// New returns a Cloudinary-backed store, or a store that rejects uploads when
// credentials are absent.
func New(cfg config.FileStoreConfig) (Store, error) {
	if !cfg.Configured() {
		return Unconfigured{}, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: cfg.Folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, filename string, body io.Reader) (domain.Resume, error) {
	res, err := c.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		Folder:         c.folder,
		UniqueFilename: boolPtr(true),
		Tags:           []string{"resume"},
		Context:        map[string]string{"filename": filename},
	})
	if err != nil {
		return domain.Resume{}, err
	}
	if res.Error.Message != "" {
		return domain.Resume{}, errors.New(res.Error.Message)
	}
	return domain.Resume{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}

// Unconfigured fails every upload; deletes are no-ops.
type Unconfigured struct{}

func (Unconfigured) Upload(context.Context, string, io.Reader) (domain.Resume, error) {
	return domain.Resume{}, ErrNotConfigured
}

func (Unconfigured) Delete(context.Context, string) error { return nil }

func boolPtr(v bool) *bool { return &v }
