// Package storage keeps uploaded listing images on the local filesystem,
// served back under a public URL prefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

const (
	cropsDir  = "crops"
	thumbsDir = "thumbs"
	thumbSize = 320
)

// ImageStore writes crop images under baseDir and returns URLs under
// publicPrefix. Files are re-encoded on save, which both validates the
// upload is a real image and strips anything that is not pixel data.
type ImageStore struct {
	baseDir      string
	publicPrefix string
}

// NewImageStore prepares the directory layout under baseDir.
func NewImageStore(baseDir, publicPrefix string) (*ImageStore, error) {
	for _, dir := range []string{cropsDir, thumbsDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory: %w", err)
		}
	}
	return &ImageStore{
		baseDir:      baseDir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
	}, nil
}

// Save decodes the upload, stores a JPEG-encoded copy plus a thumbnail,
// and returns the public URL of the full image.
func (s *ImageStore) Save(_ context.Context, upload ports.ImageUpload) (string, error) {
	img, err := imaging.Decode(upload.Content, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.baseDir, cropsDir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.baseDir, thumbsDir, name), imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return s.publicPrefix + "/" + cropsDir + "/" + name, nil
}

// Delete removes the image and its thumbnail for a URL previously
// returned by Save. Unknown URLs and already-missing files are not
// errors.
func (s *ImageStore) Delete(_ context.Context, url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return nil
	}

	for _, dir := range []string{cropsDir, thumbsDir} {
		err := os.Remove(filepath.Join(s.baseDir, dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove image: %w", err)
		}
	}
	return nil
}

var _ ports.ImageStore = (*ImageStore)(nil)
