// Package storage is the image intake: it turns uploaded files into the
// stable /uploads/... paths a listing carries.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileTooLarge    = errors.New("image file is too large")
	ErrEmptyFile       = errors.New("image file is empty")
)

// Uploader stores one uploaded file and returns its stable reference path.
type Uploader interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// DiskStore writes images to a local directory served under /uploads.
type DiskStore struct {
	dir          string
	maxFileBytes int64
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string, maxFileBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, maxFileBytes: maxFileBytes}, nil
}

// Save sniffs the content type, rejects non-images, and stores the file
// under a fresh name. The returned path ("/uploads/<name>") is the stable
// external reference persisted on the listing.
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if s.maxFileBytes > 0 && fh.Size > s.maxFileBytes {
		return "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return "", ErrEmptyFile
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !isSupportedImageType(mt) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	name := uuid.NewString() + mt.Extension()
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return "/uploads/" + name, nil
}

func isSupportedImageType(mt *mimetype.MIME) bool {
	for _, want := range []string{"image/jpeg", "image/png", "image/webp", "image/gif"} {
		if mt.Is(want) {
			return true
		}
	}
	return false
}
