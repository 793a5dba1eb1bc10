package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads/"

// sniffLen is enough header bytes for filetype to recognise every allowed type.
const sniffLen = 261

var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type StoredFile struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

// Store keeps uploaded blobs. Paths are the public form returned by Save.
type Store interface {
	Save(ctx context.Context, header *multipart.FileHeader) (StoredFile, error)
	Remove(path string) error
	RemoveAll(paths []string)
}

type DiskStore struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

func NewDiskStore(dir string, maxBytes int64, log *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, maxBytes: maxBytes, log: log}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Save(ctx context.Context, header *multipart.FileHeader) (StoredFile, error) {
	if header.Size > s.maxBytes {
		return StoredFile{}, custom_error.Validation("file %s exceeds the %d byte limit", header.Filename, s.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return StoredFile{}, custom_error.StorageIO(err, "upload cancelled")
	}

	src, err := header.Open()
	if err != nil {
		return StoredFile{}, custom_error.StorageIO(err, "unable to read upload")
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return StoredFile{}, custom_error.StorageIO(err, "unable to read upload")
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !allowedTypes[kind.MIME.Value] {
		return StoredFile{}, custom_error.Validation("file %s has an unsupported type", header.Filename)
	}

	name := SanitizeName(header.Filename)
	diskName := uuid.NewString() + "-" + name
	target := filepath.Join(s.dir, diskName)

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return StoredFile{}, custom_error.StorageIO(err, "unable to store file")
	}

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), io.LimitReader(src, s.maxBytes-int64(n)+1)))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = custom_error.Validation("file %s exceeds the %d byte limit", header.Filename, s.maxBytes)
	}
	if err != nil {
		_ = os.Remove(target)
		if custom_error.KindOf(err) == custom_error.KindValidation {
			return StoredFile{}, err
		}
		return StoredFile{}, custom_error.StorageIO(err, "unable to store file")
	}

	return StoredFile{
		Path:     PublicPrefix + diskName,
		Name:     header.Filename,
		MimeType: kind.MIME.Value,
	}, nil
}

// Remove deletes the blob behind a public path. A missing file is not an error.
func (s *DiskStore) Remove(path string) error {
	diskName, ok := s.diskName(path)
	if !ok {
		return custom_error.Validation("path %q is not an uploaded file", path)
	}
	if err := os.Remove(filepath.Join(s.dir, diskName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return custom_error.StorageIO(err, "unable to remove file")
	}
	return nil
}

// RemoveAll is the best-effort cleanup used after commits and rollbacks.
func (s *DiskStore) RemoveAll(paths []string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := s.Remove(path); err != nil {
			s.log.Warn("unable to remove uploaded file", zap.String("path", path), zap.Error(err))
		}
	}
}

func (s *DiskStore) diskName(path string) (string, bool) {
	name, found := strings.CutPrefix(path, PublicPrefix)
	if !found || name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", false
	}
	return name, true
}

// SanitizeName keeps a safe, short basename of a client supplied file name.
func SanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "file"
	}
	if len(base) > 100 {
		base = base[len(base)-100:]
	}
	return base
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// Discard hands the non-empty paths to store.RemoveAll.
func Discard(store Store, paths ...string) {
	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		if path != "" {
			kept = append(kept, path)
		}
	}
	if len(kept) > 0 {
		store.RemoveAll(kept)
	}
}
