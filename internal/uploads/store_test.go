package uploads

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func newStore(t *testing.T, maxBytes int64) *DiskStore {
	store, err := NewDiskStore(t.TempDir(), maxBytes, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSaveAndRemove(t *testing.T) {
	store := newStore(t, 1<<20)

	stored, err := store.Save(context.Background(), fileHeader(t, "resistor photo.png", pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Path, PublicPrefix))
	assert.True(t, strings.HasSuffix(stored.Path, "-resistor_photo.png"))
	assert.Equal(t, "resistor photo.png", stored.Name)
	assert.Equal(t, "image/png", stored.MimeType)

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(stored.Path, PublicPrefix))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, content)

	require.NoError(t, store.Remove(stored.Path))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(stored.Path), "removing twice is not an error")
}

func TestSavePDF(t *testing.T) {
	store := newStore(t, 1<<20)

	stored, err := store.Save(context.Background(), fileHeader(t, "LM317.pdf", []byte("%PDF-1.4\n%âãÏÓ\n")))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", stored.MimeType)
}

func TestSaveRejects(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		file     string
		content  []byte
	}{
		{"unknown type", 1 << 20, "notes.txt", []byte("just some text")},
		{"executable", 1 << 20, "tool.png", []byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00")},
		{"too large", 8, "big.png", pngHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, tt.maxBytes)
			_, err := store.Save(context.Background(), fileHeader(t, tt.file, tt.content))
			assert.Equal(t, custom_error.KindValidation, custom_error.KindOf(err))

			entries, readErr := os.ReadDir(store.Dir())
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestRemoveRejectsForeignPaths(t *testing.T) {
	store := newStore(t, 1<<20)

	for _, path := range []string{"/etc/passwd", "/uploads/../secret", "/uploads/", "relative.png"} {
		err := store.Remove(path)
		assert.Equal(t, custom_error.KindValidation, custom_error.KindOf(err), path)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"photo.png":            "photo.png",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\scan.pdf`: "scan.pdf",
		"10kΩ resistor.jpg":    "10k_resistor.jpg",
		"...":                  "file",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, SanitizeName(input), input)
	}
}
