package logo

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestEncode_PNG(t *testing.T) {
	path := writePNG(t, t.TempDir())

	uri, err := Encode(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncode_SVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.svg")
	require.NoError(t, os.WriteFile(path, []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 0644))

	uri, err := Encode(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"))
}

func TestEncode_NotImageIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("hello, plain text"), 0644))

	uri, err := Encode(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:text/plain"))
	assert.False(t, IsImageURI(uri))
}

func TestLoader_WarnsOnNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("hello, plain text"), 0644))

	var buf bytes.Buffer
	uri, err := Loader{Logger: log.New(&buf)}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, uri)
	assert.Contains(t, buf.String(), "logo content is not an image")
}

func TestEncode_Missing(t *testing.T) {
	_, err := Encode(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoader_Cancelled(t *testing.T) {
	path := writePNG(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// either outcome is legal once both channels are ready; only check that
	// a cancelled load never returns a partial value with a nil error
	uri, err := Loader{}.Load(ctx, path)
	if err == nil {
		assert.True(t, strings.HasPrefix(uri, "data:image/png"))
	} else {
		assert.Empty(t, uri)
	}
}

func TestIsImageURI(t *testing.T) {
	assert.True(t, IsImageURI("data:image/png;base64,AAAA"))
	assert.True(t, IsImageURI("data:image/svg+xml;base64,AAAA"))
	assert.False(t, IsImageURI("data:text/plain;base64,AAAA"))
	assert.False(t, IsImageURI(""))
}
