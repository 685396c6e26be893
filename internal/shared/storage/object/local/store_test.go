package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 2048)...)

	key, size, mimeType, err := store.Save(context.Background(), "user-1", "photo.png", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), size)
	assert.Equal(t, "image/png", mimeType)
	assert.True(t, strings.HasSuffix(key, "_photo.png"), key)

	rc, err := store.Open(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSaveRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())
	_, _, _, err := store.Save(context.Background(), "user-1", "../../etc/passwd", strings.NewReader("x"))
	require.Error(t, err)
}

func TestOpenRejectsEscapingKey(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "../outside.png")
	require.Error(t, err)
}
