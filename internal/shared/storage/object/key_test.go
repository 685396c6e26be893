package object

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixweight-backend/internal/shared/util"
)

func TestSniffKeepsFullStream(t *testing.T) {
	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{7}, 900)...)

	mimeType, body, err := Sniff(bytes.NewReader(jpeg))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, jpeg, got)
}

func TestSniffShortInput(t *testing.T) {
	mimeType, body, err := Sniff(strings.NewReader("hi"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mimeType, "text/plain"), mimeType)
	got, _ := io.ReadAll(body)
	assert.Equal(t, "hi", string(got))
}

func TestNewKeyNamespacesByUser(t *testing.T) {
	key, err := NewKey("user-1", "dir/apple.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, util.OwnerNamespace("user-1")+"/"), key)
	assert.True(t, strings.HasSuffix(key, "_dir_apple.png"), key)

	other, err := NewKey("user-1", "dir/apple.png")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = NewKey("user-1", "   ")
	require.Error(t, err)
}
