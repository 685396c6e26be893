package object

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"pixweight-backend/internal/shared/util"
)

// sniffLen matches the header window http.DetectContentType reads.
const sniffLen = 512

// NewKey builds a storage key under the hashed user namespace with a random
// prefix so repeated uploads of the same name never collide.
func NewKey(userID, fileName string) (string, error) {
	name, err := util.CleanImageName(fileName)
	if err != nil {
		return "", fmt.Errorf("clean file name: %w", err)
	}
	return path.Join(util.OwnerNamespace(userID), randomID()+"_"+name), nil
}

// Sniff detects the MIME type from the head of r and returns a reader that
// still yields the full stream.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	head = head[:n]
	mimeType := mimetype.Detect(head).String()
	return mimeType, io.MultiReader(bytes.NewReader(head), r), nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
