package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
	"unicode"
)

// maxImageName bounds the stored portion of an uploaded file name.
const maxImageName = 96

var ErrBadImageName = errors.New("invalid image file name")

// OwnerNamespace maps a user ID onto a fixed-width key prefix so raw
// identifiers never appear in object keys.
func OwnerNamespace(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:12])
}

// CleanImageName reduces an uploaded file name to a safe key segment.
// Separators and control characters become underscores, the extension is
// lowercased and the stem is clipped so the whole segment fits maxImageName.
func CleanImageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") {
		return "", ErrBadImageName
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ' ':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)

	ext := strings.ToLower(path.Ext(cleaned))
	stem := strings.TrimSuffix(cleaned, path.Ext(cleaned))
	if len(ext) > 8 {
		ext = ""
		stem = cleaned
	}
	if limit := maxImageName - len(ext); len(stem) > limit {
		stem = stem[:limit]
	}
	stem = strings.Trim(stem, "_.")
	if stem == "" {
		stem = "image"
	}
	return stem + ext, nil
}
