package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// UserPrefix returns a stable, path-safe namespace for a user's uploads.
// The raw user ID never appears in object keys.
func UserPrefix(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// ObjectKey builds "<user prefix>/<uuid>_<sanitized name>" for an upload.
func ObjectKey(userID, fileName string) (string, error) {
	name, err := SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(UserPrefix(userID), uuid.NewString()+"_"+name), nil
}
