package services

import (
	"io"

	"github.com/arcians/profile-registry/pkg/utils"
)

const (
	// EncryptedIDLength is the fixed length of a profile's display token.
	EncryptedIDLength = 12

	encryptedIDEntropy = 6
)

// NewEncryptedID draws 6 bytes from entropy and returns the first 12
// upper-case hex characters of their SHA-256. The result is a display label
// only; it is not checked for uniqueness and is not a credential.
func NewEncryptedID(entropy io.Reader) (string, error) {
	buf := make([]byte, encryptedIDEntropy)
	if _, err := io.ReadFull(entropy, buf); err != nil {
		return "", err
	}
	return utils.DigestPrefix(buf, EncryptedIDLength), nil
}
