// Package secrets encrypts credentials at rest using fernet tokens, so the
// remote store access token never hits the database in plaintext.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Vault wraps a fernet key and provides string-in, string-out helpers.
type Vault struct {
	keys []*fernet.Key
}

// NewVault creates a Vault from a base64-encoded fernet key.
func NewVault(encodedKey string) (*Vault, error) {
	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &Vault{keys: keys}, nil
}

// Encrypt returns the fernet token for the given plaintext.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), v.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire; the
// stored credential stays valid until it is replaced.
func (v *Vault) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, v.keys)
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: token invalid or wrong key")
	}
	return string(plaintext), nil
}
