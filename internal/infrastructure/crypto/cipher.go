// Package crypto provides symmetric encryption for tenant ERP credentials.
// Passwords are stored as ciphertext only; decryption happens in memory at
// the moment an adapter connection is opened.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptySecret is returned when the cipher is constructed without a secret
	ErrEmptySecret = errors.New("crypto: credential secret must not be empty")
	// ErrInvalidCiphertext is returned when the ciphertext cannot be decoded or authenticated
	ErrInvalidCiphertext = errors.New("crypto: invalid ciphertext")
)

// AESCipher encrypts credentials with AES-256-GCM. The key is derived from
// the configured secret via SHA-256, so any secret length yields a valid key.
// Ciphertexts are base64(nonce || sealed) and carry a GCM auth tag, so a
// wrong key or tampered value fails decryption instead of yielding garbage.
type AESCipher struct {
	aead cipher.AEAD
}

// NewAESCipher creates a cipher keyed by the given secret
func NewAESCipher(secret string) (*AESCipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: create GCM: %w", err)
	}

	return &AESCipher{aead: aead}, nil
}

// Encrypt seals the plaintext under a fresh random nonce
func (c *AESCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypto: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt
func (c *AESCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
