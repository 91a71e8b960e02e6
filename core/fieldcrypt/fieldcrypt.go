package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrEmptySecret is returned when no server secret is configured.
	ErrEmptySecret = errors.New("fieldcrypt: secret is empty")
	// ErrMismatch is returned when a ciphertext does not decrypt under the candidate plaintext.
	ErrMismatch = errors.New("fieldcrypt: ciphertext does not match candidate")
)

// Sealed is the stored form of a sensitive field.
type Sealed struct {
	// Ciphertext is URL-safe base64 of the AES-GCM output (ciphertext plus tag).
	Ciphertext string
	// Hash is the hex HMAC-SHA256 of the plaintext, usable as an equality index.
	Hash string
}

// Encryptor deterministically encrypts and hashes single field values.
// It is safe for concurrent use.
type Encryptor struct {
	aead    cipher.AEAD
	hmacKey []byte
}

// New builds an Encryptor from the server secret.
func New(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: cipher creation failed: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: GCM creation failed: %w", err)
	}

	return &Encryptor{aead: aead, hmacKey: []byte(secret)}, nil
}

// Encrypt seals plaintext. The same plaintext always yields the same Sealed value.
func (e *Encryptor) Encrypt(plaintext string) (Sealed, error) {
	if plaintext == "" {
		return Sealed{}, errors.New("fieldcrypt: empty plaintext")
	}

	out := e.aead.Seal(nil, e.nonce(plaintext), []byte(plaintext), nil)
	return Sealed{
		Ciphertext: base64.URLEncoding.EncodeToString(out),
		Hash:       e.Hash(plaintext),
	}, nil
}

// Decrypt opens ciphertext using the nonce derived from candidate. It only succeeds
// when candidate is the original plaintext, so it doubles as a verification check.
func (e *Encryptor) Decrypt(ciphertext, candidate string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: base64 decode failed: %w", err)
	}

	plain, err := e.aead.Open(nil, e.nonce(candidate), raw, nil)
	if err != nil {
		return "", ErrMismatch
	}
	return string(plain), nil
}

// Hash returns the keyed one-way hash of plaintext.
func (e *Encryptor) Hash(plaintext string) string {
	mac := hmac.New(sha256.New, e.hmacKey)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// nonce is SHA-1 of the plaintext truncated to the GCM nonce size.
func (e *Encryptor) nonce(plaintext string) []byte {
	sum := sha1.Sum([]byte(plaintext))
	return sum[:e.aead.NonceSize()]
}
