// Package cryptox seals record payloads before they leave the device.
//
// Keys are derived from a user passphrase with argon2id; payloads are
// encrypted with AES-256-GCM and a fresh 12-byte nonce per call. The local
// cache never stores sealed data, only mirror rows do.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	KeySize   = 32
	NonceSize = 12
)

var ErrEmptyPassphrase = errors.New("empty passphrase")

// DeriveKey stretches passphrase into a 32-byte AES key.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// SaltFor returns a deterministic salt for an account so every device signed
// into the same account derives the same key from the same passphrase.
func SaltFor(account string) []byte {
	sum := sha256.Sum256([]byte("lifedash:" + account))
	return sum[:16]
}

// Seal encrypts plaintext with key, returning ciphertext and the nonce used.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open reverses Seal.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, ciphertext, nil)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Sealer binds a derived key to Seal/Open.
type Sealer struct {
	key []byte
}

// NewSealer derives the key for account from passphrase. The passphrase
// slice is wiped before returning.
func NewSealer(passphrase []byte, account string) (*Sealer, error) {
	defer Wipe(passphrase)
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	return &Sealer{key: DeriveKey(passphrase, SaltFor(account))}, nil
}

func (s *Sealer) Seal(plaintext []byte) ([]byte, []byte, error) {
	return Seal(plaintext, s.key)
}

func (s *Sealer) Open(ciphertext, nonce []byte) ([]byte, error) {
	return Open(ciphertext, nonce, s.key)
}

// Wipe overwrites b with zeros. Nil-safe.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
