package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local state store
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s): the key is derived once at startup,
	// so the cost is paid a single time per process.
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	SaltLen      = 32
	nonceLen     = 12
)

// ErrInvalidPassphrase is returned when sealed data cannot be opened with the derived key
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// Params are the scrypt cost parameters
type Params struct {
	N int
	R int
	P int
}

// DefaultParams returns production scrypt parameters
func DefaultParams() Params {
	return Params{N: scryptN, R: scryptR, P: scryptP}
}

// Sealer encrypts and decrypts stored values with AES-GCM under a key derived from a passphrase
type Sealer struct {
	aead cipher.AEAD
}

// NewSalt generates a random salt for key derivation
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// NewSealer derives a key from passphrase and salt
// passphrase must be []byte for security (caller should zero it after use)
func NewSealer(passphrase, salt []byte, params Params) (*Sealer, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	if len(salt) == 0 {
		return nil, errors.New("salt cannot be empty")
	}

	// Derive key from passphrase
	key, err := scrypt.Key(passphrase, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: aesGCM}, nil
}

// Seal encrypts plaintext; the result is nonce || ciphertext
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceLen, nonceLen+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a value produced by Seal
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceLen+s.aead.Overhead() {
		return nil, errors.New("sealed value too short")
	}

	plaintext, err := s.aead.Open(nil, sealed[:nonceLen], sealed[nonceLen:], nil)
	if err != nil {
		return nil, ErrInvalidPassphrase
	}
	return plaintext, nil
}
