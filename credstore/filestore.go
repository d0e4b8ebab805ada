package credstore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/nderose7/shiptrack-app/models"
)

// FileStore keeps the credential record in a single encrypted file.
// The file holds nonce || ciphertext, sealed with XChaCha20-Poly1305
// under a key derived from the configured secret. This keeps the token
// out of plaintext on disk; it is not a substitute for an OS keychain.
type FileStore struct {
	path string
	key  []byte
}

// NewFileStore creates a FileStore writing to path. The encryption key
// is derived from secret with HKDF-SHA256.
func NewFileStore(path string, secret []byte) (*FileStore, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("credstore: empty secret")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, secret, nil, []byte(Account))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("credstore: derive key: %w", err)
	}
	return &FileStore{path: path, key: key}, nil
}

// Save encrypts and writes the credential, replacing any existing record.
func (s *FileStore) Save(cred models.Credential) error {
	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credstore: marshal credential: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return fmt.Errorf("credstore: init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("credstore: generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("credstore: create dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, sealed, 0o600); err != nil {
		return fmt.Errorf("credstore: write file: %w", err)
	}
	return nil
}

// Load reads and decrypts the credential. Returns ErrNotFound when no
// record has been saved.
func (s *FileStore) Load() (models.Credential, error) {
	sealed, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Credential{}, ErrNotFound
		}
		return models.Credential{}, fmt.Errorf("credstore: read file: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return models.Credential{}, fmt.Errorf("credstore: init cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return models.Credential{}, fmt.Errorf("credstore: credential file truncated")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return models.Credential{}, fmt.Errorf("credstore: decrypt credential: %w", err)
	}

	var cred models.Credential
	if err := json.Unmarshal(plaintext, &cred); err != nil {
		return models.Credential{}, fmt.Errorf("credstore: unmarshal credential: %w", err)
	}
	return cred, nil
}

// Delete removes the credential record. Deleting a missing record is not
// an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credstore: delete file: %w", err)
	}
	return nil
}
