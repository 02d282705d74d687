// SPDX-License-Identifier: Apache-2.0

// Package keystore owns the vault's data-encryption key.
//
// The 256-bit AES-GCM data key (DEK) never touches disk in the clear: it is
// wrapped under a key-encryption key (KEK) derived with argon2id from a
// random master secret held in the platform keyring. Only the wrapped blob
// is persisted, as a small JSON keyset file. Application code obtains the
// resulting AEAD primitive through [Manager.Primitive] and never sees raw
// key bytes.
package keystore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/safepass/safepass/internal/crypto"
	"github.com/safepass/safepass/internal/logger"
)

const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	dekLen  = 32
	saltLen = 16
)

// Config carries the locations of the persisted key material.
type Config struct {
	// KeysetPath is the path of the JSON keyset file holding the wrapped DEK.
	KeysetPath string

	// KeyringService is the service name under which the master secret is
	// stored in the OS keyring.
	KeyringService string
}

// Manager loads, generates and holds the vault's encryption primitive.
//
// A Manager is constructed once by the composition root and shared by
// reference; there is no package-level singleton. Init is idempotent and
// safe for concurrent use: the first caller performs the initialization
// while concurrent callers block on the same attempt, so two divergent
// keys can never be created within one process.
type Manager struct {
	cfg    Config
	logger *logger.Logger

	mu          sync.RWMutex
	aead        cipher.AEAD
	initialized bool
	recovered   bool
}

// keysetFile is the on-disk representation of the wrapped data key.
type keysetFile struct {
	// KeysetID identifies this keyset and doubles as the associated data
	// binding of the wrapped key, so a blob cannot be replayed under a
	// different keyset identity.
	KeysetID string `json:"keyset_id"`

	// CreatedAt records when the keyset was generated.
	CreatedAt time.Time `json:"created_at"`

	// Salt is the base64-encoded argon2id salt for KEK derivation.
	Salt string `json:"salt"`

	// WrappedKey is the DEK sealed under the KEK, encoded as a field
	// cipher token.
	WrappedKey string `json:"wrapped_key"`
}

// NewManager constructs a Manager. No key material is touched until Init.
func NewManager(cfg Config, log *logger.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: log,
	}
}

// Init loads the keyset from disk, generating and persisting a new one on
// first start. It is idempotent: once a call succeeds, subsequent calls
// return immediately.
//
// When the keyset blob exists but cannot be unwrapped (the keyring entry
// was reset, the file was truncated, ...) Init discards the blob and
// generates a fresh key. This is a deliberate, irreversible recovery path:
// all previously encrypted fields become permanently unreadable. The event
// is logged at warning level and reported through Recovered so the UI can
// surface a one-time notice.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.RLock()
	if m.initialized {
		m.mu.RUnlock()
		return nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// re-check under the write lock: another caller may have finished the
	// initialization while we were waiting
	if m.initialized {
		return nil
	}

	log := logger.FromContext(ctx)

	masterSecret, err := m.loadOrCreateMasterSecret()
	if err != nil {
		log.Err(err).Str("func", "Manager.Init").Msg("failed to obtain master secret")
		return err
	}

	dek, err := m.loadOrCreateKeyset(log, masterSecret)
	if err != nil {
		return err
	}

	block, err := aes.NewCipher(dek)
	if err != nil {
		return fmt.Errorf("create cipher from data key: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("create AEAD from data key: %w", err)
	}

	m.aead = aead
	m.initialized = true

	log.Debug().Str("func", "Manager.Init").Msg("keystore initialized")
	return nil
}

// Primitive returns the AEAD handle backing all field cipher operations.
// The handle is stateless and safe for concurrent use by multiple callers.
//
// Returns [ErrNotInitialized] when called before a successful Init.
func (m *Manager) Primitive() (cipher.AEAD, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}
	return m.aead, nil
}

// Recovered reports whether the last Init had to discard a corrupt keyset
// and regenerate the key, losing access to all previously encrypted data.
func (m *Manager) Recovered() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recovered
}

// loadOrCreateKeyset returns the unwrapped DEK, creating a new keyset when
// none exists and recovering (with data loss) from a corrupt one.
// Caller must hold m.mu.
func (m *Manager) loadOrCreateKeyset(log *logger.Logger, masterSecret []byte) ([]byte, error) {
	raw, err := os.ReadFile(m.cfg.KeysetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return m.generateKeyset(log, masterSecret)
		}
		return nil, fmt.Errorf("read keyset file: %w", err)
	}

	dek, unwrapErr := unwrapKeyset(raw, masterSecret)
	if unwrapErr == nil {
		return dek, nil
	}

	// The blob exists but is unreadable. Recovery policy: discard it and
	// start over with a fresh key. Everything encrypted under the old key
	// is lost from this point on.
	log.Warn().
		Str("func", "Manager.loadOrCreateKeyset").
		Str("keyset_path", m.cfg.KeysetPath).
		AnErr("cause", unwrapErr).
		Msg("keyset is undecryptable, discarding it and generating a new key; previously encrypted data is permanently lost")

	if removeErr := os.Remove(m.cfg.KeysetPath); removeErr != nil && !os.IsNotExist(removeErr) {
		return nil, fmt.Errorf("%w: cannot discard corrupt keyset: %w", ErrKeyStorageCorrupt, removeErr)
	}

	m.recovered = true
	return m.generateKeyset(log, masterSecret)
}

// generateKeyset creates a fresh DEK, wraps it under the KEK and persists
// the keyset file with 0600 permissions.
func (m *Manager) generateKeyset(log *logger.Logger, masterSecret []byte) ([]byte, error) {
	dek := make([]byte, dekLen)
	if _, err := rand.Read(dek); err != nil {
		return nil, fmt.Errorf("generate data key: %w", err)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate keyset salt: %w", err)
	}

	keysetID := uuid.NewString()
	kek, err := kekAEAD(masterSecret, salt)
	if err != nil {
		return nil, err
	}

	wrapped, err := crypto.EncryptField(kek, string(dek), keysetID)
	if err != nil {
		return nil, fmt.Errorf("wrap data key: %w", err)
	}

	ks := keysetFile{
		KeysetID:   keysetID,
		CreatedAt:  time.Now().UTC(),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		WrappedKey: wrapped,
	}

	payload, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode keyset: %w", err)
	}

	dir := filepath.Dir(m.cfg.KeysetPath)
	if dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create keyset dir: %w", err)
		}
	}

	if err = os.WriteFile(m.cfg.KeysetPath, payload, 0o600); err != nil {
		return nil, fmt.Errorf("write keyset file: %w", err)
	}

	log.Debug().
		Str("func", "Manager.generateKeyset").
		Str("keyset_id", keysetID).
		Msg("generated new keyset")

	return dek, nil
}

// unwrapKeyset decodes a keyset blob and unwraps the DEK it carries.
func unwrapKeyset(raw, masterSecret []byte) ([]byte, error) {
	var ks keysetFile
	if err := json.Unmarshal(raw, &ks); err != nil {
		return nil, fmt.Errorf("%w: decode keyset: %w", ErrKeyStorageCorrupt, err)
	}

	salt, err := base64.StdEncoding.DecodeString(ks.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: decode keyset salt: %w", ErrKeyStorageCorrupt, err)
	}

	kek, err := kekAEAD(masterSecret, salt)
	if err != nil {
		return nil, err
	}

	dek, err := crypto.DecryptField(kek, ks.WrappedKey, ks.KeysetID)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap data key: %w", ErrKeyStorageCorrupt, err)
	}

	if len(dek) != dekLen {
		return nil, fmt.Errorf("%w: unexpected data key length %d", ErrKeyStorageCorrupt, len(dek))
	}

	return []byte(dek), nil
}

// kekAEAD derives the key-encryption key with argon2id and returns it as an
// AES-GCM primitive.
func kekAEAD(masterSecret, salt []byte) (cipher.AEAD, error) {
	kek := argon2.IDKey(masterSecret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("create cipher from KEK: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create AEAD from KEK: %w", err)
	}
	return aead, nil
}
