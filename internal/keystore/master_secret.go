package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

// keyringUser is the account label of the master secret inside the OS
// keyring; the service name comes from Config.KeyringService.
const keyringUser = "master-secret"

const masterSecretLen = 32

// loadOrCreateMasterSecret returns the random master secret the KEK is
// derived from. The OS keyring is the primary home of the secret; when no
// keyring backend is usable (headless sessions, CI) a 0600 file beside the
// keyset is used instead.
//
// The fallback weakens the "platform-protected" property to plain file
// permissions, which is recorded once at warning level.
func (m *Manager) loadOrCreateMasterSecret() ([]byte, error) {
	stored, err := keyring.Get(m.cfg.KeyringService, keyringUser)
	if err == nil {
		secret, decodeErr := base64.StdEncoding.DecodeString(stored)
		if decodeErr != nil || len(secret) != masterSecretLen {
			return nil, fmt.Errorf("%w: keyring entry is malformed", ErrMasterSecretUnavailable)
		}
		return secret, nil
	}

	if errors.Is(err, keyring.ErrNotFound) {
		secret, genErr := generateMasterSecret()
		if genErr != nil {
			return nil, genErr
		}

		setErr := keyring.Set(m.cfg.KeyringService, keyringUser, base64.StdEncoding.EncodeToString(secret))
		if setErr == nil {
			return secret, nil
		}

		// keyring exists but refuses writes; fall through to the file
		m.logger.Warn().
			Str("func", "Manager.loadOrCreateMasterSecret").
			AnErr("cause", setErr).
			Msg("cannot store master secret in OS keyring, using fallback file")
		return m.loadOrCreateFallbackSecret(secret)
	}

	// no usable keyring backend at all
	m.logger.Warn().
		Str("func", "Manager.loadOrCreateMasterSecret").
		AnErr("cause", err).
		Msg("OS keyring unavailable, using fallback file for master secret")
	return m.loadOrCreateFallbackSecret(nil)
}

// loadOrCreateFallbackSecret reads the master secret from the fallback file,
// writing fresh (or the provided) material when the file does not exist yet.
func (m *Manager) loadOrCreateFallbackSecret(fresh []byte) ([]byte, error) {
	path := m.fallbackSecretPath()

	raw, err := os.ReadFile(path)
	if err == nil {
		secret, decodeErr := base64.StdEncoding.DecodeString(string(raw))
		if decodeErr != nil || len(secret) != masterSecretLen {
			return nil, fmt.Errorf("%w: fallback secret file is malformed", ErrMasterSecretUnavailable)
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: read fallback secret file: %w", ErrMasterSecretUnavailable, err)
	}

	secret := fresh
	if secret == nil {
		secret, err = generateMasterSecret()
		if err != nil {
			return nil, err
		}
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: create secret dir: %w", ErrMasterSecretUnavailable, err)
		}
	}

	encoded := base64.StdEncoding.EncodeToString(secret)
	if err = os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("%w: write fallback secret file: %w", ErrMasterSecretUnavailable, err)
	}

	return secret, nil
}

func (m *Manager) fallbackSecretPath() string {
	return filepath.Join(filepath.Dir(m.cfg.KeysetPath), "master.secret")
}

func generateMasterSecret() ([]byte, error) {
	secret := make([]byte, masterSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate master secret: %w", err)
	}
	return secret, nil
}
