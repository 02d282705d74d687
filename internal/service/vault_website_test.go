package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepass/safepass/internal/crypto"
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/store"
	"github.com/safepass/safepass/models"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type fixedKeystore struct {
	aead cipher.AEAD
	err  error
}

func (k *fixedKeystore) Primitive() (cipher.AEAD, error) {
	return k.aead, k.err
}

type mockWebsiteRepo struct {
	insertFn         func(ctx context.Context, cred models.WebsiteCredential) (int64, error)
	getByIDFn        func(ctx context.Context, id int64) (models.WebsiteCredential, error)
	getByDomainFn    func(ctx context.Context, domain string) ([]models.WebsiteCredential, error)
	getAllFn         func(ctx context.Context) ([]models.WebsiteCredential, error)
	updateFn         func(ctx context.Context, cred models.WebsiteCredential) error
	deleteByIDFn     func(ctx context.Context, id int64) error
	deleteByDomainFn func(ctx context.Context, domain string) error
	deleteByLabelFn  func(ctx context.Context, label string) error
	searchFn         func(ctx context.Context, query string) ([]models.WebsiteCredential, error)
}

func (m *mockWebsiteRepo) Insert(ctx context.Context, cred models.WebsiteCredential) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, cred)
	}
	return 1, nil
}
func (m *mockWebsiteRepo) GetByID(ctx context.Context, id int64) (models.WebsiteCredential, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return models.WebsiteCredential{}, store.ErrCredentialNotFound
}
func (m *mockWebsiteRepo) GetByDomain(ctx context.Context, domain string) ([]models.WebsiteCredential, error) {
	if m.getByDomainFn != nil {
		return m.getByDomainFn(ctx, domain)
	}
	return nil, nil
}
func (m *mockWebsiteRepo) GetAll(ctx context.Context) ([]models.WebsiteCredential, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}
func (m *mockWebsiteRepo) Update(ctx context.Context, cred models.WebsiteCredential) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, cred)
	}
	return nil
}
func (m *mockWebsiteRepo) DeleteByID(ctx context.Context, id int64) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}
func (m *mockWebsiteRepo) DeleteByDomain(ctx context.Context, domain string) error {
	if m.deleteByDomainFn != nil {
		return m.deleteByDomainFn(ctx, domain)
	}
	return nil
}
func (m *mockWebsiteRepo) DeleteByLabel(ctx context.Context, label string) error {
	if m.deleteByLabelFn != nil {
		return m.deleteByLabelFn(ctx, label)
	}
	return nil
}
func (m *mockWebsiteRepo) Search(ctx context.Context, query string) ([]models.WebsiteCredential, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testAEAD(t *testing.T) cipher.AEAD {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	aead, err := cipher.NewGCM(block)
	require.NoError(t, err)
	return aead
}

func websiteInput() models.WebsiteCredential {
	return models.WebsiteCredential{
		URL:      "https://example.com/login",
		Domain:   "example.com",
		Label:    "Example",
		Username: "alice",
		Password: "hunter2",
	}
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestWebsiteVault_SaveEncryptsPassword(t *testing.T) {
	aead := testAEAD(t)
	var inserted models.WebsiteCredential
	repo := &mockWebsiteRepo{
		insertFn: func(ctx context.Context, cred models.WebsiteCredential) (int64, error) {
			inserted = cred
			return 7, nil
		},
	}
	svc := NewWebsiteVaultService(repo, &fixedKeystore{aead: aead}, logger.Nop())

	id, err := svc.Save(context.Background(), websiteInput())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	// the repository never sees the plaintext
	assert.NotEqual(t, "hunter2", inserted.Password)
	assert.NotContains(t, inserted.Password, "hunter2")

	plain, err := crypto.DecryptField(aead, inserted.Password, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

func TestWebsiteVault_GetDecryptsPassword(t *testing.T) {
	aead := testAEAD(t)
	token, err := crypto.EncryptField(aead, "hunter2", "example.com")
	require.NoError(t, err)

	stored := websiteInput()
	stored.ID = 3
	stored.Password = token
	repo := &mockWebsiteRepo{
		getByIDFn: func(ctx context.Context, id int64) (models.WebsiteCredential, error) {
			return stored, nil
		},
	}
	svc := NewWebsiteVaultService(repo, &fixedKeystore{aead: aead}, logger.Nop())

	got, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got.Password)
}

func TestWebsiteVault_GetNotFound(t *testing.T) {
	svc := NewWebsiteVaultService(&mockWebsiteRepo{}, &fixedKeystore{aead: testAEAD(t)}, logger.Nop())

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestWebsiteVault_SaveValidation(t *testing.T) {
	svc := NewWebsiteVaultService(&mockWebsiteRepo{}, &fixedKeystore{aead: testAEAD(t)}, logger.Nop())

	tests := []struct {
		name   string
		mutate func(*models.WebsiteCredential)
		field  string
	}{
		{"missing label", func(c *models.WebsiteCredential) { c.Label = "" }, "label"},
		{"missing url", func(c *models.WebsiteCredential) { c.URL = "" }, "url"},
		{"missing domain", func(c *models.WebsiteCredential) { c.Domain = "" }, "domain"},
		{"malformed domain", func(c *models.WebsiteCredential) { c.Domain = "not a domain" }, "domain"},
		{"missing username", func(c *models.WebsiteCredential) { c.Username = "" }, "username"},
		{"missing password", func(c *models.WebsiteCredential) { c.Password = "" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := websiteInput()
			tt.mutate(&cred)

			_, err := svc.Save(context.Background(), cred)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestWebsiteVault_ListOmitsUndecryptableRows(t *testing.T) {
	aead := testAEAD(t)

	goodToken, err := crypto.EncryptField(aead, "hunter2", "good.com")
	require.NoError(t, err)
	// token written for a different domain: binding mismatch on decrypt
	badToken, err := crypto.EncryptField(aead, "secret", "other.com")
	require.NoError(t, err)

	good := websiteInput()
	good.ID = 1
	good.Domain = "good.com"
	good.Password = goodToken
	bad := websiteInput()
	bad.ID = 2
	bad.Domain = "bad.com"
	bad.Password = badToken

	repo := &mockWebsiteRepo{
		getAllFn: func(ctx context.Context) ([]models.WebsiteCredential, error) {
			return []models.WebsiteCredential{good, bad}, nil
		},
	}
	svc := NewWebsiteVaultService(repo, &fixedKeystore{aead: aead}, logger.Nop())

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "hunter2", got[0].Password)
}

func TestWebsiteVault_UpdateReencryptsUnderNewDomain(t *testing.T) {
	aead := testAEAD(t)
	var updated models.WebsiteCredential
	repo := &mockWebsiteRepo{
		updateFn: func(ctx context.Context, cred models.WebsiteCredential) error {
			updated = cred
			return nil
		},
	}
	svc := NewWebsiteVaultService(repo, &fixedKeystore{aead: aead}, logger.Nop())

	cred := websiteInput()
	cred.ID = 5
	cred.Domain = "renamed.com"
	require.NoError(t, svc.Update(context.Background(), cred))

	// the stored token must decrypt under the edited domain, not the old one
	plain, err := crypto.DecryptField(aead, updated.Password, "renamed.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)

	_, err = crypto.DecryptField(aead, updated.Password, "example.com")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestWebsiteVault_SearchDecrypts(t *testing.T) {
	aead := testAEAD(t)
	token, err := crypto.EncryptField(aead, "hunter2", "example.com")
	require.NoError(t, err)

	stored := websiteInput()
	stored.ID = 1
	stored.Password = token
	repo := &mockWebsiteRepo{
		searchFn: func(ctx context.Context, query string) ([]models.WebsiteCredential, error) {
			assert.Equal(t, "exa", query)
			return []models.WebsiteCredential{stored}, nil
		},
	}
	svc := NewWebsiteVaultService(repo, &fixedKeystore{aead: aead}, logger.Nop())

	got, err := svc.Search(context.Background(), "exa")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hunter2", got[0].Password)
}

func TestWebsiteVault_SaveBeforeKeystoreInit(t *testing.T) {
	svc := NewWebsiteVaultService(&mockWebsiteRepo{}, &fixedKeystore{err: assert.AnError}, logger.Nop())

	_, err := svc.Save(context.Background(), websiteInput())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWebsiteVault_Delete(t *testing.T) {
	var deletedID int64
	repo := &mockWebsiteRepo{
		deleteByIDFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	svc := NewWebsiteVaultService(repo, &fixedKeystore{aead: testAEAD(t)}, logger.Nop())

	require.NoError(t, svc.Delete(context.Background(), 12))
	assert.Equal(t, int64(12), deletedID)
}
