package service

import (
	"context"
	"crypto/cipher"

	"github.com/safepass/safepass/models"
)

// Keystore yields the vault's AEAD primitive. Implemented by
// keystore.Manager; narrowed here so services can be tested with a plain
// in-memory AEAD.
type Keystore interface {
	Primitive() (cipher.AEAD, error)
}

// WebsiteVaultService is the application boundary for website credentials.
// Records cross this boundary with plaintext secrets; everything below it
// only ever sees ciphertext tokens.
type WebsiteVaultService interface {
	List(ctx context.Context) ([]models.WebsiteCredential, error)
	Get(ctx context.Context, id int64) (models.WebsiteCredential, error)
	FindByDomain(ctx context.Context, domain string) ([]models.WebsiteCredential, error)
	Search(ctx context.Context, query string) ([]models.WebsiteCredential, error)
	Save(ctx context.Context, cred models.WebsiteCredential) (int64, error)
	Update(ctx context.Context, cred models.WebsiteCredential) error
	Delete(ctx context.Context, id int64) error
	DeleteByDomain(ctx context.Context, domain string) error
}

// CardVaultService is the application boundary for payment cards.
type CardVaultService interface {
	List(ctx context.Context) ([]models.CardCredential, error)
	Get(ctx context.Context, id int64) (models.CardCredential, error)
	FindByLabel(ctx context.Context, label string) ([]models.CardCredential, error)
	Search(ctx context.Context, query string) ([]models.CardCredential, error)
	Save(ctx context.Context, cred models.CardCredential) (int64, error)
	Update(ctx context.Context, cred models.CardCredential) error
	Delete(ctx context.Context, id int64) error
	DeleteByLabel(ctx context.Context, label string) error
}

// AppVaultService is the application boundary for application credentials.
type AppVaultService interface {
	List(ctx context.Context) ([]models.AppCredential, error)
	Get(ctx context.Context, id int64) (models.AppCredential, error)
	FindByPackage(ctx context.Context, packageName string) ([]models.AppCredential, error)
	Search(ctx context.Context, query string) ([]models.AppCredential, error)
	Save(ctx context.Context, cred models.AppCredential) (int64, error)
	Update(ctx context.Context, cred models.AppCredential) error
	Delete(ctx context.Context, id int64) error
	DeleteByPackage(ctx context.Context, packageName string) error
}
