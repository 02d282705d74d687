package store

import (
	"context"

	"github.com/safepass/safepass/models"
)

// WebsiteRepository persists website credentials. The password column it
// handles always holds an AEAD ciphertext token; plaintext secrets never
// reach this layer.
type WebsiteRepository interface {
	Insert(ctx context.Context, cred models.WebsiteCredential) (int64, error)
	GetByID(ctx context.Context, id int64) (models.WebsiteCredential, error)
	GetByDomain(ctx context.Context, domain string) ([]models.WebsiteCredential, error)
	GetAll(ctx context.Context) ([]models.WebsiteCredential, error)
	Update(ctx context.Context, cred models.WebsiteCredential) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByDomain(ctx context.Context, domain string) error
	DeleteByLabel(ctx context.Context, label string) error
	Search(ctx context.Context, query string) ([]models.WebsiteCredential, error)
}

// CardRepository persists card credentials. The card_number and cvv columns
// always hold AEAD ciphertext tokens.
type CardRepository interface {
	Insert(ctx context.Context, cred models.CardCredential) (int64, error)
	GetByID(ctx context.Context, id int64) (models.CardCredential, error)
	GetByLabel(ctx context.Context, label string) ([]models.CardCredential, error)
	GetAll(ctx context.Context) ([]models.CardCredential, error)
	Update(ctx context.Context, cred models.CardCredential) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByLabel(ctx context.Context, label string) error
	Search(ctx context.Context, query string) ([]models.CardCredential, error)
}

// AppRepository persists application credentials. The password column always
// holds an AEAD ciphertext token.
type AppRepository interface {
	Insert(ctx context.Context, cred models.AppCredential) (int64, error)
	GetByID(ctx context.Context, id int64) (models.AppCredential, error)
	GetByPackage(ctx context.Context, packageName string) ([]models.AppCredential, error)
	GetAll(ctx context.Context) ([]models.AppCredential, error)
	Update(ctx context.Context, cred models.AppCredential) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByPackage(ctx context.Context, packageName string) error
	DeleteByAppName(ctx context.Context, appName string) error
	Search(ctx context.Context, query string) ([]models.AppCredential, error)
}
