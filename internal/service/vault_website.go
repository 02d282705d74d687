package service

import (
	"context"

	"github.com/safepass/safepass/internal/crypto"
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/store"
	"github.com/safepass/safepass/models"
)

type websiteVaultService struct {
	repo store.WebsiteRepository
	keys Keystore

	logger *logger.Logger
}

// NewWebsiteVaultService creates the website credential service. All
// secrets are encrypted with Domain as the associated data, so a password
// token only decrypts for the record it was written for.
func NewWebsiteVaultService(repo store.WebsiteRepository, keys Keystore, log *logger.Logger) WebsiteVaultService {
	return &websiteVaultService{
		repo:   repo,
		keys:   keys,
		logger: log,
	}
}

func (s *websiteVaultService) List(ctx context.Context) ([]models.WebsiteCredential, error) {
	creds, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *websiteVaultService) Get(ctx context.Context, id int64) (models.WebsiteCredential, error) {
	cred, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.WebsiteCredential{}, err
	}

	aead, err := s.keys.Primitive()
	if err != nil {
		return models.WebsiteCredential{}, err
	}

	password, err := crypto.DecryptField(aead, cred.Password, cred.Domain)
	if err != nil {
		return models.WebsiteCredential{}, err
	}
	cred.Password = password
	return cred, nil
}

func (s *websiteVaultService) FindByDomain(ctx context.Context, domain string) ([]models.WebsiteCredential, error) {
	creds, err := s.repo.GetByDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *websiteVaultService) Search(ctx context.Context, query string) ([]models.WebsiteCredential, error) {
	creds, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *websiteVaultService) Save(ctx context.Context, cred models.WebsiteCredential) (int64, error) {
	if err := validateWebsite(cred); err != nil {
		return 0, err
	}

	encrypted, err := s.encrypt(cred)
	if err != nil {
		return 0, err
	}
	return s.repo.Insert(ctx, encrypted)
}

// Update re-encrypts the password under the record's current Domain. When
// the domain was edited the old token would no longer decrypt, so a full
// re-encrypt on every update is the only correct path.
func (s *websiteVaultService) Update(ctx context.Context, cred models.WebsiteCredential) error {
	if err := validateWebsite(cred); err != nil {
		return err
	}

	encrypted, err := s.encrypt(cred)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, encrypted)
}

func (s *websiteVaultService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *websiteVaultService) DeleteByDomain(ctx context.Context, domain string) error {
	return s.repo.DeleteByDomain(ctx, domain)
}

func (s *websiteVaultService) encrypt(cred models.WebsiteCredential) (models.WebsiteCredential, error) {
	aead, err := s.keys.Primitive()
	if err != nil {
		return models.WebsiteCredential{}, err
	}

	token, err := crypto.EncryptField(aead, cred.Password, cred.Domain)
	if err != nil {
		return models.WebsiteCredential{}, err
	}
	cred.Password = token
	return cred, nil
}

// decryptRows decrypts every row's password in place. A row whose token no
// longer decrypts is dropped from the result with a warning instead of
// failing the whole listing.
func (s *websiteVaultService) decryptRows(ctx context.Context, creds []models.WebsiteCredential) ([]models.WebsiteCredential, error) {
	aead, err := s.keys.Primitive()
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]models.WebsiteCredential, 0, len(creds))
	for _, cred := range creds {
		password, decErr := crypto.DecryptField(aead, cred.Password, cred.Domain)
		if decErr != nil {
			log.Warn().
				Str("func", "websiteVaultService.decryptRows").
				Int64("id", cred.ID).
				Str("domain", cred.Domain).
				Msg("credential no longer decrypts, omitting it from the listing")
			continue
		}
		cred.Password = password
		out = append(out, cred)
	}
	return out, nil
}
