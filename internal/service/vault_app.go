package service

import (
	"context"

	"github.com/safepass/safepass/internal/crypto"
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/store"
	"github.com/safepass/safepass/models"
)

type appVaultService struct {
	repo store.AppRepository
	keys Keystore

	logger *logger.Logger
}

// NewAppVaultService creates the application credential service. Passwords
// are encrypted with PackageName as the associated data.
func NewAppVaultService(repo store.AppRepository, keys Keystore, log *logger.Logger) AppVaultService {
	return &appVaultService{
		repo:   repo,
		keys:   keys,
		logger: log,
	}
}

func (s *appVaultService) List(ctx context.Context) ([]models.AppCredential, error) {
	creds, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *appVaultService) Get(ctx context.Context, id int64) (models.AppCredential, error) {
	cred, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.AppCredential{}, err
	}

	aead, err := s.keys.Primitive()
	if err != nil {
		return models.AppCredential{}, err
	}

	password, err := crypto.DecryptField(aead, cred.Password, cred.PackageName)
	if err != nil {
		return models.AppCredential{}, err
	}
	cred.Password = password
	return cred, nil
}

func (s *appVaultService) FindByPackage(ctx context.Context, packageName string) ([]models.AppCredential, error) {
	creds, err := s.repo.GetByPackage(ctx, packageName)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *appVaultService) Search(ctx context.Context, query string) ([]models.AppCredential, error) {
	creds, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *appVaultService) Save(ctx context.Context, cred models.AppCredential) (int64, error) {
	if err := validateApp(cred); err != nil {
		return 0, err
	}

	encrypted, err := s.encrypt(cred)
	if err != nil {
		return 0, err
	}
	return s.repo.Insert(ctx, encrypted)
}

func (s *appVaultService) Update(ctx context.Context, cred models.AppCredential) error {
	if err := validateApp(cred); err != nil {
		return err
	}

	encrypted, err := s.encrypt(cred)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, encrypted)
}

func (s *appVaultService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *appVaultService) DeleteByPackage(ctx context.Context, packageName string) error {
	return s.repo.DeleteByPackage(ctx, packageName)
}

func (s *appVaultService) encrypt(cred models.AppCredential) (models.AppCredential, error) {
	aead, err := s.keys.Primitive()
	if err != nil {
		return models.AppCredential{}, err
	}

	token, err := crypto.EncryptField(aead, cred.Password, cred.PackageName)
	if err != nil {
		return models.AppCredential{}, err
	}
	cred.Password = token
	return cred, nil
}

func (s *appVaultService) decryptRows(ctx context.Context, creds []models.AppCredential) ([]models.AppCredential, error) {
	aead, err := s.keys.Primitive()
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]models.AppCredential, 0, len(creds))
	for _, cred := range creds {
		password, decErr := crypto.DecryptField(aead, cred.Password, cred.PackageName)
		if decErr != nil {
			log.Warn().
				Str("func", "appVaultService.decryptRows").
				Int64("id", cred.ID).
				Str("package_name", cred.PackageName).
				Msg("credential no longer decrypts, omitting it from the listing")
			continue
		}
		cred.Password = password
		out = append(out, cred)
	}
	return out, nil
}
