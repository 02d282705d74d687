package service

import (
	"context"

	"github.com/safepass/safepass/internal/crypto"
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/store"
	"github.com/safepass/safepass/models"
)

type cardVaultService struct {
	repo store.CardRepository
	keys Keystore

	logger *logger.Logger
}

// NewCardVaultService creates the card credential service. Number and CVV
// are encrypted with CardHolder as the associated data. The card network
// and last-four digits are derived from the number on every save, never
// trusted from the caller.
func NewCardVaultService(repo store.CardRepository, keys Keystore, log *logger.Logger) CardVaultService {
	return &cardVaultService{
		repo:   repo,
		keys:   keys,
		logger: log,
	}
}

func (s *cardVaultService) List(ctx context.Context) ([]models.CardCredential, error) {
	creds, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *cardVaultService) Get(ctx context.Context, id int64) (models.CardCredential, error) {
	cred, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.CardCredential{}, err
	}

	aead, err := s.keys.Primitive()
	if err != nil {
		return models.CardCredential{}, err
	}

	number, err := crypto.DecryptField(aead, cred.Number, cred.CardHolder)
	if err != nil {
		return models.CardCredential{}, err
	}
	cvv, err := crypto.DecryptField(aead, cred.CVV, cred.CardHolder)
	if err != nil {
		return models.CardCredential{}, err
	}

	cred.Number = number
	cred.CVV = cvv
	return cred, nil
}

func (s *cardVaultService) FindByLabel(ctx context.Context, label string) ([]models.CardCredential, error) {
	creds, err := s.repo.GetByLabel(ctx, label)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *cardVaultService) Search(ctx context.Context, query string) ([]models.CardCredential, error) {
	creds, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.decryptRows(ctx, creds)
}

func (s *cardVaultService) Save(ctx context.Context, cred models.CardCredential) (int64, error) {
	if err := validateCard(cred); err != nil {
		return 0, err
	}

	encrypted, err := s.encrypt(s.derive(cred))
	if err != nil {
		return 0, err
	}
	return s.repo.Insert(ctx, encrypted)
}

func (s *cardVaultService) Update(ctx context.Context, cred models.CardCredential) error {
	if err := validateCard(cred); err != nil {
		return err
	}

	encrypted, err := s.encrypt(s.derive(cred))
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, encrypted)
}

func (s *cardVaultService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *cardVaultService) DeleteByLabel(ctx context.Context, label string) error {
	return s.repo.DeleteByLabel(ctx, label)
}

// derive fills in the fields computed from the plaintext number: card
// network, last-four digits, and the default label.
func (s *cardVaultService) derive(cred models.CardCredential) models.CardCredential {
	cred.Type = models.DetectCardType(cred.Number)
	cred.LastFour = models.LastFourDigits(cred.Number)
	if cred.Label == "" {
		cred.Label = string(cred.Type)
	}
	return cred
}

func (s *cardVaultService) encrypt(cred models.CardCredential) (models.CardCredential, error) {
	aead, err := s.keys.Primitive()
	if err != nil {
		return models.CardCredential{}, err
	}

	numberToken, err := crypto.EncryptField(aead, cred.Number, cred.CardHolder)
	if err != nil {
		return models.CardCredential{}, err
	}
	cvvToken, err := crypto.EncryptField(aead, cred.CVV, cred.CardHolder)
	if err != nil {
		return models.CardCredential{}, err
	}

	cred.Number = numberToken
	cred.CVV = cvvToken
	return cred, nil
}

// decryptRows decrypts every row's secrets in place, dropping rows whose
// tokens no longer decrypt instead of failing the whole listing.
func (s *cardVaultService) decryptRows(ctx context.Context, creds []models.CardCredential) ([]models.CardCredential, error) {
	aead, err := s.keys.Primitive()
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]models.CardCredential, 0, len(creds))
	for _, cred := range creds {
		number, numErr := crypto.DecryptField(aead, cred.Number, cred.CardHolder)
		cvv, cvvErr := crypto.DecryptField(aead, cred.CVV, cred.CardHolder)
		if numErr != nil || cvvErr != nil {
			log.Warn().
				Str("func", "cardVaultService.decryptRows").
				Int64("id", cred.ID).
				Str("label", cred.Label).
				Msg("credential no longer decrypts, omitting it from the listing")
			continue
		}
		cred.Number = number
		cred.CVV = cvv
		out = append(out, cred)
	}
	return out, nil
}
