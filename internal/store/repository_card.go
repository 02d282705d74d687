package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/models"
)

// cardRepository is the SQLite-backed implementation of [CardRepository],
// working against the "card_credentials" table.
type cardRepository struct {
	*DB
	logger *logger.Logger
}

// NewCardRepository constructs a [CardRepository] backed by the provided
// database connection and logger.
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	return &cardRepository{
		DB:     db,
		logger: logger,
	}
}

// Insert stores a new card row and returns the id assigned by the database.
func (c *cardRepository) Insert(ctx context.Context, cred models.CardCredential) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := c.DB.ExecContext(ctx, insertCardCredential,
		cred.Label,
		cred.CardHolder,
		cred.Number,
		cred.LastFour,
		cred.ExpiryMonth,
		cred.ExpiryYear,
		string(cred.Type),
		cred.CVV,
		cred.Notes,
	)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.Insert").
			Str("label", cred.Label).
			Msg("failed to insert card credential")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCredentialNotSaved, err)
	}

	return id, nil
}

// GetByID returns a single card row. A missing id is reported with
// [ErrCredentialNotFound], never as a driver error.
func (c *cardRepository) GetByID(ctx context.Context, id int64) (models.CardCredential, error) {
	log := logger.FromContext(ctx)

	var cred models.CardCredential
	row := c.DB.QueryRowContext(ctx, selectCardCredential, id)

	err := scanCard(row.Scan, &cred)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CardCredential{}, ErrCredentialNotFound
		}
		log.Err(err).
			Str("func", "cardRepository.GetByID").
			Int64("id", id).
			Msg("failed to scan card credential row")
		return models.CardCredential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return cred, nil
}

// GetByLabel returns every card carrying the label, ordered by id.
func (c *cardRepository) GetByLabel(ctx context.Context, label string) ([]models.CardCredential, error) {
	return c.queryMany(ctx, "cardRepository.GetByLabel", selectCardCredentialsByLabel, label)
}

// GetAll returns every card credential ordered by id.
func (c *cardRepository) GetAll(ctx context.Context) ([]models.CardCredential, error) {
	return c.queryMany(ctx, "cardRepository.GetAll", selectAllCardCredentials)
}

// Update fully replaces the row identified by cred.ID.
// Returns [ErrCredentialNotFound] when the id does not exist.
func (c *cardRepository) Update(ctx context.Context, cred models.CardCredential) error {
	log := logger.FromContext(ctx)

	res, err := c.DB.ExecContext(ctx, updateCardCredential,
		cred.Label,
		cred.CardHolder,
		cred.Number,
		cred.LastFour,
		cred.ExpiryMonth,
		cred.ExpiryYear,
		string(cred.Type),
		cred.CVV,
		cred.Notes,
		cred.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.Update").
			Int64("id", cred.ID).
			Msg("failed to update card credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affectedOrNotFound(res)
}

// DeleteByID removes a single row. Returns [ErrCredentialNotFound] when the
// id does not exist.
func (c *cardRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := c.DB.ExecContext(ctx, deleteCardCredentialByID, id)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.DeleteByID").
			Int64("id", id).
			Msg("failed to delete card credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affectedOrNotFound(res)
}

// DeleteByLabel removes every card carrying the label. A label with no rows
// is a no-op, not an error.
func (c *cardRepository) DeleteByLabel(ctx context.Context, label string) error {
	log := logger.FromContext(ctx)

	if _, err := c.DB.ExecContext(ctx, deleteCardCredentialByLabel, label); err != nil {
		log.Err(err).
			Str("func", "cardRepository.DeleteByLabel").
			Str("label", label).
			Msg("failed to execute bulk delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Search returns cards whose label, card holder or last-four contains the
// query, case-insensitively, ordered by id.
func (c *cardRepository) Search(ctx context.Context, query string) ([]models.CardCredential, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSearchQuery(
		(&models.CardCredential{}).TableName(), cardColumns, cardSearchColumns, query)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.Search").
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryMany(ctx, "cardRepository.Search", sqlQuery, args...)
}

func (c *cardRepository) queryMany(ctx context.Context, caller, query string, args ...any) ([]models.CardCredential, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for card credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.CardCredential, 0, 16)

	for rows.Next() {
		var cred models.CardCredential

		if scanErr := scanCard(rows.Scan, &cred); scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan card credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, cred)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// scanCard reads one card row through the provided scan function, shared by
// the single-row and multi-row paths.
func scanCard(scan func(dest ...any) error, cred *models.CardCredential) error {
	var cardType string

	err := scan(
		&cred.ID,
		&cred.Label,
		&cred.CardHolder,
		&cred.Number,
		&cred.LastFour,
		&cred.ExpiryMonth,
		&cred.ExpiryYear,
		&cardType,
		&cred.CVV,
		&cred.Notes,
	)
	if err != nil {
		return err
	}

	cred.Type = models.CardType(cardType)
	return nil
}
