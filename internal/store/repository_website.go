package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/models"
)

// websiteRepository is the SQLite-backed implementation of
// [WebsiteRepository]. It executes all website-credential CRUD operations
// against the "website_credentials" table using the embedded [*DB].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database interactions are traced with structured
// fields (id, domain, etc.).
type websiteRepository struct {
	*DB
	logger *logger.Logger
}

// NewWebsiteRepository constructs a [WebsiteRepository] backed by the
// provided database connection and logger.
func NewWebsiteRepository(db *DB, logger *logger.Logger) WebsiteRepository {
	return &websiteRepository{
		DB:     db,
		logger: logger,
	}
}

// Insert stores a new website credential row and returns the id assigned by
// the database.
func (w *websiteRepository) Insert(ctx context.Context, cred models.WebsiteCredential) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := w.DB.ExecContext(ctx, insertWebsiteCredential,
		cred.URL,
		cred.Domain,
		cred.Label,
		cred.Username,
		cred.Password,
		cred.Notes,
	)
	if err != nil {
		log.Err(err).
			Str("func", "websiteRepository.Insert").
			Str("domain", cred.Domain).
			Msg("failed to insert website credential")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCredentialNotSaved, err)
	}

	return id, nil
}

// GetByID returns a single credential row. A missing id is reported with
// [ErrCredentialNotFound], never as a driver error.
func (w *websiteRepository) GetByID(ctx context.Context, id int64) (models.WebsiteCredential, error) {
	log := logger.FromContext(ctx)

	var cred models.WebsiteCredential
	row := w.DB.QueryRowContext(ctx, selectWebsiteCredential, id)

	err := row.Scan(
		&cred.ID,
		&cred.URL,
		&cred.Domain,
		&cred.Label,
		&cred.Username,
		&cred.Password,
		&cred.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WebsiteCredential{}, ErrCredentialNotFound
		}
		log.Err(err).
			Str("func", "websiteRepository.GetByID").
			Int64("id", id).
			Msg("failed to scan website credential row")
		return models.WebsiteCredential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return cred, nil
}

// GetByDomain returns every credential saved for the given domain, ordered
// by id. An empty result is not an error.
func (w *websiteRepository) GetByDomain(ctx context.Context, domain string) ([]models.WebsiteCredential, error) {
	return w.queryMany(ctx, "websiteRepository.GetByDomain", selectWebsiteCredentialsByDomain, domain)
}

// GetAll returns every website credential ordered by id.
func (w *websiteRepository) GetAll(ctx context.Context) ([]models.WebsiteCredential, error) {
	return w.queryMany(ctx, "websiteRepository.GetAll", selectAllWebsiteCredentials)
}

// Update fully replaces the row identified by cred.ID.
// Returns [ErrCredentialNotFound] when the id does not exist.
func (w *websiteRepository) Update(ctx context.Context, cred models.WebsiteCredential) error {
	log := logger.FromContext(ctx)

	res, err := w.DB.ExecContext(ctx, updateWebsiteCredential,
		cred.URL,
		cred.Domain,
		cred.Label,
		cred.Username,
		cred.Password,
		cred.Notes,
		cred.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "websiteRepository.Update").
			Int64("id", cred.ID).
			Msg("failed to update website credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affectedOrNotFound(res)
}

// DeleteByID removes a single row. Returns [ErrCredentialNotFound] when the
// id does not exist.
func (w *websiteRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := w.DB.ExecContext(ctx, deleteWebsiteCredentialByID, id)
	if err != nil {
		log.Err(err).
			Str("func", "websiteRepository.DeleteByID").
			Int64("id", id).
			Msg("failed to delete website credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affectedOrNotFound(res)
}

// DeleteByDomain removes every credential saved for the domain. Deleting a
// domain with no rows is a no-op, not an error.
func (w *websiteRepository) DeleteByDomain(ctx context.Context, domain string) error {
	return w.execBulkDelete(ctx, "websiteRepository.DeleteByDomain", deleteWebsiteCredentialByDomain, domain)
}

// DeleteByLabel removes every credential carrying the label. Deleting a
// label with no rows is a no-op, not an error.
func (w *websiteRepository) DeleteByLabel(ctx context.Context, label string) error {
	return w.execBulkDelete(ctx, "websiteRepository.DeleteByLabel", deleteWebsiteCredentialByLabel, label)
}

// Search returns credentials whose label, domain, url or username contains
// the query, case-insensitively, ordered by id.
func (w *websiteRepository) Search(ctx context.Context, query string) ([]models.WebsiteCredential, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSearchQuery(
		(&models.WebsiteCredential{}).TableName(), websiteColumns, websiteSearchColumns, query)
	if err != nil {
		log.Err(err).
			Str("func", "websiteRepository.Search").
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return w.queryMany(ctx, "websiteRepository.Search", sqlQuery, args...)
}

func (w *websiteRepository) queryMany(ctx context.Context, caller, query string, args ...any) ([]models.WebsiteCredential, error) {
	log := logger.FromContext(ctx)

	rows, err := w.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for website credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.WebsiteCredential, 0, 16)

	for rows.Next() {
		var cred models.WebsiteCredential

		scanErr := rows.Scan(
			&cred.ID,
			&cred.URL,
			&cred.Domain,
			&cred.Label,
			&cred.Username,
			&cred.Password,
			&cred.Notes,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan website credential row")
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

func (w *websiteRepository) execBulkDelete(ctx context.Context, caller, query string, arg any) error {
	log := logger.FromContext(ctx)

	if _, err := w.DB.ExecContext(ctx, query, arg); err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute bulk delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// affectedOrNotFound maps a zero-rows-affected result onto
// [ErrCredentialNotFound], shared by the targeted update/delete paths of all
// three repositories.
func affectedOrNotFound(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}
	return nil
}
