package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/models"
)

// appRepository is the SQLite-backed implementation of [AppRepository],
// working against the "app_credentials" table.
type appRepository struct {
	*DB
	logger *logger.Logger
}

// NewAppRepository constructs an [AppRepository] backed by the provided
// database connection and logger.
func NewAppRepository(db *DB, logger *logger.Logger) AppRepository {
	return &appRepository{
		DB:     db,
		logger: logger,
	}
}

// Insert stores a new app credential row and returns the id assigned by the
// database.
func (a *appRepository) Insert(ctx context.Context, cred models.AppCredential) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := a.DB.ExecContext(ctx, insertAppCredential,
		cred.AppName,
		cred.PackageName,
		cred.Username,
		cred.Password,
		cred.Notes,
	)
	if err != nil {
		log.Err(err).
			Str("func", "appRepository.Insert").
			Str("package_name", cred.PackageName).
			Msg("failed to insert app credential")
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
func (a *appRepository) GetByID(ctx context.Context, id int64) (models.AppCredential, error) {
	log := logger.FromContext(ctx)

	var cred models.AppCredential
	row := a.DB.QueryRowContext(ctx, selectAppCredential, id)

	err := row.Scan(
		&cred.ID,
		&cred.AppName,
		&cred.PackageName,
		&cred.Username,
		&cred.Password,
		&cred.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AppCredential{}, ErrCredentialNotFound
		}
		log.Err(err).
			Str("func", "appRepository.GetByID").
			Int64("id", id).
			Msg("failed to scan app credential row")
		return models.AppCredential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return cred, nil
}

// GetByPackage returns every credential saved for the package name, ordered
// by id. An empty result is not an error.
func (a *appRepository) GetByPackage(ctx context.Context, packageName string) ([]models.AppCredential, error) {
	return a.queryMany(ctx, "appRepository.GetByPackage", selectAppCredentialsByPackage, packageName)
}

// GetAll returns every app credential ordered by id.
func (a *appRepository) GetAll(ctx context.Context) ([]models.AppCredential, error) {
	return a.queryMany(ctx, "appRepository.GetAll", selectAllAppCredentials)
}

// Update fully replaces the row identified by cred.ID.
// Returns [ErrCredentialNotFound] when the id does not exist.
func (a *appRepository) Update(ctx context.Context, cred models.AppCredential) error {
	log := logger.FromContext(ctx)

	res, err := a.DB.ExecContext(ctx, updateAppCredential,
		cred.AppName,
		cred.PackageName,
		cred.Username,
		cred.Password,
		cred.Notes,
		cred.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "appRepository.Update").
			Int64("id", cred.ID).
			Msg("failed to update app credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affectedOrNotFound(res)
}

// DeleteByID removes a single row. Returns [ErrCredentialNotFound] when the
// id does not exist.
func (a *appRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := a.DB.ExecContext(ctx, deleteAppCredentialByID, id)
	if err != nil {
		log.Err(err).
			Str("func", "appRepository.DeleteByID").
			Int64("id", id).
			Msg("failed to delete app credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affectedOrNotFound(res)
}

// DeleteByPackage removes every credential saved for the package name.
// A package with no rows is a no-op, not an error.
func (a *appRepository) DeleteByPackage(ctx context.Context, packageName string) error {
	return a.execBulkDelete(ctx, "appRepository.DeleteByPackage", deleteAppCredentialByPackage, packageName)
}

// DeleteByAppName removes every credential carrying the app name. An app
// name with no rows is a no-op, not an error.
func (a *appRepository) DeleteByAppName(ctx context.Context, appName string) error {
	return a.execBulkDelete(ctx, "appRepository.DeleteByAppName", deleteAppCredentialByAppName, appName)
}

// Search returns credentials whose app name, package name or username
// contains the query, case-insensitively, ordered by id.
func (a *appRepository) Search(ctx context.Context, query string) ([]models.AppCredential, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSearchQuery(
		(&models.AppCredential{}).TableName(), appColumns, appSearchColumns, query)
	if err != nil {
		log.Err(err).
			Str("func", "appRepository.Search").
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return a.queryMany(ctx, "appRepository.Search", sqlQuery, args...)
}

func (a *appRepository) queryMany(ctx context.Context, caller, query string, args ...any) ([]models.AppCredential, error) {
	log := logger.FromContext(ctx)

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for app credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.AppCredential, 0, 16)

	for rows.Next() {
		var cred models.AppCredential

		scanErr := rows.Scan(
			&cred.ID,
			&cred.AppName,
			&cred.PackageName,
			&cred.Username,
			&cred.Password,
			&cred.Notes,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan app credential row")
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

func (a *appRepository) execBulkDelete(ctx context.Context, caller, query string, arg any) error {
	log := logger.FromContext(ctx)

	if _, err := a.DB.ExecContext(ctx, query, arg); err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute bulk delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
