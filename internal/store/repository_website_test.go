package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL builds a DB from an existing *sql.DB (for tests).
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:     db,
		logger: logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

var websiteRows = []string{"id", "url", "domain", "label", "username", "password", "notes"}

func websiteFixture(id int64) models.WebsiteCredential {
	return models.WebsiteCredential{
		ID:       id,
		URL:      "https://example.com/login",
		Domain:   "example.com",
		Label:    "Example",
		Username: "alice",
		Password: "dG9rZW4=", // ciphertext token as stored
		Notes:    "",
	}
}

func TestWebsiteRepository_Insert(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	cred := websiteFixture(0)
	mock.ExpectExec(regexp.QuoteMeta(insertWebsiteCredential)).
		WithArgs(cred.URL, cred.Domain, cred.Label, cred.Username, cred.Password, cred.Notes).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Insert(testContext(), cred)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebsiteRepository_Insert_ExecError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(insertWebsiteCredential)).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Insert(testContext(), websiteFixture(0))
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestWebsiteRepository_GetByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	want := websiteFixture(3)
	mock.ExpectQuery(regexp.QuoteMeta(selectWebsiteCredential)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(websiteRows).
			AddRow(want.ID, want.URL, want.Domain, want.Label, want.Username, want.Password, want.Notes))

	got, err := repo.GetByID(testContext(), 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWebsiteRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectWebsiteCredential)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(websiteRows))

	_, err := repo.GetByID(testContext(), 99)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestWebsiteRepository_GetAll(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	first := websiteFixture(1)
	second := websiteFixture(2)
	second.Domain = "other.com"

	mock.ExpectQuery(regexp.QuoteMeta(selectAllWebsiteCredentials)).
		WillReturnRows(sqlmock.NewRows(websiteRows).
			AddRow(first.ID, first.URL, first.Domain, first.Label, first.Username, first.Password, first.Notes).
			AddRow(second.ID, second.URL, second.Domain, second.Label, second.Username, second.Password, second.Notes))

	got, err := repo.GetAll(testContext())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])
}

func TestWebsiteRepository_GetByDomain_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectWebsiteCredentialsByDomain)).
		WithArgs("missing.com").
		WillReturnRows(sqlmock.NewRows(websiteRows))

	got, err := repo.GetByDomain(testContext(), "missing.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWebsiteRepository_Update(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	cred := websiteFixture(5)
	mock.ExpectExec(regexp.QuoteMeta(updateWebsiteCredential)).
		WithArgs(cred.URL, cred.Domain, cred.Label, cred.Username, cred.Password, cred.Notes, cred.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(testContext(), cred))
}

func TestWebsiteRepository_Update_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	cred := websiteFixture(42)
	mock.ExpectExec(regexp.QuoteMeta(updateWebsiteCredential)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(testContext(), cred), ErrCredentialNotFound)
}

func TestWebsiteRepository_DeleteByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteWebsiteCredentialByID)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteByID(testContext(), 5))
}

func TestWebsiteRepository_DeleteByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteWebsiteCredentialByID)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteByID(testContext(), 5), ErrCredentialNotFound)
}

func TestWebsiteRepository_DeleteByDomain_NoRowsIsNoError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteWebsiteCredentialByDomain)).
		WithArgs("missing.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// bulk deletes are cascades, an empty match is fine
	assert.NoError(t, repo.DeleteByDomain(testContext(), "missing.com"))
}

func TestWebsiteRepository_Search(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWebsiteRepository(newDBFromSQL(db), logger.Nop())

	want := websiteFixture(1)
	mock.ExpectQuery(`SELECT .+ FROM website_credentials WHERE \(LOWER\(label\) LIKE \$1 OR LOWER\(domain\) LIKE \$2 OR LOWER\(url\) LIKE \$3 OR LOWER\(username\) LIKE \$4\) ORDER BY id`).
		WithArgs("%exa%", "%exa%", "%exa%", "%exa%").
		WillReturnRows(sqlmock.NewRows(websiteRows).
			AddRow(want.ID, want.URL, want.Domain, want.Label, want.Username, want.Password, want.Notes))

	got, err := repo.Search(testContext(), "Exa")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}
