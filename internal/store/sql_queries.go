// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

const (
	insertWebsiteCredential = `
		INSERT INTO website_credentials (
			url,
			domain,
			label,
			username,
			password,
			notes
		) VALUES ($1, $2, $3, $4, $5, $6);`

	selectWebsiteCredential = `
		SELECT
			id,
			url,
			domain,
			label,
			username,
			password,
			notes
		FROM website_credentials
		WHERE id = $1;`

	selectWebsiteCredentialsByDomain = `
		SELECT
			id,
			url,
			domain,
			label,
			username,
			password,
			notes
		FROM website_credentials
		WHERE domain = $1
		ORDER BY id;`

	selectAllWebsiteCredentials = `
		SELECT
			id,
			url,
			domain,
			label,
			username,
			password,
			notes
		FROM website_credentials
		ORDER BY id;`

	updateWebsiteCredential = `
		UPDATE website_credentials SET
			url      = $1,
			domain   = $2,
			label    = $3,
			username = $4,
			password = $5,
			notes    = $6
		WHERE id = $7;`

	deleteWebsiteCredentialByID     = `DELETE FROM website_credentials WHERE id = $1;`
	deleteWebsiteCredentialByDomain = `DELETE FROM website_credentials WHERE domain = $1;`
	deleteWebsiteCredentialByLabel  = `DELETE FROM website_credentials WHERE label = $1;`

	insertCardCredential = `
		INSERT INTO card_credentials (
			label,
			card_holder,
			card_number,
			last_four,
			expiry_month,
			expiry_year,
			type,
			cvv,
			notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	selectCardCredential = `
		SELECT
			id,
			label,
			card_holder,
			card_number,
			last_four,
			expiry_month,
			expiry_year,
			type,
			cvv,
			notes
		FROM card_credentials
		WHERE id = $1;`

	selectCardCredentialsByLabel = `
		SELECT
			id,
			label,
			card_holder,
			card_number,
			last_four,
			expiry_month,
			expiry_year,
			type,
			cvv,
			notes
		FROM card_credentials
		WHERE label = $1
		ORDER BY id;`

	selectAllCardCredentials = `
		SELECT
			id,
			label,
			card_holder,
			card_number,
			last_four,
			expiry_month,
			expiry_year,
			type,
			cvv,
			notes
		FROM card_credentials
		ORDER BY id;`

	updateCardCredential = `
		UPDATE card_credentials SET
			label        = $1,
			card_holder  = $2,
			card_number  = $3,
			last_four    = $4,
			expiry_month = $5,
			expiry_year  = $6,
			type         = $7,
			cvv          = $8,
			notes        = $9
		WHERE id = $10;`

	deleteCardCredentialByID    = `DELETE FROM card_credentials WHERE id = $1;`
	deleteCardCredentialByLabel = `DELETE FROM card_credentials WHERE label = $1;`

	insertAppCredential = `
		INSERT INTO app_credentials (
			app_name,
			package_name,
			username,
			password,
			notes
		) VALUES ($1, $2, $3, $4, $5);`

	selectAppCredential = `
		SELECT
			id,
			app_name,
			package_name,
			username,
			password,
			notes
		FROM app_credentials
		WHERE id = $1;`

	selectAppCredentialsByPackage = `
		SELECT
			id,
			app_name,
			package_name,
			username,
			password,
			notes
		FROM app_credentials
		WHERE package_name = $1
		ORDER BY id;`

	selectAllAppCredentials = `
		SELECT
			id,
			app_name,
			package_name,
			username,
			password,
			notes
		FROM app_credentials
		ORDER BY id;`

	updateAppCredential = `
		UPDATE app_credentials SET
			app_name     = $1,
			package_name = $2,
			username     = $3,
			password     = $4,
			notes        = $5
		WHERE id = $6;`

	deleteAppCredentialByID      = `DELETE FROM app_credentials WHERE id = $1;`
	deleteAppCredentialByPackage = `DELETE FROM app_credentials WHERE package_name = $1;`
	deleteAppCredentialByAppName = `DELETE FROM app_credentials WHERE app_name = $1;`
)

// sqlBuilder is the squirrel statement builder shared by all dynamically
// constructed queries. The sqlite3 driver accepts $N placeholders, which
// keeps dynamic queries consistent with the constant ones above.
var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// buildSearchQuery produces a case-insensitive substring match over the
// given plaintext columns: LOWER(col) LIKE '%query%' joined with OR.
// Secret columns are never searched; they hold ciphertext and would not
// match anyway. Results are ordered by id so repeated searches are stable.
func buildSearchQuery(table string, columns, searchable []string, query string) (string, []any, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	match := make(squirrel.Or, 0, len(searchable))
	for _, col := range searchable {
		match = append(match, squirrel.Like{fmt.Sprintf("LOWER(%s)", col): pattern})
	}

	return sqlBuilder.
		Select(columns...).
		From(table).
		Where(match).
		OrderBy("id").
		ToSql()
}

var (
	websiteColumns = []string{"id", "url", "domain", "label", "username", "password", "notes"}
	cardColumns    = []string{"id", "label", "card_holder", "card_number", "last_four", "expiry_month", "expiry_year", "type", "cvv", "notes"}
	appColumns     = []string{"id", "app_name", "package_name", "username", "password", "notes"}

	websiteSearchColumns = []string{"label", "domain", "url", "username"}
	cardSearchColumns    = []string{"label", "card_holder", "last_four"}
	appSearchColumns     = []string{"app_name", "package_name", "username"}
)
