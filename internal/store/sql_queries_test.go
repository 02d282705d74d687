package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery_Website(t *testing.T) {
	query, args, err := buildSearchQuery(
		"website_credentials", websiteColumns, websiteSearchColumns, "Exa")
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, url, domain, label, username, password, notes "+
			"FROM website_credentials "+
			"WHERE (LOWER(label) LIKE $1 OR LOWER(domain) LIKE $2 OR LOWER(url) LIKE $3 OR LOWER(username) LIKE $4) "+
			"ORDER BY id",
		query)

	// query text is lowercased once and reused for every column
	require.Len(t, args, 4)
	for _, arg := range args {
		assert.Equal(t, "%exa%", arg)
	}
}

func TestBuildSearchQuery_NeverTouchesSecretColumns(t *testing.T) {
	for _, tc := range []struct {
		table      string
		columns    []string
		searchable []string
	}{
		{"website_credentials", websiteColumns, websiteSearchColumns},
		{"card_credentials", cardColumns, cardSearchColumns},
		{"app_credentials", appColumns, appSearchColumns},
	} {
		query, _, err := buildSearchQuery(tc.table, tc.columns, tc.searchable, "x")
		require.NoError(t, err)

		assert.NotContains(t, query, "LOWER(password)")
		assert.NotContains(t, query, "LOWER(card_number)")
		assert.NotContains(t, query, "LOWER(cvv)")
	}
}
