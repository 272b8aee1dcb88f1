package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 6)
	for _, stmt := range stmts {
		require.NotContains(t, stmt, ";")
		require.True(t, strings.HasPrefix(stmt, "CREATE "), stmt)
	}
}

func TestSchemaCoversRepositoryTables(t *testing.T) {
	for _, table := range []string{"users", "user_identities", "profiles", "logs"} {
		require.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	require.Contains(t, schema, "UNIQUE (provider, provider_subject)")
	require.Contains(t, schema, "CHECK (type IN ('urge', 'relapse'))")
}
