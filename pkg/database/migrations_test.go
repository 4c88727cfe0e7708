package database

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numericColumn = regexp.MustCompile(`NUMERIC\(\d+,\s*\d+\)`)

func TestMigrations_MoneyColumnsUseNumeric18_2(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	found := 0
	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, col := range numericColumn.FindAllString(string(raw), -1) {
			assert.Equal(t, "NUMERIC(18,2)", col, f)
			found++
		}
	}
	assert.Positive(t, found)
}
