package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereBuilder_NumbersPlaceholders(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.clause())

	w.add("user_id = ?", "u1")
	w.add("status = ?", "approved")
	w.add("(a, b) < (?, ?)", 1, 2)

	assert.Equal(t, " WHERE user_id = $1 AND status = $2 AND (a, b) < ($3, $4)", w.clause())
	assert.Equal(t, []any{"u1", "approved", 1, 2}, w.args)
}

func TestWhereBuilder_Cursor(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	token := pagination.EncodeCursor(createdAt, "abc")

	var w whereBuilder
	require.NoError(t, w.cursor(&token, "created_at", "salary_id"))
	assert.Equal(t, " WHERE (created_at, salary_id::text) < ($1, $2)", w.clause())
	require.Len(t, w.args, 2)
	assert.True(t, createdAt.Equal(w.args[0].(time.Time)))
	assert.Equal(t, "abc", w.args[1])

	var empty whereBuilder
	blank := ""
	require.NoError(t, empty.cursor(&blank, "created_at", "salary_id"))
	require.NoError(t, empty.cursor(nil, "created_at", "salary_id"))
	assert.Empty(t, empty.conds)

	bad := "not-a-token"
	assert.ErrorIs(t, empty.cursor(&bad, "created_at", "salary_id"), apperrors.ErrValidation)
}
