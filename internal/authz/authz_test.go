package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeEnforce, m)

	m, err = ParseMode(" Shadow ")
	require.NoError(t, err)
	assert.Equal(t, ModeShadow, m)

	_, err = ParseMode("disabled")
	assert.Error(t, err)
}

func TestDefaultPolicy(t *testing.T) {
	a, err := NewAuthorizer("", ModeEnforce)
	require.NoError(t, err)

	tests := []struct {
		role, obj, act string
		want           bool
	}{
		{"staff", ObjSalary, ActRead, true},
		{"staff", ObjSalary, ActApprove, false},
		{"staff", ObjWithdrawal, ActRequest, true},
		{"staff", ObjWithdrawal, ActApprove, false},
		{"staff", ObjProfitFund, ActSet, false},
		{"accountant", ObjSalary, ActApprove, true},
		{"accountant", ObjWithdrawal, ActRequest, true},
		{"accountant", ObjProfitFund, ActReconcile, true},
		{"accountant", ObjProfitFund, ActSet, false},
		{"accountant", ObjUser, ActCreate, false},
		{"admin", ObjProfitFund, ActSet, true},
		{"admin", ObjSalary, ActDelete, true},
		{"admin", ObjUser, ActCreate, true},
		{"superadmin", ObjUser, ActDelete, true},
		{"superadmin", ObjSalary, ActMarkPaid, true},
		{"", ObjSalary, ActRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.obj+"/"+tt.act, func(t *testing.T) {
			allowed, enforced, err := a.Authorize(tt.role, tt.obj, tt.act)
			require.NoError(t, err)
			assert.True(t, enforced)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestShadowModeDoesNotEnforce(t *testing.T) {
	a, err := NewAuthorizer("", ModeShadow)
	require.NoError(t, err)

	allowed, enforced, err := a.Authorize("staff", ObjUser, ActDelete)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.False(t, enforced)
}

func TestPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.csv")
	policy := "p, role:staff, salary, read\ng, role:admin, role:staff\n"
	require.NoError(t, os.WriteFile(path, []byte(policy), 0o600))

	a, err := NewAuthorizer(path, ModeEnforce)
	require.NoError(t, err)

	allowed, _, err := a.Authorize("admin", ObjSalary, ActRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = a.Authorize("admin", ObjSalary, ActApprove)
	require.NoError(t, err)
	assert.False(t, allowed)
}
