package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
// If fn returns an error every write made through tx is rolled back.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx PayrollTx) error) error
}

// UserLocker serializes concurrent payroll mutations for the same user.
type UserLocker interface {
	// LockUser blocks until the caller holds the per-user lock for the rest of the transaction.
	LockUser(ctx context.Context, userID string) error
}
