// Package memory is an in-process implementation of the repository ports.
// Transactions are serialized by a single mutex and roll back by restoring a
// snapshot of the whole store.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
)

type contributionKey struct {
	userID string
	period domain.Period
}

type state struct {
	users         map[string]domain.User
	salaries      map[string]domain.SalaryRecord
	contributions map[contributionKey]domain.ProfitFundContribution
	balances      map[string]domain.ProfitFundBalance
	adjustments   []domain.BalanceAdjustment
	withdrawals   map[string]domain.ProfitFundWithdrawal
}

func newState() *state {
	return &state{
		users:         map[string]domain.User{},
		salaries:      map[string]domain.SalaryRecord{},
		contributions: map[contributionKey]domain.ProfitFundContribution{},
		balances:      map[string]domain.ProfitFundBalance{},
		withdrawals:   map[string]domain.ProfitFundWithdrawal{},
	}
}

// clone copies every table. Entity values are copied; their pointer fields are
// never mutated in place, so sharing them is safe.
func (s *state) clone() *state {
	c := &state{
		users:         make(map[string]domain.User, len(s.users)),
		salaries:      make(map[string]domain.SalaryRecord, len(s.salaries)),
		contributions: make(map[contributionKey]domain.ProfitFundContribution, len(s.contributions)),
		balances:      make(map[string]domain.ProfitFundBalance, len(s.balances)),
		adjustments:   append([]domain.BalanceAdjustment(nil), s.adjustments...),
		withdrawals:   make(map[string]domain.ProfitFundWithdrawal, len(s.withdrawals)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.salaries {
		c.salaries[k] = v
	}
	for k, v := range s.contributions {
		c.contributions[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.withdrawals {
		c.withdrawals[k] = v
	}
	return c
}

// Store holds all tables. The zero value is not usable; call NewStore.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// NewRepositoryProvider exposes a Store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    &userRepository{store: store},
		PayrollRepo: &payrollRepository{store: store},
	}
}

// locked runs fn against the committed state outside any transaction.
func (s *Store) locked(fn func(v *view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&view{st: s.st})
}

// RunInTx runs fn with exclusive access to the store. If fn returns an error
// the store is restored to its state before the call.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.PayrollTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, &view{st: s.st}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}
