package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_payroll_app/internal/models"
	"github.com/SscSPs/staff_payroll_app/internal/utils/mapping"
	"github.com/SscSPs/staff_payroll_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	salaryColumns = `salary_id, user_id, month, year, gross_salary, profit_fund_amount, advances_deducted,
		penalties, bonus, net_payable, status, approved_by, approved_at, paid_at,
		created_at, created_by, last_updated_at, last_updated_by`
	contributionColumns = `contribution_id, user_id, salary_id, month, year, amount, created_at, updated_at`
	balanceColumns      = `user_id, balance, updated_at, updated_by`
	adjustmentColumns   = `adjustment_id, user_id, kind, previous_balance, new_balance, delta, reason, created_by, created_at`
	withdrawalColumns   = `withdrawal_id, user_id, amount, note, status, approved_by, processed_at, paid_at,
		created_at, created_by, last_updated_at, last_updated_by`
)

// PgxPayrollRepository reads payroll data from the pool and opens transactions for writes.
type PgxPayrollRepository struct {
	BaseRepository
	payrollQueries
}

func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryWithTx {
	return &PgxPayrollRepository{
		BaseRepository: BaseRepository{Pool: pool},
		payrollQueries: payrollQueries{db: pool},
	}
}

var (
	_ portsrepo.PayrollRepositoryWithTx = (*PgxPayrollRepository)(nil)
	_ portsrepo.PayrollTx               = (*payrollQueries)(nil)
)

// RunInTx runs fn in a READ COMMITTED transaction. Payroll mutations serialize on
// a per-user advisory lock taken through LockUser.
func (r *PgxPayrollRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.PayrollTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(ctx, &payrollQueries{db: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// payrollQueries implements every payroll query against either the pool or a transaction.
type payrollQueries struct {
	db querier
}

func (q *payrollQueries) LockUser(ctx context.Context, userID string) error {
	if _, err := q.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to acquire user lock", err)
	}
	return nil
}

// --- salaries ---

func (q *payrollQueries) findSalary(ctx context.Context, query string, args ...any) (*domain.SalaryRecord, error) {
	rows, _ := q.db.Query(ctx, query, args...)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.SalaryRecord])
	if err != nil {
		return nil, notFound(err, "salary record")
	}
	rec := mapping.ToDomainSalary(m)
	return &rec, nil
}

func (q *payrollQueries) FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	return q.findSalary(ctx, `SELECT `+salaryColumns+` FROM salary_records WHERE salary_id = $1`, salaryID)
}

func (q *payrollQueries) FindSalaryByIDForUpdate(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	return q.findSalary(ctx, `SELECT `+salaryColumns+` FROM salary_records WHERE salary_id = $1 FOR UPDATE`, salaryID)
}

func (q *payrollQueries) FindSalaryByUserPeriod(ctx context.Context, userID string, period domain.Period) (*domain.SalaryRecord, error) {
	return q.findSalary(ctx, `SELECT `+salaryColumns+` FROM salary_records WHERE user_id = $1 AND month = $2 AND year = $3`,
		userID, period.Month, period.Year)
}

func (q *payrollQueries) InsertSalary(ctx context.Context, record domain.SalaryRecord) error {
	m := mapping.ToModelSalary(record)
	query := `
		INSERT INTO salary_records (` + salaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := q.db.Exec(ctx, query,
		m.SalaryID, m.UserID, m.Month, m.Year,
		m.GrossSalary, m.ProfitFundAmount, m.AdvancesDeducted, m.Penalties, m.Bonus, m.NetPayable,
		m.Status, m.ApprovedBy, m.ApprovedAt, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: salary for period %d-%02d", apperrors.ErrDuplicate, m.Year, m.Month)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert salary record", err)
	}
	return nil
}

func (q *payrollQueries) UpdateSalary(ctx context.Context, record domain.SalaryRecord) error {
	m := mapping.ToModelSalary(record)
	query := `
		UPDATE salary_records
		SET gross_salary = $2, profit_fund_amount = $3, advances_deducted = $4, penalties = $5, bonus = $6,
		    net_payable = $7, status = $8, approved_by = $9, approved_at = $10, paid_at = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE salary_id = $1;
	`
	tag, err := q.db.Exec(ctx, query,
		m.SalaryID,
		m.GrossSalary, m.ProfitFundAmount, m.AdvancesDeducted, m.Penalties, m.Bonus,
		m.NetPayable, m.Status, m.ApprovedBy, m.ApprovedAt, m.PaidAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update salary record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (q *payrollQueries) DeleteSalary(ctx context.Context, salaryID string) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM salary_records WHERE salary_id = $1`, salaryID)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to delete salary record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *whereBuilder) cursor(nextToken *string, createdCol, idCol string) error {
	if nextToken == nil || *nextToken == "" {
		return nil
	}
	c, err := pagination.DecodeCursor(*nextToken)
	if err != nil {
		return fmt.Errorf("%w: invalid nextToken: %s", apperrors.ErrValidation, err.Error())
	}
	w.add("("+createdCol+", "+idCol+"::text) < (?, ?)", c.CreatedAt, c.ID)
	return nil
}

func (q *payrollQueries) ListSalaries(ctx context.Context, filter domain.SalaryFilter, limit int, nextToken *string) ([]domain.SalaryRecord, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	var w whereBuilder
	if filter.UserID != "" {
		w.add("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.Month != 0 {
		w.add("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		w.add("year = ?", filter.Year)
	}
	if err := w.cursor(nextToken, "created_at", "salary_id"); err != nil {
		return nil, nil, err
	}

	// One extra row tells us whether another page exists.
	args := append(w.args, limit+1)
	query := `SELECT ` + salaryColumns + ` FROM salary_records` + w.clause() +
		` ORDER BY created_at DESC, salary_id::text DESC LIMIT $` + strconv.Itoa(len(args))

	rows, _ := q.db.Query(ctx, query, args...)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SalaryRecord])
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list salary records", err)
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.SalaryID)
		next = &token
		ms = ms[:limit]
	}
	out := make([]domain.SalaryRecord, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainSalary(m)
	}
	return out, next, nil
}

// --- contributions ---

func (q *payrollQueries) ListContributions(ctx context.Context, userID string) ([]domain.ProfitFundContribution, error) {
	rows, _ := q.db.Query(ctx, `SELECT `+contributionColumns+` FROM profit_fund_contributions
		WHERE user_id = $1 ORDER BY year, month`, userID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ProfitFundContribution])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list contributions", err)
	}
	out := make([]domain.ProfitFundContribution, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainContribution(m)
	}
	return out, nil
}

func (q *payrollQueries) SumRealizedContributions(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(c.amount), 0)
		FROM profit_fund_contributions c
		JOIN salary_records s ON s.salary_id = c.salary_id
		WHERE c.user_id = $1 AND s.status IN ('approved', 'paid');
	`
	var total decimal.Decimal
	if err := q.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(http.StatusInternalServerError, "failed to sum contributions", err)
	}
	return total, nil
}

func (q *payrollQueries) UpsertContribution(ctx context.Context, contribution domain.ProfitFundContribution) error {
	m := mapping.ToModelContribution(contribution)
	query := `
		INSERT INTO profit_fund_contributions (` + contributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, month, year) DO UPDATE SET
			salary_id = EXCLUDED.salary_id,
			amount = EXCLUDED.amount,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := q.db.Exec(ctx, query, m.ContributionID, m.UserID, m.SalaryID, m.Month, m.Year, m.Amount, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to upsert contribution", err)
	}
	return nil
}

func (q *payrollQueries) DeleteContribution(ctx context.Context, userID string, period domain.Period) error {
	_, err := q.db.Exec(ctx, `DELETE FROM profit_fund_contributions WHERE user_id = $1 AND month = $2 AND year = $3`,
		userID, period.Month, period.Year)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to delete contribution", err)
	}
	return nil
}

// --- balances ---

func (q *payrollQueries) findBalance(ctx context.Context, query string, userID string) (*domain.ProfitFundBalance, error) {
	rows, _ := q.db.Query(ctx, query, userID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ProfitFundBalance])
	if err != nil {
		return nil, notFound(err, "profit fund balance")
	}
	bal := mapping.ToDomainBalance(m)
	return &bal, nil
}

func (q *payrollQueries) FindBalance(ctx context.Context, userID string) (*domain.ProfitFundBalance, error) {
	return q.findBalance(ctx, `SELECT `+balanceColumns+` FROM profit_fund_balances WHERE user_id = $1`, userID)
}

// lockBalance row-locks the balance; existed is false when the user has no active fund.
func (q *payrollQueries) lockBalance(ctx context.Context, userID string) (balance decimal.Decimal, existed bool, err error) {
	bal, err := q.findBalance(ctx, `SELECT `+balanceColumns+` FROM profit_fund_balances WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return bal.Balance, true, nil
}

func (q *payrollQueries) AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal, actorID string, now time.Time) (domain.BalanceChange, error) {
	previous, existed, err := q.lockBalance(ctx, userID)
	if err != nil {
		return domain.BalanceChange{}, err
	}
	if !existed && !delta.IsPositive() {
		return domain.BalanceChange{Shortfall: delta.Neg()}, nil
	}

	query := `
		INSERT INTO profit_fund_balances (user_id, balance, updated_at, updated_by)
		VALUES ($1, GREATEST($2::numeric, 0), $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = GREATEST(profit_fund_balances.balance + $2::numeric, 0),
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
		RETURNING balance;
	`
	var current decimal.Decimal
	if err := q.db.QueryRow(ctx, query, userID, delta, now, actorID).Scan(&current); err != nil {
		return domain.BalanceChange{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to adjust profit fund balance", err)
	}

	change := domain.BalanceChange{Previous: previous, Current: current, Existed: existed}
	if raw := previous.Add(delta); raw.IsNegative() {
		change.Shortfall = raw.Neg()
	}
	return change, nil
}

func (q *payrollQueries) ActivateBalance(ctx context.Context, userID string, actorID string, now time.Time) (*domain.ProfitFundBalance, error) {
	query := `
		INSERT INTO profit_fund_balances (user_id, balance, updated_at, updated_by)
		VALUES ($1, 0, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
		RETURNING ` + balanceColumns + `;
	`
	rows, _ := q.db.Query(ctx, query, userID, now, actorID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ProfitFundBalance])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to activate profit fund", err)
	}
	bal := mapping.ToDomainBalance(m)
	return &bal, nil
}

func (q *payrollQueries) SetBalance(ctx context.Context, userID string, balance decimal.Decimal, actorID string, now time.Time) (domain.BalanceChange, error) {
	previous, existed, err := q.lockBalance(ctx, userID)
	if err != nil {
		return domain.BalanceChange{}, err
	}
	query := `
		INSERT INTO profit_fund_balances (user_id, balance, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = EXCLUDED.balance,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	if _, err := q.db.Exec(ctx, query, userID, balance, now, actorID); err != nil {
		return domain.BalanceChange{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to set profit fund balance", err)
	}
	return domain.BalanceChange{Previous: previous, Current: balance, Existed: existed}, nil
}

func (q *payrollQueries) DeleteBalance(ctx context.Context, userID string) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM profit_fund_balances WHERE user_id = $1`, userID)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to close profit fund", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (q *payrollQueries) InsertAdjustment(ctx context.Context, a domain.BalanceAdjustment) error {
	query := `
		INSERT INTO profit_fund_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := q.db.Exec(ctx, query,
		a.AdjustmentID, a.UserID, string(a.Kind), a.PreviousBalance, a.NewBalance, a.Delta, a.Reason, a.CreatedBy, a.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to record balance adjustment", err)
	}
	return nil
}

func (q *payrollQueries) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceAdjustment, error) {
	rows, _ := q.db.Query(ctx, `SELECT `+adjustmentColumns+` FROM profit_fund_adjustments WHERE user_id = $1 ORDER BY seq`, userID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BalanceAdjustment])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list balance adjustments", err)
	}
	out := make([]domain.BalanceAdjustment, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainAdjustment(m)
	}
	return out, nil
}

// --- withdrawals ---

func (q *payrollQueries) findWithdrawal(ctx context.Context, query string, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	rows, _ := q.db.Query(ctx, query, withdrawalID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ProfitFundWithdrawal])
	if err != nil {
		return nil, notFound(err, "withdrawal")
	}
	w := mapping.ToDomainWithdrawal(m)
	return &w, nil
}

func (q *payrollQueries) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	return q.findWithdrawal(ctx, `SELECT `+withdrawalColumns+` FROM profit_fund_withdrawals WHERE withdrawal_id = $1`, withdrawalID)
}

func (q *payrollQueries) FindWithdrawalByIDForUpdate(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	return q.findWithdrawal(ctx, `SELECT `+withdrawalColumns+` FROM profit_fund_withdrawals WHERE withdrawal_id = $1 FOR UPDATE`, withdrawalID)
}

func (q *payrollQueries) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, limit int, nextToken *string) ([]domain.ProfitFundWithdrawal, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	var w whereBuilder
	if filter.UserID != "" {
		w.add("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if err := w.cursor(nextToken, "created_at", "withdrawal_id"); err != nil {
		return nil, nil, err
	}

	args := append(w.args, limit+1)
	query := `SELECT ` + withdrawalColumns + ` FROM profit_fund_withdrawals` + w.clause() +
		` ORDER BY created_at DESC, withdrawal_id::text DESC LIMIT $` + strconv.Itoa(len(args))

	rows, _ := q.db.Query(ctx, query, args...)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ProfitFundWithdrawal])
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list withdrawals", err)
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.WithdrawalID)
		next = &token
		ms = ms[:limit]
	}
	out := make([]domain.ProfitFundWithdrawal, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainWithdrawal(m)
	}
	return out, next, nil
}

func (q *payrollQueries) SumWithdrawals(ctx context.Context, userID string, statuses ...domain.WithdrawalStatus) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	var total decimal.Decimal
	err := q.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM profit_fund_withdrawals WHERE user_id = $1 AND status = ANY($2)`,
		userID, names).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(http.StatusInternalServerError, "failed to sum withdrawals", err)
	}
	return total, nil
}

func (q *payrollQueries) InsertWithdrawal(ctx context.Context, withdrawal domain.ProfitFundWithdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		INSERT INTO profit_fund_withdrawals (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := q.db.Exec(ctx, query,
		m.WithdrawalID, m.UserID, m.Amount, m.Note, m.Status, m.ApprovedBy, m.ProcessedAt, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert withdrawal", err)
	}
	return nil
}

func (q *payrollQueries) UpdateWithdrawal(ctx context.Context, withdrawal domain.ProfitFundWithdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		UPDATE profit_fund_withdrawals
		SET status = $2, approved_by = $3, processed_at = $4, paid_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE withdrawal_id = $1;
	`
	tag, err := q.db.Exec(ctx, query, m.WithdrawalID, m.Status, m.ApprovedBy, m.ProcessedAt, m.PaidAt, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update withdrawal", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
