package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	return m.Called(ctx, userID, requestingUserID).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock SalaryService ---
type MockSalaryService struct {
	mock.Mock
}

func (m *MockSalaryService) salary(args mock.Arguments) (*domain.SalaryRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryRecord), args.Error(1)
}
func (m *MockSalaryService) GetSalary(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	return m.salary(m.Called(ctx, salaryID))
}
func (m *MockSalaryService) ListSalaries(ctx context.Context, params dto.ListSalariesParams) (*dto.ListSalariesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalariesResponse), args.Error(1)
}
func (m *MockSalaryService) CreateSalary(ctx context.Context, req dto.CreateSalaryRequest, actorID string) (*domain.SalaryRecord, error) {
	return m.salary(m.Called(ctx, req, actorID))
}
func (m *MockSalaryService) ApproveSalary(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error) {
	return m.salary(m.Called(ctx, salaryID, actorID))
}
func (m *MockSalaryService) RevertSalary(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error) {
	return m.salary(m.Called(ctx, salaryID, actorID))
}
func (m *MockSalaryService) EditSalary(ctx context.Context, salaryID string, req dto.UpdateSalaryRequest, actorID string) (*domain.SalaryRecord, error) {
	return m.salary(m.Called(ctx, salaryID, req, actorID))
}
func (m *MockSalaryService) MarkSalaryPaid(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error) {
	return m.salary(m.Called(ctx, salaryID, actorID))
}
func (m *MockSalaryService) DeleteSalary(ctx context.Context, salaryID string, actorID string) error {
	return m.Called(ctx, salaryID, actorID).Error(0)
}

var _ portssvc.SalarySvcFacade = (*MockSalaryService)(nil)

// --- Mock ProfitFundService ---
type MockProfitFundService struct {
	mock.Mock
}

func (m *MockProfitFundService) GetBalance(ctx context.Context, userID string) (*domain.ProfitFundBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitFundBalance), args.Error(1)
}
func (m *MockProfitFundService) ComputeAvailable(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockProfitFundService) ListContributions(ctx context.Context, userID string) ([]domain.ProfitFundContribution, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfitFundContribution), args.Error(1)
}
func (m *MockProfitFundService) ActivateFund(ctx context.Context, userID string, actorID string) (*domain.ProfitFundBalance, error) {
	args := m.Called(ctx, userID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitFundBalance), args.Error(1)
}
func (m *MockProfitFundService) CloseFund(ctx context.Context, userID string, actorID string) error {
	return m.Called(ctx, userID, actorID).Error(0)
}
func (m *MockProfitFundService) SetBalance(ctx context.Context, userID string, req dto.SetBalanceRequest, actorID string) (*domain.BalanceAdjustment, error) {
	args := m.Called(ctx, userID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAdjustment), args.Error(1)
}
func (m *MockProfitFundService) Reconcile(ctx context.Context, userID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}
func (m *MockProfitFundService) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceAdjustment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAdjustment), args.Error(1)
}

var _ portssvc.ProfitFundSvcFacade = (*MockProfitFundService)(nil)

// --- Mock WithdrawalService ---
type MockWithdrawalService struct {
	mock.Mock
}

func (m *MockWithdrawalService) withdrawal(args mock.Arguments) (*domain.ProfitFundWithdrawal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitFundWithdrawal), args.Error(1)
}
func (m *MockWithdrawalService) GetWithdrawal(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	return m.withdrawal(m.Called(ctx, withdrawalID))
}
func (m *MockWithdrawalService) ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) (*dto.ListWithdrawalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListWithdrawalsResponse), args.Error(1)
}
func (m *MockWithdrawalService) RequestWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.ProfitFundWithdrawal, error) {
	return m.withdrawal(m.Called(ctx, userID, req))
}
func (m *MockWithdrawalService) ApproveWithdrawal(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error) {
	return m.withdrawal(m.Called(ctx, withdrawalID, actorID))
}
func (m *MockWithdrawalService) RejectWithdrawal(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error) {
	return m.withdrawal(m.Called(ctx, withdrawalID, actorID))
}
func (m *MockWithdrawalService) MarkWithdrawalPaid(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error) {
	return m.withdrawal(m.Called(ctx, withdrawalID, actorID))
}

var _ portssvc.WithdrawalSvcFacade = (*MockWithdrawalService)(nil)
