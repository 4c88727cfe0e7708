package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/authz"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/handlers"
	"github.com/SscSPs/staff_payroll_app/internal/platform/config"
	"github.com/SscSPs/staff_payroll_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	jwtSecret     string
	userSvc       *MockUserService
	tokenSvc      *MockTokenService
	salarySvc     *MockSalaryService
	profitFundSvc *MockProfitFundService
	withdrawalSvc *MockWithdrawalService
	staffID       string
	accountantID  string
	adminID       string
	otherStaffID  string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.userSvc = new(MockUserService)
	suite.tokenSvc = new(MockTokenService)
	suite.salarySvc = new(MockSalaryService)
	suite.profitFundSvc = new(MockProfitFundService)
	suite.withdrawalSvc = new(MockWithdrawalService)

	suite.staffID = uuid.NewString()
	suite.accountantID = uuid.NewString()
	suite.adminID = uuid.NewString()
	suite.otherStaffID = uuid.NewString()

	authorizer, err := authz.NewAuthorizer("", authz.ModeEnforce)
	suite.Require().NoError(err)

	rate, err := limiter.NewRateFromFormatted("2-M")
	suite.Require().NoError(err)
	loginLimiter := limiter.New(memory.NewStore(), rate)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		User:         suite.userSvc,
		Salary:       suite.salarySvc,
		ProfitFund:   suite.profitFundSvc,
		Withdrawal:   suite.withdrawalSvc,
		TokenService: suite.tokenSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, authorizer, loginLimiter)
}

func (suite *HandlerTestSuite) token(userID string, role domain.UserRole) string {
	token, _, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "payroll-test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (suite *HandlerTestSuite) salaryFor(userID string, status domain.SalaryStatus) *domain.SalaryRecord {
	return &domain.SalaryRecord{
		SalaryID:         uuid.NewString(),
		UserID:           userID,
		Period:           domain.Period{Month: 1, Year: 2025},
		GrossSalary:      decimal.NewFromInt(1000),
		ProfitFundAmount: decimal.NewFromInt(100),
		NetPayable:       decimal.NewFromInt(1000),
		Status:           status,
	}
}

// --- Public routes ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: suite.staffID, Username: "alice", Role: domain.RoleStaff}
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	suite.userSvc.On("AuthenticateUser", mock.Anything, "alice", "secret-password").Return(user, nil).Once()
	suite.tokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expiresAt, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "secret-password"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.True(expiresAt.Equal(resp.ExpiresAt))
	suite.Equal(suite.staffID, resp.User.UserID)
	suite.userSvc.AssertExpectations(suite.T())
	suite.tokenSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.userSvc.On("AuthenticateUser", mock.Anything, "alice", "wrong").
		Return(nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.tokenSvc.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_MissingFields() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.userSvc.AssertNotCalled(suite.T(), "AuthenticateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.userSvc.On("AuthenticateUser", mock.Anything, "alice", "wrong").
		Return(nil, apperrors.ErrUnauthorized)

	for i := 0; i < 2; i++ {
		w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "wrong"})
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "wrong"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.userSvc.AssertNumberOfCalls(suite.T(), "AuthenticateUser", 2)
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/salaries", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestTokenWithUnknownRole() {
	w := suite.do(http.MethodGet, "/api/v1/salaries", suite.token(suite.staffID, "intern"), nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Salaries ---

func (suite *HandlerTestSuite) TestCreateSalary_StaffForbidden() {
	body := map[string]any{"userID": suite.staffID, "month": 1, "year": 2025, "grossSalary": "1000", "profitFundAmount": "100"}
	w := suite.do(http.MethodPost, "/api/v1/salaries", suite.token(suite.staffID, domain.RoleStaff), body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.salarySvc.AssertNotCalled(suite.T(), "CreateSalary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSalary_Success() {
	rec := suite.salaryFor(suite.staffID, domain.SalaryPending)
	suite.salarySvc.On("CreateSalary", mock.Anything,
		mock.MatchedBy(func(req dto.CreateSalaryRequest) bool {
			return req.UserID == suite.staffID && req.GrossSalary.Equal(decimal.NewFromInt(1000)) &&
				req.ProfitFundAmount.Equal(decimal.NewFromInt(100)) && req.Period() == domain.Period{Month: 1, Year: 2025}
		}),
		suite.accountantID,
	).Return(rec, nil).Once()

	body := map[string]any{"userID": suite.staffID, "month": 1, "year": 2025, "grossSalary": "1000", "profitFundAmount": 100}
	w := suite.do(http.MethodPost, "/api/v1/salaries", suite.token(suite.accountantID, domain.RoleAccountant), body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SalaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(rec.SalaryID, resp.SalaryID)
	suite.True(resp.ProfitFundAmount.Equal(decimal.NewFromInt(100)))
	suite.salarySvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateSalary_NegativeAmountRejected() {
	body := map[string]any{"userID": suite.staffID, "month": 1, "year": 2025, "grossSalary": "1000", "profitFundAmount": "-5"}
	w := suite.do(http.MethodPost, "/api/v1/salaries", suite.token(suite.accountantID, domain.RoleAccountant), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.salarySvc.AssertNotCalled(suite.T(), "CreateSalary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSalary_InvalidMonthRejected() {
	body := map[string]any{"userID": suite.staffID, "month": 13, "year": 2025, "grossSalary": "1000"}
	w := suite.do(http.MethodPost, "/api/v1/salaries", suite.token(suite.accountantID, domain.RoleAccountant), body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateSalary_DuplicatePeriod() {
	suite.salarySvc.On("CreateSalary", mock.Anything, mock.Anything, suite.accountantID).
		Return(nil, fmt.Errorf("%w: salary for 2025-01 already exists", apperrors.ErrDuplicate)).Once()

	body := map[string]any{"userID": suite.staffID, "month": 1, "year": 2025, "grossSalary": "1000"}
	w := suite.do(http.MethodPost, "/api/v1/salaries", suite.token(suite.accountantID, domain.RoleAccountant), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.errorBody(w), "already exists")
}

func (suite *HandlerTestSuite) TestGetSalary_StaffOwnAndOther() {
	own := suite.salaryFor(suite.staffID, domain.SalaryApproved)
	other := suite.salaryFor(suite.otherStaffID, domain.SalaryApproved)
	suite.salarySvc.On("GetSalary", mock.Anything, own.SalaryID).Return(own, nil).Once()
	suite.salarySvc.On("GetSalary", mock.Anything, other.SalaryID).Return(other, nil).Once()
	token := suite.token(suite.staffID, domain.RoleStaff)

	w := suite.do(http.MethodGet, "/api/v1/salaries/"+own.SalaryID, token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/salaries/"+other.SalaryID, token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetSalary_NotFound() {
	id := uuid.NewString()
	suite.salarySvc.On("GetSalary", mock.Anything, id).Return(nil, fmt.Errorf("%w: salary %s", apperrors.ErrNotFound, id)).Once()

	w := suite.do(http.MethodGet, "/api/v1/salaries/"+id, suite.token(suite.adminID, domain.RoleAdmin), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListSalaries_StaffScopedToSelf() {
	resp := &dto.ListSalariesResponse{Salaries: []dto.SalaryResponse{}}
	suite.salarySvc.On("ListSalaries", mock.Anything,
		mock.MatchedBy(func(p dto.ListSalariesParams) bool { return p.UserID == suite.staffID && p.Limit == 20 }),
	).Return(resp, nil).Once()
	token := suite.token(suite.staffID, domain.RoleStaff)

	w := suite.do(http.MethodGet, "/api/v1/salaries", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/salaries?userID="+suite.otherStaffID, token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.salarySvc.AssertNumberOfCalls(suite.T(), "ListSalaries", 1)
}

func (suite *HandlerTestSuite) TestListSalaries_AccountantSeesAll() {
	resp := &dto.ListSalariesResponse{Salaries: []dto.SalaryResponse{}}
	suite.salarySvc.On("ListSalaries", mock.Anything,
		mock.MatchedBy(func(p dto.ListSalariesParams) bool {
			return p.UserID == "" && p.Status == domain.SalaryApproved && p.Limit == 5
		}),
	).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/salaries?status=approved&limit=5", suite.token(suite.accountantID, domain.RoleAccountant), nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.salarySvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApproveSalary_InvalidState() {
	id := uuid.NewString()
	suite.salarySvc.On("ApproveSalary", mock.Anything, id, suite.accountantID).
		Return(nil, fmt.Errorf("%w: salary is approved, expected pending", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodPost, "/api/v1/salaries/"+id+"/approve", suite.token(suite.accountantID, domain.RoleAccountant), nil)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestApproveSalary_InternalErrorHidden() {
	id := uuid.NewString()
	suite.salarySvc.On("ApproveSalary", mock.Anything, id, suite.accountantID).
		Return(nil, fmt.Errorf("connection reset by peer")).Once()

	w := suite.do(http.MethodPost, "/api/v1/salaries/"+id+"/approve", suite.token(suite.accountantID, domain.RoleAccountant), nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to approve salary record", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestDeleteSalary() {
	id := uuid.NewString()
	suite.salarySvc.On("DeleteSalary", mock.Anything, id, suite.accountantID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/salaries/"+id, suite.token(suite.accountantID, domain.RoleAccountant), nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

// --- Profit fund ---

func (suite *HandlerTestSuite) TestAvailable_StaffOwnAndOther() {
	suite.profitFundSvc.On("ComputeAvailable", mock.Anything, suite.staffID).Return(decimal.NewFromInt(40), nil).Once()
	token := suite.token(suite.staffID, domain.RoleStaff)

	w := suite.do(http.MethodGet, "/api/v1/profit-fund/"+suite.staffID+"/available", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AvailableBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Available.Equal(decimal.NewFromInt(40)))

	w = suite.do(http.MethodGet, "/api/v1/profit-fund/"+suite.otherStaffID+"/available", token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.profitFundSvc.AssertNumberOfCalls(suite.T(), "ComputeAvailable", 1)
}

func (suite *HandlerTestSuite) TestGetBalance_Inactive() {
	suite.profitFundSvc.On("GetBalance", mock.Anything, suite.staffID).
		Return(nil, fmt.Errorf("%w: no active profit fund", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/profit-fund/"+suite.staffID, suite.token(suite.staffID, domain.RoleStaff), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestSetBalance_RequiresAdmin() {
	body := map[string]any{"balance": "250", "reason": "opening balance"}

	w := suite.do(http.MethodPut, "/api/v1/profit-fund/"+suite.staffID+"/balance", suite.token(suite.accountantID, domain.RoleAccountant), body)
	suite.Equal(http.StatusForbidden, w.Code)

	adj := &domain.BalanceAdjustment{UserID: suite.staffID, Kind: domain.AdjustmentManualOverride, NewBalance: decimal.NewFromInt(250)}
	suite.profitFundSvc.On("SetBalance", mock.Anything, suite.staffID,
		mock.MatchedBy(func(req dto.SetBalanceRequest) bool {
			return req.Balance.Equal(decimal.NewFromInt(250)) && req.Reason == "opening balance"
		}),
		suite.adminID,
	).Return(adj, nil).Once()

	w = suite.do(http.MethodPut, "/api/v1/profit-fund/"+suite.staffID+"/balance", suite.token(suite.adminID, domain.RoleAdmin), body)
	suite.Equal(http.StatusOK, w.Code)
	suite.profitFundSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSetBalance_NegativeRejected() {
	body := map[string]any{"balance": "-1", "reason": "typo"}
	w := suite.do(http.MethodPut, "/api/v1/profit-fund/"+suite.staffID+"/balance", suite.token(suite.adminID, domain.RoleAdmin), body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCloseFund() {
	suite.profitFundSvc.On("CloseFund", mock.Anything, suite.staffID, suite.adminID).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/profit-fund/"+suite.staffID+"/close", suite.token(suite.adminID, domain.RoleAdmin), nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestReconcile_StaffForbidden() {
	w := suite.do(http.MethodGet, "/api/v1/profit-fund/"+suite.staffID+"/reconciliation", suite.token(suite.staffID, domain.RoleStaff), nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.profitFundSvc.AssertNotCalled(suite.T(), "Reconcile", mock.Anything, mock.Anything)
}

// --- Withdrawals ---

func (suite *HandlerTestSuite) TestRequestWithdrawal_UsesCallerAsOwner() {
	w := &domain.ProfitFundWithdrawal{WithdrawalID: uuid.NewString(), UserID: suite.staffID, Amount: decimal.NewFromInt(60), Status: domain.WithdrawalRequested}
	suite.withdrawalSvc.On("RequestWithdrawal", mock.Anything, suite.staffID,
		mock.MatchedBy(func(req dto.CreateWithdrawalRequest) bool { return req.Amount.Equal(decimal.NewFromInt(60)) }),
	).Return(w, nil).Once()

	resp := suite.do(http.MethodPost, "/api/v1/withdrawals", suite.token(suite.staffID, domain.RoleStaff), map[string]any{"amount": "60", "note": "school fees"})

	suite.Equal(http.StatusCreated, resp.Code)
	suite.withdrawalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRequestWithdrawal_ZeroAmountRejected() {
	resp := suite.do(http.MethodPost, "/api/v1/withdrawals", suite.token(suite.staffID, domain.RoleStaff), map[string]any{"amount": "0"})
	suite.Equal(http.StatusBadRequest, resp.Code)
}

func (suite *HandlerTestSuite) TestRequestWithdrawal_InsufficientBalance() {
	suite.withdrawalSvc.On("RequestWithdrawal", mock.Anything, suite.staffID, mock.Anything).
		Return(nil, fmt.Errorf("%w: requested 50, available 40", apperrors.ErrInsufficientBalance)).Once()

	resp := suite.do(http.MethodPost, "/api/v1/withdrawals", suite.token(suite.staffID, domain.RoleStaff), map[string]any{"amount": "50"})
	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
	suite.Contains(suite.errorBody(resp), "available 40")
}

func (suite *HandlerTestSuite) TestApproveWithdrawal() {
	id := uuid.NewString()
	suite.withdrawalSvc.On("ApproveWithdrawal", mock.Anything, id, suite.accountantID).
		Return(nil, fmt.Errorf("%w: withdrawal is rejected", apperrors.ErrAlreadyProcessed)).Once()

	resp := suite.do(http.MethodPost, "/api/v1/withdrawals/"+id+"/approve", suite.token(suite.accountantID, domain.RoleAccountant), nil)
	suite.Equal(http.StatusConflict, resp.Code)

	resp = suite.do(http.MethodPost, "/api/v1/withdrawals/"+id+"/approve", suite.token(suite.staffID, domain.RoleStaff), nil)
	suite.Equal(http.StatusForbidden, resp.Code)
	suite.withdrawalSvc.AssertNumberOfCalls(suite.T(), "ApproveWithdrawal", 1)
}

func (suite *HandlerTestSuite) TestGetWithdrawal_OtherStaffForbidden() {
	w := &domain.ProfitFundWithdrawal{WithdrawalID: uuid.NewString(), UserID: suite.otherStaffID, Amount: decimal.NewFromInt(10), Status: domain.WithdrawalRequested}
	suite.withdrawalSvc.On("GetWithdrawal", mock.Anything, w.WithdrawalID).Return(w, nil).Once()

	resp := suite.do(http.MethodGet, "/api/v1/withdrawals/"+w.WithdrawalID, suite.token(suite.staffID, domain.RoleStaff), nil)
	suite.Equal(http.StatusForbidden, resp.Code)
}

func (suite *HandlerTestSuite) TestMalformedPathIDs() {
	admin := suite.token(suite.adminID, domain.RoleAdmin)
	staff := suite.token(suite.staffID, domain.RoleStaff)
	cases := []struct {
		method, path, token string
	}{
		{http.MethodGet, "/api/v1/salaries/abc", admin},
		{http.MethodPut, "/api/v1/salaries/abc", admin},
		{http.MethodDelete, "/api/v1/salaries/abc", admin},
		{http.MethodPost, "/api/v1/salaries/abc/approve", admin},
		{http.MethodGet, "/api/v1/withdrawals/abc", staff},
		{http.MethodPost, "/api/v1/withdrawals/abc/reject", admin},
		{http.MethodGet, "/api/v1/profit-fund/abc", admin},
		{http.MethodGet, "/api/v1/profit-fund/abc/available", staff},
		{http.MethodGet, "/api/v1/profit-fund/abc/reconciliation", admin},
		{http.MethodPost, "/api/v1/profit-fund/abc/close", admin},
		{http.MethodGet, "/api/v1/users/abc", admin},
		{http.MethodDelete, "/api/v1/users/abc", admin},
	}
	for _, tc := range cases {
		w := suite.do(tc.method, tc.path, tc.token, nil)
		suite.Equal(http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
	}
	suite.Empty(suite.salarySvc.Calls)
	suite.Empty(suite.withdrawalSvc.Calls)
	suite.Empty(suite.profitFundSvc.Calls)
	suite.Empty(suite.userSvc.Calls)
}

// --- Users ---

func (suite *HandlerTestSuite) TestGetMe() {
	user := &domain.User{UserID: suite.staffID, Username: "alice", Name: "Alice", Role: domain.RoleStaff}
	suite.userSvc.On("GetUserByID", mock.Anything, suite.staffID).Return(user, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/me", suite.token(suite.staffID, domain.RoleStaff), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("alice", resp.Username)
}

func (suite *HandlerTestSuite) TestListUsers_StaffForbidden() {
	w := suite.do(http.MethodGet, "/api/v1/users", suite.token(suite.staffID, domain.RoleStaff), nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestCreateUser_ForbiddenByService() {
	suite.userSvc.On("CreateUser", mock.Anything, mock.Anything, suite.adminID).
		Return(nil, fmt.Errorf("%w: only a superadmin may create admin users", apperrors.ErrForbidden)).Once()

	body := dto.CreateUserRequest{Username: "bob", Password: "long-enough-password", Name: "Bob", Role: domain.RoleAdmin}
	w := suite.do(http.MethodPost, "/api/v1/users", suite.token(suite.adminID, domain.RoleAdmin), body)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteUser() {
	suite.userSvc.On("DeleteUser", mock.Anything, suite.staffID, suite.adminID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/"+suite.staffID, suite.token(suite.adminID, domain.RoleAdmin), nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
