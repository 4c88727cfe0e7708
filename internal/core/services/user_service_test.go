package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/core/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	fixedNow     time.Time
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockUserRepo = new(MockUserRepository)
	suite.fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewUserService(suite.mockUserRepo, services.BaseService{
		Clock: func() time.Time { return suite.fixedNow },
	})
}

func (suite *UserServiceTestSuite) user(role domain.UserRole) *domain.User {
	return &domain.User{
		UserID:   uuid.NewString(),
		Username: string(role) + "-user",
		Name:     "User " + string(role),
		Role:     role,
	}
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	admin := suite.user(domain.RoleAdmin)
	req := dto.CreateUserRequest{
		Username: "  NewStaff ",
		Password: "password123",
		Name:     "New Staff",
		Role:     domain.RoleStaff,
	}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "newstaff").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "newstaff" && u.Role == domain.RoleStaff && u.PasswordHash != "" &&
			u.PasswordHash != req.Password && u.CreatedBy == admin.UserID
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(suite.ctx, req, admin.UserID)

	suite.Require().NoError(err)
	suite.Equal("newstaff", created.Username)
	suite.Equal(domain.RoleStaff, created.Role)
	suite.NotEmpty(created.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, created.PasswordHash))
	suite.Equal(suite.fixedNow, created.CreatedAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	existing := suite.user(domain.RoleStaff)
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "taken").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{
		Username: "taken", Password: "password123", Name: "X", Role: domain.RoleStaff,
	}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{
		Username: "someone", Password: "password123", Name: "X", Role: "owner",
	}, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_AdminRequiresSuperAdmin() {
	admin := suite.user(domain.RoleAdmin)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, admin.UserID).Return(admin, nil).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{
		Username: "boss", Password: "password123", Name: "Boss", Role: domain.RoleAdmin,
	}, admin.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "staffer").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{
		Username: "staffer", Password: "password123", Name: "S", Role: domain.RoleStaff,
	}, uuid.NewString())

	suite.ErrorIs(err, assert.AnError)
}

// --- ListUsers Tests ---
func (suite *UserServiceTestSuite) TestListUsers_DefaultsAndEmpty() {
	suite.mockUserRepo.On("FindUsers", suite.ctx, 20, 0).Return(nil, nil).Once()

	users, err := suite.service.ListUsers(suite.ctx, 0, -5)

	suite.Require().NoError(err)
	suite.NotNil(users)
	suite.Empty(users)
}

func (suite *UserServiceTestSuite) TestListUsers_Error() {
	suite.mockUserRepo.On("FindUsers", suite.ctx, 10, 10).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListUsers(suite.ctx, 10, 10)

	suite.ErrorIs(err, assert.AnError)
	suite.Contains(err.Error(), "failed to list users")
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Name() {
	target := suite.user(domain.RoleStaff)
	actorID := uuid.NewString()
	newName := "  Renamed  "

	suite.mockUserRepo.On("FindUserByID", suite.ctx, target.UserID).Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "Renamed" && u.LastUpdatedBy == actorID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, target.UserID, dto.UpdateUserRequest{Name: &newName}, actorID)

	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChangesSkipsWrite() {
	target := suite.user(domain.RoleStaff)
	sameName := target.Name
	suite.mockUserRepo.On("FindUserByID", suite.ctx, target.UserID).Return(target, nil).Once()

	_, err := suite.service.UpdateUser(suite.ctx, target.UserID, dto.UpdateUserRequest{Name: &sameName}, uuid.NewString())

	suite.NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_OwnRoleForbidden() {
	self := suite.user(domain.RoleAccountant)
	role := domain.RoleAdmin
	suite.mockUserRepo.On("FindUserByID", suite.ctx, self.UserID).Return(self, nil).Once()

	_, err := suite.service.UpdateUser(suite.ctx, self.UserID, dto.UpdateUserRequest{Role: &role}, self.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUser_PromoteBySuperAdmin() {
	target := suite.user(domain.RoleStaff)
	super := suite.user(domain.RoleSuperAdmin)
	role := domain.RoleAdmin

	suite.mockUserRepo.On("FindUserByID", suite.ctx, target.UserID).Return(target, nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, super.UserID).Return(super, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAdmin
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, target.UserID, dto.UpdateUserRequest{Role: &role}, super.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, updated.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotFound() {
	id := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateUser(suite.ctx, id, dto.UpdateUserRequest{}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	target := suite.user(domain.RoleStaff)
	actorID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, target.UserID).Return(target, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", suite.ctx, target.UserID, suite.fixedNow, actorID).Return(nil).Once()

	suite.NoError(suite.service.DeleteUser(suite.ctx, target.UserID, actorID))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_Self() {
	id := uuid.NewString()
	suite.ErrorIs(suite.service.DeleteUser(suite.ctx, id, id), apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestDeleteUser_AdminByAdmin() {
	target := suite.user(domain.RoleAdmin)
	actor := suite.user(domain.RoleAdmin)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, target.UserID).Return(target, nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, actor.UserID).Return(actor, nil).Once()

	suite.ErrorIs(suite.service.DeleteUser(suite.ctx, target.UserID, actor.UserID), apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	u := suite.user(domain.RoleStaff)
	u.PasswordHash = hash
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(u, nil).Twice()
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(suite.ctx, "Alice", "correct-horse")
	suite.Require().NoError(err)
	suite.Equal(u.UserID, got.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "alice", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "ghost", "whatever")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- EnsureBootstrapAdmin Tests ---
func (suite *UserServiceTestSuite) TestEnsureBootstrapAdmin_Creates() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "root").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleSuperAdmin && u.CreatedBy == "system"
	})).Return(nil).Once()

	suite.NoError(suite.service.EnsureBootstrapAdmin(suite.ctx, "Root", "bootstrap-pass"))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureBootstrapAdmin_Existing() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "root").Return(suite.user(domain.RoleSuperAdmin), nil).Once()

	suite.NoError(suite.service.EnsureBootstrapAdmin(suite.ctx, "root", "bootstrap-pass"))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
