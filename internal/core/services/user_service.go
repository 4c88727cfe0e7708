package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/utils"
	"github.com/google/uuid"
)

// bootstrapActor is recorded as the creator of the bootstrap superadmin.
const bootstrapActor = "system"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, base BaseService) portssvc.UserSvcFacade {
	return &userService{BaseService: base, userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// requireSuperAdminFor returns ErrForbidden when role is admin or superadmin and
// the acting user is not a superadmin.
func (s *userService) requireSuperAdminFor(ctx context.Context, role domain.UserRole, actorID string) error {
	if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
		return nil
	}
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: acting user not found", apperrors.ErrForbidden)
		}
		return err
	}
	if actor.Role != domain.RoleSuperAdmin {
		return fmt.Errorf("%w: only a superadmin may manage %s users", apperrors.ErrForbidden, role)
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	if err := s.requireSuperAdminFor(ctx, req.Role, creatorUserID); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, username)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		AuditFields:  domain.NewAuditFields(s.Now(), creatorUserID),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	s.Track(creatorUserID, "user_created", map[string]any{"user_id": user.UserID, "role": string(user.Role)})
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(strings.ToLower(username)))
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		if name != user.Name {
			user.Name = name
			changed = true
		}
	}
	if req.Role != nil && *req.Role != user.Role {
		if !req.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		if userID == requestingUserID {
			return nil, fmt.Errorf("%w: users cannot change their own role", apperrors.ErrForbidden)
		}
		if err := s.requireSuperAdminFor(ctx, user.Role, requestingUserID); err != nil {
			return nil, err
		}
		if err := s.requireSuperAdminFor(ctx, *req.Role, requestingUserID); err != nil {
			return nil, err
		}
		user.Role = *req.Role
		changed = true
	}

	if !changed {
		return user, nil
	}

	user.Touch(s.Now(), requestingUserID)
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID == requestingUserID {
		return fmt.Errorf("%w: users cannot delete themselves", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.requireSuperAdminFor(ctx, user.Role, requestingUserID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Failed login attempt", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil
	}
	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         domain.RoleSuperAdmin,
		AuditFields:  domain.NewAuditFields(s.Now(), bootstrapActor),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	s.LogInfo(ctx, "Bootstrap superadmin created", slog.String("user_id", user.UserID), slog.String("username", username))
	return nil
}
