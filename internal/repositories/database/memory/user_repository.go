package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
)

type userRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	return r.store.locked(func(v *view) error {
		for _, u := range v.st.users {
			if u.DeletedAt == nil && u.Username == user.Username {
				return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
			}
		}
		if _, ok := v.st.users[user.UserID]; ok {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
		}
		v.st.users[user.UserID] = user
		return nil
	})
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var out *domain.User
	err := r.store.locked(func(v *view) error {
		u, ok := v.st.users[userID]
		if !ok || u.DeletedAt != nil {
			return apperrors.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var out *domain.User
	err := r.store.locked(func(v *view) error {
		for _, u := range v.st.users {
			if u.DeletedAt == nil && u.Username == username {
				found := u
				out = &found
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return out, err
}

func (r *userRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	var out []domain.User
	err := r.store.locked(func(v *view) error {
		all := make([]domain.User, 0, len(v.st.users))
		for _, u := range v.st.users {
			if u.DeletedAt == nil {
				all = append(all, u)
			}
		}
		sort.Slice(all, func(i, j int) bool {
			return newerFirst(all[i].CreatedAt, all[i].UserID, all[j].CreatedAt, all[j].UserID)
		})
		if offset >= len(all) {
			out = []domain.User{}
			return nil
		}
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		out = all[offset:end]
		return nil
	})
	return out, err
}

func (r *userRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return r.store.locked(func(v *view) error {
		existing, ok := v.st.users[user.UserID]
		if !ok || existing.DeletedAt != nil {
			return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
		}
		existing.Name = user.Name
		existing.Role = user.Role
		existing.LastUpdatedAt = user.LastUpdatedAt
		existing.LastUpdatedBy = user.LastUpdatedBy
		v.st.users[user.UserID] = existing
		return nil
	})
}

func (r *userRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	return r.store.locked(func(v *view) error {
		u, ok := v.st.users[userID]
		if !ok || u.DeletedAt != nil {
			return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
		}
		u.DeletedAt = &deletedAt
		u.LastUpdatedAt = deletedAt
		u.LastUpdatedBy = deletedBy
		v.st.users[userID] = u
		return nil
	})
}
