package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// AccountService handles account approval and profile management.
type AccountService struct {
	userRepo *repository.UserRepository
}

func NewAccountService(userRepo *repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Approve activates a pending account. Approving an already-active account is
// a no-op.
func (s *AccountService) Approve(ctx context.Context, targetUserID string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", targetUserID, err)
	}
	if user.IsActive {
		return user, nil
	}
	user.IsActive = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Decline removes a pending account. Active accounts cannot be declined.
func (s *AccountService) Decline(ctx context.Context, targetUserID string) error {
	user, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("user %s: %w", targetUserID, err)
	}
	if user.IsActive {
		return fmt.Errorf("%w: account already approved", ErrValidation)
	}
	if err := s.userRepo.Delete(ctx, targetUserID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListAwaitingApproval returns pending customer and collector accounts.
func (s *AccountService) ListAwaitingApproval(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.ListAwaitingApproval(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}
	return users, nil
}

// Profile user-visible profile fields
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// GetProfile returns the user's profile.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return &Profile{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	}, nil
}

// UpdateProfileReq profile update payload; empty fields are left unchanged
type UpdateProfileReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateProfile updates the user's name, phone or password.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileReq) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return nil, fmt.Errorf("%w: password too short", ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &Profile{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	}, nil
}
