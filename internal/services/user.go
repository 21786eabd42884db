package services

import (
	"context"
	"errors"

	"github.com/doctorchannel/apiserver/internal/store"
	"github.com/doctorchannel/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	SetPassword(ctx context.Context, email, passwordHash, role string) error
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates an account. The incoming record carries the plaintext
// password; it is bcrypt-hashed before anything is persisted, the role
// is forced to USER and the account starts active.
func (s *UserService) Register(ctx context.Context, user types.User) (types.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return types.User{}, err
	}
	if exists {
		return types.User{}, ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user.Password = string(hashed)
	user.Role = types.RoleUser
	user.IsActive = true

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// The unique index catches the race between the existence
		// check and the insert.
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrEmailInUse
		}
		return types.User{}, err
	}
	return created, nil
}

// Authenticate verifies the email/password pair and returns the account.
// An unknown email and a wrong password fail identically.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// SetAdminPassword resets the password for the account with the given
// email and promotes it to ADMIN. Used by the operational CLI.
func (s *UserService) SetAdminPassword(ctx context.Context, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, email, string(hashed), types.RoleAdmin)
}
