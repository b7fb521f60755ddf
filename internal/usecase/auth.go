package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
	"github.com/polkiloo/laundry/internal/domain/repository"
	pkgAuth "github.com/polkiloo/laundry/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a customer account and returns an auth token for it.
func (u *AuthUseCase) Register(ctx context.Context, name, phone, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, "", fmt.Errorf("%w: %w", domainErrors.ErrValidation, err)
		}
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.NewUser{
		Name:         name,
		PhoneNumber:  phone,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", storeError(err)
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, phone, password string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", storeError(err)
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the caller identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Identity, error) {
	if token == "" {
		return pkgAuth.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Profile fetches the caller's own user record.
func (u *AuthUseCase) Profile(ctx context.Context, id int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		return nil, storeError(err)
	}
	return usr, nil
}

// EnsureAdmin makes sure an administrator with the given phone exists. An
// existing user is promoted; the stored password is left untouched.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, name, phone, password string) (*model.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		if usr.Role == model.RoleAdmin {
			return usr, nil
		}
		if err := u.users.SetRole(ctx, usr.ID, model.RoleAdmin); err != nil {
			return nil, storeError(err)
		}
		usr.Role = model.RoleAdmin
		return usr, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, storeError(err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err = u.users.Create(ctx, model.NewUser{
		Name:         strings.TrimSpace(name),
		PhoneNumber:  phone,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return usr, nil
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID, Role: string(usr.Role)})
}
