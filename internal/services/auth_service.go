package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotConfigured = errors.New("admin credentials are not configured")
)

// AdminStore is the account lookup used when no static credentials are configured.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

// AuthService checks admin credentials.
type AuthService struct {
	email    string
	password string
	admins   AdminStore
}

// NewAuthService builds a service that accepts the configured email and password
// and, when they are unset, the accounts stored in admins. admins may be nil.
func NewAuthService(email, password string, admins AdminStore) *AuthService {
	return &AuthService{
		email:    strings.TrimSpace(email),
		password: password,
		admins:   admins,
	}
}

// ValidateCredentials returns nil when email and password belong to an admin.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) error {
	if s.email != "" && s.password != "" {
		if s.matchStatic(email, password) {
			return nil
		}
		return ErrInvalidCredentials
	}

	if s.admins == nil {
		return ErrAdminNotConfigured
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		count, countErr := s.admins.Count(ctx)
		if countErr != nil {
			return countErr
		}
		if count == 0 {
			return ErrAdminNotConfigured
		}
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(admin.Password, password) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) matchStatic(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(s.email)),
	) == 1

	var passwordOK bool
	if utils.IsBcryptHash(s.password) {
		passwordOK = utils.CheckPassword(s.password, password)
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	return emailOK && passwordOK
}
