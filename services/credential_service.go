package services

import (
	"context"
	"errors"
	"strings"

	"doktor.link/configs/configslog"
	"doktor.link/models"
	"doktor.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialServiceError credential store errors.
type CredentialServiceError string

func (e CredentialServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials CredentialServiceError = "invalid credentials"
	ErrDuplicateUsername  CredentialServiceError = "username already exists"
	ErrInvalidRole        CredentialServiceError = "role must be doctor or patient"
	ErrCredentialRequired CredentialServiceError = "username and password are required"
	ErrPasswordTooLong    CredentialServiceError = "password must be at most 72 bytes"
	ErrUserNotFound       CredentialServiceError = "user not found"
	ErrHashingFailed      CredentialServiceError = "password could not be hashed"
)

// ICredentialService user provisioning and login verification.
type ICredentialService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ProvisionUser(ctx context.Context, username, password string, role models.Role) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}

// CredentialService implements ICredentialService with bcrypt hashes.
type CredentialService struct {
	repo      repositories.IUserRepository
	cost      int
	dummyHash []byte // compared against for unknown usernames so both failure paths cost the same
}

// NewCredentialService creates a CredentialService. cost is the bcrypt work factor.
func NewCredentialService(db *gorm.DB, cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	if err != nil {
		configslog.Log.Warn("Dummy hash could not be generated", zap.Error(err))
	}
	return &CredentialService{
		repo:      repositories.NewUserRepository(db),
		cost:      cost,
		dummyHash: dummy,
	}
}

func (s *CredentialService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		configslog.Log.Error("bcrypt failed", zap.Error(err))
		return "", ErrHashingFailed
	}
	return string(b), nil
}

// Authenticate returns the user when password matches its stored hash.
// An unknown username and a wrong password are indistinguishable to the caller.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			configslog.Log.Info("Login failed", zap.String("username", username), zap.String("reason", "unknown user"))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		configslog.Log.Info("Login failed", zap.String("username", username), zap.String("reason", "password mismatch"))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ProvisionUser creates a user with a freshly hashed password.
func (s *CredentialService) ProvisionUser(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialRequired
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Password: hash, Role: role}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// lost a race with a concurrent provision of the same name
			return nil, ErrDuplicateUsername
		}
		configslog.Log.Error("ProvisionUser: create failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	configslog.Log.Info("User provisioned", zap.Uint("id", user.ID), zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

// GetUser loads a user by id.
func (s *CredentialService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the credential after verifying the current one.
func (s *CredentialService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if next == "" {
		return ErrCredentialRequired
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hash(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	configslog.Log.Info("Password rotated", zap.Uint("userID", userID))
	return nil
}

var _ ICredentialService = (*CredentialService)(nil)
