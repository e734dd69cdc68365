package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

const bcryptCost = 10

// passwordDigest folds a password of any length into 44 bytes, below the
// 72-byte input limit of bcrypt.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// AccountService handles registration and login.
type AccountService interface {
	Register(ctx context.Context, username, password, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type accountService struct {
	repo repository.UserRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.UserRepository) AccountService {
	return &accountService{repo: repo}
}

// Register creates a user after checking that neither the username nor the
// email is taken. The check and the insert are separate round trips; a lost
// race is caught by the store's unique indexes and reported the same way.
func (s *accountService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login returns the user whose username and password both match.
func (s *accountService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordDigest(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
