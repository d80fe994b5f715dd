package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
	"lendloop-backend/internal/security"
)

type authService struct {
	repos        repository.Repos
	tx           repository.Transactor
	tokenManager security.TokenManager
	signupGrant  int
}

// NewAuthService builds the identity provider. signupGrant is the credit
// balance every new account starts with.
func NewAuthService(repos repository.Repos, tx repository.Transactor, tm security.TokenManager, signupGrant int) AuthService {
	return &authService{
		repos:        repos,
		tx:           tx,
		tokenManager: tm,
		signupGrant:  signupGrant,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, "", "", domain.ErrInvalidInput
	}

	if _, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
		return nil, "", "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Credits:      s.signupGrant,
	}
	err = s.tx.ExecTx(ctx, func(r repository.Repos) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		return r.Credits.Create(ctx, &domain.CreditTransaction{
			UserID:      user.ID,
			Amount:      s.signupGrant,
			Type:        domain.TransactionTypeSignupGrant,
			Description: "Welcome credit grant",
		})
	})
	if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	user.PasswordHash = ""
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.repos.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", "", domain.ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	user.PasswordHash = ""
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return "", "", domain.ErrUnauthorized
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", domain.ErrUnauthorized
	}

	// Re-read the user so a deleted account cannot refresh forever.
	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", domain.ErrUnauthorized
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
