package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdussamadse/todo-server/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the outcome of a login attempt. Denied is set when the
// account status forbids login; it is a distinct branch, not an error, so the
// handler can answer with the 403 envelope the clients expect.
type LoginResult struct {
	Denied string // "" when allowed, otherwise StatusInactive or StatusBlocked
	Token  string
	User   *domain.User
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	repo   userStore
	signer tokenSigner
}

func NewService(repo userStore, signer tokenSigner) Service {
	return &service{repo: repo, signer: signer}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	// Inactive and blocked accounts never reach the password check, and never
	// receive a token regardless of credential correctness.
	switch u.Status {
	case domain.StatusInactive:
		return &LoginResult{Denied: domain.StatusInactive, User: u}, nil
	case domain.StatusBlocked:
		return &LoginResult{Denied: domain.StatusBlocked, User: u}, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, User: u}, nil
}
