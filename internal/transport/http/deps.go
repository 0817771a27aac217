package http

import (
	"context"
	"io"

	"github.com/abdussamadse/todo-server/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	// ScanPage returns a page of users; cursor is an opaque continuation token.
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

// TodoRepository is the minimal interface the router requires from a todo store.
type TodoRepository interface {
	Put(ctx context.Context, t *domain.Todo) error
	Get(ctx context.Context, todoID string) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
	Update(ctx context.Context, todoID string, updates map[string]interface{}) error
	Delete(ctx context.Context, todoID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

// Mailer is the email side channel OTP dispatch uses.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}
