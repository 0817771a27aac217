package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/abdussamadse/todo-server/internal/domain"
	"github.com/abdussamadse/todo-server/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldPriority    = "priority"
	fieldDueDate     = "due_date"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateTodoRequest) (*domain.Todo, error)
	List(ctx context.Context, userID string) ([]domain.Todo, error)
	Get(ctx context.Context, userID, todoID string) (*domain.Todo, error)
	Update(ctx context.Context, userID, todoID string, req domain.UpdateTodoRequest) (*domain.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
	DeleteAll(ctx context.Context, userID string) error
}

type todoStore interface {
	Put(ctx context.Context, t *domain.Todo) error
	Get(ctx context.Context, todoID string) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
	Update(ctx context.Context, todoID string, updates map[string]interface{}) error
	Delete(ctx context.Context, todoID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

type service struct {
	repo todoStore
}

func NewService(repo todoStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateTodoRequest) (*domain.Todo, error) {
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &domain.Todo{
		TodoID:      id.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = domain.TodoStatusPending
	}
	if t.Priority == "" {
		t.Priority = domain.TodoPriorityMedium
	}
	if err := s.repo.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	return s.getOwned(ctx, userID, todoID)
}

func (s *service) Update(ctx context.Context, userID, todoID string, req domain.UpdateTodoRequest) (*domain.Todo, error) {
	if _, err := s.getOwned(ctx, userID, todoID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if req.Priority != nil {
		updates[fieldPriority] = *req.Priority
	}
	if req.DueDate != nil {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		updates[fieldDueDate] = due
	}
	if len(updates) == 0 {
		return s.getOwned(ctx, userID, todoID)
	}
	if err := s.repo.Update(ctx, todoID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, todoID)
}

func (s *service) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.getOwned(ctx, userID, todoID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, todoID)
}

func (s *service) DeleteAll(ctx context.Context, userID string) error {
	return s.repo.DeleteAllByUser(ctx, userID)
}

// getOwned fetches a todo and hides other users' items behind not-found,
// so ids cannot be probed across accounts.
func (s *service) getOwned(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	t, err := s.repo.Get(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}
	return t, nil
}

func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("due_date must be in RFC 3339 format: %w", domain.ErrBadRequest)
	}
	return &t, nil
}
