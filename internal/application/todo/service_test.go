package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/abdussamadse/todo-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTodoStore struct{ mock.Mock }

func (m *mockTodoStore) Put(ctx context.Context, t *domain.Todo) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTodoStore) Get(ctx context.Context, todoID string) (*domain.Todo, error) {
	args := m.Called(ctx, todoID)
	if td, _ := args.Get(0).(*domain.Todo); td != nil {
		return td, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTodoStore) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Todo), args.Error(1)
}
func (m *mockTodoStore) Update(ctx context.Context, todoID string, updates map[string]interface{}) error {
	return m.Called(ctx, todoID, updates).Error(0)
}
func (m *mockTodoStore) Delete(ctx context.Context, todoID string) error {
	return m.Called(ctx, todoID).Error(0)
}
func (m *mockTodoStore) DeleteAllByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func strPtr(s string) *string { return &s }

func TestCreate_AppliesDefaults(t *testing.T) {
	ts := &mockTodoStore{}
	var created *domain.Todo
	ts.On("Put", mock.Anything, mock.AnythingOfType("*domain.Todo")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Todo)
	}).Return(nil)

	svc := NewService(ts)
	td, err := svc.Create(context.Background(), "u1", domain.CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.TodoStatusPending, td.Status)
	assert.Equal(t, domain.TodoPriorityMedium, td.Priority)
	assert.Equal(t, "u1", td.UserID)
	assert.NotEmpty(t, td.TodoID)
	assert.Nil(t, td.DueDate)
}

func TestCreate_ParsesDueDate(t *testing.T) {
	ts := &mockTodoStore{}
	ts.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(ts)
	td, err := svc.Create(context.Background(), "u1", domain.CreateTodoRequest{
		Title:   "file taxes",
		DueDate: strPtr("2026-04-15T00:00:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, td.DueDate)
	assert.Equal(t, 2026, td.DueDate.Year())
}

func TestCreate_BadDueDate(t *testing.T) {
	ts := &mockTodoStore{}
	svc := NewService(ts)
	_, err := svc.Create(context.Background(), "u1", domain.CreateTodoRequest{
		Title:   "file taxes",
		DueDate: strPtr("15/04/2026"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	ts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestGet_OtherUsersTodo_HiddenAsNotFound(t *testing.T) {
	ts := &mockTodoStore{}
	ts.On("Get", mock.Anything, "t1").Return(&domain.Todo{TodoID: "t1", UserID: "owner"}, nil)

	svc := NewService(ts)
	_, err := svc.Get(context.Background(), "intruder", "t1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_PartialFieldsOnly(t *testing.T) {
	ts := &mockTodoStore{}
	existing := &domain.Todo{TodoID: "t1", UserID: "u1", Title: "old", Status: domain.TodoStatusPending}
	ts.On("Get", mock.Anything, "t1").Return(existing, nil)
	ts.On("Update", mock.Anything, "t1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasTitle := m[fieldTitle]
		_, hasStatus := m[fieldStatus]
		return len(m) == 2 && hasTitle && hasStatus
	})).Return(nil)

	svc := NewService(ts)
	_, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTodoRequest{
		Title:  strPtr("new title"),
		Status: strPtr(domain.TodoStatusCompleted),
	})
	require.NoError(t, err)
	ts.AssertExpectations(t)
}

func TestUpdate_NoFields_ReturnsUnchanged(t *testing.T) {
	ts := &mockTodoStore{}
	existing := &domain.Todo{TodoID: "t1", UserID: "u1", Title: "old"}
	ts.On("Get", mock.Anything, "t1").Return(existing, nil)

	svc := NewService(ts)
	td, err := svc.Update(context.Background(), "u1", "t1", domain.UpdateTodoRequest{})
	require.NoError(t, err)
	assert.Equal(t, "old", td.Title)
	ts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_OtherUsersTodo_NotDeleted(t *testing.T) {
	ts := &mockTodoStore{}
	ts.On("Get", mock.Anything, "t1").Return(&domain.Todo{TodoID: "t1", UserID: "owner"}, nil)

	svc := NewService(ts)
	err := svc.Delete(context.Background(), "intruder", "t1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	ts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteAll_ScopedToUser(t *testing.T) {
	ts := &mockTodoStore{}
	ts.On("DeleteAllByUser", mock.Anything, "u1").Return(nil)

	svc := NewService(ts)
	require.NoError(t, svc.DeleteAll(context.Background(), "u1"))
	ts.AssertExpectations(t)
}
