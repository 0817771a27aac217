package domain

import "time"

const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in-progress"
	TodoStatusCompleted  = "completed"
)

const (
	TodoPriorityLow    = "low"
	TodoPriorityMedium = "medium"
	TodoPriorityHigh   = "high"
)

type Todo struct {
	TodoID      string     `json:"id" dynamodbav:"todo_id"`
	UserID      string     `json:"user_id" dynamodbav:"user_id"`
	Title       string     `json:"title" dynamodbav:"title"`
	Description string     `json:"description,omitempty" dynamodbav:"description"`
	Status      string     `json:"status" dynamodbav:"status"`
	Priority    string     `json:"priority" dynamodbav:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" dynamodbav:"due_date"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"` // expected format: RFC 3339
}

type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"` // expected format: RFC 3339
}
