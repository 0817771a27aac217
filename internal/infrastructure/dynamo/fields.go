package dynamo

// DynamoDB attribute names used inside the repos themselves.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUpdatedAt = "updated_at"
	attrUserID     = "user_id"
	attrEmail      = "email"
	attrTodoID     = "todo_id"
)
