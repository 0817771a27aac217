package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abdussamadse/todo-server/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TodoRepo provides typed DynamoDB operations for the todos table.
type TodoRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTodoRepo(client *dynamodb.Client, tableName string) *TodoRepo {
	return &TodoRepo{client: client, tableName: tableName}
}

func (r *TodoRepo) Put(ctx context.Context, t *domain.Todo) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal todo: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TodoRepo) Get(ctx context.Context, todoID string) (*domain.Todo, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(attrTodoID, todoID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}
	var t domain.Todo
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser returns all todos owned by userID, newest first, via the
// user_id-created_at-index GSI.
func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-created_at-index"),
		KeyConditionExpression:    aws.String("#u = :v"),
		ExpressionAttributeNames:  map[string]string{"#u": attrUserID},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var todos []domain.Todo
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &todos); err != nil {
		return nil, err
	}
	// Query pages are already ordered by the GSI sort key; keep the order
	// stable after unmarshalling in case of duplicate timestamps.
	sort.SliceStable(todos, func(i, j int) bool { return todos[i].CreatedAt.After(todos[j].CreatedAt) })
	return todos, nil
}

func (r *TodoRepo) Update(ctx context.Context, todoID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(attrTodoID, todoID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(todo_id)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
		}
	}
	return err
}

func (r *TodoRepo) Delete(ctx context.Context, todoID string) error {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey(attrTodoID, todoID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return err
	}
	if out.Attributes == nil {
		return fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}
	return nil
}

// DeleteAllByUser removes every todo owned by userID. DynamoDB has no
// delete-by-query, so items are listed first and deleted in batches of 25.
func (r *TodoRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	todos, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for start := 0; start < len(todos); start += 25 {
		end := start + 25
		if end > len(todos) {
			end = len(todos)
		}
		reqs := make([]types.WriteRequest, 0, end-start)
		for _, t := range todos[start:end] {
			reqs = append(reqs, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: strKey(attrTodoID, t.TodoID)},
			})
		}
		_, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: reqs},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
