package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/naholgroupsclkln/nexora-backend/internal/domain"
)

// CodeRepo manages one-time verification codes.
// PK: email, SK: code_id. TTL attribute: expires_at.
type CodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCodeRepo(client *dynamodb.Client, tableName string) *CodeRepo {
	return &CodeRepo{client: client, tableName: tableName}
}

func (r *CodeRepo) Put(ctx context.Context, v *domain.VerificationCode) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetByEmailAndCode returns the record matching the exact (email, code) pair,
// or domain.ErrNotFound. The code value is a non-key attribute, so the query
// runs over the email partition with a filter on code.
func (r *CodeRepo) GetByEmailAndCode(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		KeyConditionExpression:   aws.String("email = :e"),
		FilterExpression:         aws.String("code = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":c": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification code: %w", domain.ErrNotFound)
	}
	var v domain.VerificationCode
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes one record by its full (email, code_id) identity so a
// concurrently issued code for the same address is left alone.
func (r *CodeRepo) Delete(ctx context.Context, email, codeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("email", email, "code_id", codeID),
	})
	return err
}

// DeleteAllByEmail invalidates every outstanding code for the address.
func (r *CodeRepo) DeleteAllByEmail(ctx context.Context, email string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		KeyConditionExpression:   aws.String("email = :e"),
		ProjectionExpression:     aws.String("email, code_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return err
	}
	if len(out.Items) == 0 {
		return nil
	}

	reqs := make([]types.WriteRequest, 0, len(out.Items))
	for _, item := range out.Items {
		reqs = append(reqs, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: item},
		})
	}
	for _, chunk := range chunkWriteRequests(reqs) {
		_, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: chunk},
		})
		if err != nil {
			return fmt.Errorf("batch delete codes for %s: %w", email, err)
		}
	}
	return nil
}
