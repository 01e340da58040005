package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-api-vendor/internal/domain"
)

// DocumentRepo manages document slots. PK: user_id, SK: document_type.
type DocumentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDocumentRepo(client *dynamodb.Client, tableName string) *DocumentRepo {
	return &DocumentRepo{client: client, tableName: tableName}
}

func (r *DocumentRepo) GetBySlot(ctx context.Context, userID string, t domain.DocumentType) (*domain.Document, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            compositeKey(fieldUserID, userID, fieldDocumentType, string(t)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("document not found: %w", domain.ErrNotFound)
	}
	return unmarshalDocument(out.Item)
}

// Create fills an empty slot. Fails with domain.ErrConflict if the slot is occupied.
func (r *DocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("slot %s/%s occupied: %w", d.UserID, d.Type, domain.ErrConflict)
	}
	return err
}

// Replace overwrites the slot unconditionally.
func (r *DocumentRepo) Replace(ctx context.Context, d *domain.Document) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DocumentRepo) ListByUser(ctx context.Context, userID string) ([]domain.Document, error) {
	var (
		docs     []domain.Document
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    aws.String("#u = :u"),
			ExpressionAttributeNames:  map[string]string{"#u": fieldUserID},
			ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Document
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		docs = append(docs, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return docs, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// Get finds one of the user's documents by id. A user holds at most one
// document per type, so a consistent query over the user's partition replaces
// an eventually consistent id index.
func (r *DocumentRepo) Get(ctx context.Context, userID, documentID string) (*domain.Document, error) {
	out, err := r.client.Query(ctx, r.getByIDInput(userID, documentID))
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("document not found: %w", domain.ErrNotFound)
	}
	return unmarshalDocument(out.Items[0])
}

func (r *DocumentRepo) getByIDInput(userID, documentID string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		KeyConditionExpression:   aws.String("#u = :u"),
		FilterExpression:         aws.String("#d = :d"),
		ExpressionAttributeNames: map[string]string{"#u": fieldUserID, "#d": fieldDocumentID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
			":d": &types.AttributeValueMemberS{Value: documentID},
		},
		ConsistentRead: aws.Bool(true),
	}
}

func unmarshalDocument(item map[string]types.AttributeValue) (*domain.Document, error) {
	var d domain.Document
	if err := attributevalue.UnmarshalMap(item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
