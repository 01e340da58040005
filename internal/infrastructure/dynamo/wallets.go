package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-api-vendor/internal/domain"
	"github.com/shopspring/decimal"
)

// WalletRepo keeps one balance row per user. PK: user_id.
// Balances are stored as DynamoDB numbers so ADD stays exact.
type WalletRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewWalletRepo(client *dynamodb.Client, tableName string) *WalletRepo {
	return &WalletRepo{client: client, tableName: tableName}
}

// Credit adds amount to the user's balance, creating the row on first use.
// The whole read-modify-write happens server side in a single UpdateItem.
func (r *WalletRepo) Credit(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (*domain.Wallet, error) {
	now := at.UTC().Format(time.RFC3339Nano)
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey(fieldUserID, userID),
		UpdateExpression: aws.String("SET #c = if_not_exists(#c, :now), #u = :now ADD #b :amt"),
		ExpressionAttributeNames: map[string]string{
			"#c": fieldCreatedAt,
			"#u": fieldUpdatedAt,
			"#b": fieldBalance,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: now},
			":amt": &types.AttributeValueMemberN{Value: amount.String()},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("credit wallet: %w", err)
	}
	return decodeWallet(out.Attributes)
}

func (r *WalletRepo) Get(ctx context.Context, userID string) (*domain.Wallet, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldUserID, userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("wallet not found: %w", domain.ErrNotFound)
	}
	return decodeWallet(out.Item)
}

// decodeWallet reads the row by hand; attributevalue has no decimal support.
func decodeWallet(item map[string]types.AttributeValue) (*domain.Wallet, error) {
	w := &domain.Wallet{Balance: decimal.Zero}
	if v, ok := item[fieldUserID].(*types.AttributeValueMemberS); ok {
		w.UserID = v.Value
	}
	if v, ok := item[fieldBalance].(*types.AttributeValueMemberN); ok {
		b, err := decimal.NewFromString(v.Value)
		if err != nil {
			return nil, fmt.Errorf("decode balance %q: %w", v.Value, err)
		}
		w.Balance = b
	}
	var err error
	if w.CreatedAt, err = timeAttr(item, fieldCreatedAt); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = timeAttr(item, fieldUpdatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

func timeAttr(item map[string]types.AttributeValue, name string) (time.Time, error) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return t, nil
}
