package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWallet(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	w, err := decodeWallet(map[string]types.AttributeValue{
		fieldUserID:    &types.AttributeValueMemberS{Value: "u1"},
		fieldBalance:   &types.AttributeValueMemberN{Value: "75.5"},
		fieldCreatedAt: &types.AttributeValueMemberS{Value: ts.Format(time.RFC3339Nano)},
		fieldUpdatedAt: &types.AttributeValueMemberS{Value: ts.Format(time.RFC3339Nano)},
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", w.UserID)
	assert.Equal(t, "75.50", w.Balance.StringFixed(2))
	assert.True(t, ts.Equal(w.CreatedAt))
	assert.True(t, ts.Equal(w.UpdatedAt))
}

func TestDecodeWallet_MissingBalanceIsZero(t *testing.T) {
	w, err := decodeWallet(map[string]types.AttributeValue{
		fieldUserID: &types.AttributeValueMemberS{Value: "u1"},
	})
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
	assert.True(t, w.CreatedAt.IsZero())
}

func TestDecodeWallet_BadNumber(t *testing.T) {
	_, err := decodeWallet(map[string]types.AttributeValue{
		fieldBalance: &types.AttributeValueMemberN{Value: "not-a-number"},
	})
	assert.Error(t, err)
}

func TestDecodeWallet_BadTimestamp(t *testing.T) {
	_, err := decodeWallet(map[string]types.AttributeValue{
		fieldCreatedAt: &types.AttributeValueMemberS{Value: "yesterday"},
	})
	assert.Error(t, err)
}
