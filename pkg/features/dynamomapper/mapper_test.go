package dynamomapper_test

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/dynamomapper"
)

func TestSimplifyDynamoDBItem(t *testing.T) {
	testCases := []struct {
		name           string
		item           map[string]types.AttributeValue
		expectedResult map[string]interface{}
	}{
		{
			name: "grocery record",
			item: map[string]types.AttributeValue{
				"userEmail":  &types.AttributeValueMemberS{Value: "a@x.com"},
				"itemName":   &types.AttributeValueMemberS{Value: "Milk"},
				"expiryDate": &types.AttributeValueMemberS{Value: "2024-06-01"},
			},
			expectedResult: map[string]interface{}{
				"userEmail":  "a@x.com",
				"itemName":   "Milk",
				"expiryDate": "2024-06-01",
			},
		},
		{
			name: "number stays a string",
			item: map[string]types.AttributeValue{
				"quantity": &types.AttributeValueMemberN{Value: "2.50"},
			},
			expectedResult: map[string]interface{}{
				"quantity": "2.50",
			},
		},
		{
			name: "boolean and null",
			item: map[string]types.AttributeValue{
				"opened": &types.AttributeValueMemberBOOL{Value: true},
				"note":   &types.AttributeValueMemberNULL{Value: true},
			},
			expectedResult: map[string]interface{}{
				"opened": true,
				"note":   nil,
			},
		},
		{
			name: "string set",
			item: map[string]types.AttributeValue{
				"tags": &types.AttributeValueMemberSS{Value: []string{"dairy", "fridge"}},
			},
			expectedResult: map[string]interface{}{
				"tags": []string{"dairy", "fridge"},
			},
		},
		{
			name: "nested map and list",
			item: map[string]types.AttributeValue{
				"store": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
					"name": &types.AttributeValueMemberS{Value: "corner shop"},
					"aisles": &types.AttributeValueMemberL{Value: []types.AttributeValue{
						&types.AttributeValueMemberN{Value: "3"},
						&types.AttributeValueMemberS{Value: "fridge"},
					}},
				}},
			},
			expectedResult: map[string]interface{}{
				"store": map[string]interface{}{
					"name":   "corner shop",
					"aisles": []interface{}{"3", "fridge"},
				},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expectedResult, dynamomapper.SimplifyDynamoDBItem(testCase.item))
		})
	}
}

func TestSimplifyDynamoDBItemsEmpty(t *testing.T) {
	result := dynamomapper.SimplifyDynamoDBItems(nil)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(encoded))
}
