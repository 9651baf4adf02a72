package itemlister_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore/itemstoretest"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/metrics"
	itemlister "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/item-lister"
)

func TestHandler(t *testing.T) {
	milk := itemstoretest.Record(map[string]string{
		"itemID": "1", "userEmail": "a@x.com", "itemName": "Milk", "expiryDate": "2024-06-01",
	})
	eggs := itemstoretest.Record(map[string]string{
		"itemID": "2", "userEmail": "b@x.com", "itemName": "Eggs", "expiryDate": "2024-06-03",
	})
	bread := itemstoretest.Record(map[string]string{
		"itemID": "3", "userEmail": "a@x.com", "itemName": "Bread",
	})

	testCases := []struct {
		name               string
		table              *itemstoretest.Table
		expectedStatusCode int
		expectedBody       string
		expectedItems      []map[string]interface{}
	}{
		{
			name:               "empty table",
			table:              &itemstoretest.Table{},
			expectedStatusCode: http.StatusOK,
			expectedBody:       "[]",
		},
		{
			name: "all owners in one list",
			table: &itemstoretest.Table{
				Records: []map[string]types.AttributeValue{milk, eggs},
			},
			expectedStatusCode: http.StatusOK,
			expectedItems: []map[string]interface{}{
				{"itemID": "1", "userEmail": "a@x.com", "itemName": "Milk", "expiryDate": "2024-06-01"},
				{"itemID": "2", "userEmail": "b@x.com", "itemName": "Eggs", "expiryDate": "2024-06-03"},
			},
		},
		{
			name: "follows every page",
			table: &itemstoretest.Table{
				PageSize: 1,
				Records:  []map[string]types.AttributeValue{milk, eggs, bread},
			},
			expectedStatusCode: http.StatusOK,
			expectedItems: []map[string]interface{}{
				{"itemID": "1", "userEmail": "a@x.com", "itemName": "Milk", "expiryDate": "2024-06-01"},
				{"itemID": "2", "userEmail": "b@x.com", "itemName": "Eggs", "expiryDate": "2024-06-03"},
				{"itemID": "3", "userEmail": "a@x.com", "itemName": "Bread"},
			},
		},
		{
			name: "store failure",
			table: &itemstoretest.Table{
				ScanError: errors.New("ResourceNotFoundException: table GroceryItems not found"),
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody:       `{"error":"item store request failed"}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			policy := cors.Permissive()
			handler := itemlister.Handler{
				Store:   &itemstore.Store{Client: testCase.table, TableName: "GroceryItems"},
				CORS:    policy,
				Metrics: metrics.Discard,
				Logger:  zerolog.Nop(),
			}

			response, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})
			require.NoError(t, err)

			assert.Equal(t, testCase.expectedStatusCode, response.StatusCode)
			assert.Equal(t, policy.Headers(), response.Headers)

			if testCase.expectedItems == nil {
				assert.Equal(t, testCase.expectedBody, response.Body)
				return
			}

			var items []map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(response.Body), &items))
			assert.Equal(t, testCase.expectedItems, items)
		})
	}
}
