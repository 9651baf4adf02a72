package itemstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/grocery"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore/itemstoretest"
)

func TestPut(t *testing.T) {
	table := &itemstoretest.Table{}
	store := itemstore.Store{Client: table, TableName: "GroceryItems"}

	err := store.Put(context.Background(), grocery.Item{
		ID:         "1",
		OwnerEmail: "a@x.com",
		Name:       "Milk",
		ExpiryDate: "2024-06-01",
	})
	require.NoError(t, err)

	require.Len(t, table.PutInputs, 1)
	in := table.PutInputs[0]
	assert.Equal(t, "GroceryItems", *in.TableName)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "a@x.com"}, in.Item["userEmail"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Milk"}, in.Item["itemName"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-06-01"}, in.Item["expiryDate"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "1"}, in.Item["itemID"])
	assert.NotContains(t, in.Item, "createdAt")
}

func TestPutError(t *testing.T) {
	putErr := errors.New("throttled")
	store := itemstore.Store{Client: &itemstoretest.Table{PutError: putErr}, TableName: "GroceryItems"}

	err := store.Put(context.Background(), grocery.Item{ID: "1"})
	assert.ErrorIs(t, err, putErr)
}

func TestScanAll(t *testing.T) {
	testCases := []struct {
		name          string
		records       int
		pageSize      int
		expectedPages int
	}{
		{name: "empty table", records: 0, pageSize: 0, expectedPages: 1},
		{name: "single page", records: 3, pageSize: 0, expectedPages: 1},
		{name: "exact pages", records: 4, pageSize: 2, expectedPages: 2},
		{name: "partial last page", records: 5, pageSize: 2, expectedPages: 3},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			table := &itemstoretest.Table{PageSize: testCase.pageSize}
			for i := 0; i < testCase.records; i++ {
				table.Records = append(table.Records, itemstoretest.Record(map[string]string{
					"userEmail": "a@x.com",
					"itemName":  string(rune('a' + i)),
				}))
			}
			store := itemstore.Store{Client: table, TableName: "GroceryItems"}

			records, err := store.ScanAll(context.Background())
			require.NoError(t, err)

			assert.NotNil(t, records)
			assert.Len(t, records, testCase.records)
			assert.Len(t, table.ScanInputs, testCase.expectedPages)
		})
	}
}

func TestScanAllProjection(t *testing.T) {
	table := &itemstoretest.Table{}
	store := itemstore.Store{Client: table, TableName: "GroceryItems"}

	_, err := store.ScanAll(context.Background(), itemstore.WithProjection("userEmail", "itemName"))
	require.NoError(t, err)

	require.Len(t, table.ScanInputs, 1)
	in := table.ScanInputs[0]
	require.NotNil(t, in.ProjectionExpression)
	assert.Equal(t, "#0, #1", *in.ProjectionExpression)
	assert.Equal(t, map[string]string{"#0": "userEmail", "#1": "itemName"}, in.ExpressionAttributeNames)
}

func TestScanAllError(t *testing.T) {
	scanErr := errors.New("access denied")
	store := itemstore.Store{Client: &itemstoretest.Table{ScanError: scanErr}, TableName: "GroceryItems"}

	records, err := store.ScanAll(context.Background())
	assert.ErrorIs(t, err, scanErr)
	assert.Nil(t, records)
}

func TestItems(t *testing.T) {
	table := &itemstoretest.Table{
		PageSize: 1,
		Records: []map[string]types.AttributeValue{
			itemstoretest.Record(map[string]string{"userEmail": "a@x.com", "itemName": "Milk", "expiryDate": "2024-06-01"}),
			itemstoretest.Record(map[string]string{"userEmail": "b@x.com", "itemName": "Eggs"}),
		},
	}
	store := itemstore.Store{Client: table, TableName: "GroceryItems"}

	items, err := store.Items(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []grocery.Item{
		{OwnerEmail: "a@x.com", Name: "Milk", ExpiryDate: "2024-06-01"},
		{OwnerEmail: "b@x.com", Name: "Eggs"},
	}, items)
}
