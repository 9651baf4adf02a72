// Package itemstoretest provides an in-memory DynamoDB table for handler tests.
package itemstoretest

import (
	"context"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Table keeps records in insertion order and serves scans in pages of PageSize.
// Setting PutError or ScanError makes the matching call fail.
type Table struct {
	mu sync.Mutex

	PageSize  int
	PutError  error
	ScanError error

	Records    []map[string]types.AttributeValue
	PutInputs  []*dynamodb.PutItemInput
	ScanInputs []*dynamodb.ScanInput
}

func (t *Table) PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.PutInputs = append(t.PutInputs, in)
	if t.PutError != nil {
		return nil, t.PutError
	}
	t.Records = append(t.Records, in.Item)

	return &dynamodb.PutItemOutput{}, nil
}

func (t *Table) Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ScanInputs = append(t.ScanInputs, in)
	if t.ScanError != nil {
		return nil, t.ScanError
	}

	start := 0
	if key, ok := in.ExclusiveStartKey["offset"].(*types.AttributeValueMemberN); ok {
		start, _ = strconv.Atoi(key.Value)
	}

	end := len(t.Records)
	if t.PageSize > 0 && start+t.PageSize < end {
		end = start + t.PageSize
	}

	out := &dynamodb.ScanOutput{
		Items: append([]map[string]types.AttributeValue{}, t.Records[start:end]...),
		Count: int32(end - start),
	}
	if end < len(t.Records) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"offset": &types.AttributeValueMemberN{Value: strconv.Itoa(end)},
		}
	}

	return out, nil
}

// Record builds a string-only record, which is all the grocery table stores.
func Record(attributes map[string]string) map[string]types.AttributeValue {
	record := make(map[string]types.AttributeValue, len(attributes))
	for key, value := range attributes {
		record[key] = &types.AttributeValueMemberS{Value: value}
	}
	return record
}
