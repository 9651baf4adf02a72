package itemstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/grocery"
)

type DynamoApiClient interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store reads and writes grocery items in a single DynamoDB table.
type Store struct {
	Client    DynamoApiClient
	TableName string
}

type scanOptions struct {
	projection []string
}

type ScanOption func(*scanOptions)

// WithProjection limits the attributes returned by a scan.
func WithProjection(attributes ...string) ScanOption {
	return func(o *scanOptions) {
		o.projection = append(o.projection, attributes...)
	}
}

func (s *Store) Put(ctx context.Context, item grocery.Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("itemstore: marshal failed: %w", err)
	}

	if _, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("itemstore: put failed: %w", err)
	}

	return nil
}

// ScanAll reads the whole table, following LastEvaluatedKey until the last page.
func (s *Store) ScanAll(ctx context.Context, opts ...ScanOption) ([]map[string]types.AttributeValue, error) {
	var options scanOptions
	for _, opt := range opts {
		opt(&options)
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(s.TableName),
	}

	if len(options.projection) > 0 {
		names := make([]expression.NameBuilder, 0, len(options.projection))
		for _, attribute := range options.projection {
			names = append(names, expression.Name(attribute))
		}
		expr, err := expression.NewBuilder().
			WithProjection(expression.NamesList(names[0], names[1:]...)).
			Build()
		if err != nil {
			return nil, fmt.Errorf("itemstore: building projection failed: %w", err)
		}
		input.ProjectionExpression = expr.Projection()
		input.ExpressionAttributeNames = expr.Names()
	}

	records := []map[string]types.AttributeValue{}

	paginator := dynamodb.NewScanPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("itemstore: scan failed: %w", err)
		}
		records = append(records, page.Items...)
	}

	return records, nil
}

// Items scans the table and decodes every record into a grocery item.
// Records missing attributes decode with empty fields.
func (s *Store) Items(ctx context.Context, opts ...ScanOption) ([]grocery.Item, error) {
	records, err := s.ScanAll(ctx, opts...)
	if err != nil {
		return nil, err
	}

	items := make([]grocery.Item, 0, len(records))
	if err := attributevalue.UnmarshalListOfMaps(records, &items); err != nil {
		return nil, fmt.Errorf("itemstore: unmarshal failed: %w", err)
	}

	return items, nil
}
