/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB is a Connection backed by DynamoDB tables. Each entity table maps
// to a DynamoDB table whose partition key is the entity map's key column.
type DynamoDB struct {
	name   string
	client *sdk.Client
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
// Empty access keys fall back to the default credential chain, and a
// non-empty endpoint overrides the regional one (DynamoDB Local).
func NewDynamoDBClient(ctx context.Context, accessKey, secretKey, region, endpoint string) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return client, nil
}

// NewDynamoDB wraps an existing client.
func NewDynamoDB(name string, client *sdk.Client) *DynamoDB {
	return &DynamoDB{name: name, client: client}
}

func openDynamoDB(name string, s Settings) (*DynamoDB, error) {
	client, err := NewDynamoDBClient(context.Background(), s.AccessKey, s.SecretKey, s.Region, s.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewDynamoDB(name, client), nil
}

// Name returns the connection name.
func (d *DynamoDB) Name() string { return d.name }

// Driver returns "dynamodb".
func (d *DynamoDB) Driver() string { return "dynamodb" }

// Find fetches one item by partition key value.
func (d *DynamoDB) Find(ctx context.Context, table, key string, id any) (map[string]any, bool, error) {
	av, err := attributevalue.Marshal(id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(table),
		Key:       map[string]types.AttributeValue{key: av},
	})
	if err != nil {
		return nil, false, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}

	var row map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return row, true, nil
}

// Insert writes a new item.
func (d *DynamoDB) Insert(ctx context.Context, table, key string, row map[string]any) error {
	return d.put(ctx, table, row)
}

// Update rewrites the item. DynamoDB PutItem replaces whole items, which
// matches the full-row update contract.
func (d *DynamoDB) Update(ctx context.Context, table, key string, id any, row map[string]any) error {
	return d.put(ctx, table, row)
}

func (d *DynamoDB) put(ctx context.Context, table string, row map[string]any) error {
	av, err := attributevalue.MarshalMap(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	if _, err := d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes the item whose partition key equals id.
func (d *DynamoDB) Delete(ctx context.Context, table, key string, id any) error {
	av, err := attributevalue.Marshal(id)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	if _, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(table),
		Key:       map[string]types.AttributeValue{key: av},
	}); err != nil {
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}

// Select scans the table with the criteria as a filter expression. Ordering
// and limiting happen client-side since Scan returns items unordered.
func (d *DynamoDB) Select(ctx context.Context, table string, q Query) ([]map[string]any, error) {
	input := &sdk.ScanInput{TableName: aws.String(table)}

	if len(q.Criteria) > 0 {
		conds := make([]string, 0, len(q.Criteria))
		names := make(map[string]string, len(q.Criteria))
		values := make(map[string]types.AttributeValue, len(q.Criteria))
		for i, col := range sortedColumns(q.Criteria) {
			av, err := attributevalue.Marshal(q.Criteria[col])
			if err != nil {
				return nil, fmt.Errorf("failed to marshal criteria %q: %w", col, err)
			}
			n := fmt.Sprintf("#c%d", i)
			v := fmt.Sprintf(":v%d", i)
			names[n] = col
			values[v] = av
			conds = append(conds, fmt.Sprintf("%s = %s", n, v))
		}
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var out []map[string]any
	paginator := sdk.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Scan error: %w", err)
		}
		for _, item := range page.Items {
			var row map[string]any
			if err := attributevalue.UnmarshalMap(item, &row); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			out = append(out, row)
		}
	}

	if q.OrderBy != "" {
		sort.Slice(out, func(i, j int) bool {
			less := compareValues(out[i][q.OrderBy], out[j][q.OrderBy]) < 0
			if q.Descending {
				return !less
			}
			return less
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Ping issues a one-table ListTables call to verify connectivity.
func (d *DynamoDB) Ping(ctx context.Context) error {
	_, err := d.client.ListTables(ctx, &sdk.ListTablesInput{Limit: aws.Int32(1)})
	return err
}

// Close is a no-op; the SDK client holds no persistent resources.
func (d *DynamoDB) Close() error { return nil }
