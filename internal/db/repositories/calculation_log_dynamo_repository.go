package repositories

import (
	"context"
	"fmt"
	"time"

	"aerocost/api/internal/constants"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type calculationLogItem struct {
	AircraftID  string  `dynamodbav:"aircraft_id"`
	CreatedAt   string  `dynamodbav:"created_at"`
	ID          string  `dynamodbav:"id"`
	Kind        string  `dynamodbav:"kind"`
	ResultValue float64 `dynamodbav:"result_value"`
	Details     string  `dynamodbav:"details"`
}

// DynamoDBAPI is the subset of the DynamoDB client the log store calls.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// DynamoDB caps a BatchWriteItem call at 25 requests.
const (
	dynamoBatchSize       = 25
	dynamoBatchMaxRetries = 5
)

// CalculationLogDynamoRepo keeps calculation logs in DynamoDB.
//
// Table requirements:
//   - PK: aircraft_id (string)
//   - SK: created_at (string, RFC 3339 with nanoseconds, UTC)
type CalculationLogDynamoRepo struct {
	ddb       DynamoDBAPI
	tableName string
}

func NewCalculationLogDynamoRepo(ddb DynamoDBAPI, tableName string) *CalculationLogDynamoRepo {
	return &CalculationLogDynamoRepo{ddb: ddb, tableName: tableName}
}

func (r *CalculationLogDynamoRepo) Record(ctx context.Context, entry *gormModels.CalculationLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	av, err := attributevalue.MarshalMap(toCalculationLogItem(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal calculation log: %w", err)
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put calculation log: %w", err)
	}
	return nil
}

func (r *CalculationLogDynamoRepo) ListRecent(ctx context.Context, aircraftID string, limit int) ([]gormModels.CalculationLog, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#aircraft_id = :aircraft_id"),
		ExpressionAttributeNames: map[string]string{
			"#aircraft_id": "aircraft_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":aircraft_id": &types.AttributeValueMemberS{Value: aircraftID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query calculation logs: %w", err)
	}

	var items []calculationLogItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calculation logs: %w", err)
	}

	entries := make([]gormModels.CalculationLog, 0, len(items))
	for _, it := range items {
		entries = append(entries, fromCalculationLogItem(it))
	}
	return entries, nil
}

// DeleteByAircraft removes every log entry of an aircraft, paging through the
// partition and deleting keys in batches.
func (r *CalculationLogDynamoRepo) DeleteByAircraft(ctx context.Context, aircraftID string) error {
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("#aircraft_id = :aircraft_id"),
			ProjectionExpression:   aws.String("#aircraft_id, #created_at"),
			ExpressionAttributeNames: map[string]string{
				"#aircraft_id": "aircraft_id",
				"#created_at":  "created_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":aircraft_id": &types.AttributeValueMemberS{Value: aircraftID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return fmt.Errorf("failed to query calculation logs for delete: %w", err)
		}

		for i := 0; i < len(out.Items); i += dynamoBatchSize {
			end := min(i+dynamoBatchSize, len(out.Items))
			if err := r.deleteBatch(ctx, out.Items[i:end]); err != nil {
				return err
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *CalculationLogDynamoRepo) deleteBatch(ctx context.Context, keys []map[string]types.AttributeValue) error {
	requests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: map[string]types.AttributeValue{
				"aircraft_id": key["aircraft_id"],
				"created_at":  key["created_at"],
			}},
		})
	}

	pending := map[string][]types.WriteRequest{r.tableName: requests}
	for attempt := 0; attempt < dynamoBatchMaxRetries; attempt++ {
		out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("failed to delete calculation logs: %w", err)
		}
		if len(out.UnprocessedItems[r.tableName]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 100 * time.Millisecond):
		}
	}
	return fmt.Errorf("failed to delete calculation logs: %d requests left unprocessed", len(pending[r.tableName]))
}

func toCalculationLogItem(e *gormModels.CalculationLog) calculationLogItem {
	return calculationLogItem{
		AircraftID:  e.AircraftID,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:          e.ID,
		Kind:        string(e.Kind),
		ResultValue: e.ResultValue,
		Details:     string(e.Details),
	}
}

func fromCalculationLogItem(it calculationLogItem) gormModels.CalculationLog {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return gormModels.CalculationLog{
		ID:          it.ID,
		AircraftID:  it.AircraftID,
		Kind:        constants.CalculationKind(it.Kind),
		ResultValue: it.ResultValue,
		Details:     []byte(it.Details),
		CreatedAt:   createdAt,
	}
}
