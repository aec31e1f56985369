package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/thaisenti/internal/models"
)

const (
	maxBatchSize = 25
	historyTTL   = 24 * time.Hour
)

// DynamoAPI is the part of *dynamodb.Client the store uses.
type DynamoAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoStore keeps history in a table keyed by session_id (hash) and id (range). Record ids are
// UUIDv7 so the range key sorts chronologically. Items expire through the "ttl" attribute.
type DynamoStore struct {
	db      DynamoAPI
	table   string
	limit   int
	backoff time.Duration
}

func NewDynamoStore(db DynamoAPI, table string, limit int) *DynamoStore {
	return &DynamoStore{db: db, table: table, limit: limit, backoff: 500 * time.Millisecond}
}

func (s *DynamoStore) Add(ctx context.Context, session string, records ...models.AnalysisResult) error {
	expiresAt := time.Now().Add(historyTTL).Unix()

	requests := make([]types.WriteRequest, 0, len(records))
	for _, r := range records {
		r.SessionID = session
		item, err := attributevalue.MarshalMap(r)
		if err != nil {
			return fmt.Errorf("[DynamoDB] marshal history record: %w", err)
		}
		item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt)}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	if err := s.batchWrite(ctx, requests); err != nil {
		return err
	}

	slog.Debug("[DynamoDB] Stored history records",
		slog.String("session_id", session),
		slog.Int("count", len(records)))
	return nil
}

func (s *DynamoStore) List(ctx context.Context, session string, limit int) ([]models.AnalysisResult, error) {
	if limit <= 0 || (s.limit > 0 && limit > s.limit) {
		limit = s.limit
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("session_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: session},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	var records []models.AnalysisResult
	paginator := dynamodb.NewQueryPaginator(s.db, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] query history: %w", err)
		}

		var page []models.AnalysisResult
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[DynamoDB] unmarshal history page: %w", err)
		}
		records = append(records, page...)

		if limit > 0 && len(records) >= limit {
			records = records[:limit]
			break
		}
	}
	return records, nil
}

// Clear deletes every row of the session, not only the newest HISTORY_LIMIT ones.
func (s *DynamoStore) Clear(ctx context.Context, session string) error {
	paginator := dynamodb.NewQueryPaginator(s.db, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("session_id = :sid"),
		ProjectionExpression:   aws.String("id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: session},
		},
	})

	var requests []types.WriteRequest
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("[DynamoDB] query history keys: %w", err)
		}

		var keys []struct {
			ID string `dynamodbav:"id"`
		}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &keys); err != nil {
			return fmt.Errorf("[DynamoDB] unmarshal history keys: %w", err)
		}
		for _, k := range keys {
			requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"session_id": &types.AttributeValueMemberS{Value: session},
					"id":         &types.AttributeValueMemberS{Value: k.ID},
				},
			}})
		}
	}

	if err := s.batchWrite(ctx, requests); err != nil {
		return err
	}

	slog.Debug("[DynamoDB] Cleared history",
		slog.String("session_id", session),
		slog.Int("count", len(requests)))
	return nil
}

// batchWrite sends requests in chunks of 25 and retries unprocessed items with backoff.
func (s *DynamoStore) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	for i := 0; i < len(requests); i += maxBatchSize {
		if err := ctx.Err(); err != nil {
			slog.Warn("[DynamoDB] context canceled")
			return err
		}

		end := i + maxBatchSize
		if end > len(requests) {
			end = len(requests)
		}

		out, err := s.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: requests[i:end]},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write history: %w", err)
		}

		retryCount := 0
		backoff := s.backoff
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed items...",
				slog.Int("retry_attempt", retryCount+1),
				slog.Int("remaining_items", len(out.UnprocessedItems[s.table])))

			out, err = s.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			return fmt.Errorf("[DynamoDB] %d items not written after retries", len(out.UnprocessedItems[s.table]))
		}
	}
	return nil
}
