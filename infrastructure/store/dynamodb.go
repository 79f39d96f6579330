package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"riskreport-backend/domain/report"
	"riskreport-backend/pkg/errors"
	"riskreport-backend/pkg/observability"
)

// DynamoDBStore serves artifacts from a DynamoDB table with one item per
// account. The analysis pipeline writes the artifact body as a JSON string
// attribute; this store never writes.
type DynamoDBStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
	metrics   *observability.Collector
}

var _ ArtifactStore = (*DynamoDBStore)(nil)

// artifactItem represents the DynamoDB item structure for an artifact
type artifactItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	AccountID string `dynamodbav:"AccountID"`
	Document  string `dynamodbav:"Document"`
	UpdatedAt string `dynamodbav:"UpdatedAt,omitempty"`
}

// NewDynamoDBStore creates a DynamoDB-backed artifact store
func NewDynamoDBStore(client *dynamodb.Client, tableName string, logger *zap.Logger, metrics *observability.Collector) *DynamoDBStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
		metrics:   metrics,
	}
}

// Load returns the parsed artifact for an account
func (s *DynamoDBStore) Load(ctx context.Context, accountID string) (*report.Document, error) {
	if accountID == "" {
		return nil, errors.NewValidationError("account identifier is required")
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "ACCOUNT#" + accountID},
			"SK": &types.AttributeValueMemberS{Value: "ARTIFACT"},
		},
	})
	if err != nil {
		s.observe("error")
		s.logger.Error("Failed to get artifact item",
			zap.String("accountID", accountID),
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return nil, errors.NewStorageError("get artifact", err)
	}

	if out.Item == nil {
		s.observe("missing")
		return nil, errors.NewNotFoundError(fmt.Sprintf("analysis artifact for account %q", accountID))
	}

	var item artifactItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		s.observe("error")
		return nil, errors.NewStorageError("unmarshal artifact item", err)
	}

	doc, err := report.ParseDocument([]byte(item.Document))
	if err != nil {
		s.observe("error")
		return nil, errors.Wrapf(err, "artifact for account %s", accountID)
	}

	s.observe("loaded")
	return doc, nil
}

func (s *DynamoDBStore) observe(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ArtifactLoads.WithLabelValues("dynamodb", outcome).Inc()
}
