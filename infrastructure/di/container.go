package di

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"riskreport-backend/application/queries"
	querybus "riskreport-backend/application/queries/bus"
	queries_handlers "riskreport-backend/application/queries/handlers"
	"riskreport-backend/infrastructure/config"
	"riskreport-backend/infrastructure/store"
	"riskreport-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *observability.Collector
	Store    store.ArtifactStore
	Cache    *InMemoryCache
	QueryBus *querybus.QueryBus
}

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	metrics := observability.NewCollector("riskreport")

	artifactStore, err := ProvideArtifactStore(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	cache := NewInMemoryCache()
	queryBus := ProvideQueryBus(artifactStore, cache, cfg, metrics, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Store:    artifactStore,
		Cache:    cache,
		QueryBus: queryBus,
	}, nil
}

// Shutdown releases container-held resources
func (c *Container) Shutdown() {
	c.Cache.Close()
	if closer, ok := c.Store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			c.Logger.Warn("Failed to close artifact store", zap.Error(err))
		}
	}
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.IsLambda {
		// CloudWatch stamps every line itself
		zapCfg.EncoderConfig.TimeKey = ""
	}

	return zapCfg.Build()
}

// ProvideArtifactStore creates the configured artifact store
func ProvideArtifactStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) (store.ArtifactStore, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.AWSRegion),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := awsdynamodb.NewFromConfig(awsCfg)
		return store.NewDynamoDBStore(client, cfg.DynamoDBTable, logger, metrics), nil
	default:
		return store.NewFSStore(cfg.ArtifactsDir, logger, metrics)
	}
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

// Handle implements querybus.QueryHandler
func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	artifactStore store.ArtifactStore,
	cache *InMemoryCache,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()
	caching := querybus.NewCachingMiddleware(cache, cfg.CacheTTLSeconds)

	// Register GetDocumentQuery handler
	documentHandler := queries_handlers.NewGetDocumentHandler(artifactStore, logger)
	queryBus.Register(queries.GetDocumentQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			docQuery, ok := query.(queries.GetDocumentQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return documentHandler.Handle(ctx, docQuery)
		},
	})

	// Register GetSectionQuery handler, cached: transforms are pure over the
	// loaded artifact
	sectionHandler := queries_handlers.NewGetSectionHandler(artifactStore, logger)
	queryBus.Register(queries.GetSectionQuery{}, caching.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			sectionQuery, ok := query.(queries.GetSectionQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return sectionHandler.Handle(ctx, sectionQuery)
		},
	}))

	// Register GetSubgraphQuery handler, cached: extraction is deterministic
	// for identical inputs
	subgraphHandler := queries_handlers.NewGetSubgraphHandler(artifactStore, metrics, logger)
	queryBus.Register(queries.GetSubgraphQuery{}, caching.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			subgraphQuery, ok := query.(queries.GetSubgraphQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return subgraphHandler.Handle(ctx, subgraphQuery)
		},
	}))

	return queryBus
}
