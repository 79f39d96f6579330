package handlers

import (
	"context"

	"go.uber.org/zap"

	"riskreport-backend/application/queries"
	"riskreport-backend/infrastructure/store"
	"riskreport-backend/pkg/observability"
	"riskreport-backend/pkg/utils"
)

// GetSubgraphHandler extracts bounded neighborhoods from an account's
// linkage graph
type GetSubgraphHandler struct {
	store   store.ArtifactStore
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewGetSubgraphHandler creates a new subgraph handler
func NewGetSubgraphHandler(store store.ArtifactStore, metrics *observability.Collector, logger *zap.Logger) *GetSubgraphHandler {
	return &GetSubgraphHandler{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle executes the subgraph query
func (h *GetSubgraphHandler) Handle(ctx context.Context, query queries.GetSubgraphQuery) (*queries.GetSubgraphResult, error) {
	doc, err := h.store.Load(ctx, query.AccountID)
	if err != nil {
		return nil, err
	}

	graph, err := doc.Linkage()
	if err != nil {
		h.observe("no_linkage")
		return nil, err
	}

	center := query.CenterNode
	if center == "" {
		center = utils.PadAccountNumber(query.AccountID)
	}

	result, err := graph.Extract(center, query.Degree)
	if err != nil {
		h.observe("failed")
		return nil, err
	}

	h.observe("ok")
	h.logger.Debug("Subgraph extracted",
		zap.String("accountID", query.AccountID),
		zap.String("center", center),
		zap.Int("degree", result.Degree),
		zap.Int("nodes", result.TotalNodes),
		zap.Int("links", result.TotalLinks),
	)

	return &queries.GetSubgraphResult{Subgraph: result}, nil
}

func (h *GetSubgraphHandler) observe(outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.SubgraphExtractions.WithLabelValues(outcome).Inc()
}
