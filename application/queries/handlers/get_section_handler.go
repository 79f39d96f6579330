package handlers

import (
	"context"

	"go.uber.org/zap"

	"riskreport-backend/application/queries"
	"riskreport-backend/domain/report"
	"riskreport-backend/infrastructure/store"
)

// GetSectionHandler serves one section of an account's artifact with its
// display transform applied
type GetSectionHandler struct {
	store  store.ArtifactStore
	logger *zap.Logger
}

// NewGetSectionHandler creates a new section handler
func NewGetSectionHandler(store store.ArtifactStore, logger *zap.Logger) *GetSectionHandler {
	return &GetSectionHandler{
		store:  store,
		logger: logger,
	}
}

// Handle executes the section query
func (h *GetSectionHandler) Handle(ctx context.Context, query queries.GetSectionQuery) (*queries.GetSectionResult, error) {
	doc, err := h.store.Load(ctx, query.AccountID)
	if err != nil {
		return nil, err
	}

	raw, err := doc.Section(query.Section)
	if err != nil {
		h.logger.Warn("Section not in artifact",
			zap.String("accountID", query.AccountID),
			zap.String("section", query.Section),
		)
		return nil, err
	}

	value, err := report.TransformSection(query.Section, raw)
	if err != nil {
		return nil, err
	}

	return &queries.GetSectionResult{
		Section: query.Section,
		Value:   value,
	}, nil
}
