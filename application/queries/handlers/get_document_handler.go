package handlers

import (
	"context"

	"go.uber.org/zap"

	"riskreport-backend/application/queries"
	"riskreport-backend/infrastructure/store"
)

// GetDocumentHandler serves an account's full analysis artifact
type GetDocumentHandler struct {
	store  store.ArtifactStore
	logger *zap.Logger
}

// NewGetDocumentHandler creates a new document handler
func NewGetDocumentHandler(store store.ArtifactStore, logger *zap.Logger) *GetDocumentHandler {
	return &GetDocumentHandler{
		store:  store,
		logger: logger,
	}
}

// Handle executes the document query
func (h *GetDocumentHandler) Handle(ctx context.Context, query queries.GetDocumentQuery) (*queries.GetDocumentResult, error) {
	doc, err := h.store.Load(ctx, query.AccountID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Artifact served",
		zap.String("accountID", query.AccountID),
		zap.Strings("sections", doc.SectionNames()),
	)

	return &queries.GetDocumentResult{Document: doc}, nil
}
