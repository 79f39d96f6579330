package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"riskreport-backend/application/queries"
	querybus "riskreport-backend/application/queries/bus"
	"riskreport-backend/pkg/common"
	apperrors "riskreport-backend/pkg/errors"
)

// defaultDegree is the hop bound used when the request does not name one.
const defaultDegree = 1

// GraphHandler serves the linkage subgraph endpoint
type GraphHandler struct {
	queryBus *querybus.QueryBus
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		logger:   logger,
	}
}

// GetSubgraph handles GET /accounts/{accountID}/linkage/subgraph
func (h *GraphHandler) GetSubgraph(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	degree := defaultDegree
	if raw := r.URL.Query().Get("degree"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("degree must be an integer"))
			return
		}
		degree = parsed
	}

	query := queries.GetSubgraphQuery{
		AccountID:  accountID,
		CenterNode: r.URL.Query().Get("center_node"),
		Degree:     degree,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Warn("Subgraph extraction failed",
			zap.String("accountID", accountID),
			zap.String("center", query.CenterNode),
			zap.Int("degree", degree),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	subgraphResult, ok := result.(*queries.GetSubgraphResult)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewInternalError("unexpected subgraph query result"))
		return
	}

	if err := common.RespondJSON(w, http.StatusOK, subgraphResult.Subgraph); err != nil {
		h.logger.Error("Failed to encode subgraph response", zap.Error(err))
	}
}
