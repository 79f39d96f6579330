package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"riskreport-backend/application/queries"
	querybus "riskreport-backend/application/queries/bus"
	"riskreport-backend/pkg/common"
	apperrors "riskreport-backend/pkg/errors"
)

// ReportHandler serves the analysis artifact endpoints
type ReportHandler struct {
	queryBus *querybus.QueryBus
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		logger:   logger,
	}
}

// GetDocument handles GET /accounts/{accountID}/data
func (h *ReportHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetDocumentQuery{AccountID: accountID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	docResult, ok := result.(*queries.GetDocumentResult)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewInternalError("unexpected document query result"))
		return
	}

	h.respond(w, r, docResult.Document)
}

// Section returns a handler serving GET /accounts/{accountID}/<endpoint>
// for one named artifact section
func (h *ReportHandler) Section(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")

		result, err := h.queryBus.Ask(r.Context(), queries.GetSectionQuery{
			AccountID: accountID,
			Section:   section,
		})
		if err != nil {
			h.errors.Handle(w, r, err)
			return
		}

		sectionResult, ok := result.(*queries.GetSectionResult)
		if !ok {
			h.errors.Handle(w, r, apperrors.NewInternalError("unexpected section query result"))
			return
		}

		h.respond(w, r, sectionResult.Value)
	}
}

func (h *ReportHandler) respond(w http.ResponseWriter, r *http.Request, data interface{}) {
	if err := common.RespondJSON(w, http.StatusOK, data); err != nil {
		h.logger.Error("Failed to encode response",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}
