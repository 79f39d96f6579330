package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"riskreport-backend/pkg/common"
)

// EndpointInfo describes one API endpoint in the catalog
type EndpointInfo struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

// EndpointCatalog is the response for the endpoint listing
type EndpointCatalog struct {
	AvailableEndpoints []EndpointInfo `json:"available_endpoints"`
	Note               string         `json:"note"`
}

// EndpointsHandler serves the self-describing endpoint catalog
type EndpointsHandler struct {
	logger *zap.Logger
}

// NewEndpointsHandler creates a new endpoints handler
func NewEndpointsHandler(logger *zap.Logger) *EndpointsHandler {
	return &EndpointsHandler{logger: logger}
}

// List handles GET /api/endpoints
func (h *EndpointsHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog := EndpointCatalog{
		AvailableEndpoints: []EndpointInfo{
			{Path: "/api/accounts/{accountID}/data", Method: "GET", Description: "Get the full analysis artifact for an account"},
			{Path: "/api/accounts/{accountID}/transactions", Method: "GET", Description: "Get transaction counts, amounts, and percentages by category and direction"},
			{Path: "/api/accounts/{accountID}/money-flow", Method: "GET", Description: "Get money flow analysis including total inflows, outflows, and net flow"},
			{Path: "/api/accounts/{accountID}/money-usage", Method: "GET", Description: "Get detailed money usage summary with flow analysis"},
			{Path: "/api/accounts/{accountID}/high-cash", Method: "GET", Description: "Get high cash summary analysis"},
			{Path: "/api/accounts/{accountID}/business-pattern", Method: "GET", Description: "Get business pattern analysis for industry alignment"},
			{Path: "/api/accounts/{accountID}/public-info", Method: "GET", Description: "Get public information about the company"},
			{Path: "/api/accounts/{accountID}/public-address", Method: "GET", Description: "Get public address information and reviews"},
			{Path: "/api/accounts/{accountID}/wire-usage", Method: "GET", Description: "Get wire transfer money usage analysis"},
			{Path: "/api/accounts/{accountID}/transactions-usage", Method: "GET", Description: "Get transaction usage rows sorted by direction and amount"},
			{Path: "/api/accounts/{accountID}/linkage/subgraph", Method: "GET", Description: "Get the bounded neighborhood subgraph around a center node (center_node, degree)"},
			{Path: "/api/endpoints", Method: "GET", Description: "List all available API endpoints"},
		},
		Note: "All endpoints return JSON data.",
	}

	if err := common.RespondJSON(w, http.StatusOK, catalog); err != nil {
		h.logger.Error("Failed to encode endpoint catalog", zap.Error(err))
	}
}
