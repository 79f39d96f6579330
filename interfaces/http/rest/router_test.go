package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"riskreport-backend/domain/report"
	"riskreport-backend/infrastructure/config"
	"riskreport-backend/infrastructure/di"
	apperrors "riskreport-backend/pkg/errors"
)

const testArtifact = `{
	"transactions_data": {"total_count": 7},
	"money_usage_summary": {"flow_analysis": {"cash": 0.5}, "description": "d"},
	"transactions_usage_dict": [
		{"direction": "out", "amount": 10, "category": "wire"},
		{"direction": "in", "amount": 5, "category": "cash"}
	],
	"linkage": {
		"nodes": [
			{"id": "0000000000000042", "label": "root"},
			{"id": "B", "label": "one hop"},
			{"id": "C", "label": "two hops"}
		],
		"links": [
			{"source": "0000000000000042", "target": "B", "amount": 100},
			{"source": "B", "target": "C", "amount": 50}
		]
	}
}`

// stubStore serves canned artifacts keyed by account id.
type stubStore struct {
	docs map[string]*report.Document
}

func (s *stubStore) Load(ctx context.Context, accountID string) (*report.Document, error) {
	doc, ok := s.docs[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("analysis artifact for account %q", accountID))
	}
	return doc, nil
}

func newTestRouter(t *testing.T, artifacts map[string]string) http.Handler {
	t.Helper()

	docs := make(map[string]*report.Document, len(artifacts))
	for id, body := range artifacts {
		doc, err := report.ParseDocument([]byte(body))
		require.NoError(t, err)
		docs[id] = doc
	}

	cfg := &config.Config{
		Environment:     "test",
		StoreBackend:    config.StoreBackendFS,
		CacheTTLSeconds: 60,
		EnableMetrics:   false,
		EnableCORS:      false,
	}

	cache := di.NewInMemoryCache()
	t.Cleanup(cache.Close)

	logger := zap.NewNop()
	queryBus := di.ProvideQueryBus(&stubStore{docs: docs}, cache, cfg, nil, logger)

	return NewRouter(queryBus, cfg, nil, logger).Setup()
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReady(t *testing.T) {
	handler := newTestRouter(t, nil)

	for _, path := range []string{"/health", "/ready"} {
		rec := doRequest(t, handler, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGetSubgraphDefaults(t *testing.T) {
	handler := newTestRouter(t, map[string]string{"42": testArtifact})

	// No center_node or degree: center defaults to the zero-padded account
	// id, degree to 1.
	rec := doRequest(t, handler, "/api/accounts/42/linkage/subgraph")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Nodes             []map[string]interface{} `json:"nodes"`
		Links             []map[string]interface{} `json:"links"`
		CenterNode        string                   `json:"center_node"`
		Degree            int                      `json:"degree"`
		TotalNodes        int                      `json:"total_nodes"`
		TotalLinks        int                      `json:"total_links"`
		OriginalGraphSize struct {
			Nodes int `json:"nodes"`
			Links int `json:"links"`
		} `json:"original_graph_size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "0000000000000042", body.CenterNode)
	assert.Equal(t, 1, body.Degree)
	assert.Equal(t, 2, body.TotalNodes)
	assert.Equal(t, 1, body.TotalLinks)
	assert.Equal(t, 3, body.OriginalGraphSize.Nodes)
	assert.Equal(t, 2, body.OriginalGraphSize.Links)
	require.Len(t, body.Nodes, 2)
	assert.Equal(t, "0000000000000042", body.Nodes[0]["id"])
	assert.Equal(t, "B", body.Nodes[1]["id"])
}

func TestGetSubgraphWithParams(t *testing.T) {
	handler := newTestRouter(t, map[string]string{"42": testArtifact})

	rec := doRequest(t, handler, "/api/accounts/42/linkage/subgraph?center_node=B&degree=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CenterNode string `json:"center_node"`
		TotalNodes int    `json:"total_nodes"`
		TotalLinks int    `json:"total_links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "B", body.CenterNode)
	assert.Equal(t, 3, body.TotalNodes)
	assert.Equal(t, 2, body.TotalLinks)
}

func TestGetSubgraphErrorMapping(t *testing.T) {
	handler := newTestRouter(t, map[string]string{
		"42":    testArtifact,
		"empty": `{"linkage": {"nodes": [], "links": []}}`,
	})

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "unknown account", path: "/api/accounts/nope/linkage/subgraph", want: http.StatusNotFound},
		{name: "unknown center", path: "/api/accounts/42/linkage/subgraph?center_node=ZZZ", want: http.StatusNotFound},
		{name: "degree not an integer", path: "/api/accounts/42/linkage/subgraph?degree=abc", want: http.StatusBadRequest},
		{name: "empty graph", path: "/api/accounts/empty/linkage/subgraph", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, tt.path)
			assert.Equal(t, tt.want, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, true, body["error"])
		})
	}
}

func TestGetSubgraphDegreeClampedNotRejected(t *testing.T) {
	handler := newTestRouter(t, map[string]string{"42": testArtifact})

	rec := doRequest(t, handler, "/api/accounts/42/linkage/subgraph?degree=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Degree     int `json:"degree"`
		TotalNodes int `json:"total_nodes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Degree)
	assert.Equal(t, 2, body.TotalNodes)
}

func TestSectionEndpoints(t *testing.T) {
	handler := newTestRouter(t, map[string]string{"42": testArtifact})

	t.Run("plain section", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/accounts/42/transactions")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(7), body["total_count"])
	})

	t.Run("money usage carries dict_analysis", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/accounts/42/money-usage")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, body["flow_analysis"], body["dict_analysis"])
	})

	t.Run("usage rows sorted", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/accounts/42/transactions-usage")
		require.Equal(t, http.StatusOK, rec.Code)

		var rows []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "in", rows[0]["direction"])
		assert.Equal(t, "out", rows[1]["direction"])
	})

	t.Run("section absent from artifact", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/accounts/42/high-cash")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/accounts/77/transactions")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetDocument(t *testing.T) {
	handler := newTestRouter(t, map[string]string{"42": testArtifact})

	rec := doRequest(t, handler, "/api/accounts/42/data")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "transactions_data")
	assert.Contains(t, body, "linkage")
}

func TestEndpointCatalog(t *testing.T) {
	handler := newTestRouter(t, nil)

	rec := doRequest(t, handler, "/api/endpoints")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AvailableEndpoints []map[string]string `json:"available_endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AvailableEndpoints)
}
