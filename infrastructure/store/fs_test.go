package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"riskreport-backend/domain/report"
	apperrors "riskreport-backend/pkg/errors"
)

const testArtifact = `{
	"transactions_data": {"total_count": 3},
	"linkage": {
		"nodes": [{"id": "A"}, {"id": "B"}],
		"links": [{"source": "A", "target": "B"}]
	}
}`

func newTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFSStore(dir, zap.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func writeArtifact(t *testing.T, dir, accountID, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, accountID+".json"), []byte(body), 0o644))
}

func TestFSStoreLoad(t *testing.T) {
	s, dir := newTestStore(t)
	writeArtifact(t, dir, "0000000000000042", testArtifact)

	doc, err := s.Load(context.Background(), "0000000000000042")
	require.NoError(t, err)
	assert.True(t, doc.Has(report.SectionTransactions))

	g, err := doc.Linkage()
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
}

func TestFSStoreLoadCaches(t *testing.T) {
	s, dir := newTestStore(t)
	writeArtifact(t, dir, "acct", testArtifact)

	first, err := s.Load(context.Background(), "acct")
	require.NoError(t, err)

	again, err := s.Load(context.Background(), "acct")
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestFSStoreMissingArtifact(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFSStoreMalformedArtifact(t *testing.T) {
	s, dir := newTestStore(t)
	writeArtifact(t, dir, "broken", `{not json`)

	_, err := s.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestFSStoreRejectsPathEscapes(t *testing.T) {
	s, _ := newTestStore(t)

	for _, id := range []string{"", "..", "../secrets", `a\b`, "x/y"} {
		_, err := s.Load(context.Background(), id)
		require.Error(t, err, "id %q", id)
		assert.True(t, apperrors.IsValidation(err), "id %q", id)
	}
}

func TestFSStoreInvalidatesOnRewrite(t *testing.T) {
	s, dir := newTestStore(t)
	writeArtifact(t, dir, "acct", testArtifact)

	first, err := s.Load(context.Background(), "acct")
	require.NoError(t, err)

	writeArtifact(t, dir, "acct", `{"transactions_data": {"total_count": 99}}`)

	// The watcher drops the entry asynchronously.
	require.Eventually(t, func() bool {
		doc, err := s.Load(context.Background(), "acct")
		if err != nil {
			return false
		}
		return doc != first && !doc.Has(report.SectionLinkage)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestNewFSStoreRequiresDirectory(t *testing.T) {
	_, err := NewFSStore(filepath.Join(t.TempDir(), "missing"), zap.NewNop(), nil)
	assert.Error(t, err)
}
