package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"riskreport-backend/domain/report"
	"riskreport-backend/pkg/errors"
	"riskreport-backend/pkg/observability"
)

// FSStore serves artifacts from a directory of per-account JSON files
// (<dir>/<accountID>.json). Parsed documents are cached; an fsnotify watcher
// on the directory drops cache entries when the analysis pipeline rewrites
// or removes a file.
type FSStore struct {
	dir     string
	logger  *zap.Logger
	metrics *observability.Collector

	mu    sync.RWMutex
	cache map[string]*report.Document

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

var _ ArtifactStore = (*FSStore)(nil)

// NewFSStore creates a filesystem artifact store rooted at dir
func NewFSStore(dir string, logger *zap.Logger, metrics *observability.Collector) (*FSStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("artifacts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifacts path %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create artifacts watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch artifacts directory: %w", err)
	}

	s := &FSStore{
		dir:     dir,
		logger:  logger,
		metrics: metrics,
		cache:   make(map[string]*report.Document),
		watcher: watcher,
		stopCh:  make(chan struct{}),
	}
	go s.watch()

	return s, nil
}

// Load returns the parsed artifact for an account
func (s *FSStore) Load(ctx context.Context, accountID string) (*report.Document, error) {
	if !validAccountID(accountID) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid account identifier %q", accountID))
	}

	s.mu.RLock()
	doc, cached := s.cache[accountID]
	s.mu.RUnlock()
	if cached {
		s.observe("hit")
		return doc, nil
	}

	path := filepath.Join(s.dir, accountID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.observe("missing")
			return nil, errors.NewNotFoundError(fmt.Sprintf("analysis artifact for account %q", accountID))
		}
		s.observe("error")
		return nil, errors.NewStorageError("read artifact", err)
	}

	doc, err = report.ParseDocument(data)
	if err != nil {
		s.observe("error")
		return nil, errors.Wrapf(err, "artifact %s", path)
	}

	s.mu.Lock()
	s.cache[accountID] = doc
	s.mu.Unlock()

	s.logger.Debug("Artifact loaded",
		zap.String("accountID", accountID),
		zap.String("path", path),
	)
	s.observe("loaded")
	return doc, nil
}

// Close stops the directory watcher
func (s *FSStore) Close() error {
	close(s.stopCh)
	return s.watcher.Close()
}

// watch invalidates cache entries as artifact files change on disk
func (s *FSStore) watch() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			accountID := strings.TrimSuffix(name, ".json")

			s.mu.Lock()
			_, had := s.cache[accountID]
			delete(s.cache, accountID)
			s.mu.Unlock()

			if had {
				s.logger.Info("Artifact cache invalidated",
					zap.String("accountID", accountID),
					zap.String("op", event.Op.String()),
				)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Artifacts watcher error", zap.Error(err))
		case <-s.stopCh:
			return
		}
	}
}

func (s *FSStore) observe(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ArtifactLoads.WithLabelValues("fs", outcome).Inc()
	switch outcome {
	case "hit":
		s.metrics.CacheHits.Inc()
	case "loaded", "missing", "error":
		s.metrics.CacheMisses.Inc()
	}
}

// validAccountID rejects identifiers that could escape the artifacts
// directory
func validAccountID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
