package localsearch

import (
	"context"
	"sync"

	"github.com/hupe1980/localsearch/blobstore"
	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/snapshot"
)

// ServiceOptions contains configuration options for the Service.
type ServiceOptions struct {
	// Logger used for registry events and propagated to created indexes.
	Logger *Logger

	// Metrics propagated to created indexes.
	Metrics MetricsCollector
}

// Service is a registry of named indexes, one per consumer (the original
// design registers one index per feature surface, e.g. settings search).
// Registration is thread-safe; the indexes themselves keep their
// single-writer contract.
type Service struct {
	opts ServiceOptions

	mu      sync.RWMutex
	indexes map[string]index.Index
}

// NewService creates an empty Service.
func NewService(optFns ...func(o *ServiceOptions)) *Service {
	opts := ServiceOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	return &Service{
		opts:    opts,
		indexes: make(map[string]index.Index),
	}
}

// CreateIndex creates and registers an index for the given backend with the
// service's logger and metrics attached. Returns *ErrIndexExists if the id
// is taken.
func (s *Service) CreateIndex(id string, backend index.Backend) (index.Index, error) {
	var idx index.Index
	switch backend {
	case index.BackendInverted:
		idx = Inverted().Logger(s.opts.Logger.WithIndexID(id)).Metrics(s.opts.Metrics).Build()
	default:
		idx = Linear().Logger(s.opts.Logger.WithIndexID(id)).Metrics(s.opts.Metrics).Build()
	}

	if err := s.Register(id, idx); err != nil {
		return nil, err
	}

	s.opts.Logger.Info("index created", "index_id", id, "backend", backend.String())

	return idx, nil
}

// Register adds an existing index under the given id.
// Returns *ErrIndexExists if the id is taken.
func (s *Service) Register(id string, idx index.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[id]; ok {
		return &ErrIndexExists{ID: id}
	}

	s.indexes[id] = idx

	return nil
}

// GetIndex returns the index registered under id.
func (s *Service) GetIndex(id string) (index.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[id]
	if !ok {
		return nil, ErrIndexNotFound
	}

	return idx, nil
}

// DeleteIndex unregisters the index. Unknown ids are ignored.
func (s *Service) DeleteIndex(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.indexes, id)
}

// IDs returns the ids of all registered indexes.
func (s *Service) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.indexes))
	for id := range s.indexes {
		ids = append(ids, id)
	}

	return ids
}

// Snapshot saves every registered index to the store, one blob per index
// named by its id.
func (s *Service) Snapshot(ctx context.Context, store blobstore.Store, optFns ...func(o *snapshot.Options)) error {
	s.mu.RLock()
	indexes := make(map[string]index.Index, len(s.indexes))
	for id, idx := range s.indexes {
		indexes[id] = idx
	}
	s.mu.RUnlock()

	return snapshot.SaveAll(ctx, store, indexes, optFns...)
}

// RestoreIndex loads the snapshot blob named id into the registered index
// of the same id.
func (s *Service) RestoreIndex(ctx context.Context, store blobstore.Store, id string, optFns ...func(o *snapshot.Options)) error {
	idx, err := s.GetIndex(id)
	if err != nil {
		return err
	}

	return snapshot.Restore(ctx, store, id, idx, optFns...)
}
