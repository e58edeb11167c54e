package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"ladle/internal/config"
	"ladle/internal/logging"
	"ladle/internal/recipe"
	"ladle/internal/services/generator"
	"ladle/internal/services/youtube"
	"ladle/internal/store"
)

// MetadataResolver fetches source-video metadata from the platform.
type MetadataResolver interface {
	Resolve(ctx context.Context, videoID string) (youtube.Metadata, error)
}

// Verifier confirms a video is cooking content and owns the processed
// artifact's lifecycle.
type Verifier interface {
	Verify(ctx context.Context, videoID string) (recipe.Artifact, error)
	Cleanup(ctx context.Context, storageURI string) error
}

// ContentGenerator produces the four independent content artifacts.
type ContentGenerator interface {
	Caption(ctx context.Context, videoID string) ([]recipe.CaptionSegment, error)
	Briefing(ctx context.Context, artifact recipe.Artifact) ([]string, error)
	Detail(ctx context.Context, artifact recipe.Artifact) (generator.DetailResult, error)
	Steps(ctx context.Context, artifact recipe.Artifact) ([]recipe.Step, error)
}

// Manager orchestrates recipe creation pipelines.
type Manager struct {
	cfg        *config.Config
	store      *store.Store
	logger     *slog.Logger
	resolver   MetadataResolver
	verifier   Verifier
	generators ContentGenerator

	sem    chan struct{}
	active atomic.Int64

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager constructs a pipeline manager.
func NewManager(cfg *config.Config, st *store.Store, logger *slog.Logger, resolver MetadataResolver, verifier Verifier, generators ContentGenerator) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	slots := cfg.Workflow.MaxActivePipelines
	if slots <= 0 {
		slots = 1
	}
	return &Manager{
		cfg:        cfg,
		store:      st,
		logger:     logger,
		resolver:   resolver,
		verifier:   verifier,
		generators: generators,
		sem:        make(chan struct{}, slots),
	}
}

// Start makes the manager accept submissions and recovers recipes left
// in flight by a previous run.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("pipeline manager already running")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m.ctx, m.cancel = context.WithCancel(ctx)

	recovered, err := m.store.FailStaleInProgress(m.ctx)
	if err != nil {
		m.cancel()
		return err
	}
	if recovered > 0 {
		m.logger.Warn("recovered stale in-progress recipes", logging.Int("count", recovered))
	}

	m.running = true
	return nil
}

// Stop rejects new submissions and waits for in-flight pipelines to
// settle. In-flight external calls observe the cancelled context.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Active returns the number of pipelines currently running.
func (m *Manager) Active() int64 {
	return m.active.Load()
}

// beginPipeline reserves a slot in the shutdown wait group while the
// running flag is still held under the mutex, so Stop's Wait can never
// race a concurrent Add. Callers must release the slot with wg.Done
// once their work (or their worker goroutine) finishes.
func (m *Manager) beginPipeline() (context.Context, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil, false
	}
	m.wg.Add(1)
	return m.ctx, true
}
