//go:generate mockgen -destination=./mocks/engine.go . CatalogFetcher

// Package engine is the collaborator front ends talk to. It owns the current
// catalog snapshot, the OS override and the single active download run.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cperrin88/mirrorget/internal/logger"
	"github.com/cperrin88/mirrorget/pkg/catalog"
	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/orchestrator"
	"github.com/cperrin88/mirrorget/pkg/platform"
)

// DefaultCatalogTimeout bounds a single catalog fetch.
const DefaultCatalogTimeout = 10 * time.Second

// CatalogFetcher loads a catalog document from a URL.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, catalogURL string) (*catalog.Catalog, error)
}

// Options configures an Engine.
type Options struct {
	Fetcher        CatalogFetcher
	Downloader     orchestrator.Downloader
	Metrics        orchestrator.Recorder // optional
	DownloadDir    string
	OSOverride     platform.OS // empty means autodetect
	CatalogTimeout time.Duration
	// Hooks receives engine-level log events that do not belong to a run,
	// such as a failed catalog reload. It may be called from any goroutine.
	Hooks orchestrator.Hooks
}

// Engine is safe for concurrent use.
type Engine struct {
	fetcher        CatalogFetcher
	dl             orchestrator.Downloader
	metrics        orchestrator.Recorder
	dir            string
	catalogTimeout time.Duration
	hooks          orchestrator.Hooks

	catalog atomic.Pointer[catalog.Catalog]

	mu         sync.Mutex
	osOverride platform.OS
	source     string
	active     *Subscription
}

// New creates an Engine. No catalog is loaded until LoadInitial or SetCatalogSource.
func New(opts Options) *Engine {
	timeout := opts.CatalogTimeout
	if timeout <= 0 {
		timeout = DefaultCatalogTimeout
	}
	return &Engine{
		fetcher:        opts.Fetcher,
		dl:             opts.Downloader,
		metrics:        opts.Metrics,
		dir:            opts.DownloadDir,
		catalogTimeout: timeout,
		hooks:          opts.Hooks,
		osOverride:     opts.OSOverride,
	}
}

// LoadInitial tries sources in order and keeps the first catalog that loads.
// When every source fails the error wraps errutils.ErrCatalogUnavailable and
// the last failure.
func (e *Engine) LoadInitial(ctx context.Context, sources []string) error {
	if len(sources) == 0 {
		return errutils.ErrNoCatalogSources
	}
	var lastErr error
	for _, src := range sources {
		c, err := e.fetch(ctx, src)
		if err == nil {
			e.install(c, src)
			return nil
		}
		lastErr = err
		logger.Debug("catalog source failed", logger.Fields{"url": src, "error": err})
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %w", errutils.ErrCatalogUnavailable, lastErr)
}

// SetCatalogSource reloads the catalog from url in the background. On failure
// the previous catalog stays in place. The returned channel yields the result
// once and is then closed.
func (e *Engine) SetCatalogSource(ctx context.Context, url string) <-chan error {
	result := make(chan error, 1)
	go func() {
		defer close(result)
		c, err := e.fetch(ctx, url)
		if err != nil {
			e.log("Failed to load mirrors from %s: %v", url, err)
			result <- err
			return
		}
		e.install(c, url)
		e.log("Loaded %d mirror list(s) from %s", len(c.MirrorLists()), url)
		result <- nil
	}()
	return result
}

// CatalogSource returns the URL of the catalog currently in use.
func (e *Engine) CatalogSource() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Catalog returns the current catalog snapshot, or nil.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog.Load()
}

// ListMirrorLists returns the mirror-list names of the current catalog.
func (e *Engine) ListMirrorLists() []string {
	return e.catalog.Load().MirrorLists()
}

// ListAvailableItems returns the items of list that can be downloaded on os.
func (e *Engine) ListAvailableItems(list string, os platform.OS) []string {
	return catalog.AvailableItemKeys(e.catalog.Load(), list, os)
}

// SetOSOverride sets the OS used for resolution. An empty value restores autodetection.
func (e *Engine) SetOSOverride(os platform.OS) error {
	if os != "" && !os.Valid() {
		return errutils.ErrInvalidOSValueWithDetails(string(os), platform.ValidOS())
	}
	e.mu.Lock()
	e.osOverride = os
	e.mu.Unlock()

	label := string(os)
	if os == "" {
		label = "Auto-detect (" + platform.Detect().String() + ")"
	}
	e.log("OS for downloads set to: %s", label)
	return nil
}

// EffectiveOS returns the override when set, the host OS otherwise.
func (e *Engine) EffectiveOS() platform.OS {
	e.mu.Lock()
	defer e.mu.Unlock()
	return platform.Effective(e.osOverride)
}

// StartDownload starts a run for item in list using the current catalog
// snapshot and the effective OS. Only one run may be active; a second call
// returns errutils.ErrDownloadInProgress and leaves the active run alone.
func (e *Engine) StartDownload(ctx context.Context, list, item string) (*Subscription, error) {
	e.mu.Lock()
	if active := e.active; active != nil {
		e.mu.Unlock()
		logger.Warn("download rejected", logger.Fields{"item": item, "active": active.ID})
		e.log("A download is already in progress.")
		return nil, errutils.ErrDownloadInProgress
	}
	cat := e.catalog.Load()
	if cat == nil {
		e.mu.Unlock()
		return nil, errutils.ErrNoCatalog
	}
	runCtx, cancel := context.WithCancel(ctx)
	sub := newSubscription(runCtx, uuid.NewString(), cancel)
	e.active = sub
	req := orchestrator.Request{
		MirrorList: list,
		Item:       item,
		OS:         platform.Effective(e.osOverride),
		Dir:        e.dir,
	}
	e.mu.Unlock()

	orch := &orchestrator.Orchestrator{
		DL:      e.dl,
		Metrics: e.metrics,
		Hooks:   orchestrator.Hooks{OnEvent: sub.send},
	}
	go func() {
		defer cancel()
		out := orch.Run(runCtx, cat, req)
		e.mu.Lock()
		if e.active == sub {
			e.active = nil
		}
		e.mu.Unlock()
		sub.finish(out)
	}()
	return sub, nil
}

// CancelCurrentDownload requests cancellation of the active run. It reports
// whether a run was active.
func (e *Engine) CancelCurrentDownload() bool {
	e.mu.Lock()
	sub := e.active
	e.mu.Unlock()
	if sub == nil {
		return false
	}
	sub.cancel()
	e.log("Cancel request sent.")
	return true
}

// Active reports whether a download run is in progress.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

func (e *Engine) fetch(ctx context.Context, url string) (*catalog.Catalog, error) {
	if e.fetcher == nil {
		return nil, fmt.Errorf("catalog fetcher is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, e.catalogTimeout)
	defer cancel()
	return e.fetcher.FetchCatalog(ctx, url)
}

func (e *Engine) install(c *catalog.Catalog, source string) {
	e.catalog.Store(c)
	e.mu.Lock()
	e.source = source
	e.mu.Unlock()
	logger.Debug("catalog loaded", logger.Fields{"url": source, "lists": len(c.MirrorLists())})
}

func (e *Engine) log(format string, args ...interface{}) {
	if e.hooks.OnEvent == nil {
		return
	}
	e.hooks.OnEvent(orchestrator.Event{
		Kind:    orchestrator.EventLog,
		Time:    time.Now(),
		Message: fmt.Sprintf(format, args...),
	})
}
