package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/cperrin88/mirrorget/internal/logger"
	"github.com/cperrin88/mirrorget/pkg/config"
	"github.com/cperrin88/mirrorget/pkg/download"
	"github.com/cperrin88/mirrorget/pkg/engine"
	"github.com/cperrin88/mirrorget/pkg/fsutil"
	mghttp "github.com/cperrin88/mirrorget/pkg/http"
	"github.com/cperrin88/mirrorget/pkg/metrics"
	"github.com/cperrin88/mirrorget/pkg/orchestrator"
	"github.com/cperrin88/mirrorget/pkg/platform"
)

// These variables will be set by the main package
var (
	ConfigPath  *string
	Verbose     *bool
	DownloadDir *string
	OSName      *string
	CatalogURL  *string
)

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// loadConfig loads the configuration file and configures logging from it.
func loadConfig() (*config.Config, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return nil, fmt.Errorf("failed to determine config file path")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logFile := cfg.Settings.LogFile
	if logFile.Path != "" {
		if path, err := fsutil.ExpandHome(logFile.Path); err == nil {
			logFile.Path = path
		}
	}
	logger.SetFileOutput(logger.FileOptions{
		Path:         logFile.Path,
		MaxMegabytes: logFile.MaxMegabytes,
		MaxBackups:   logFile.MaxBackups,
		MaxAgeDays:   logFile.MaxAgeDays,
	})
	logger.InitLogger(level, logger.FormatText)
}

// session bundles the engine built for one command with its optional metrics.
type session struct {
	cfg     *config.Config
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// openSession loads the configuration, applies the global flags and loads the
// catalog. Engine-level log events go to onEvent.
func openSession(ctx context.Context, onEvent func(orchestrator.Event)) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dir, err := fsutil.ResolveDownloadDir(flagValue(DownloadDir), cfg.Settings.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve download directory: %w", err)
	}

	override, _ := cfg.Settings.OSOverride()
	osFlag := flagValue(OSName)
	if osFlag != "" {
		o, ok, err := platform.Parse(osFlag)
		if err != nil {
			return nil, err
		}
		override = ""
		if ok {
			override = o
		}
	}

	s := &session{cfg: cfg}
	var recorder orchestrator.Recorder
	if cfg.Settings.MetricsFile != "" {
		s.metrics = metrics.New()
		recorder = s.metrics
	}

	s.engine = engine.New(engine.Options{
		Fetcher:        mghttp.NewHTTPClient(cfg.Settings.CatalogTimeout, cfg.Settings.UserAgent),
		Downloader:     download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent),
		Metrics:        recorder,
		DownloadDir:    dir,
		OSOverride:     override,
		CatalogTimeout: cfg.Settings.CatalogTimeout,
		Hooks:          orchestrator.Hooks{OnEvent: onEvent},
	})

	if osFlag != "" {
		if err := s.engine.SetOSOverride(override); err != nil {
			return nil, err
		}
	}

	if err := s.loadCatalog(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// loadCatalog loads the startup sources, then the override source if one is set.
// A failed override keeps the startup catalog.
func (s *session) loadCatalog(ctx context.Context) error {
	sources := s.cfg.Settings.Sources()
	override := flagValue(CatalogURL)
	if override == "" {
		override = s.cfg.Settings.CatalogURL
	}
	if override != "" && !slices.Contains(sources, override) {
		sources = append(sources, override)
	}

	if err := s.engine.LoadInitial(ctx, sources); err != nil {
		return fmt.Errorf("failed to load initial mirror list, check your connection and try again: %w", err)
	}
	logger.Debug("catalog loaded", logger.Fields{"source": s.engine.CatalogSource()})

	if override != "" && override != s.engine.CatalogSource() {
		if err := <-s.engine.SetCatalogSource(ctx, override); err != nil {
			logger.Debug("keeping startup catalog", logger.Fields{"source": s.engine.CatalogSource(), "error": err})
		}
	}
	return nil
}

// printEvents returns an event handler that writes log lines to w.
func printEvents(w io.Writer) func(orchestrator.Event) {
	return func(e orchestrator.Event) {
		if e.Kind == orchestrator.EventLog {
			_, _ = fmt.Fprintln(w, e.LogLine())
		}
	}
}

// flushMetrics writes the metrics textfile when one is configured.
func (s *session) flushMetrics() {
	if s.metrics == nil {
		return
	}
	path, err := fsutil.ExpandHome(s.cfg.Settings.MetricsFile)
	if err == nil {
		err = s.metrics.WriteTextfile(path)
	}
	if err != nil {
		logger.Warn("Failed to write metrics file", logger.Fields{"path": s.cfg.Settings.MetricsFile, "error": err})
	}
}
