// Command ls-orbits is a terminal UI for visualizing near-Earth asteroid orbits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/litescript/ls-orbits/internal/clock"
	"github.com/litescript/ls-orbits/internal/logging"
	"github.com/litescript/ls-orbits/internal/neo"
	"github.com/litescript/ls-orbits/internal/observability"
	"github.com/litescript/ls-orbits/internal/orbit"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
	"github.com/litescript/ls-orbits/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	snapshotPath  string
	miniOrbitMode bool
	atSeconds     float64
	ringPoints    bool
)

const (
	defaultRefresh = 5 * time.Minute
	minRefresh     = 1 * time.Second
	maxRefresh     = 1 * time.Hour
)

func main() {
	// Parse flags
	refresh := flag.Duration("refresh", defaultRefresh, "Catalog refresh interval (e.g., 30s, 5m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "text", "Log format (text, json)")
	logFile := flag.String("log-file", "", "Write logs to file instead of stderr")
	catalogURL := flag.String("url", neo.DefaultCatalogURL, "Asteroid catalog URL")
	catalogFile := flag.String("file", "", "Load the catalog from a JSON file instead of fetching")
	limit := flag.Int("limit", neo.DefaultLimit, "Number of records requested per fetch")
	fps := flag.Int("fps", clock.DefaultFPS, "Animation frame rate")
	segments := flag.Int("segments", orbit.DefaultSegments, "Points per orbit ring")
	filterName := flag.String("filter", "all", "Hazard filter (all, hazardous, nonhazardous)")
	selectID := flag.String("select", "", "Show only the asteroid with this id")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9102)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&miniOrbitMode, "mini-orbit", false, "Print one ASCII orbit frame")
	flag.Float64Var(&atSeconds, "at", 0, "Animation time in seconds for headless output")
	flag.BoolVar(&ringPoints, "ring-points", false, "Include orbit ring points in the JSON snapshot")
	flag.Parse()

	*refresh = clampRefresh(*refresh)
	*fps = clock.ClampFPS(*fps)

	filter, err := neo.ParseHazardFilter(*filterName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	headless := summaryMode || snapshotPath != "" || miniOrbitMode

	// Set up logging
	logger := logging.NewWithFormat(logging.ParseLevel(*logLevel), logging.ParseFormat(*logFormat))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if !headless {
		// stderr would draw over the alt screen
		logger.SetOutput(io.Discard)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Metrics
	var collector *observability.Collector
	if *metricsAddr != "" {
		collector, err = observability.NewCollector(prometheus.NewRegistry())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating metrics: %v\n", err)
			os.Exit(1)
		}
		go serveMetrics(ctx, *metricsAddr, collector.Handler(), logger)
	}

	// Initialize components
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateCfg.Filter = filter
	stateCfg.Selected = *selectID
	stateMgr := state.NewManager(stateCfg)

	var observer orbit.CacheObserver
	if collector != nil {
		stateMgr.SetRecorder(collector)
		observer = collector
	}
	composer := scene.NewComposer(*segments, observer)

	source := newSource(*catalogFile, neo.NewFetcher(neo.WithURL(*catalogURL), neo.WithLimit(*limit)))

	// Headless mode: no TUI
	if headless {
		opts := headlessOptions{
			Summary:      summaryMode,
			SnapshotPath: snapshotPath,
			MiniOrbit:    miniOrbitMode,
			At:           atSeconds,
			RingPoints:   ringPoints,
		}
		if err := runHeadless(ctx, source, stateMgr, composer, opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	refreshCh := make(chan struct{}, 1)
	frameClock := clock.New()

	// Create TUI model
	model := ui.New(ui.Config{
		State:    stateMgr,
		Clock:    frameClock,
		Composer: composer,
		OnRefresh: func() {
			select {
			case refreshCh <- struct{}{}:
			default:
			}
		},
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen())

	frameClock.AddListener(func(elapsed float64) {
		p.Send(ui.FrameMsg{Elapsed: elapsed})
		collector.FrameRendered()
	})
	framesDone := frameClock.Run(ctx, *fps)

	// Start fetch loop in background
	go runFetchLoop(ctx, source, stateMgr, refreshCh, p, logger)

	// Run TUI (blocks until quit)
	_, runErr := p.Run()
	cancel()
	<-framesDone
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", runErr)
		os.Exit(1)
	}
}

func clampRefresh(d time.Duration) time.Duration {
	if d < minRefresh {
		return minRefresh
	}
	if d > maxRefresh {
		return maxRefresh
	}
	return d
}

func serveMetrics(ctx context.Context, addr string, handler http.Handler, logger *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Metrics server failed: %v", err)
	}
}

func runFetchLoop(ctx context.Context, source catalogSource, stateMgr *state.Manager, refreshCh <-chan struct{}, p *tea.Program, logger *logging.Logger) {
	// Do initial fetch immediately
	doFetch(ctx, source, stateMgr, p, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Fetch loop shutting down")
			return
		case <-refreshCh:
			logger.Debug("Manual refresh requested")
			doFetch(ctx, source, stateMgr, p, logger)
			ticker.Reset(stateMgr.RefreshInterval())
		case <-ticker.C:
			doFetch(ctx, source, stateMgr, p, logger)
		}
	}
}

func doFetch(ctx context.Context, source catalogSource, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	logger.Debug("Fetching asteroid catalog...")

	result := source(ctx)

	if result.Error != nil {
		logger.Error("Fetch failed: %v", result.Error)
		stateMgr.Update(nil, result.Duration, result.Error)
		p.Send(ui.ErrorMsg{Error: result.Error})
		p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
		return
	}

	logger.Debug("Fetch complete: %d records in %v", len(result.Records), result.Duration)

	stateMgr.Update(result.Records, result.Duration, nil)
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}
