package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/litescript/ls-orbits/internal/logging"
	"github.com/litescript/ls-orbits/internal/neo"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
)

// Mini orbit size when stdout is not a terminal.
const (
	defaultMiniWidth  = 80
	defaultMiniHeight = 24
)

// catalogSource produces one catalog load.
type catalogSource func(ctx context.Context) neo.FetchResult

// newSource reads from path when set, otherwise from the fetcher.
func newSource(path string, fetcher *neo.Fetcher) catalogSource {
	if path == "" {
		return fetcher.Fetch
	}
	return func(ctx context.Context) neo.FetchResult {
		start := time.Now()
		records, err := neo.LoadFile(path)
		return neo.FetchResult{
			Records:   records,
			FetchedAt: start,
			Duration:  time.Since(start),
			Error:     err,
		}
	}
}

type headlessOptions struct {
	Summary      bool
	SnapshotPath string
	MiniOrbit    bool
	At           float64
	RingPoints   bool
}

// runHeadless loads the catalog once and writes the requested outputs to stdout.
func runHeadless(ctx context.Context, source catalogSource, stateMgr *state.Manager, composer *scene.Composer, opts headlessOptions, logger *logging.Logger) error {
	result := source(ctx)
	stateMgr.Update(result.Records, result.Duration, result.Error)
	if result.Error != nil {
		return result.Error
	}
	logger.Debug("Loaded %d records in %v", len(result.Records), result.Duration)

	width, height := defaultMiniWidth, defaultMiniHeight
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 1 {
			width, height = w, h-1
		}
	}

	return writeHeadless(os.Stdout, stateMgr.Snapshot(), composer, opts, width, height)
}

func writeHeadless(w io.Writer, snap state.Snapshot, composer *scene.Composer, opts headlessOptions, width, height int) error {
	bodies := composer.Compose(snap.Visible)

	// Export JSON if requested
	if opts.SnapshotPath != "" {
		export := scene.Export(bodies, opts.At, scene.ExportOptions{
			FetchedAt:  snap.LastFetch,
			Filter:     snap.Filter,
			Selected:   snap.Selected,
			Segments:   composer.Segments(),
			RingPoints: opts.RingPoints,
		})
		if opts.SnapshotPath == "-" {
			if err := export.WriteJSON(w); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(opts.SnapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	// Print summary table if requested
	if opts.Summary {
		scene.WriteSummaryTable(w, composer, snap.Filtered, snap.LastFetch)
	}

	// Mini orbit frame
	if opts.MiniOrbit {
		if opts.Summary {
			fmt.Fprintln(w)
		}
		vp := scene.Viewport{Width: width, Height: height, Camera: scene.DefaultCamera()}
		canvas := scene.Rasterize(bodies, opts.At, vp, scene.RasterOptions{Labels: true})
		fmt.Fprintln(w, canvas.String())
	}

	return nil
}
