package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/gantt"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
)

// maxParallelExports bounds how many view modes render at once.
const maxParallelExports = 4

// WriteFile renders c to path, creating parent directories.
func WriteFile(c *gantt.Chart, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(SVG(c)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FileName returns the export file name for mode, e.g. "gantt-quarter-day.svg".
func FileName(mode timescale.ViewMode) string {
	return "gantt-" + strings.ToLower(strings.ReplaceAll(string(mode), " ", "-")) + ".svg"
}

// ExportAll renders f once per view mode into dir and returns the written
// paths in mode order. Each mode gets its own chart, so the renders share
// nothing and run concurrently.
func ExportAll(ctx context.Context, cfg *config.GanttConfig, f *tasks.File, dir string) ([]string, error) {
	modes := timescale.Modes()
	paths := make([]string, len(modes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExports)

	for i, mode := range modes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			modeCfg := *cfg
			modeCfg.ViewMode = string(mode)
			c, err := gantt.New(&modeCfg, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", mode, err)
			}
			c.Load(f)

			path := filepath.Join(dir, FileName(mode))
			if err := WriteFile(c, path); err != nil {
				return fmt.Errorf("%s: %w", mode, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
