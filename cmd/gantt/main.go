package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/gantt/internal/config"
	"github.com/aristath/gantt/internal/events"
	"github.com/aristath/gantt/internal/gantt"
	"github.com/aristath/gantt/internal/journal"
	"github.com/aristath/gantt/internal/render"
	"github.com/aristath/gantt/internal/tasks"
	"github.com/aristath/gantt/internal/timescale"
	"github.com/aristath/gantt/internal/tui"
)

func main() {
	// Create signal-aware context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	taskFile    string
	configPath  string
	mode        string
	svgPath     string
	exportDir   string
	journalPath string
	history     int
	interactive bool
	save        bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gantt", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.taskFile, "tasks", "", "task file (.json, .yaml or .yml)")
	fs.StringVar(&opts.configPath, "config", "", "config file; defaults to ~/.gantt/config.json merged with .gantt/config.json")
	fs.StringVar(&opts.mode, "mode", "", "view mode, overriding the config")
	fs.StringVar(&opts.svgPath, "svg", "", "write the chart as SVG to this path")
	fs.StringVar(&opts.exportDir, "export-dir", "", "write one SVG per view mode into this directory")
	fs.StringVar(&opts.journalPath, "journal", "", "SQLite edit journal path")
	fs.IntVar(&opts.history, "history", 0, "print the last N journal entries and exit")
	fs.BoolVar(&opts.interactive, "tui", false, "open the interactive terminal chart")
	fs.BoolVar(&opts.save, "save", false, "write edits made in the terminal chart back to the task file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.mode != "" {
		if _, err := timescale.ParseViewMode(opts.mode); err != nil {
			return opts, err
		}
	}
	if opts.history > 0 && opts.journalPath == "" {
		return opts, errors.New("-history needs -journal")
	}
	if opts.history == 0 && opts.taskFile == "" {
		return opts, errors.New("-tasks is required")
	}
	return opts, nil
}

// loadConfig returns the merged config and the paths the settings form saves to.
func loadConfig(path string) (*config.GanttConfig, string, string, error) {
	if path != "" {
		cfg, err := config.Load("", path)
		return cfg, path, path, err
	}
	globalPath, projectPath, err := config.DefaultPaths()
	if err != nil {
		return nil, "", "", err
	}
	cfg, err := config.Load(globalPath, projectPath)
	return cfg, globalPath, projectPath, err
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.history > 0 {
		return printHistory(ctx, opts.journalPath, opts.history, stdout)
	}

	cfg, globalPath, projectPath, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.mode != "" {
		cfg.ViewMode = opts.mode
	}

	f, err := tasks.LoadFile(opts.taskFile)
	if err != nil {
		return err
	}

	if opts.exportDir != "" {
		paths, err := render.ExportAll(ctx, cfg, f, opts.exportDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(stdout, p)
		}
	}

	// Create event bus
	bus := events.NewEventBus()
	defer bus.Close()

	chart, err := gantt.New(cfg, bus)
	if err != nil {
		return err
	}
	chart.Load(f)

	if opts.svgPath != "" {
		if err := render.WriteFile(chart, opts.svgPath); err != nil {
			return err
		}
		fmt.Fprintln(stdout, opts.svgPath)
	}

	if !opts.interactive {
		if opts.svgPath == "" && opts.exportDir == "" {
			_, err := io.WriteString(stdout, render.SVG(chart))
			return err
		}
		return nil
	}

	var j journal.Journal
	if opts.journalPath != "" {
		store, stop, err := startJournal(ctx, bus, opts.journalPath)
		if err != nil {
			return err
		}
		defer stop()
		j = store
	}

	var edited atomic.Bool
	markEdited := func(events.Event) { edited.Store(true) }
	bus.On(events.EventTypeDateChange, markEdited)
	bus.On(events.EventTypeProgressChange, markEdited)

	model := tui.New(chart, bus, cfg, tui.Options{
		GlobalConfigPath:  globalPath,
		ProjectConfigPath: projectPath,
		TaskFile:          opts.taskFile,
		Journal:           j,
	})
	if err := runTUI(ctx, model); err != nil {
		return err
	}

	if opts.save && edited.Load() {
		out := &tasks.File{Projects: f.Projects, Tasks: chart.Inputs()}
		if err := tasks.SaveFile(out, opts.taskFile); err != nil {
			return err
		}
		log.Printf("Saved %d tasks to %s", len(out.Tasks), opts.taskFile)
	}
	return nil
}

// startJournal opens the journal and records bus events into it. stop
// closes the subscription, waits for the buffered events to be written and
// then closes the store.
func startJournal(ctx context.Context, bus *events.EventBus, path string) (*journal.SQLiteStore, func(), error) {
	store, err := journal.NewSQLiteStore(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	sub := bus.SubscribeAll(256)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := journal.Follow(ctx, store, sub); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("WARNING: journal stopped: %v", err)
		}
	}()

	stop := func() {
		bus.Unsubscribe(sub)
		<-done
		if err := store.Close(); err != nil {
			log.Printf("WARNING: closing journal: %v", err)
		}
	}
	return store, stop, nil
}

// runTUI runs the program until the user quits or a signal arrives.
func runTUI(ctx context.Context, model tea.Model) error {
	// Start Bubble Tea program in a goroutine so we can handle shutdown
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Println("Shutdown signal received, cleaning up...")
		p.Quit()

		// Wait for TUI to exit with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		select {
		case err := <-errChan:
			return err
		case <-shutdownCtx.Done():
			return errors.New("shutdown timeout exceeded")
		}
	}
}

func printHistory(ctx context.Context, path string, n int, stdout io.Writer) error {
	store, err := journal.NewSQLiteStore(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, n)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(stdout, e)
	}
	return nil
}
