// Package cli implements the command-line interface for gocube-solver.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

const version = "0.1.0"

// app carries what every command needs once flags are parsed.
type app struct {
	configDir string
	verbose   bool

	cfg *config.Config
	log *logrus.Entry
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gocube-solver",
		Short: "Optimal Rubik's Cube solver",
		Long: `gocube-solver finds minimum-length solutions to the 3x3 Rubik's Cube in the
face-turn metric.

Build the pattern databases once with "gocube-solver build", then solve
scrambles with "gocube-solver solve R U R' U'" or from stickers with
--facelets. Built tables and past solves are recorded in a SQLite catalog.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "Configuration directory (default: $GOCUBE_HOME or ~/.gocube_solver)")
	pf.String("db", "", "Database file path (default: <config dir>/gocube.db)")
	pf.String("tables-dir", "", "Pattern database directory (default: <config dir>/tables)")
	pf.String("memory-limit", "2GiB", "Memory ceiling while building tables")
	pf.Int("workers", 0, "Goroutines expanding a frontier (0: one per CPU)")
	pf.Int("width", 4, "Bits per stored distance, 4 or 8")
	pf.String("edge-groups", "6,6", "Sizes of the edge pattern databases")
	pf.Int("max-depth", search.DefaultMaxDepth, "Longest solution searched for")
	pf.StringP("algorithm", "a", "idastar", "Search algorithm: idastar, astar, bfs or iddfs")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newBuildCmd(a),
		newSolveCmd(a),
		newScrambleCmd(a),
		newTablesCmd(a),
		newHistoryCmd(a),
		newVerifyCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	dir := a.configDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(dir, cmd.Flags())
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)

	a.cfg = cfg
	a.log = logrus.NewEntry(logger)
	return nil
}

// quiet silences logging, for when a TUI owns the terminal.
func (a *app) quiet() {
	a.log.Logger.SetOutput(io.Discard)
}

func (a *app) openDB() (*storage.DB, error) {
	return storage.Open(a.cfg.DBPath)
}

// projections parses names, or returns the configured Korf split when there
// are none.
func (a *app) projections(names []string) ([]coord.Projection, error) {
	if len(names) == 0 {
		return heuristic.DefaultProjections(a.cfg.EdgeGroups...)
	}
	ps := make([]coord.Projection, 0, len(names))
	for _, name := range names {
		p, err := coord.ParseProjection(name)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (a *app) tablePath(p coord.Projection) string {
	return filepath.Join(a.cfg.TablesDir, pdb.FileName(p.Name()))
}

// needsTables reports whether the configured algorithm uses a heuristic.
func (a *app) needsTables() bool {
	switch a.cfg.Algorithm {
	case "bfs", "iddfs":
		return false
	}
	return true
}

// newSolver returns the configured search driver. h is ignored by the
// uninformed ones.
func (a *app) newSolver(h heuristic.Heuristic) (search.Solver, error) {
	opts := []search.Option{
		search.WithMaxDepth(a.cfg.MaxDepth),
		search.WithLogger(a.log),
	}
	switch a.cfg.Algorithm {
	case "idastar":
		return search.NewIDAStar(h, opts...), nil
	case "astar":
		return search.NewAStar(h, opts...), nil
	case "bfs":
		return search.NewBFS(opts...), nil
	case "iddfs":
		return search.NewIterativeDeepening(opts...), nil
	}
	return nil, fmt.Errorf("unknown algorithm %q (want idastar, astar, bfs or iddfs)", a.cfg.Algorithm)
}
