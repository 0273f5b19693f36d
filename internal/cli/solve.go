package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

type solveFlags struct {
	facelets string
	random   int
	seed     int64
	timeout  time.Duration
	noRecord bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve [moves...]",
		Short: "Find an optimal solution",
		Long: `Find a minimum-length face-turn solution for a cube.

The cube is given as the scramble that produced it:

  gocube-solver solve R U R' U' F2

or as 54 stickers in U R F D L B face order with --facelets, using color
letters (W Y G B R O) or face letters (U R F D L B). --random scrambles the
cube with that many random turns instead.

Tables are loaded from the tables directory; build them first with
"gocube-solver build". The bfs and iddfs algorithms need no tables but are
only practical for short scrambles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args, f)
		},
	}

	cmd.Flags().StringVar(&f.facelets, "facelets", "", "Cube as 54 stickers")
	cmd.Flags().IntVar(&f.random, "random", 0, "Solve a random scramble of this many turns")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Seed for --random (default: time based)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Give up after this long (0: no limit)")
	cmd.Flags().BoolVar(&f.noRecord, "no-record", false, "Do not save the solve to the history")
	return cmd
}

// startState resolves the cube to solve and the scramble text, if any.
func startState(args []string, f solveFlags) (cube.State, *string, error) {
	switch {
	case f.facelets != "":
		if len(args) > 0 || f.random > 0 {
			return cube.State{}, nil, errors.New("give either moves, --facelets or --random")
		}
		stickers, err := cube.ParseFacelets(f.facelets)
		if err != nil {
			return cube.State{}, nil, err
		}
		s, err := cube.FromFacelets(stickers)
		return s, nil, err

	case f.random > 0:
		if len(args) > 0 {
			return cube.State{}, nil, errors.New("give either moves, --facelets or --random")
		}
		seed := f.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s, moves := cube.Scramble(f.random, rand.New(rand.NewSource(seed)))
		text := cube.FormatMoves(moves)
		return s, &text, nil

	case len(args) > 0:
		moves, err := cube.ParseMoves(strings.Join(args, " "))
		if err != nil {
			return cube.State{}, nil, err
		}
		text := cube.FormatMoves(moves)
		return cube.Solved().ApplyMoves(moves), &text, nil
	}
	return cube.State{}, nil, errors.New("nothing to solve: give moves, --facelets or --random")
}

func (a *app) runSolve(cmd *cobra.Command, args []string, f solveFlags) error {
	s, scramble, err := startState(args, f)
	if err != nil {
		return err
	}

	var h *heuristic.Counter
	if a.needsTables() {
		ps, err := a.projections(nil)
		if err != nil {
			return err
		}
		tables, err := heuristic.LoadTables(a.cfg.TablesDir, ps)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w\nrun \"gocube-solver build\" first", err)
		}
		if err != nil {
			return err
		}
		h = heuristic.Counting(heuristic.Korf(tables...))
	}

	var solver search.Solver
	if h != nil {
		solver, err = a.newSolver(h)
	} else {
		solver, err = a.newSolver(nil)
	}
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	a.log.WithFields(logrus.Fields{
		"algorithm": solver.Name(),
		"max_depth": a.cfg.MaxDepth,
	}).Debug("solving")
	res, solveErr := solver.Solve(ctx, s)

	out := cmd.OutOrStdout()
	printSolve(out, s, scramble, solver.Name(), res, solveErr)

	if !f.noRecord {
		if err := a.recordSolve(s, scramble, solver.Name(), res, solveErr); err != nil {
			a.log.WithError(err).Warn("failed to record solve")
		}
	}
	return solveErr
}

func printSolve(out io.Writer, s cube.State, scramble *string, algorithm string, res *search.Result, err error) {
	fmt.Fprintln(out, renderNet(s.Facelets()))
	fmt.Fprintln(out)
	if scramble != nil {
		fmt.Fprintln(out, field("Scramble", *scramble))
	}
	fmt.Fprintln(out, field("Algorithm", algorithm))
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("No solution: "+err.Error()))
		return
	}
	fmt.Fprintln(out, field("Solution", renderMoves(res.Moves)))
	fmt.Fprintln(out, field("Length", fmt.Sprintf("%d", res.Length())))
	fmt.Fprintln(out, field("Expanded", humanize.Comma(int64(res.Expanded))))
	if res.HeuristicCalls > 0 {
		fmt.Fprintln(out, field("Lookups", humanize.Comma(int64(res.HeuristicCalls))))
	}
	fmt.Fprintln(out, field("Time", res.Duration.Round(time.Microsecond).String()))
}

func (a *app) recordSolve(s cube.State, scramble *string, algorithm string, res *search.Result, solveErr error) error {
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec := storage.Solve{
		Algorithm:     algorithm,
		ScrambleText:  scramble,
		StateFacelets: s.Facelets().Compact(),
	}
	if solveErr != nil {
		msg := solveErr.Error()
		rec.Error = &msg
	}
	if res != nil {
		rec.Expanded = res.Expanded
		rec.HeuristicCalls = res.HeuristicCalls
		rec.DurationMs = res.Duration.Milliseconds()
		if solveErr == nil {
			text := cube.FormatMoves(res.Moves)
			n := res.Length()
			rec.SolutionText = &text
			rec.SolutionLength = &n
		}
	}

	id, err := storage.NewSolveRepository(db).Create(rec)
	if err != nil {
		return err
	}
	a.log.WithField("solve_id", id).Debug("solve recorded")
	return nil
}
