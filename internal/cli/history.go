package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit   int
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent solves",
		Long:  `Display recent solves with their solution length and search effort.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			solves, err := storage.NewSolveRepository(db).List(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(solves) == 0 {
				fmt.Fprintln(out, "No solves recorded yet.")
				return nil
			}
			if summary {
				fmt.Fprintln(out, summaryTable(analysis.Summarize(solves)))
				return nil
			}
			fmt.Fprintln(out, historyTable(solves))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of solves to show")
	cmd.Flags().BoolVar(&summary, "summary", false, "Summarise the solves per algorithm")
	cmd.AddCommand(newHistoryShowCmd(a))
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <solve-id>",
		Short: "Show one solve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			s, err := storage.NewSolveRepository(db).Get(args[0])
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("solve not found: %s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, field("Solve", s.SolveID))
			fmt.Fprintln(out, field("When", s.CreatedAt.Local().Format(time.DateTime)))
			fmt.Fprintln(out, field("Algorithm", s.Algorithm))
			if s.ScrambleText != nil {
				fmt.Fprintln(out, field("Scramble", *s.ScrambleText))
			}
			fmt.Fprintln(out, field("Facelets", s.StateFacelets))
			if s.SolutionText != nil {
				fmt.Fprintln(out, field("Solution", moveStyle.Render(*s.SolutionText)))
				fmt.Fprintln(out, field("Length", strconv.Itoa(*s.SolutionLength)))
			}
			if s.Error != nil {
				fmt.Fprintln(out, field("Error", errorStyle.Render(*s.Error)))
			}
			fmt.Fprintln(out, field("Expanded", humanize.Comma(int64(s.Expanded))))
			fmt.Fprintln(out, field("Time", (time.Duration(s.DurationMs)*time.Millisecond).String()))
			return nil
		},
	}
}

func historyTable(solves []storage.Solve) string {
	t := styledTable().Headers("ID", "WHEN", "ALGORITHM", "LENGTH", "EXPANDED", "TIME", "SCRAMBLE")
	for _, s := range solves {
		length := "-"
		if s.SolutionLength != nil {
			length = strconv.Itoa(*s.SolutionLength)
		} else if s.Error != nil {
			length = "failed"
		}
		scramble := ""
		if s.ScrambleText != nil {
			scramble = *s.ScrambleText
		}
		t.Row(
			s.SolveID[:8],
			humanize.Time(s.CreatedAt),
			s.Algorithm,
			length,
			humanize.Comma(int64(s.Expanded)),
			(time.Duration(s.DurationMs) * time.Millisecond).String(),
			scramble,
		)
	}
	return t.String()
}

func summaryTable(sums []analysis.Summary) string {
	t := styledTable().Headers("ALGORITHM", "SOLVES", "FAILED", "MEAN", "STDDEV", "LONGEST", "NODES/S", "FACE")
	for _, s := range sums {
		t.Row(
			s.Algorithm,
			strconv.Itoa(s.Solves),
			strconv.Itoa(s.Failed),
			fmt.Sprintf("%.2f", s.MeanLength),
			fmt.Sprintf("%.2f", s.StdDevLength),
			strconv.Itoa(s.LongestLength),
			humanize.Comma(int64(s.NodesPerSecond)),
			s.Profile.MostUsedFace.String(),
		)
	}
	return t.String()
}
