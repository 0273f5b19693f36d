package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

func newTablesCmd(a *app) *cobra.Command {
	var stats, prune bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List built pattern databases",
		Long: `List the pattern databases recorded in the catalog. With --stats every table
is loaded and its distance distribution shown. --prune drops entries whose
file no longer exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewTableRepository(db)
			out := cmd.OutOrStdout()

			if prune {
				removed, err := repo.Prune(func(e storage.TableEntry) bool {
					_, err := os.Stat(e.Path)
					return err == nil
				})
				if err != nil {
					return err
				}
				for _, name := range removed {
					fmt.Fprintln(out, "pruned "+name)
				}
			}

			entries, err := repo.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No tables built yet. Run \"gocube-solver build\".")
				return nil
			}
			fmt.Fprintln(out, catalogTable(entries))

			if !stats {
				return nil
			}
			for _, e := range entries {
				p, err := coord.ParseProjection(e.Projection)
				if err != nil {
					return err
				}
				t, err := pdb.Load(e.Path, p)
				if err != nil {
					fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s: %v", e.Projection, err)))
					continue
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, titleStyle.Render(e.Projection))
				fmt.Fprintln(out, statsTable(t.Stats()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "Show the distance distribution of every table")
	cmd.Flags().BoolVar(&prune, "prune", false, "Forget tables whose file is missing")
	return cmd
}

func styledTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func catalogTable(entries []storage.TableEntry) string {
	t := styledTable().Headers("PROJECTION", "ENTRIES", "WIDTH", "DEPTH", "BUILD", "BUILT", "PATH")
	for _, e := range entries {
		t.Row(
			e.Projection,
			humanize.Comma(int64(e.Size)),
			strconv.Itoa(int(e.Width)),
			strconv.Itoa(int(e.MaxDepth)),
			e.BuildTime.Round(time.Second).String(),
			humanize.Time(e.BuiltAt),
			e.Path,
		)
	}
	return t.String()
}

func statsTable(s pdb.Stats) string {
	t := styledTable().Headers("DEPTH", "COUNT")
	for d, n := range s.Histogram {
		t.Row(strconv.Itoa(d), humanize.Comma(int64(n)))
	}
	if s.Unknown > 0 {
		t.Row("unknown", humanize.Comma(int64(s.Unknown)))
	}
	return t.String() + "\n" + field("Mean", fmt.Sprintf("%.3f", s.Mean)) +
		"  " + field("StdDev", fmt.Sprintf("%.3f", s.StdDev))
}
