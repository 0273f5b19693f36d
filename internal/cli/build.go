package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

func newBuildCmd(a *app) *cobra.Command {
	var force, tui bool

	cmd := &cobra.Command{
		Use:   "build [projection...]",
		Short: "Build pattern databases",
		Long: `Build the pattern databases used by the heuristic searches and save them to
the tables directory.

With no arguments the corner table and one table per configured edge group
are built. Projections can also be named explicitly, for example:

  gocube-solver build corners edges:0,1,2,3,4,5 corners:0,1,2,3

Tables already on disk are kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := a.projections(args)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			repo := storage.NewTableRepository(db)

			if tui {
				return a.buildWithTUI(cmd, repo, ps, force)
			}
			return a.buildAll(repo, ps, force, nil, func(d tableDone) {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Rebuild tables that already exist")
	cmd.Flags().BoolVar(&tui, "tui", false, "Show an interactive progress display")
	return cmd
}

// tableDone reports a table that is ready, built now or found on disk.
type tableDone struct {
	Projection string
	Path       string
	MaxDepth   uint8
	Bytes      uint64
	Elapsed    time.Duration
	Existing   bool
}

func (d tableDone) String() string {
	if d.Existing {
		return fmt.Sprintf("%s: already built (%s)", d.Projection, d.Path)
	}
	return fmt.Sprintf("%s: depth %d, %s in %s -> %s",
		d.Projection, d.MaxDepth, humanize.IBytes(d.Bytes), d.Elapsed.Round(time.Millisecond), d.Path)
}

// buildAll builds every projection in turn, skipping those already saved
// unless force is set. progress, when not nil, receives every completed
// depth; done receives every finished table.
func (a *app) buildAll(repo *storage.TableRepository, ps []coord.Projection, force bool,
	progress func(pdb.Progress), done func(tableDone)) error {

	if err := os.MkdirAll(a.cfg.TablesDir, 0o755); err != nil {
		return fmt.Errorf("create tables dir: %w", err)
	}

	for _, p := range ps {
		path := a.tablePath(p)
		if !force {
			if t, err := pdb.Load(path, p); err == nil {
				if err := a.record(repo, t, path, 0); err != nil {
					return err
				}
				done(tableDone{Projection: p.Name(), Path: path, MaxDepth: t.MaxDepth(), Bytes: t.Bytes(), Existing: true})
				continue
			} else if !errors.Is(err, os.ErrNotExist) {
				a.log.WithError(err).WithField("path", path).Warn("existing table unusable, rebuilding")
			}
		}

		opts := []pdb.Option{
			pdb.WithWorkers(a.cfg.Workers),
			pdb.WithMemoryLimit(a.cfg.MemoryLimit),
			pdb.WithWidth(a.cfg.Width),
			pdb.WithLogger(a.log),
		}
		if progress != nil {
			opts = append(opts, pdb.WithProgress(progress))
		}

		start := time.Now()
		t, err := pdb.Build(p, opts...)
		if err != nil {
			return fmt.Errorf("build %s: %w", p.Name(), err)
		}
		elapsed := time.Since(start)

		if err := pdb.Save(t, path); err != nil {
			return err
		}
		if err := a.record(repo, t, path, elapsed); err != nil {
			return err
		}
		a.log.WithFields(logrus.Fields{
			"projection": p.Name(),
			"path":       path,
			"max_depth":  t.MaxDepth(),
		}).Info("table saved")
		done(tableDone{Projection: p.Name(), Path: path, MaxDepth: t.MaxDepth(), Bytes: t.Bytes(), Elapsed: elapsed})
	}
	return nil
}

// record catalogs t. A zero elapsed keeps the build time already recorded.
func (a *app) record(repo *storage.TableRepository, t *pdb.Table, path string, elapsed time.Duration) error {
	entry := storage.TableEntry{
		Projection: t.Name(),
		Path:       path,
		Size:       t.Size(),
		Width:      t.Width(),
		MaxDepth:   t.MaxDepth(),
		Checksum:   t.Checksum(),
		BuildTime:  elapsed,
	}
	if elapsed == 0 {
		prev, err := repo.Get(t.Name())
		if err != nil {
			return err
		}
		if prev != nil && prev.Checksum == entry.Checksum {
			return nil
		}
	}
	return repo.Record(entry)
}

func (a *app) buildWithTUI(cmd *cobra.Command, repo *storage.TableRepository, ps []coord.Projection, force bool) error {
	a.quiet()

	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	model := newBuildModel(names)
	program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()), tea.WithInput(os.Stdin))

	go func() {
		err := a.buildAll(repo, ps, force,
			func(p pdb.Progress) { program.Send(progressMsg(p)) },
			func(d tableDone) { program.Send(tableDoneMsg(d)) },
		)
		program.Send(buildFinishedMsg{err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	m := final.(*buildModel)
	if m.interrupted {
		return errors.New("build interrupted")
	}
	return m.err
}
