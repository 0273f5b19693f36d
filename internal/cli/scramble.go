package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

func newScrambleCmd(a *app) *cobra.Command {
	var (
		length int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "scramble",
		Short: "Generate a random scramble",
		Long: `Generate a random scramble and show the resulting cube. The sticker string
printed last can be passed to "gocube-solver solve --facelets".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < 0 {
				return fmt.Errorf("length must not be negative, got %d", length)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			s, moves := cube.Scramble(length, rand.New(rand.NewSource(seed)))
			a.log.WithField("seed", seed).Debug("scrambled")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, field("Scramble", renderMoves(moves)))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderNet(s.Facelets()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, field("Facelets", s.Facelets().Compact()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 25, "Number of turns")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: time based)")
	return cmd
}
