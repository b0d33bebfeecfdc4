package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/recommend"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

type matrixRow struct {
	Key   pitch.Note                 `json:"key"`
	Chord string                     `json:"chord"`
	Picks []recommend.Recommendation `json:"picks"`
}

func newMatrixCmd(opts *options) *cobra.Command {
	var (
		degree int
		mode   string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Top recommendations from one degree in all twelve keys",
		Long: `Compute the top ranked next chords after the chord on one scale
degree, for every key. Keys are computed in parallel.`,
		Example: `  harmonia matrix --chord-degree 5
  harmonia matrix --chord-degree 2 --mode Dorian --limit 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if degree < 1 || degree > scale.DegreeCount {
				return fmt.Errorf("chord degree must be between 1 and %d, got %d", scale.DegreeCount, degree)
			}
			modeID := opts.cfg.Engine.DefaultMode
			if mode != "" {
				modeID = scale.ModeID(mode)
			}
			return runMatrix(cmd, opts, degree, modeID, limit)
		},
	}

	cmd.Flags().IntVarP(&degree, "chord-degree", "d", 1, "scale degree of the current chord")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "mode (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "picks per key")

	return cmd
}

// buildMatrix runs one engine per key concurrently. Rows follow the pitch
// table order.
func buildMatrix(cmd *cobra.Command, opts *options, degree int, mode scale.ModeID, limit int) ([]matrixRow, error) {
	keys := pitch.Notes()
	rows := make([]matrixRow, len(keys))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			diatonic, err := scale.BuildDiatonicChords(key, mode)
			if err != nil {
				return err
			}
			current := diatonic[degree-1].Symbol

			e := opts.newEngine()
			e.SetKey(key, mode)
			e.SetCurrentChord(current)

			picks, err := e.Comprehensive(limit)
			if err != nil {
				return fmt.Errorf("key %s: %w", key, err)
			}
			rows[i] = matrixRow{Key: key, Chord: current, Picks: picks}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.logger.Debug("matrix computed", logging.Fields{
		"degree": degree,
		"mode":   mode,
		"keys":   len(rows),
	})

	return rows, nil
}

func runMatrix(cmd *cobra.Command, opts *options, degree int, mode scale.ModeID, limit int) error {
	rows, err := buildMatrix(cmd, opts, degree, mode, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, rows)
	}

	t := newTable(fmt.Sprintf("Degree %d in every %s key", degree, mode), "Key", "Chord", "Top picks")
	for _, row := range rows {
		picks := make([]string, len(row.Picks))
		for i, rec := range row.Picks {
			picks[i] = fmt.Sprintf("%s %s", rec.Symbol, formatProbability(rec.Probability))
		}
		t.AddRow(string(row.Key), row.Chord, strings.Join(picks, ", "))
	}
	fmt.Fprint(out, t.View(opts.styles))
	return nil
}
