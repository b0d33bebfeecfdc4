package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/recommend"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

type recommendFlags struct {
	key   string
	mode  string
	chord string
	limit int
	all   bool
}

func newRecommendCmd(opts *options) *cobra.Command {
	f := &recommendFlags{}

	cmd := &cobra.Command{
		Use:   "recommend [chord]",
		Short: "Suggest the next chord",
		Long: `Suggest the next chord for the current key, mode and chord.

By default the strategies are merged into one ranked list. Use --all to
see every strategy's list separately.`,
		Example: `  harmonia recommend --key C --chord Am
  harmonia recommend G7 --mode Mixolydian --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.chord = args[0]
			}
			return runRecommend(cmd, opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.key, "key", "k", "", "tonic of the key (default from config)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "mode of the key (default from config)")
	cmd.Flags().StringVarP(&f.chord, "chord", "c", "", "chord currently sounding, e.g. Am7")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "number of ranked results (default from config)")
	cmd.Flags().BoolVar(&f.all, "all", false, "show every strategy separately")

	return cmd
}

func runRecommend(cmd *cobra.Command, opts *options, f *recommendFlags) error {
	e := opts.newEngine()

	ctx := e.Snapshot()
	key, mode := ctx.Key, ctx.Mode
	if f.key != "" {
		key = pitch.Note(f.key)
	}
	if f.mode != "" {
		mode = scale.ModeID(f.mode)
	}
	e.SetKey(key, mode)
	e.SetCurrentChord(f.chord)

	out := cmd.OutOrStdout()

	if f.all {
		set, err := e.All()
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(out, set)
		}
		for _, strategy := range recommend.Strategies() {
			t := recommendationTable(string(strategy), set.Get(strategy))
			fmt.Fprint(out, t.View(opts.styles))
		}
		return nil
	}

	limit := f.limit
	if !cmd.Flags().Changed("limit") {
		limit = -1
	}
	recs, err := e.Comprehensive(limit)
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(out, recs)
	}

	title := fmt.Sprintf("Next chords in %s %s", key, mode)
	if cur := e.Snapshot().Current; cur != nil {
		title += " after " + cur.Symbol
	}
	fmt.Fprint(out, recommendationTable(title, recs).View(opts.styles))
	return nil
}

func recommendationTable(title string, recs []recommend.Recommendation) *table {
	t := newTable(title, "Chord", "Numeral", "Prob", "Strategy", "Explanation")
	for _, rec := range recs {
		explanation := rec.Explanation
		if rec.Progression != "" && !strings.Contains(explanation, rec.Progression) {
			explanation += " (" + rec.Progression + ")"
		}
		t.AddRow(rec.Symbol, rec.RomanNumeral, formatProbability(rec.Probability), string(rec.Strategy), explanation)
	}
	return t
}
