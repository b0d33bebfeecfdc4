package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/recommend"
	"github.com/RyanBlaney/harmonia/theory/key"
)

// nearTie is the clarity below which the top two keys are reported as tied
const nearTie = 0.05

type keyView struct {
	Estimate key.Estimate              `json:"estimate"`
	Next     []recommend.Recommendation `json:"next,omitempty"`
}

func newKeyCmd(opts *options) *cobra.Command {
	var (
		profile string
		top     int
		next    bool
	)

	cmd := &cobra.Command{
		Use:   "key <chords>",
		Short: "Estimate the key of a chord sequence",
		Long: `Estimate the major or minor key of a chord sequence from its
pitch-class content. Chords are separated by commas or spaces. With --next
the estimated key is used to recommend what follows the last chord.`,
		Example: `  harmonia key C G Am F
  harmonia key "Am,Dm,E7" --profile temperley --next`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var symbols []string
			for _, arg := range args {
				symbols = append(symbols, strings.FieldsFunc(arg, func(r rune) bool {
					return r == ',' || r == ' '
				})...)
			}
			return runKey(cmd, opts, symbols, key.Profile(profile), top, next)
		},
	}

	profiles := make([]string, 0, len(key.Profiles()))
	for _, p := range key.Profiles() {
		profiles = append(profiles, string(p))
	}
	cmd.Flags().StringVar(&profile, "profile", string(key.ProfileKrumhansl), "key profile: "+strings.Join(profiles, ", "))
	cmd.Flags().IntVarP(&top, "top", "n", 3, "candidate keys to show")
	cmd.Flags().BoolVar(&next, "next", false, "recommend the next chord in the estimated key")

	return cmd
}

func runKey(cmd *cobra.Command, opts *options, symbols []string, profile key.Profile, top int, next bool) error {
	e := opts.newEngine()
	est, err := e.SetKeyFromChords(symbols, profile)
	if err != nil {
		return err
	}

	if est.Clarity < nearTie {
		logging.WithContext(cmd.Context()).Warn("top key candidates are nearly tied", logging.Fields{
			"first":   est.Candidates[0].Name(),
			"second":  est.Candidates[1].Name(),
			"clarity": est.Clarity,
		})
	}

	view := keyView{Estimate: est}
	if next {
		if view.Next, err = e.Comprehensive(-1); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, view)
	}

	best := est.Candidates[0]
	fmt.Fprintf(out, "%s %s\n", opts.styles.Title.Render(best.Name()),
		opts.styles.Muted.Render(fmt.Sprintf("(%s, clarity %.2f, ambiguity %.2f)", est.Profile, est.Clarity, est.Ambiguity)))
	fmt.Fprintln(out)

	t := newTable("Candidates", "Key", "Mode", "Correlation")
	for i, c := range est.Candidates {
		if i >= top {
			break
		}
		t.AddRow(c.Name(), string(c.Mode), fmt.Sprintf("%.3f", c.Correlation))
	}
	fmt.Fprint(out, t.View(opts.styles))

	if next {
		title := fmt.Sprintf("Next chords after %s", symbols[len(symbols)-1])
		fmt.Fprint(out, recommendationTable(title, view.Next).View(opts.styles))
	}
	return nil
}
