package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/progression"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

type realizedProgression struct {
	progression.Progression
	Chords []string `json:"chords"`
}

func newProgressionsCmd(opts *options) *cobra.Command {
	var (
		key      string
		mode     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "progressions [name]",
		Short: "List catalog progressions spelled in a key",
		Long: `List the progression catalog spelled in a key. Modal progressions
always use their own mode. A name ("ii-V-I" or "jazz/ii-V-I") shows a
single progression.`,
		Example: `  harmonia progressions --key G --category jazz
  harmonia progressions pop/I-V-vi-IV --key D`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := opts.cfg.Engine.DefaultKey
			if key != "" {
				root = pitch.Note(key)
			}
			modeID := opts.cfg.Engine.DefaultMode
			if mode != "" {
				modeID = scale.ModeID(mode)
			}

			var list []progression.Progression
			switch {
			case len(args) == 1:
				p, err := progression.Lookup(args[0])
				if err != nil {
					return err
				}
				list = []progression.Progression{p}
			case category != "":
				list = progression.ByCategory(category)
				if len(list) == 0 {
					return fmt.Errorf("unknown category %q (valid: %s)",
						category, strings.Join(progression.Categories(), ", "))
				}
			default:
				list = progression.Catalog()
			}

			return runProgressions(cmd, opts, list, root, modeID)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "tonic (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "mode (default from config)")
	cmd.Flags().StringVar(&category, "category", "", "only this category: "+strings.Join(progression.Categories(), ", "))

	return cmd
}

func runProgressions(cmd *cobra.Command, opts *options, list []progression.Progression, key pitch.Note, mode scale.ModeID) error {
	realized := make([]realizedProgression, 0, len(list))
	for _, p := range list {
		chords, err := p.Realize(key, mode)
		if err != nil {
			return fmt.Errorf("%s: %w", p.ID(), err)
		}
		realized = append(realized, realizedProgression{
			Progression: p,
			Chords:      progression.Symbols(chords),
		})
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, realized)
	}

	t := newTable(fmt.Sprintf("Progressions in %s %s", key, mode), "Category", "Name", "Chords", "Mood")
	for _, r := range realized {
		name := r.Name
		if r.Mode != "" {
			name += " (" + string(r.Mode) + ")"
		}
		t.AddRow(r.Category, name, strings.Join(r.Chords, " "), r.Mood)
	}
	fmt.Fprint(out, t.View(opts.styles))
	return nil
}
