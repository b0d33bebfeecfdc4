package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
)

type chordView struct {
	Chord      chord.Chord   `json:"chord"`
	Inversions []chord.Chord `json:"inversions"`
	Colors     []string      `json:"colors"`
}

func newChordCmd(opts *options) *cobra.Command {
	var (
		root   string
		typeID string
	)

	cmd := &cobra.Command{
		Use:   "chord [symbol]",
		Short: "Spell a chord with its inversions and color",
		Example: `  harmonia chord Cmaj7
  harmonia chord --root F# --type m7b5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				parsed := chord.ParseSymbol(args[0])
				if !parsed.Known {
					return &chord.UnknownChordTypeError{Type: parsed.Quality}
				}
				root, typeID = string(parsed.Root), string(parsed.Type)
			}
			if root == "" {
				return fmt.Errorf("a chord symbol or --root is required")
			}
			return runChord(cmd, opts, pitch.Note(root), chord.TypeID(typeID))
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "chord root")
	cmd.Flags().StringVarP(&typeID, "type", "t", string(chord.Major), "chord type id, e.g. maj7, m7, 7")

	return cmd
}

func runChord(cmd *cobra.Command, opts *options, root pitch.Note, typeID chord.TypeID) error {
	c, err := chord.Build(root, typeID)
	if err != nil {
		return err
	}

	view := chordView{
		Chord:      c,
		Inversions: chord.Invert(c),
		Colors:     chord.ColorTags(typeID),
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, view)
	}

	fmt.Fprintf(out, "%s %s\n", opts.styles.Title.Render(c.Symbol), opts.styles.Muted.Render(c.Name))
	fmt.Fprintf(out, "function: %s  tension: %s (%d)\n", c.Function, c.Tension, c.TensionLevel)
	if len(view.Colors) > 0 {
		fmt.Fprintf(out, "color: %s\n", opts.styles.Accent.Render(strings.Join(view.Colors, ", ")))
	}
	fmt.Fprintln(out)

	t := newTable("Voicings", "Inversion", "Symbol", "Bass", "Notes")
	for _, inv := range view.Inversions {
		t.AddRow(fmt.Sprint(inv.Inversion), inv.Symbol, string(inv.Bass), joinNotes(inv.Notes))
	}
	fmt.Fprint(out, t.View(opts.styles))
	return nil
}

func joinNotes(notes []pitch.Note) string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = string(n)
	}
	return strings.Join(names, " ")
}
