package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

func newScaleCmd(opts *options) *cobra.Command {
	var (
		key      string
		mode     string
		parallel bool
	)

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Spell a scale and its diatonic seventh chords",
		Example: `  harmonia scale --key D --mode Dorian
  harmonia scale --key A --parallel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := opts.cfg.Engine.DefaultKey
			if key != "" {
				root = pitch.Note(key)
			}
			modeID := opts.cfg.Engine.DefaultMode
			if mode != "" {
				modeID = scale.ModeID(mode)
			}

			if parallel {
				return runParallelModes(cmd, opts, root)
			}
			return runScale(cmd, opts, root, modeID)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "tonic (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "mode (default from config)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "list the diatonic chords of every mode on the tonic")

	return cmd
}

type scaleView struct {
	Key    pitch.Note            `json:"key"`
	Mode   scale.Mode            `json:"mode"`
	Notes  []pitch.Note          `json:"notes"`
	Chords []scale.DiatonicChord `json:"chords"`
}

func runScale(cmd *cobra.Command, opts *options, root pitch.Note, modeID scale.ModeID) error {
	mode, err := scale.LookupMode(modeID)
	if err != nil {
		return err
	}
	notes, err := scale.BuildScale(root, modeID)
	if err != nil {
		return err
	}
	chords, err := scale.BuildDiatonicChords(root, modeID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, scaleView{Key: root, Mode: mode, Notes: notes, Chords: chords})
	}

	fmt.Fprintf(out, "%s %s\n%s\n\n",
		opts.styles.Title.Render(fmt.Sprintf("%s %s", root, mode.Name)),
		opts.styles.Muted.Render("("+mode.Description+")"),
		joinNotes(notes))

	fmt.Fprint(out, diatonicTable("Diatonic chords", chords).View(opts.styles))
	return nil
}

func runParallelModes(cmd *cobra.Command, opts *options, root pitch.Note) error {
	modes, err := scale.ParallelModes(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, modes)
	}

	headers := []string{"Mode"}
	for degree := 1; degree <= scale.DegreeCount; degree++ {
		headers = append(headers, strconv.Itoa(degree))
	}
	t := newTable(fmt.Sprintf("Parallel modes on %s", root), headers...)
	for _, pm := range modes {
		row := []string{pm.Mode.Name}
		for _, c := range pm.Chords {
			row = append(row, c.Symbol)
		}
		t.AddRow(row...)
	}
	fmt.Fprint(out, t.View(opts.styles))
	return nil
}

func diatonicTable(title string, chords []scale.DiatonicChord) *table {
	t := newTable(title, "Degree", "Numeral", "Chord", "Function")
	for _, c := range chords {
		t.AddRow(strconv.Itoa(c.Degree), c.RomanNumeral, c.Symbol, string(c.Function))
	}
	return t
}
