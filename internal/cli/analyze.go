package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/progression"
	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

type analysisView struct {
	Degrees    []int                      `json:"degrees"`
	Steps      []progression.FunctionStep `json:"steps"`
	Curve      progression.Curve          `json:"tension_curve"`
	Mood       progression.MoodResult     `json:"mood"`
	Resolution int                        `json:"resolution"`
	Pattern    string                     `json:"pattern_impact,omitempty"`
	Chords     []string                   `json:"chords,omitempty"`
	Tension    []chord.TensionStep        `json:"chord_tension,omitempty"`
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		key  string
		mode string
	)

	cmd := &cobra.Command{
		Use:   "analyze <degrees>",
		Short: "Analyze the function, tension and mood of a degree progression",
		Long: `Analyze a progression given as scale degrees 1-7, separated by
commas or spaces. With --key the degrees are also spelled as chords.`,
		Example: `  harmonia analyze 1,5,6,4
  harmonia analyze 2 5 1 --key F`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			degrees, err := parseDegrees(args)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, opts, degrees, key, mode)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "spell the degrees as chords in this key")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "mode used with --key (default from config)")

	return cmd
}

// parseDegrees reads degrees from arguments split on commas and spaces
func parseDegrees(args []string) ([]int, error) {
	var degrees []int
	for _, arg := range args {
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' '
		})
		for _, field := range fields {
			d, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid degree %q: %w", field, err)
			}
			if d < 1 || d > scale.DegreeCount {
				return nil, &progression.InvalidDegreeError{Degree: d}
			}
			degrees = append(degrees, d)
		}
	}
	if len(degrees) == 0 {
		return nil, fmt.Errorf("no degrees given")
	}
	return degrees, nil
}

func runAnalyze(cmd *cobra.Command, opts *options, degrees []int, key, mode string) error {
	view := analysisView{
		Degrees:    degrees,
		Steps:      progression.AnalyzeFunction(degrees),
		Curve:      progression.TensionCurve(degrees),
		Mood:       progression.Mood(degrees),
		Resolution: progression.TotalResolution(degrees),
		Pattern:    progression.PatternImpact(degrees),
	}

	if key != "" {
		modeID := opts.cfg.Engine.DefaultMode
		if mode != "" {
			modeID = scale.ModeID(mode)
		}
		realized, err := progression.Realize(degrees, pitch.Note(key), modeID)
		if err != nil {
			return err
		}
		chords := make([]chord.Chord, len(realized))
		for i, d := range realized {
			if chords[i], err = chord.Build(d.Root, d.Quality); err != nil {
				return err
			}
		}
		view.Chords = progression.Symbols(realized)
		view.Tension = chord.AnalyzeTension(chords)
	}

	opts.logger.Debug("progression analyzed", logging.Fields{
		"degrees": len(degrees),
		"mood":    view.Mood.Primary,
	})

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, view)
	}

	headers := []string{"#", "Degree", "Function", "Next", "Impact", "Tension"}
	if view.Chords != nil {
		headers = append(headers, "Chord", "Movement")
	}
	t := newTable("Functional analysis", headers...)
	for i, step := range view.Steps {
		impact := ""
		if i+1 < len(degrees) {
			impact = progression.EmotionalImpact(degrees[i], degrees[i+1])
		}
		marker := string(step.Function)
		if step.IsResolution {
			marker += " *"
		}
		row := []string{
			strconv.Itoa(step.Position + 1),
			strconv.Itoa(step.Degree),
			marker,
			string(step.NextRelation),
			impact,
			fmt.Sprintf("%.2f", view.Curve.Values[i]),
		}
		if view.Chords != nil {
			row = append(row, view.Chords[i], string(view.Tension[i].Movement))
		}
		t.AddRow(row...)
	}
	fmt.Fprint(out, t.View(opts.styles))

	fmt.Fprintf(out, "tension: peak %.2f, average %.2f, spread %.2f, %s\n",
		view.Curve.Peak, view.Curve.Average, view.Curve.Spread, view.Curve.Type)
	fmt.Fprintf(out, "mood: %s (intensity %d, stability %.2f)\n",
		opts.styles.Accent.Render(view.Mood.Primary), view.Mood.Intensity, view.Mood.Stability)
	fmt.Fprintf(out, "resolution: %d\n", view.Resolution)
	if view.Pattern != "" {
		fmt.Fprintf(out, "pattern: %s\n", view.Pattern)
	}
	return nil
}
