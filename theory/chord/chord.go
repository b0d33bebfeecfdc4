package chord

import (
	"fmt"

	"github.com/RyanBlaney/harmonia/theory/pitch"
)

// Chord is a chord built from a root and a registered type. Values are
// never mutated; inversions and substitutions produce new chords.
type Chord struct {
	Root         pitch.Note   `json:"root"`
	Type         TypeID       `json:"type"`
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Notes        []pitch.Note `json:"notes"`
	Intervals    []int        `json:"intervals"`
	Function     Function     `json:"function"`
	Tension      Tension      `json:"tension"`
	TensionLevel int          `json:"tension_level"`
	DegreeNames  []string     `json:"degree_names"`
	Bass         pitch.Note   `json:"bass"`
	Inversion    int          `json:"inversion"`
}

// Build resolves the chord type and spells every tone from the root
func Build(root pitch.Note, typeID TypeID) (Chord, error) {
	ct, err := LookupType(typeID)
	if err != nil {
		return Chord{}, err
	}

	rootIndex, err := pitch.IndexOf(root)
	if err != nil {
		return Chord{}, fmt.Errorf("failed to build %s%s: %w", root, ct.Symbol, err)
	}
	canonical := pitch.FromIndex(rootIndex)

	notes := make([]pitch.Note, len(ct.Intervals))
	for i, interval := range ct.Intervals {
		notes[i] = pitch.FromIndex(rootIndex + interval)
	}

	return Chord{
		Root:         canonical,
		Type:         typeID,
		Symbol:       string(canonical) + ct.Symbol,
		Name:         ct.Name,
		Notes:        notes,
		Intervals:    ct.Intervals,
		Function:     ct.Function,
		Tension:      ct.Tension,
		TensionLevel: ct.Tension.Level(),
		DegreeNames:  ct.DegreeNames,
		Bass:         canonical,
	}, nil
}

// Quality returns the facets of the chord's type
func (c Chord) Quality() Quality {
	q, _ := QualityOf(c.Type)
	return q
}

// Invert returns every rotation of the chord, starting with root position.
// Rotated chords are written as slash chords over their bass note.
func Invert(c Chord) []Chord {
	inversions := make([]Chord, 0, len(c.Notes))

	for i := range c.Notes {
		notes := make([]pitch.Note, 0, len(c.Notes))
		notes = append(notes, c.Notes[i:]...)
		notes = append(notes, c.Notes[:i]...)

		inv := c
		inv.Notes = notes
		inv.Bass = notes[0]
		inv.Inversion = i
		if i > 0 {
			inv.Symbol = fmt.Sprintf("%s/%s", c.Symbol, notes[0])
		}
		inversions = append(inversions, inv)
	}

	return inversions
}

// colorOrder fixes the iteration order of chordColors
var colorOrder = []string{"bright", "warm", "dark", "mysterious", "suspended", "jazzy", "classical"}

var chordColors = map[string][]TypeID{
	"bright":     {Major7, Major9, Major11, "7#11"},
	"warm":       {Minor7, Minor9, Minor11},
	"dark":       {HalfDiminished, Diminished7, Dominant7Flat5, Dominant7Flat9},
	"mysterious": {MinorMajor7, Dominant7Sharp5, Altered},
	"suspended":  {Sus2, Sus4, Dominant7Sus4},
	"jazzy":      {Dominant9, Dominant11, "13", Dominant7Sharp9, Dominant7Flat9},
	"classical":  {Major, Minor, Diminished, Augmented},
}

// ColorTags returns the color categories a chord type belongs to. A type
// may have none, one or several.
func ColorTags(typeID TypeID) []string {
	var tags []string
	for _, color := range colorOrder {
		for _, id := range chordColors[color] {
			if id == typeID {
				tags = append(tags, color)
				break
			}
		}
	}
	return tags
}

// TensionMovement describes how tension changes into the next chord
type TensionMovement string

const (
	TensionIncreasing TensionMovement = "increasing"
	TensionDecreasing TensionMovement = "decreasing"
	TensionSteady     TensionMovement = "stable"
)

// TensionStep is one chord of a tension walk
type TensionStep struct {
	Chord       Chord           `json:"chord"`
	Tension     int             `json:"tension"`
	Movement    TensionMovement `json:"movement"`
	NextTension *int            `json:"next_tension,omitempty"` // nil on the last chord
}

// AnalyzeTension walks a chord sequence and reports the tension level of
// each chord and the direction it moves into the next one
func AnalyzeTension(chords []Chord) []TensionStep {
	steps := make([]TensionStep, len(chords))

	for i, c := range chords {
		step := TensionStep{
			Chord:    c,
			Tension:  c.Tension.Level(),
			Movement: TensionSteady,
		}

		if i < len(chords)-1 {
			next := chords[i+1].Tension.Level()
			step.NextTension = &next
			switch {
			case next > step.Tension:
				step.Movement = TensionIncreasing
			case next < step.Tension:
				step.Movement = TensionDecreasing
			}
		}

		steps[i] = step
	}

	return steps
}
