package scale

import (
	"fmt"

	"github.com/RyanBlaney/harmonia/theory/chord"
)

// ModeID identifies a registered mode
type ModeID string

const (
	Ionian        ModeID = "Ionian"
	Dorian        ModeID = "Dorian"
	Phrygian      ModeID = "Phrygian"
	Lydian        ModeID = "Lydian"
	Mixolydian    ModeID = "Mixolydian"
	Aeolian       ModeID = "Aeolian"
	Locrian       ModeID = "Locrian"
	HarmonicMinor ModeID = "HarmonicMinor"
	MelodicMinor  ModeID = "MelodicMinor"
)

// DegreeCount is the number of degrees in every registered mode
const DegreeCount = 7

// Mode is a seven-note scale recipe with the seventh-chord quality that
// sits on each degree
type Mode struct {
	ID          ModeID                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Intervals   [DegreeCount]int          `json:"intervals"` // semitones from the tonic, strictly increasing
	Qualities   [DegreeCount]chord.TypeID `json:"qualities"`
}

// UnknownModeError is returned when a mode id is not registered
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode: %q", e.Mode)
}

// modeOrder is the registration order. Borrowing and parallel-mode
// listings iterate in this order.
var modeOrder = []ModeID{
	Ionian, Dorian, Phrygian, Lydian, Mixolydian, Aeolian, Locrian,
	HarmonicMinor, MelodicMinor,
}

var modes = map[ModeID]Mode{
	Ionian: {
		Name:        "Ionian",
		Description: "major scale",
		Intervals:   [DegreeCount]int{0, 2, 4, 5, 7, 9, 11},
		Qualities:   [DegreeCount]chord.TypeID{chord.Major7, chord.Minor7, chord.Minor7, chord.Major7, chord.Dominant7, chord.Minor7, chord.HalfDiminished},
	},
	Dorian: {
		Name:        "Dorian",
		Description: "minor with a raised sixth",
		Intervals:   [DegreeCount]int{0, 2, 3, 5, 7, 9, 10},
		Qualities:   [DegreeCount]chord.TypeID{chord.Minor7, chord.Minor7, chord.Major7, chord.Dominant7, chord.Minor7, chord.HalfDiminished, chord.Major7},
	},
	Phrygian: {
		Name:        "Phrygian",
		Description: "minor with a lowered second",
		Intervals:   [DegreeCount]int{0, 1, 3, 5, 7, 8, 10},
		Qualities:   [DegreeCount]chord.TypeID{chord.Minor7, chord.Major7, chord.Dominant7, chord.Minor7, chord.HalfDiminished, chord.Major7, chord.Minor7},
	},
	Lydian: {
		Name:        "Lydian",
		Description: "major with a raised fourth",
		Intervals:   [DegreeCount]int{0, 2, 4, 6, 7, 9, 11},
		Qualities:   [DegreeCount]chord.TypeID{chord.Major7, chord.Dominant7, chord.Minor7, chord.HalfDiminished, chord.Major7, chord.Minor7, chord.Minor7},
	},
	Mixolydian: {
		Name:        "Mixolydian",
		Description: "major with a lowered seventh",
		Intervals:   [DegreeCount]int{0, 2, 4, 5, 7, 9, 10},
		Qualities:   [DegreeCount]chord.TypeID{chord.Dominant7, chord.Minor7, chord.HalfDiminished, chord.Major7, chord.Minor7, chord.Minor7, chord.Major7},
	},
	Aeolian: {
		Name:        "Aeolian",
		Description: "natural minor scale",
		Intervals:   [DegreeCount]int{0, 2, 3, 5, 7, 8, 10},
		Qualities:   [DegreeCount]chord.TypeID{chord.Minor7, chord.HalfDiminished, chord.Major7, chord.Minor7, chord.Minor7, chord.Major7, chord.Dominant7},
	},
	Locrian: {
		Name:        "Locrian",
		Description: "diminished tonic with a lowered second and fifth",
		Intervals:   [DegreeCount]int{0, 1, 3, 5, 6, 8, 10},
		Qualities:   [DegreeCount]chord.TypeID{chord.HalfDiminished, chord.Major7, chord.Minor7, chord.Minor7, chord.Major7, chord.Dominant7, chord.Minor7},
	},
	HarmonicMinor: {
		Name:        "Harmonic Minor",
		Description: "natural minor with a raised seventh",
		Intervals:   [DegreeCount]int{0, 2, 3, 5, 7, 8, 11},
		Qualities:   [DegreeCount]chord.TypeID{chord.MinorMajor7, chord.HalfDiminished, chord.Major7Sharp5, chord.Minor7, chord.Dominant7, chord.Major7, chord.Diminished7},
	},
	MelodicMinor: {
		Name:        "Melodic Minor",
		Description: "jazz melodic minor, raised sixth and seventh",
		Intervals:   [DegreeCount]int{0, 2, 3, 5, 7, 9, 11},
		Qualities:   [DegreeCount]chord.TypeID{chord.MinorMajor7, chord.Minor7, chord.Major7Sharp5, chord.Dominant7, chord.Dominant7, chord.HalfDiminished, chord.HalfDiminished},
	},
}

// LookupMode returns the registered mode for an id
func LookupMode(id ModeID) (Mode, error) {
	mode, ok := modes[id]
	if !ok {
		return Mode{}, &UnknownModeError{Mode: string(id)}
	}
	mode.ID = id
	return mode, nil
}

// Modes returns every registered mode id in registration order
func Modes() []ModeID {
	return append([]ModeID(nil), modeOrder...)
}

// IsMajor reports whether the mode is treated as a major key when picking
// secondary-dominant targets. Only Ionian is.
func (id ModeID) IsMajor() bool {
	return id == Ionian
}
