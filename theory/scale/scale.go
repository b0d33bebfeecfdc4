package scale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
)

// DiatonicChord is the seventh chord built on one degree of a mode
type DiatonicChord struct {
	Root         pitch.Note     `json:"root"`
	Quality      chord.TypeID   `json:"quality"`
	Symbol       string         `json:"symbol"`
	Degree       int            `json:"degree"` // 1-7
	RomanNumeral string         `json:"roman_numeral"`
	Function     chord.Function `json:"function"`
}

// ParallelMode is one mode's diatonic chords on a shared root
type ParallelMode struct {
	Mode   Mode            `json:"mode"`
	Chords []DiatonicChord `json:"chords"`
}

// BuildScale returns the seven notes of a mode on the given root
func BuildScale(root pitch.Note, modeID ModeID) ([]pitch.Note, error) {
	mode, err := LookupMode(modeID)
	if err != nil {
		return nil, err
	}

	notes := make([]pitch.Note, DegreeCount)
	for i, interval := range mode.Intervals {
		note, err := pitch.Transpose(root, interval)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s %s scale: %w", root, modeID, err)
		}
		notes[i] = note
	}

	return notes, nil
}

// BuildDiatonicChords pairs each scale note with the mode's quality at that
// degree
func BuildDiatonicChords(root pitch.Note, modeID ModeID) ([]DiatonicChord, error) {
	notes, err := BuildScale(root, modeID)
	if err != nil {
		return nil, err
	}
	mode, _ := LookupMode(modeID)

	chords := make([]DiatonicChord, DegreeCount)
	for i, note := range notes {
		quality := mode.Qualities[i]
		ct, err := chord.LookupType(quality)
		if err != nil {
			return nil, fmt.Errorf("mode %s degree %d: %w", modeID, i+1, err)
		}

		chords[i] = DiatonicChord{
			Root:         note,
			Quality:      quality,
			Symbol:       string(note) + ct.Symbol,
			Degree:       i + 1,
			RomanNumeral: RomanNumeral(i+1, string(quality)),
			Function:     ct.Function,
		}
	}

	return chords, nil
}

// ParallelModes builds the diatonic chords of every registered mode on the
// same root, in registration order
func ParallelModes(root pitch.Note) ([]ParallelMode, error) {
	parallel := make([]ParallelMode, 0, len(modeOrder))
	for _, id := range modeOrder {
		chords, err := BuildDiatonicChords(root, id)
		if err != nil {
			return nil, err
		}
		mode, _ := LookupMode(id)
		parallel = append(parallel, ParallelMode{Mode: mode, Chords: chords})
	}
	return parallel, nil
}

var romanNumerals = [DegreeCount]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// RomanNumeral labels a degree for a chord quality. The numeral is
// lower-case for a minor third, then suffixed independently with "7" for
// seventh chords, "ø" for a flat fifth that is not fully diminished and
// "°" for diminished chords. Qualities that are not registered types get
// the bare upper-case numeral.
func RomanNumeral(degree int, quality string) string {
	if degree < 1 || degree > DegreeCount {
		return strconv.Itoa(degree)
	}

	roman := romanNumerals[degree-1]

	typeID, ok := chord.ResolveQuality(quality)
	if !ok {
		return roman
	}
	q, _ := chord.QualityOf(typeID)

	if q.IsMinor() {
		roman = strings.ToLower(roman)
	}
	if q.Seventh {
		roman += "7"
	}
	if q.IsHalfDiminishedColor() {
		roman += "ø"
	}
	if q.Diminished {
		roman += "°"
	}

	return roman
}
