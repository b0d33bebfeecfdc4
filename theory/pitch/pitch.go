package pitch

import (
	"fmt"
	"strings"
)

// Note is a pitch class name from the canonical sharp-spelled table
type Note string

const (
	C      Note = "C"
	CSharp Note = "C#"
	D      Note = "D"
	DSharp Note = "D#"
	E      Note = "E"
	F      Note = "F"
	FSharp Note = "F#"
	G      Note = "G"
	GSharp Note = "G#"
	A      Note = "A"
	ASharp Note = "A#"
	B      Note = "B"
)

// PitchClasses is the number of semitones in an octave
const PitchClasses = 12

// noteTable fixes the enharmonic spelling of every pitch class. Flats are
// never produced.
var noteTable = [PitchClasses]Note{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}

// Interval names mapped to semitones above the root
var Intervals = map[string]int{
	"P1": 0,  // perfect unison
	"m2": 1,  // minor second
	"M2": 2,  // major second
	"m3": 3,  // minor third
	"M3": 4,  // major third
	"P4": 5,  // perfect fourth
	"TT": 6,  // tritone
	"P5": 7,  // perfect fifth
	"m6": 8,  // minor sixth
	"M6": 9,  // major sixth
	"m7": 10, // minor seventh
	"M7": 11, // major seventh
}

// UnknownNoteError is returned when a note name is not in the 12-entry table
type UnknownNoteError struct {
	Note string
}

func (e *UnknownNoteError) Error() string {
	return fmt.Sprintf("unknown note: %q", e.Note)
}

// Notes returns a copy of the canonical note table
func Notes() []Note {
	notes := make([]Note, PitchClasses)
	copy(notes, noteTable[:])
	return notes
}

// IndexOf returns the pitch class (0-11) of a note. Octave digits are
// ignored, so "C#4" resolves like "C#".
func IndexOf(note Note) (int, error) {
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, string(note))

	for i, n := range noteTable {
		if string(n) == clean {
			return i, nil
		}
	}
	return -1, &UnknownNoteError{Note: string(note)}
}

// FromIndex maps any integer onto the note table, normalizing negative and
// out-of-range values mod 12
func FromIndex(index int) Note {
	return noteTable[normalize(index)]
}

// Transpose moves a note by the given number of semitones. Semitones may be
// negative or larger than an octave.
func Transpose(note Note, semitones int) (Note, error) {
	index, err := IndexOf(note)
	if err != nil {
		return "", err
	}
	return FromIndex(index + semitones), nil
}

// Distance returns the ascending semitone distance from one note to another
func Distance(from, to Note) (int, error) {
	fromIndex, err := IndexOf(from)
	if err != nil {
		return 0, err
	}
	toIndex, err := IndexOf(to)
	if err != nil {
		return 0, err
	}
	return normalize(toIndex - fromIndex), nil
}

// IsValid reports whether the note is in the canonical table
func IsValid(note Note) bool {
	_, err := IndexOf(note)
	return err == nil
}

func normalize(index int) int {
	return ((index % PitchClasses) + PitchClasses) % PitchClasses
}
