package rules

import (
	"fmt"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// DefaultWeight applies to degree pairs missing from the weight table
const DefaultWeight = 0.3

// progressionWeights holds the likelihood of moving from one scale degree
// to another, after common-practice harmony. The table is asymmetric.
var progressionWeights = map[int]map[int]float64{
	1: {2: 0.8, 3: 0.6, 4: 0.9, 5: 0.95, 6: 0.85, 7: 0.4},
	2: {1: 0.3, 3: 0.4, 4: 0.6, 5: 0.9, 6: 0.5, 7: 0.7},
	3: {1: 0.4, 2: 0.5, 4: 0.7, 5: 0.6, 6: 0.8, 7: 0.3},
	4: {1: 0.8, 2: 0.7, 3: 0.5, 5: 0.9, 6: 0.6, 7: 0.8},
	5: {1: 0.95, 2: 0.4, 3: 0.5, 4: 0.3, 6: 0.7, 7: 0.2},
	6: {1: 0.6, 2: 0.8, 3: 0.7, 4: 0.9, 5: 0.5, 7: 0.4},
	7: {1: 0.9, 2: 0.3, 3: 0.8, 4: 0.4, 5: 0.6, 6: 0.5},
}

// Weight returns the progression weight from one degree to another,
// falling back to DefaultWeight
func Weight(from, to int) float64 {
	if w, ok := progressionWeights[from][to]; ok {
		return w
	}
	return DefaultWeight
}

// Weights returns a copy of the outbound weights of a degree
func Weights(from int) map[int]float64 {
	out := make(map[int]float64, len(progressionWeights[from]))
	for to, w := range progressionWeights[from] {
		out[to] = w
	}
	return out
}

// KeyType groups modes for secondary-dominant targeting
type KeyType string

const (
	KeyMajor KeyType = "major"
	KeyMinor KeyType = "minor"
)

// KeyTypeFor returns major for Ionian and minor for every other mode
func KeyTypeFor(mode scale.ModeID) KeyType {
	if mode.IsMajor() {
		return KeyMajor
	}
	return KeyMinor
}

// secondaryDominantTargets lists the semitone offsets from the tonic that
// may be tonicized by a secondary dominant
var secondaryDominantTargets = map[KeyType][]int{
	KeyMajor: {2, 4, 7, 9, 10},
	KeyMinor: {0, 2, 5, 7, 10},
}

// SecondaryDominantTargets returns a copy of the eligible offsets
func SecondaryDominantTargets(keyType KeyType) []int {
	return append([]int(nil), secondaryDominantTargets[keyType]...)
}

// IsSecondaryDominantTarget reports whether a pitch-class offset from the
// tonic can be tonicized in the given key type
func IsSecondaryDominantTarget(keyType KeyType, offset int) bool {
	for _, t := range secondaryDominantTargets[keyType] {
		if t == offset {
			return true
		}
	}
	return false
}

// SecondaryDominant is the dominant seventh a fifth above a target chord
type SecondaryDominant struct {
	Chord       chord.Chord `json:"chord"`
	Target      string      `json:"target"`
	Progression string      `json:"progression"`
}

// SecondaryDominantOf builds the dominant seventh that resolves to a chord
// rooted on target. The target's own quality does not matter.
func SecondaryDominantOf(targetRoot pitch.Note, targetSymbol string) (SecondaryDominant, error) {
	root, err := pitch.Transpose(targetRoot, pitch.Intervals["P5"])
	if err != nil {
		return SecondaryDominant{}, fmt.Errorf("failed to find dominant of %s: %w", targetSymbol, err)
	}

	dom, err := chord.Build(root, chord.Dominant7)
	if err != nil {
		return SecondaryDominant{}, err
	}

	return SecondaryDominant{
		Chord:       dom,
		Target:      targetSymbol,
		Progression: fmt.Sprintf("%s → %s", dom.Symbol, targetSymbol),
	}, nil
}

// BorrowedDegree describes a chord commonly borrowed from a parallel mode
type BorrowedDegree struct {
	Degree  string       `json:"degree"`
	Quality chord.TypeID `json:"quality"`
	Source  scale.ModeID `json:"source"`
}

// Borrowing directions for the modal interchange table
const (
	MajorFromMinor = "majorFromMinor"
	MinorFromMajor = "minorFromMajor"
)

// modalInterchange is reference metadata. Borrowed chords are discovered
// structurally by comparing parallel modes, not read from this table.
var modalInterchange = map[string][]BorrowedDegree{
	MajorFromMinor: {
		{Degree: "bII", Quality: chord.Major7, Source: scale.Phrygian},
		{Degree: "bIII", Quality: chord.Major7, Source: scale.Aeolian},
		{Degree: "iv", Quality: chord.Minor7, Source: scale.Aeolian},
		{Degree: "bVI", Quality: chord.Major7, Source: scale.Aeolian},
		{Degree: "bVII", Quality: chord.Dominant7, Source: scale.Mixolydian},
	},
	MinorFromMajor: {
		{Degree: "II", Quality: chord.Minor7, Source: scale.Dorian},
		{Degree: "IV", Quality: chord.Major7, Source: scale.Ionian},
		{Degree: "VI", Quality: chord.Major7, Source: scale.Ionian},
		{Degree: "VII", Quality: chord.Major7, Source: scale.Ionian},
	},
}

// CommonBorrowings returns the reference borrowings for a direction
func CommonBorrowings(direction string) []BorrowedDegree {
	return append([]BorrowedDegree(nil), modalInterchange[direction]...)
}
