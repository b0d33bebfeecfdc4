package rules

import (
	"fmt"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
)

// SubstitutionKind is one of the chord substitution rules
type SubstitutionKind int

const (
	SubstitutionTritone SubstitutionKind = iota
	SubstitutionHalfDiminished
	SubstitutionDiminished
	SubstitutionAugmented
	SubstitutionRelativeMinor
	// SubstitutionRelativeMajor is not part of the rule set; the engine
	// uses it as a fallback for minor chords.
	SubstitutionRelativeMajor
)

// substitutionRules is the rule set run by Substitutions, in order
var substitutionRules = []SubstitutionKind{
	SubstitutionTritone,
	SubstitutionHalfDiminished,
	SubstitutionDiminished,
	SubstitutionAugmented,
	SubstitutionRelativeMinor,
}

func (k SubstitutionKind) String() string {
	switch k {
	case SubstitutionTritone:
		return "tritone"
	case SubstitutionHalfDiminished:
		return "half_diminished"
	case SubstitutionDiminished:
		return "diminished"
	case SubstitutionAugmented:
		return "augmented"
	case SubstitutionRelativeMinor:
		return "relative_minor"
	case SubstitutionRelativeMajor:
		return "relative_major"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON output
func (k SubstitutionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Description is a short human-readable label of the rule
func (k SubstitutionKind) Description() string {
	switch k {
	case SubstitutionTritone:
		return "tritone substitute"
	case SubstitutionHalfDiminished:
		return "half-diminished substitute"
	case SubstitutionDiminished:
		return "diminished seventh substitute"
	case SubstitutionAugmented:
		return "augmented substitute"
	case SubstitutionRelativeMinor:
		return "relative minor substitute"
	case SubstitutionRelativeMajor:
		return "relative major substitute"
	default:
		return "substitute"
	}
}

// precondition returns the chord type a rule requires of its input
func (k SubstitutionKind) precondition() chord.TypeID {
	switch k {
	case SubstitutionTritone, SubstitutionHalfDiminished, SubstitutionDiminished, SubstitutionAugmented:
		return chord.Dominant7
	case SubstitutionRelativeMinor:
		return chord.Major7
	case SubstitutionRelativeMajor:
		return chord.Minor7
	default:
		return ""
	}
}

// transform returns the semitone shift and resulting type of a rule
func (k SubstitutionKind) transform() (int, chord.TypeID) {
	switch k {
	case SubstitutionTritone:
		return pitch.Intervals["TT"], chord.Dominant7
	case SubstitutionHalfDiminished:
		return pitch.Intervals["m2"], chord.HalfDiminished
	case SubstitutionDiminished:
		return pitch.Intervals["m2"], chord.Diminished7
	case SubstitutionAugmented:
		return pitch.Intervals["P1"], chord.Augmented
	case SubstitutionRelativeMinor:
		return pitch.Intervals["M6"], chord.Minor7
	case SubstitutionRelativeMajor:
		return pitch.Intervals["m3"], chord.Major7
	default:
		return 0, ""
	}
}

// Substitution is a replacement chord produced by a rule
type Substitution struct {
	Kind        SubstitutionKind `json:"kind"`
	Chord       chord.Chord      `json:"chord"`
	Original    string           `json:"original"`
	Explanation string           `json:"explanation"`
}

// Apply runs one rule against a chord. The bool is false when the chord
// does not meet the rule's precondition.
func Apply(kind SubstitutionKind, c chord.Chord) (Substitution, bool, error) {
	if c.Type != kind.precondition() {
		return Substitution{}, false, nil
	}

	shift, typeID := kind.transform()
	root, err := pitch.Transpose(c.Root, shift)
	if err != nil {
		return Substitution{}, false, fmt.Errorf("failed to apply %s to %s: %w", kind, c.Symbol, err)
	}

	sub, err := chord.Build(root, typeID)
	if err != nil {
		return Substitution{}, false, err
	}

	return Substitution{
		Kind:        kind,
		Chord:       sub,
		Original:    c.Symbol,
		Explanation: fmt.Sprintf("%s of %s", kind.Description(), c.Symbol),
	}, true, nil
}

// Substitutions runs every rule in the rule set and collects the ones that
// apply
func Substitutions(c chord.Chord) ([]Substitution, error) {
	var subs []Substitution
	for _, kind := range substitutionRules {
		sub, ok, err := Apply(kind, c)
		if err != nil {
			return nil, err
		}
		if ok {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

// SubstitutionRules returns the kinds in the rule set, in order
func SubstitutionRules() []SubstitutionKind {
	return append([]SubstitutionKind(nil), substitutionRules...)
}
