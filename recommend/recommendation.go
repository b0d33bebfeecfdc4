package recommend

import (
	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/common"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// Strategy names the source of a recommendation
type Strategy string

const (
	StrategyDiatonic          Strategy = "diatonic"
	StrategySecondaryDominant Strategy = "secondaryDominant"
	StrategyDoubleDominant    Strategy = "doubleDominant"
	StrategyModalInterchange  Strategy = "modalInterchange"
	StrategyChordSubstitution Strategy = "chordSubstitution"
)

// Strategies returns every strategy in declaration order. Comprehensive
// deduplication favors earlier strategies.
func Strategies() []Strategy {
	return []Strategy{
		StrategyDiatonic,
		StrategySecondaryDominant,
		StrategyDoubleDominant,
		StrategyModalInterchange,
		StrategyChordSubstitution,
	}
}

// Recommendation is one suggested next chord. Fields that do not apply to
// a strategy are left empty.
type Recommendation struct {
	Symbol       string         `json:"symbol"`
	Root         pitch.Note     `json:"root"`
	Quality      chord.TypeID   `json:"quality"`
	Notes        []pitch.Note   `json:"notes,omitempty"`
	Function     chord.Function `json:"function,omitempty"`
	Degree       int            `json:"degree,omitempty"`
	RomanNumeral string         `json:"roman_numeral,omitempty"`
	Probability  float64        `json:"probability"`
	Explanation  string         `json:"explanation"`
	Strategy     Strategy       `json:"strategy"`

	// secondary and double dominants
	Progression string   `json:"progression,omitempty"`
	Target      string   `json:"target,omitempty"`
	Chain       []string `json:"chain,omitempty"`
	Depth       int      `json:"depth,omitempty"`

	SourceMode   scale.ModeID `json:"source_mode,omitempty"`
	Substitution string       `json:"substitution,omitempty"`
}

// Set holds the output of every strategy, unranked across strategies
type Set struct {
	Diatonic          []Recommendation `json:"diatonic"`
	SecondaryDominant []Recommendation `json:"secondaryDominant"`
	DoubleDominant    []Recommendation `json:"doubleDominant"`
	ModalInterchange  []Recommendation `json:"modalInterchange"`
	ChordSubstitution []Recommendation `json:"chordSubstitution"`
}

// Get returns the list produced by one strategy
func (s Set) Get(strategy Strategy) []Recommendation {
	switch strategy {
	case StrategyDiatonic:
		return s.Diatonic
	case StrategySecondaryDominant:
		return s.SecondaryDominant
	case StrategyDoubleDominant:
		return s.DoubleDominant
	case StrategyModalInterchange:
		return s.ModalInterchange
	case StrategyChordSubstitution:
		return s.ChordSubstitution
	default:
		return nil
	}
}

// Flatten concatenates every list in strategy declaration order
func (s Set) Flatten() []Recommendation {
	var all []Recommendation
	for _, strategy := range Strategies() {
		all = append(all, s.Get(strategy)...)
	}
	return all
}

// Len is the total number of recommendations across strategies
func (s Set) Len() int {
	n := 0
	for _, strategy := range Strategies() {
		n += len(s.Get(strategy))
	}
	return n
}

// fromChord fills the chord payload of a recommendation
func fromChord(c chord.Chord, strategy Strategy, probability float64, explanation string) Recommendation {
	return Recommendation{
		Symbol:      c.Symbol,
		Root:        c.Root,
		Quality:     c.Type,
		Notes:       c.Notes,
		Function:    c.Function,
		Probability: common.Probability(probability),
		Explanation: explanation,
		Strategy:    strategy,
	}
}

// fromDiatonic builds the chord of a diatonic degree and carries its
// degree and numeral
func fromDiatonic(d scale.DiatonicChord, strategy Strategy, probability float64, explanation string) (Recommendation, error) {
	c, err := chord.Build(d.Root, d.Quality)
	if err != nil {
		return Recommendation{}, err
	}
	rec := fromChord(c, strategy, probability, explanation)
	rec.Degree = d.Degree
	rec.RomanNumeral = d.RomanNumeral
	return rec, nil
}
