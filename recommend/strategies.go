package recommend

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/common"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/rules"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// Fixed heuristic probabilities
const (
	outsideKeyProbability        = 0.5
	secondaryDominantProbability = 0.8
	modalInterchangeProbability  = 0.6
	substitutionProbability      = 0.7
	relativeFallbackProbability  = 0.6

	// fourth and fifth moves pull hardest
	fifthRelationBoost = 1.3
)

func byProbability(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Probability > recs[j].Probability
	})
}

// Diatonic scores every other chord of the key by the progression weight
// from the current chord's degree. A current chord whose root is not in the
// key gets all seven chords at a flat probability.
func (e *Engine) Diatonic() ([]Recommendation, error) {
	diatonic, err := scale.BuildDiatonicChords(e.ctx.Key, e.ctx.Mode)
	if err != nil {
		return nil, fmt.Errorf("diatonic recommendations: %w", err)
	}

	recs := make([]Recommendation, 0, len(diatonic))
	cur := e.ctx.Current
	if cur == nil {
		return recs, nil
	}

	currentIndex := -1
	for i, d := range diatonic {
		if d.Root == cur.Root {
			currentIndex = i
			break
		}
	}

	if currentIndex == -1 {
		explanation := fmt.Sprintf("%s is outside %s %s; diatonic chord of the key", cur.Symbol, e.ctx.Key, e.ctx.Mode)
		for _, d := range diatonic {
			rec, err := fromDiatonic(d, StrategyDiatonic, outsideKeyProbability, explanation)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}

		e.logger.Debug("current chord outside key", e.fields())
		return recs, nil
	}

	currentDegree := currentIndex + 1
	from := scale.RomanNumeral(currentDegree, cur.Quality)

	for i, d := range diatonic {
		target := i + 1
		if target == currentDegree {
			continue
		}

		probability := rules.Weight(currentDegree, target)
		if interval := (target - currentDegree + 7) % 7; interval == 3 || interval == 4 {
			probability = common.Probability(probability * fifthRelationBoost)
		}

		rec, err := fromDiatonic(d, StrategyDiatonic, probability,
			fmt.Sprintf("diatonic move from %s to %s", from, d.RomanNumeral))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	byProbability(recs)

	e.logger.Debug("diatonic recommendations computed", e.fields(), logging.Fields{
		"degree": currentDegree,
		"count":  len(recs),
	})

	return recs, nil
}

// SecondaryDominant suggests the dominant of every diatonic chord whose
// offset from the tonic can be tonicized, skipping the current chord
func (e *Engine) SecondaryDominant() ([]Recommendation, error) {
	diatonic, err := scale.BuildDiatonicChords(e.ctx.Key, e.ctx.Mode)
	if err != nil {
		return nil, fmt.Errorf("secondary dominant recommendations: %w", err)
	}

	keyType := rules.KeyTypeFor(e.ctx.Mode)
	recs := make([]Recommendation, 0, len(diatonic))

	for _, d := range diatonic {
		if e.ctx.Current != nil && d.Symbol == e.ctx.Current.Symbol {
			continue
		}

		offset, err := pitch.Distance(e.ctx.Key, d.Root)
		if err != nil {
			return nil, fmt.Errorf("secondary dominant recommendations: %w", err)
		}
		if !rules.IsSecondaryDominantTarget(keyType, offset) {
			continue
		}

		sd, err := rules.SecondaryDominantOf(d.Root, d.Symbol)
		if err != nil {
			return nil, fmt.Errorf("secondary dominant recommendations: %w", err)
		}

		rec := fromChord(sd.Chord, StrategySecondaryDominant, secondaryDominantProbability,
			fmt.Sprintf("secondary dominant of %s", d.Symbol))
		rec.Target = sd.Target
		rec.Progression = sd.Progression
		recs = append(recs, rec)
	}

	e.logger.Debug("secondary dominant recommendations computed", e.fields(), logging.Fields{
		"key_type": keyType,
		"count":    len(recs),
	})

	return recs, nil
}

// DoubleDominant surfaces the first chord of every dominant chain in the
// key, one recommendation per chain depth
func (e *Engine) DoubleDominant() ([]Recommendation, error) {
	chains, err := BuildDoubleDominantChains(e.ctx.Key, e.ctx.Mode, e.maxDepth)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(chains))
	for _, c := range chains {
		rec := fromChord(c.Lead(), StrategyDoubleDominant, c.Probability, c.Explanation)
		rec.Chain = c.Symbols
		rec.Depth = c.Depth
		rec.Target = c.Target
		rec.Progression = c.Progression
		recs = append(recs, rec)
	}

	e.logger.Debug("double dominant recommendations computed", e.fields(), logging.Fields{
		"max_depth": e.maxDepth,
		"count":     len(recs),
	})

	return recs, nil
}

// ModalInterchange lists chords of the parallel modes that are missing
// from the current mode. The first donor mode in registration order claims
// a shared chord; the result is ordered by root.
func (e *Engine) ModalInterchange() ([]Recommendation, error) {
	current, err := scale.BuildDiatonicChords(e.ctx.Key, e.ctx.Mode)
	if err != nil {
		return nil, fmt.Errorf("modal interchange recommendations: %w", err)
	}

	inKey := make(map[string]bool, len(current))
	for _, d := range current {
		inKey[d.Symbol] = true
	}

	seen := make(map[string]bool)
	var recs []Recommendation

	for _, donor := range scale.Modes() {
		if donor == e.ctx.Mode {
			continue
		}

		chords, err := scale.BuildDiatonicChords(e.ctx.Key, donor)
		if err != nil {
			return nil, fmt.Errorf("modal interchange recommendations: %w", err)
		}
		mode, _ := scale.LookupMode(donor)

		for _, d := range chords {
			if inKey[d.Symbol] || seen[d.Symbol] {
				continue
			}
			seen[d.Symbol] = true

			rec, err := fromDiatonic(d, StrategyModalInterchange, modalInterchangeProbability,
				fmt.Sprintf("%s borrowed from %s", d.Symbol, mode.Name))
			if err != nil {
				return nil, err
			}
			rec.SourceMode = donor
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, _ := pitch.IndexOf(recs[i].Root)
		rj, _ := pitch.IndexOf(recs[j].Root)
		return ri < rj
	})

	e.logger.Debug("modal interchange recommendations computed", e.fields(), logging.Fields{
		"count": len(recs),
	})

	if recs == nil {
		recs = []Recommendation{}
	}
	return recs, nil
}

// ChordSubstitution runs the substitution rules against the current chord.
// Triads are read as their seventh chords so the rules can match. When no
// rule fires, minor and major chords fall back to their relative chord.
func (e *Engine) ChordSubstitution() ([]Recommendation, error) {
	recs := []Recommendation{}

	cur := e.ctx.Current
	if cur == nil {
		return recs, nil
	}
	if !cur.Known {
		e.logger.Debug("no substitutions for unrecognized quality", e.fields(), logging.Fields{
			"quality": cur.Quality,
		})
		return recs, nil
	}

	if !pitch.IsValid(cur.Root) {
		e.logger.Debug("no substitutions for unrecognized root", e.fields(), logging.Fields{
			"root": cur.Root,
		})
		return recs, nil
	}

	typeID := cur.Type
	switch typeID {
	case chord.Major:
		typeID = chord.Major7
	case chord.Minor:
		typeID = chord.Minor7
	}

	coerced, err := chord.Build(cur.Root, typeID)
	if err != nil {
		return nil, fmt.Errorf("chord substitution for %s: %w", cur.Symbol, err)
	}

	subs, err := rules.Substitutions(coerced)
	if err != nil {
		return nil, fmt.Errorf("chord substitution for %s: %w", cur.Symbol, err)
	}

	for _, sub := range subs {
		recs = append(recs, substitutionRecommendation(sub, cur.Symbol, substitutionProbability))
	}

	if len(recs) > 0 {
		e.logger.Debug("substitution rules applied", e.fields(), logging.Fields{"count": len(recs)})
		return recs, nil
	}

	var fallback rules.SubstitutionKind
	switch cur.Type {
	case chord.Minor, chord.Minor7:
		fallback = rules.SubstitutionRelativeMajor
	case chord.Major, chord.Major7:
		fallback = rules.SubstitutionRelativeMinor
	default:
		return recs, nil
	}

	sub, ok, err := rules.Apply(fallback, coerced)
	if err != nil {
		return nil, fmt.Errorf("chord substitution for %s: %w", cur.Symbol, err)
	}
	if ok {
		recs = append(recs, substitutionRecommendation(sub, cur.Symbol, relativeFallbackProbability))
	}

	e.logger.Debug("relative substitution fallback", e.fields(), logging.Fields{
		"kind":  fallback.String(),
		"count": len(recs),
	})

	return recs, nil
}

// substitutionRecommendation explains a substitution in terms of the
// symbol the user gave rather than the coerced seventh chord
func substitutionRecommendation(sub rules.Substitution, original string, probability float64) Recommendation {
	rec := fromChord(sub.Chord, StrategyChordSubstitution, probability,
		fmt.Sprintf("%s of %s", sub.Kind.Description(), original))
	rec.Substitution = sub.Kind.String()
	return rec
}
