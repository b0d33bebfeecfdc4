package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/rules"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// Chain is a run of stacked dominants resolving into a dominant-function
// chord of the key
type Chain struct {
	// Dominants holds the stacked dominants, outermost first. The target is
	// not included.
	Dominants []chord.Chord `json:"dominants"`

	// Symbols is the whole chain including the target, outermost first
	Symbols     []string `json:"symbols"`
	Depth       int      `json:"depth"`
	Target      string   `json:"target"`
	Progression string   `json:"progression"`
	Explanation string   `json:"explanation"`
	Probability float64  `json:"probability"`
}

// Lead is the chord to play now: the outermost dominant
func (c Chain) Lead() chord.Chord {
	return c.Dominants[0]
}

// ChainProbability decreases with depth and bottoms out at 0.3
func ChainProbability(depth int) float64 {
	return math.Max(0.9-0.2*float64(depth), 0.3)
}

// BuildDoubleDominantChains stacks secondary dominants on top of every
// dominant-function chord of the key. Each such chord yields maxDepth
// chains of increasing length.
func BuildDoubleDominantChains(root pitch.Note, mode scale.ModeID, maxDepth int) ([]Chain, error) {
	diatonic, err := scale.BuildDiatonicChords(root, mode)
	if err != nil {
		return nil, fmt.Errorf("double dominant chains: %w", err)
	}

	var chains []Chain
	for _, d := range diatonic {
		if d.Function != chord.FunctionDominant {
			continue
		}

		symbols := []string{d.Symbol}
		var dominants []chord.Chord
		targetRoot, targetSymbol := d.Root, d.Symbol

		for depth := 1; depth <= maxDepth; depth++ {
			sd, err := rules.SecondaryDominantOf(targetRoot, targetSymbol)
			if err != nil {
				return nil, fmt.Errorf("double dominant chains: %w", err)
			}

			symbols = append([]string{sd.Chord.Symbol}, symbols...)
			dominants = append([]chord.Chord{sd.Chord}, dominants...)

			chains = append(chains, Chain{
				Dominants:   append([]chord.Chord(nil), dominants...),
				Symbols:     append([]string(nil), symbols...),
				Depth:       depth,
				Target:      d.Symbol,
				Progression: strings.Join(symbols, " → "),
				Explanation: fmt.Sprintf("%d-level dominant chain resolving to %s", depth, d.Symbol),
				Probability: ChainProbability(depth),
			})

			targetRoot, targetSymbol = sd.Chord.Root, sd.Chord.Symbol
		}
	}

	return chains, nil
}
