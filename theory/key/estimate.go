// Package key estimates the key of a chord progression by correlating its
// pitch-class histogram with major and minor key profiles.
package key

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// ErrNoChords is returned when there is nothing to estimate from
var ErrNoChords = errors.New("no chords to estimate a key from")

// Profile selects the key profile templates
type Profile string

const (
	ProfileKrumhansl Profile = "krumhansl"
	ProfileTemperley Profile = "temperley"
)

type template struct {
	major [pitch.PitchClasses]float64
	minor [pitch.PitchClasses]float64
	name  string
}

var templates = map[Profile]template{
	// listener ratings
	ProfileKrumhansl: {
		major: [pitch.PitchClasses]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
		minor: [pitch.PitchClasses]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
		name:  "Krumhansl-Schmuckler",
	},
	// corpus statistics
	ProfileTemperley: {
		major: [pitch.PitchClasses]float64{5.0, 2.0, 3.5, 2.0, 4.5, 4.0, 2.0, 4.5, 2.0, 3.5, 1.5, 4.0},
		minor: [pitch.PitchClasses]float64{5.0, 2.0, 3.5, 4.5, 2.0, 4.0, 2.0, 4.5, 3.5, 2.0, 1.5, 4.0},
		name:  "Temperley",
	},
}

// Profiles returns the available profiles
func Profiles() []Profile {
	return []Profile{ProfileKrumhansl, ProfileTemperley}
}

// Candidate is one of the 24 major and minor keys with its score
type Candidate struct {
	Key         pitch.Note   `json:"key"`
	Mode        scale.ModeID `json:"mode"` // Ionian or Aeolian
	Correlation float64      `json:"correlation"`
}

// Name is a readable label such as "A minor"
func (c Candidate) Name() string {
	if c.Mode == scale.Aeolian {
		return fmt.Sprintf("%s minor", c.Key)
	}
	return fmt.Sprintf("%s major", c.Key)
}

// Estimate is the result of a key estimation
type Estimate struct {
	Key        pitch.Note   `json:"key"`
	Mode       scale.ModeID `json:"mode"`
	Confidence float64      `json:"confidence"`

	// Clarity is the relative lead of the best key over the runner-up
	Clarity float64 `json:"clarity"`

	// Ambiguity is the normalized entropy of the positive scores, 1 when
	// every key scores alike
	Ambiguity float64 `json:"ambiguity"`

	Profile      string                      `json:"profile"`
	PitchClasses [pitch.PitchClasses]float64 `json:"pitch_classes"`
	Candidates   []Candidate                 `json:"candidates"` // best first
}

// PitchClasses counts the chord tones of every symbol by pitch class. Roots
// count twice. A symbol whose quality is not registered contributes its
// root only. Blank symbols are skipped.
func PitchClasses(symbols []string) ([pitch.PitchClasses]float64, int, error) {
	var histogram [pitch.PitchClasses]float64
	counted := 0

	for _, symbol := range symbols {
		parsed := chord.ParseSymbol(symbol)
		if !parsed.Parsed {
			continue
		}

		root, err := pitch.IndexOf(parsed.Root)
		if err != nil {
			return histogram, 0, fmt.Errorf("failed to read %q: %w", symbol, err)
		}
		histogram[root]++
		counted++

		if !parsed.Known {
			histogram[root]++
			continue
		}

		c, err := chord.Build(parsed.Root, parsed.Type)
		if err != nil {
			return histogram, 0, fmt.Errorf("failed to read %q: %w", symbol, err)
		}
		for _, n := range c.Notes {
			idx, _ := pitch.IndexOf(n)
			histogram[idx]++
		}
	}

	return histogram, counted, nil
}

// FromChords estimates the major or minor key of a chord sequence. An empty
// profile uses Krumhansl-Schmuckler.
func FromChords(symbols []string, profile Profile) (Estimate, error) {
	if profile == "" {
		profile = ProfileKrumhansl
	}
	tmpl, ok := templates[profile]
	if !ok {
		return Estimate{}, fmt.Errorf("unknown key profile: %q", profile)
	}

	histogram, counted, err := PitchClasses(symbols)
	if err != nil {
		return Estimate{}, err
	}
	if counted == 0 {
		return Estimate{}, ErrNoChords
	}

	candidates := make([]Candidate, 0, 2*pitch.PitchClasses)
	for k := 0; k < pitch.PitchClasses; k++ {
		candidates = append(candidates,
			Candidate{Key: pitch.FromIndex(k), Mode: scale.Ionian, Correlation: correlate(histogram, tmpl.major, k)},
			Candidate{Key: pitch.FromIndex(k), Mode: scale.Aeolian, Correlation: correlate(histogram, tmpl.minor, k)},
		)
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.Correlation
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Correlation > candidates[j].Correlation
	})
	best := candidates[0]

	return Estimate{
		Key:          best.Key,
		Mode:         best.Mode,
		Confidence:   best.Correlation,
		Clarity:      clarity(candidates),
		Ambiguity:    ambiguity(scores),
		Profile:      tmpl.name,
		PitchClasses: histogram,
		Candidates:   candidates,
	}, nil
}

// correlate scores a histogram against a profile rotated to the tonic
func correlate(histogram, profile [pitch.PitchClasses]float64, tonic int) float64 {
	rotated := make([]float64, pitch.PitchClasses)
	for i := range rotated {
		rotated[i] = profile[((i-tonic)%pitch.PitchClasses+pitch.PitchClasses)%pitch.PitchClasses]
	}
	r := stat.Correlation(histogram[:], rotated, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func clarity(sorted []Candidate) float64 {
	if len(sorted) < 2 || sorted[0].Correlation <= 0 {
		return 0
	}
	return (sorted[0].Correlation - sorted[1].Correlation) / sorted[0].Correlation
}

func ambiguity(scores []float64) float64 {
	sum := 0.0
	for _, s := range scores {
		if s > 0 {
			sum += s
		}
	}
	if sum == 0 {
		return 0
	}

	p := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s > 0 {
			p = append(p, s/sum)
		}
	}
	return stat.Entropy(p) / math.Log(float64(len(scores)))
}
