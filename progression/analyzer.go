package progression

import (
	"math"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/common"
)

// Relation is the scale-degree step from one chord to the next
type Relation string

const (
	RelationSame     Relation = "same"
	RelationStepUp   Relation = "step_up"
	RelationThirdUp  Relation = "third_up"
	RelationFourthUp Relation = "fourth_up"
	RelationFifthUp  Relation = "fifth_up"
	RelationSixthUp  Relation = "sixth_up"
	RelationStepDown Relation = "step_down"
)

var relations = [7]Relation{
	RelationSame, RelationStepUp, RelationThirdUp, RelationFourthUp,
	RelationFifthUp, RelationSixthUp, RelationStepDown,
}

// Degree membership per function. 6 sits in both tonic and subdominant;
// tonic is tested first.
var (
	tonicDegrees       = []int{1, 3, 6}
	subdominantDegrees = []int{2, 4, 6}
	dominantDegrees    = []int{5, 7}
)

// MaxTension caps every value of a tension curve
const MaxTension = 7.0

// FunctionStep is the functional reading of one position in a progression
type FunctionStep struct {
	Degree       int            `json:"degree"`
	Function     chord.Function `json:"function"`
	NextRelation Relation       `json:"next_relation,omitempty"` // empty on the last position
	Position     int            `json:"position"`
	IsResolution bool           `json:"is_resolution"`
}

// CurveType is the overall direction of a tension curve
type CurveType string

const (
	CurveAscending  CurveType = "ascending"
	CurveDescending CurveType = "descending"
)

// Curve is the tension profile of a progression
type Curve struct {
	Values  []float64 `json:"values"`
	Peak    float64   `json:"peak"`
	Trough  float64   `json:"trough"`
	Average float64   `json:"average"`
	Spread  float64   `json:"spread"` // sample standard deviation
	Type    CurveType `json:"curve_type"`
}

// Mood labels
const (
	MoodNeutral   = "neutral"
	MoodPeaceful  = "peaceful"
	MoodIntense   = "intense"
	MoodBuilding  = "building"
	MoodResolving = "resolving"
	MoodRestless  = "restless"
	MoodDramatic  = "dramatic"
)

// MoodResult summarizes the character of a progression
type MoodResult struct {
	Primary   string    `json:"primary"`
	Intensity int       `json:"intensity"`
	Character CurveType `json:"character"`
	Stability float64   `json:"stability"` // share of tonic-function degrees
}

// Classify returns the harmonic function of a scale degree
func Classify(degree int) chord.Function {
	switch {
	case contains(tonicDegrees, degree):
		return chord.FunctionTonic
	case contains(subdominantDegrees, degree):
		return chord.FunctionSubdominant
	case contains(dominantDegrees, degree):
		return chord.FunctionDominant
	default:
		return chord.FunctionUnknown
	}
}

// RelationBetween returns the ascending degree step from one degree to the
// next, mod 7
func RelationBetween(from, to int) Relation {
	return relations[((to-from)%7+7)%7]
}

// AnalyzeFunction classifies every degree and labels the step into the
// following one
func AnalyzeFunction(degrees []int) []FunctionStep {
	steps := make([]FunctionStep, len(degrees))

	for i, degree := range degrees {
		fn := Classify(degree)
		step := FunctionStep{
			Degree:       degree,
			Function:     fn,
			Position:     i,
			IsResolution: fn == chord.FunctionTonic && i > 0,
		}
		if i < len(degrees)-1 {
			step.NextRelation = RelationBetween(degree, degrees[i+1])
		}
		steps[i] = step
	}

	return steps
}

func baseTension(fn chord.Function) float64 {
	switch fn {
	case chord.FunctionTonic:
		return 1
	case chord.FunctionSubdominant:
		return 3
	case chord.FunctionDominant:
		return 5
	default:
		return 0
	}
}

// TensionCurve scores each position by function plus an arch that peaks in
// the middle of the progression
func TensionCurve(degrees []int) Curve {
	if len(degrees) == 0 {
		return Curve{}
	}

	values := make([]float64, len(degrees))
	for i, degree := range degrees {
		fraction := 0.0
		if len(degrees) > 1 {
			fraction = float64(i) / float64(len(degrees)-1)
		}
		position := math.Sin(fraction*math.Pi) * 2
		values[i] = common.Clamp(baseTension(Classify(degree))+position, 0, MaxTension)
	}

	curveType := CurveDescending
	if values[len(values)-1] > values[0] {
		curveType = CurveAscending
	}

	return Curve{
		Values:  values,
		Peak:    common.Max(values),
		Trough:  common.Min(values),
		Average: common.Mean(values),
		Spread:  common.StandardDeviation(values),
		Type:    curveType,
	}
}

// Mood derives a mood label from the tension curve, escalated when
// dominant degrees outnumber tonic ones
func Mood(degrees []int) MoodResult {
	if len(degrees) == 0 {
		return MoodResult{Primary: MoodNeutral}
	}

	curve := TensionCurve(degrees)

	var mood string
	switch {
	case curve.Average < 2:
		mood = MoodPeaceful
	case curve.Average > 4:
		mood = MoodIntense
	case curve.Type == CurveAscending:
		mood = MoodBuilding
	default:
		mood = MoodResolving
	}

	var tonic, dominant int
	for _, step := range AnalyzeFunction(degrees) {
		switch step.Function {
		case chord.FunctionTonic:
			tonic++
		case chord.FunctionDominant:
			dominant++
		}
	}

	if dominant > tonic {
		if mood == MoodPeaceful {
			mood = MoodRestless
		} else {
			mood = MoodDramatic
		}
	}

	return MoodResult{
		Primary:   mood,
		Intensity: common.Round(curve.Average),
		Character: curve.Type,
		Stability: float64(tonic) / float64(len(degrees)),
	}
}

func contains(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
