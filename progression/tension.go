package progression

import "slices"

type degreePair struct{ from, to int }

// resolutionStrength scores how strongly one degree resolves into another,
// 10 being the authentic cadence
var resolutionStrength = map[degreePair]int{
	{5, 1}: 10, // authentic
	{7, 1}: 9,  // leading tone
	{5, 6}: 8,  // deceptive
	{4, 1}: 7,  // plagal
	{2, 5}: 6,
	{1, 6}: 5,
	{6, 4}: 4,
	{1, 5}: 3,
	{3, 6}: 3,
	{1, 4}: 2,
}

// ResolutionStrength scores the move between two degrees. Unlisted moves
// score 0.
func ResolutionStrength(from, to int) int {
	return resolutionStrength[degreePair{from, to}]
}

// TotalResolution sums the resolution strength of every adjacent pair
func TotalResolution(degrees []int) int {
	total := 0
	for i := 0; i+1 < len(degrees); i++ {
		total += ResolutionStrength(degrees[i], degrees[i+1])
	}
	return total
}

var emotionalImpact = map[degreePair]string{
	{1, 2}: "gentle_lift",
	{1, 3}: "hopeful_rise",
	{1, 4}: "confident_ascent",
	{1, 5}: "building_tension",
	{1, 7}: "slight_descent",
	{1, 6}: "melancholic_drop",
	{5, 4}: "relaxing_fall",
	{6, 5}: "lifting_from_sadness",
}

// EmotionalImpact labels the feel of a single move, or "" when unlisted
func EmotionalImpact(from, to int) string {
	return emotionalImpact[degreePair{from, to}]
}

// patternImpact labels progressions that read as one gesture and loop back
// on themselves
var patternImpact = []struct {
	degrees []int
	label   string
}{
	{[]int{6, 4, 1, 5}, "emotional_journey"},
	{[]int{1, 5, 6, 4}, "cyclical_energy"},
	{[]int{2, 5, 1}, "jazz_sophistication"},
}

// PatternImpact labels a whole progression, or returns "" when it is not
// one of the known cycles. A cycle repeated end to end keeps its label.
func PatternImpact(degrees []int) string {
	for _, p := range patternImpact {
		if repeats(degrees, p.degrees) {
			return p.label
		}
	}
	return ""
}

func repeats(degrees, cycle []int) bool {
	if len(degrees) == 0 || len(degrees)%len(cycle) != 0 {
		return false
	}
	for i := 0; i < len(degrees); i += len(cycle) {
		if !slices.Equal(degrees[i:i+len(cycle)], cycle) {
			return false
		}
	}
	return true
}
