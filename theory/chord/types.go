package chord

import "fmt"

// TypeID identifies a registered chord type (e.g. "maj7", "m7b5")
type TypeID string

const (
	Major           TypeID = "maj"
	Minor           TypeID = "min"
	Diminished      TypeID = "dim"
	Augmented       TypeID = "aug"
	Major7          TypeID = "maj7"
	Minor7          TypeID = "m7"
	Dominant7       TypeID = "7"
	HalfDiminished  TypeID = "m7b5"
	Diminished7     TypeID = "dim7"
	MinorMajor7     TypeID = "mMaj7"
	Major7Sharp5    TypeID = "maj7#5"
	Major9          TypeID = "maj9"
	Minor9          TypeID = "m9"
	Dominant9       TypeID = "9"
	Major11         TypeID = "maj11"
	Minor11         TypeID = "m11"
	Dominant11      TypeID = "11"
	Sus2            TypeID = "sus2"
	Sus4            TypeID = "sus4"
	Dominant7Sus4   TypeID = "7sus4"
	Dominant7Flat5  TypeID = "7b5"
	Dominant7Sharp5 TypeID = "7#5"
	Dominant7Flat9  TypeID = "7b9"
	Dominant7Sharp9 TypeID = "7#9"
	Altered         TypeID = "alt"
)

// Function is the harmonic role a chord type plays in a key
type Function string

const (
	FunctionTonic       Function = "tonic"
	FunctionSubdominant Function = "subdominant"
	FunctionDominant    Function = "dominant"
	FunctionNeutral     Function = "neutral"
	FunctionUnknown     Function = "unknown"
)

// Tension labels how unstable or colorful a chord type sounds
type Tension string

const (
	TensionStable       Tension = "stable"
	TensionMild         Tension = "mild"
	TensionColorful     Tension = "colorful"
	TensionSuspended    Tension = "suspended"
	TensionUnstable     Tension = "unstable"
	TensionAltered      Tension = "altered"
	TensionVeryUnstable Tension = "very_unstable"
	TensionVeryColorful Tension = "very_colorful"
	TensionVeryAltered  Tension = "very_altered"
)

var tensionLevels = map[Tension]int{
	TensionStable:       0,
	TensionMild:         1,
	TensionColorful:     2,
	TensionSuspended:    2,
	TensionUnstable:     3,
	TensionAltered:      4,
	TensionVeryUnstable: 4,
	TensionVeryColorful: 3,
	TensionVeryAltered:  5,
}

// Level returns the ordinal tension (0-5). Unknown labels are 0.
func (t Tension) Level() int {
	return tensionLevels[t]
}

// Third describes the chord's third
type Third int

const (
	ThirdMajor Third = iota
	ThirdMinor
	ThirdSuspended
)

// Fifth describes the chord's fifth
type Fifth int

const (
	FifthPerfect Fifth = iota
	FifthFlat
	FifthSharp
)

// Quality holds the facets of a chord type that naming rules depend on.
// They are declared in the type table rather than inferred from the
// symbol text.
type Quality struct {
	Third      Third
	Fifth      Fifth
	Seventh    bool // spelled as a seventh chord
	Diminished bool // fully diminished (triad or seventh)
	Extension  int  // highest named extension (9, 11), 0 for none

	// Altered marks a flat fifth that comes from the altered scale. It is
	// voiced but not named.
	Altered bool
}

// IsMinor reports whether the chord has a minor third
func (q Quality) IsMinor() bool {
	return q.Third == ThirdMinor
}

// IsHalfDiminishedColor reports whether the chord names a flat fifth
// without being fully diminished
func (q Quality) IsHalfDiminishedColor() bool {
	return q.Fifth == FifthFlat && !q.Diminished && !q.Altered
}

// ChordType is a registered chord recipe
type ChordType struct {
	ID          TypeID   `json:"id"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`       // suffix appended to the root
	Intervals   []int    `json:"intervals"`    // semitones from root, first = 0
	DegreeNames []string `json:"degree_names"` // scale-degree spelling of each tone
	Function    Function `json:"function"`
	Tension     Tension  `json:"tension"`
	Quality     Quality  `json:"quality"`
}

// UnknownChordTypeError is returned when a chord type id is not registered
type UnknownChordTypeError struct {
	Type string
}

func (e *UnknownChordTypeError) Error() string {
	return fmt.Sprintf("unknown chord type: %q", e.Type)
}

var typeOrder = []TypeID{
	Major, Minor, Diminished, Augmented,
	Major7, Minor7, Dominant7, HalfDiminished, Diminished7, MinorMajor7, Major7Sharp5,
	Major9, Minor9, Dominant9, Major11, Minor11, Dominant11,
	Sus2, Sus4, Dominant7Sus4,
	Dominant7Flat5, Dominant7Sharp5, Dominant7Flat9, Dominant7Sharp9, Altered,
}

var chordTypes = map[TypeID]ChordType{
	// Triads
	Major: {
		Name: "Major Triad", Symbol: "",
		Intervals: []int{0, 4, 7}, DegreeNames: []string{"1", "3", "5"},
		Function: FunctionTonic, Tension: TensionStable,
		Quality: Quality{Third: ThirdMajor},
	},
	Minor: {
		Name: "Minor Triad", Symbol: "m",
		Intervals: []int{0, 3, 7}, DegreeNames: []string{"1", "b3", "5"},
		Function: FunctionTonic, Tension: TensionStable,
		Quality: Quality{Third: ThirdMinor},
	},
	Diminished: {
		Name: "Diminished Triad", Symbol: "dim",
		Intervals: []int{0, 3, 6}, DegreeNames: []string{"1", "b3", "b5"},
		Function: FunctionDominant, Tension: TensionUnstable,
		Quality: Quality{Third: ThirdMinor, Fifth: FifthFlat, Diminished: true},
	},
	Augmented: {
		Name: "Augmented Triad", Symbol: "aug",
		Intervals: []int{0, 4, 8}, DegreeNames: []string{"1", "3", "#5"},
		Function: FunctionDominant, Tension: TensionUnstable,
		Quality: Quality{Third: ThirdMajor, Fifth: FifthSharp},
	},

	// Sevenths
	Major7: {
		Name: "Major 7th", Symbol: "maj7",
		Intervals: []int{0, 4, 7, 11}, DegreeNames: []string{"1", "3", "5", "7"},
		Function: FunctionTonic, Tension: TensionStable,
		Quality: Quality{Third: ThirdMajor, Seventh: true},
	},
	Minor7: {
		Name: "Minor 7th", Symbol: "m7",
		Intervals: []int{0, 3, 7, 10}, DegreeNames: []string{"1", "b3", "5", "b7"},
		Function: FunctionSubdominant, Tension: TensionMild,
		Quality: Quality{Third: ThirdMinor, Seventh: true},
	},
	Dominant7: {
		Name: "Dominant 7th", Symbol: "7",
		Intervals: []int{0, 4, 7, 10}, DegreeNames: []string{"1", "3", "5", "b7"},
		Function: FunctionDominant, Tension: TensionUnstable,
		Quality: Quality{Third: ThirdMajor, Seventh: true},
	},
	HalfDiminished: {
		Name: "Half Diminished", Symbol: "m7b5",
		Intervals: []int{0, 3, 6, 10}, DegreeNames: []string{"1", "b3", "b5", "b7"},
		Function: FunctionSubdominant, Tension: TensionUnstable,
		Quality: Quality{Third: ThirdMinor, Fifth: FifthFlat, Seventh: true},
	},
	Diminished7: {
		Name: "Diminished 7th", Symbol: "dim7",
		Intervals: []int{0, 3, 6, 9}, DegreeNames: []string{"1", "b3", "b5", "bb7"},
		Function: FunctionDominant, Tension: TensionVeryUnstable,
		Quality: Quality{Third: ThirdMinor, Fifth: FifthFlat, Seventh: true, Diminished: true},
	},
	MinorMajor7: {
		Name: "Minor Major 7th", Symbol: "mMaj7",
		Intervals: []int{0, 3, 7, 11}, DegreeNames: []string{"1", "b3", "5", "7"},
		Function: FunctionTonic, Tension: TensionMild,
		Quality: Quality{Third: ThirdMinor, Seventh: true},
	},
	Major7Sharp5: {
		Name: "Major 7th Sharp 5", Symbol: "maj7#5",
		Intervals: []int{0, 4, 8, 11}, DegreeNames: []string{"1", "3", "#5", "7"},
		Function: FunctionTonic, Tension: TensionColorful,
		Quality: Quality{Third: ThirdMajor, Fifth: FifthSharp, Seventh: true},
	},

	// Extensions
	Major9: {
		Name: "Major 9th", Symbol: "maj9",
		Intervals: []int{0, 4, 7, 11, 14}, DegreeNames: []string{"1", "3", "5", "7", "9"},
		Function: FunctionTonic, Tension: TensionColorful,
		Quality: Quality{Third: ThirdMajor, Extension: 9},
	},
	Minor9: {
		Name: "Minor 9th", Symbol: "m9",
		Intervals: []int{0, 3, 7, 10, 14}, DegreeNames: []string{"1", "b3", "5", "b7", "9"},
		Function: FunctionSubdominant, Tension: TensionColorful,
		Quality: Quality{Third: ThirdMinor, Extension: 9},
	},
	Dominant9: {
		Name: "Dominant 9th", Symbol: "9",
		Intervals: []int{0, 4, 7, 10, 14}, DegreeNames: []string{"1", "3", "5", "b7", "9"},
		Function: FunctionDominant, Tension: TensionColorful,
		Quality: Quality{Third: ThirdMajor, Extension: 9},
	},
	Major11: {
		Name: "Major 11th", Symbol: "maj11",
		Intervals: []int{0, 4, 7, 11, 14, 17}, DegreeNames: []string{"1", "3", "5", "7", "9", "11"},
		Function: FunctionTonic, Tension: TensionVeryColorful,
		Quality: Quality{Third: ThirdMajor, Extension: 11},
	},
	Minor11: {
		Name: "Minor 11th", Symbol: "m11",
		Intervals: []int{0, 3, 7, 10, 14, 17}, DegreeNames: []string{"1", "b3", "5", "b7", "9", "11"},
		Function: FunctionSubdominant, Tension: TensionVeryColorful,
		Quality: Quality{Third: ThirdMinor, Extension: 11},
	},
	Dominant11: {
		Name: "Dominant 11th", Symbol: "11",
		Intervals: []int{0, 4, 7, 10, 14, 17}, DegreeNames: []string{"1", "3", "5", "b7", "9", "11"},
		Function: FunctionDominant, Tension: TensionVeryColorful,
		Quality: Quality{Third: ThirdMajor, Extension: 11},
	},

	// Suspended
	Sus2: {
		Name: "Suspended 2nd", Symbol: "sus2",
		Intervals: []int{0, 2, 7}, DegreeNames: []string{"1", "2", "5"},
		Function: FunctionNeutral, Tension: TensionSuspended,
		Quality: Quality{Third: ThirdSuspended},
	},
	Sus4: {
		Name: "Suspended 4th", Symbol: "sus4",
		Intervals: []int{0, 5, 7}, DegreeNames: []string{"1", "4", "5"},
		Function: FunctionNeutral, Tension: TensionSuspended,
		Quality: Quality{Third: ThirdSuspended},
	},
	Dominant7Sus4: {
		Name: "Dominant 7th Suspended 4th", Symbol: "7sus4",
		Intervals: []int{0, 5, 7, 10}, DegreeNames: []string{"1", "4", "5", "b7"},
		Function: FunctionDominant, Tension: TensionSuspended,
		Quality: Quality{Third: ThirdSuspended, Seventh: true},
	},

	// Altered dominants
	Dominant7Flat5: {
		Name: "Dominant 7th Flat 5", Symbol: "7b5",
		Intervals: []int{0, 4, 6, 10}, DegreeNames: []string{"1", "3", "b5", "b7"},
		Function: FunctionDominant, Tension: TensionAltered,
		Quality: Quality{Third: ThirdMajor, Fifth: FifthFlat, Seventh: true},
	},
	Dominant7Sharp5: {
		Name: "Dominant 7th Sharp 5", Symbol: "7#5",
		Intervals: []int{0, 4, 8, 10}, DegreeNames: []string{"1", "3", "#5", "b7"},
		Function: FunctionDominant, Tension: TensionAltered,
		Quality: Quality{Third: ThirdMajor, Fifth: FifthSharp, Seventh: true},
	},
	Dominant7Flat9: {
		Name: "Dominant 7th Flat 9", Symbol: "7b9",
		Intervals: []int{0, 4, 7, 10, 13}, DegreeNames: []string{"1", "3", "5", "b7", "b9"},
		Function: FunctionDominant, Tension: TensionAltered,
		Quality: Quality{Third: ThirdMajor, Seventh: true},
	},
	Dominant7Sharp9: {
		Name: "Dominant 7th Sharp 9", Symbol: "7#9",
		Intervals: []int{0, 4, 7, 10, 15}, DegreeNames: []string{"1", "3", "5", "b7", "#9"},
		Function: FunctionDominant, Tension: TensionAltered,
		Quality: Quality{Third: ThirdMajor, Seventh: true},
	},
	Altered: {
		Name: "Altered Dominant", Symbol: "alt",
		Intervals: []int{0, 4, 6, 10, 13, 15}, DegreeNames: []string{"1", "3", "b5", "b7", "b9", "#9"},
		Function: FunctionDominant, Tension: TensionVeryAltered,
		Quality: Quality{Third: ThirdMajor, Fifth: FifthFlat, Altered: true},
	},
}

// symbolIndex resolves symbol suffixes ("m", "", "maj7") back to type ids
var symbolIndex = func() map[string]TypeID {
	index := make(map[string]TypeID, len(chordTypes))
	for _, id := range typeOrder {
		index[chordTypes[id].Symbol] = id
	}
	return index
}()

// LookupType returns the registered chord type for an id
func LookupType(id TypeID) (ChordType, error) {
	ct, ok := chordTypes[id]
	if !ok {
		return ChordType{}, &UnknownChordTypeError{Type: string(id)}
	}
	ct.ID = id
	ct.Intervals = append([]int(nil), ct.Intervals...)
	ct.DegreeNames = append([]string(nil), ct.DegreeNames...)
	return ct, nil
}

// ResolveQuality maps free quality text onto a registered type, first by
// id and then by symbol suffix. The bool is false when nothing matches.
func ResolveQuality(quality string) (TypeID, bool) {
	if _, ok := chordTypes[TypeID(quality)]; ok {
		return TypeID(quality), true
	}
	if id, ok := symbolIndex[quality]; ok {
		return id, true
	}
	return "", false
}

// Types returns every registered type id in table order
func Types() []TypeID {
	return append([]TypeID(nil), typeOrder...)
}

// FunctionOf returns the harmonic function of a type, or FunctionUnknown
func FunctionOf(id TypeID) Function {
	if ct, ok := chordTypes[id]; ok {
		return ct.Function
	}
	return FunctionUnknown
}

// QualityOf returns the facets of a registered type
func QualityOf(id TypeID) (Quality, bool) {
	ct, ok := chordTypes[id]
	return ct.Quality, ok
}
