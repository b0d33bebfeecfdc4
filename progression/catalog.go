package progression

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// Catalog categories
const (
	CategoryPop       = "pop"
	CategoryJazz      = "jazz"
	CategoryClassical = "classical"
	CategoryBlues     = "blues"
	CategoryModal     = "modal"
	CategoryModern    = "modern"
)

var categoryOrder = []string{
	CategoryPop, CategoryJazz, CategoryClassical, CategoryBlues, CategoryModal, CategoryModern,
}

// Progression is a named degree pattern from the catalog
type Progression struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Pattern     []int    `json:"pattern"`
	Description string   `json:"description"`
	Example     string   `json:"example,omitempty"`
	Mood        string   `json:"mood"`
	Genres      []string `json:"genres,omitempty"`

	// Mode is set for modal progressions, which only make sense in their
	// own mode
	Mode scale.ModeID `json:"mode,omitempty"`

	// ChordTypes overrides the diatonic quality at each position
	ChordTypes []chord.TypeID `json:"chord_types,omitempty"`
}

// ID is the catalog-unique "category/name" key
func (p Progression) ID() string {
	return p.Category + "/" + p.Name
}

var catalog = []Progression{
	{
		Name: "I-V-vi-IV", Category: CategoryPop, Pattern: []int{1, 5, 6, 4},
		Description: "the most common pop loop, strongly cyclic",
		Example:     "C-G-Am-F", Mood: "uplifting", Genres: []string{"pop", "rock", "country"},
	},
	{
		Name: "vi-IV-I-V", Category: CategoryPop, Pattern: []int{6, 4, 1, 5},
		Description: "pop loop starting on the relative minor",
		Example:     "Am-F-C-G", Mood: "melancholic_to_hopeful", Genres: []string{"pop", "ballad"},
	},
	{
		Name: "I-vi-IV-V", Category: CategoryPop, Pattern: []int{1, 6, 4, 5},
		Description: "fifties doo-wop progression",
		Example:     "C-Am-F-G", Mood: "nostalgic", Genres: []string{"doo-wop", "oldies", "rock"},
	},
	{
		Name: "ii-V-I", Category: CategoryJazz, Pattern: []int{2, 5, 1},
		Description: "the basic jazz cadence",
		Example:     "Dm7-G7-Cmaj7", Mood: "sophisticated", Genres: []string{"jazz", "bossa nova"},
	},
	{
		Name: "I-vi-ii-V", Category: CategoryJazz, Pattern: []int{1, 6, 2, 5},
		Description: "standard turnaround",
		Example:     "Cmaj7-Am7-Dm7-G7", Mood: "smooth", Genres: []string{"jazz", "swing"},
	},
	{
		Name: "iii-vi-ii-V", Category: CategoryJazz, Pattern: []int{3, 6, 2, 5},
		Description: "descending fifths turnaround",
		Example:     "Em7-Am7-Dm7-G7", Mood: "flowing", Genres: []string{"jazz", "latin"},
	},
	{
		Name: "I-IV-vii-iii-vi-ii-V-I", Category: CategoryJazz, Pattern: []int{1, 4, 7, 3, 6, 2, 5, 1},
		Description: "full diatonic circle of fifths",
		Example:     "Cmaj7-Fmaj7-Bm7b5-Em7-Am7-Dm7-G7-Cmaj7", Mood: "complex", Genres: []string{"jazz", "bebop"},
	},
	{
		Name: "I-IV-V-I", Category: CategoryClassical, Pattern: []int{1, 4, 5, 1},
		Description: "authentic cadence",
		Example:     "C-F-G-C", Mood: "resolved", Genres: []string{"classical", "hymn"},
	},
	{
		Name: "I-V-I", Category: CategoryClassical, Pattern: []int{1, 5, 1},
		Description: "simplest cadence",
		Example:     "C-G-C", Mood: "conclusive", Genres: []string{"classical", "folk"},
	},
	{
		Name: "vi-IV-I-V", Category: CategoryClassical, Pattern: []int{6, 4, 1, 5},
		Description: "minor-led romantic progression",
		Example:     "Am-F-C-G", Mood: "dramatic", Genres: []string{"classical", "romantic"},
	},
	{
		Name: "12-bar-blues", Category: CategoryBlues, Pattern: []int{1, 1, 1, 1, 4, 4, 1, 1, 5, 4, 1, 5},
		Description: "standard twelve-bar blues",
		Example:     "C7-C7-C7-C7-F7-F7-C7-C7-G7-F7-C7-G7", Mood: "bluesy", Genres: []string{"blues", "rock", "jazz"},
		ChordTypes:  repeatType(chord.Dominant7, 12),
	},
	{
		Name: "quick-change", Category: CategoryBlues, Pattern: []int{1, 4, 1, 1, 4, 4, 1, 1, 5, 4, 1, 5},
		Description: "twelve-bar blues with the IV in bar two",
		Example:     "C7-F7-C7-C7-F7-F7-C7-C7-G7-F7-C7-G7", Mood: "energetic", Genres: []string{"blues", "boogie"},
		ChordTypes:  repeatType(chord.Dominant7, 12),
	},
	{
		Name: "i-IV", Category: CategoryModal, Pattern: []int{1, 4}, Mode: scale.Dorian,
		Description: "minor tonic to major IV", Example: "Dm-G (D Dorian)", Mood: "bittersweet",
	},
	{
		Name: "i-bVII-IV", Category: CategoryModal, Pattern: []int{1, 7, 4}, Mode: scale.Dorian,
		Description: "dorian triad vamp", Example: "Dm-C-G (D Dorian)", Mood: "modal_flavor",
	},
	{
		Name: "I-bVII", Category: CategoryModal, Pattern: []int{1, 7}, Mode: scale.Mixolydian,
		Description: "major tonic to flat seven", Example: "G-F (G Mixolydian)", Mood: "rock_modal",
	},
	{
		Name: "I-bVII-IV", Category: CategoryModal, Pattern: []int{1, 7, 4}, Mode: scale.Mixolydian,
		Description: "rock anthem mixolydian loop", Example: "G-F-C (G Mixolydian)", Mood: "anthemic",
	},
	{
		Name: "i-bII", Category: CategoryModal, Pattern: []int{1, 2}, Mode: scale.Phrygian,
		Description: "minor tonic to flat two", Example: "Em-F (E Phrygian)", Mood: "spanish_flavor",
	},
	{
		Name: "i-bII-bIII", Category: CategoryModal, Pattern: []int{1, 2, 3}, Mode: scale.Phrygian,
		Description: "ascending phrygian line", Example: "Em-F-G (E Phrygian)", Mood: "exotic",
	},
	{
		Name: "imaj7-ii7-iii7-IVmaj7", Category: CategoryModern, Pattern: []int{1, 2, 3, 4},
		Description: "neo-soul seventh chord climb", Example: "Cmaj7-D7-E7-Fmaj7", Mood: "sophisticated_groove",
		ChordTypes: []chord.TypeID{chord.Major7, chord.Dominant7, chord.Dominant7, chord.Major7},
	},
	{
		Name: "i7-iv7-V7", Category: CategoryModern, Pattern: []int{1, 4, 5},
		Description: "minor rhythm and blues", Example: "Am7-Dm7-E7", Mood: "soulful",
		ChordTypes: []chord.TypeID{chord.Minor7, chord.Minor7, chord.Dominant7},
		Mode:       scale.Aeolian,
	},
	{
		Name: "I-iii-IV-iv", Category: CategoryModern, Pattern: []int{1, 3, 4, 4},
		Description: "gospel minor plagal move", Example: "Cmaj7-Em7-Fmaj7-Fm7", Mood: "spiritual",
		ChordTypes: []chord.TypeID{chord.Major7, chord.Minor7, chord.Major7, chord.Minor7},
	},
}

func repeatType(id chord.TypeID, n int) []chord.TypeID {
	types := make([]chord.TypeID, n)
	for i := range types {
		types[i] = id
	}
	return types
}

// InvalidDegreeError is returned when a pattern holds a degree outside 1-7
type InvalidDegreeError struct {
	Degree int
}

func (e *InvalidDegreeError) Error() string {
	return fmt.Sprintf("invalid scale degree: %d", e.Degree)
}

// UnknownProgressionError is returned by Lookup for names not in the catalog
type UnknownProgressionError struct {
	Name string
}

func (e *UnknownProgressionError) Error() string {
	return fmt.Sprintf("unknown progression: %q", e.Name)
}

// Catalog returns every catalog progression in category order
func Catalog() []Progression {
	out := make([]Progression, 0, len(catalog))
	for _, category := range categoryOrder {
		out = append(out, ByCategory(category)...)
	}
	return out
}

// Categories returns the catalog categories in display order
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}

// ByCategory returns the progressions of one category
func ByCategory(category string) []Progression {
	var out []Progression
	for _, p := range catalog {
		if p.Category == category {
			out = append(out, clone(p))
		}
	}
	return out
}

// Lookup finds a progression by id ("jazz/ii-V-I") or bare name. A bare
// name shared by several categories resolves to the first in category
// order.
func Lookup(name string) (Progression, error) {
	for _, p := range Catalog() {
		if p.ID() == name {
			return p, nil
		}
	}
	if !strings.Contains(name, "/") {
		for _, p := range Catalog() {
			if p.Name == name {
				return p, nil
			}
		}
	}
	return Progression{}, &UnknownProgressionError{Name: name}
}

func clone(p Progression) Progression {
	p.Pattern = append([]int(nil), p.Pattern...)
	p.Genres = append([]string(nil), p.Genres...)
	if p.ChordTypes != nil {
		p.ChordTypes = append([]chord.TypeID(nil), p.ChordTypes...)
	}
	return p
}

// Realize maps a degree pattern onto the diatonic chords of a key
func Realize(pattern []int, key pitch.Note, mode scale.ModeID) ([]scale.DiatonicChord, error) {
	diatonic, err := scale.BuildDiatonicChords(key, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to realize progression: %w", err)
	}

	chords := make([]scale.DiatonicChord, len(pattern))
	for i, degree := range pattern {
		if degree < 1 || degree > scale.DegreeCount {
			return nil, &InvalidDegreeError{Degree: degree}
		}
		chords[i] = diatonic[degree-1]
	}
	return chords, nil
}

// Realize spells the progression in a key. Modal progressions always use
// their own mode; per-position chord types replace the diatonic quality.
func (p Progression) Realize(key pitch.Note, mode scale.ModeID) ([]scale.DiatonicChord, error) {
	if p.Mode != "" {
		mode = p.Mode
	}

	chords, err := Realize(p.Pattern, key, mode)
	if err != nil {
		return nil, err
	}

	for i, typeID := range p.ChordTypes {
		if i >= len(chords) {
			break
		}
		ct, err := chord.LookupType(typeID)
		if err != nil {
			return nil, err
		}
		c := &chords[i]
		c.Quality = typeID
		c.Symbol = string(c.Root) + ct.Symbol
		c.RomanNumeral = scale.RomanNumeral(c.Degree, string(typeID))
		c.Function = ct.Function
	}

	return chords, nil
}

// Symbols returns the chord symbols of a realized progression
func Symbols(chords []scale.DiatonicChord) []string {
	symbols := make([]string, len(chords))
	for i, c := range chords {
		symbols[i] = c.Symbol
	}
	return symbols
}
