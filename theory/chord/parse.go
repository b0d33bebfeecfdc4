package chord

import (
	"strings"

	"github.com/RyanBlaney/harmonia/theory/pitch"
)

// defaultQuality is assumed when a symbol carries no quality text
const defaultQuality = "maj"

// ParsedSymbol is the best-effort split of a chord symbol. Neither Root nor
// Quality is guaranteed to be registered: Known reports whether Quality
// resolved to a chord type, and Root is validated only when it is used.
type ParsedSymbol struct {
	Symbol  string     `json:"symbol"`  // input as given, trimmed
	Root    pitch.Note `json:"root"`
	Quality string     `json:"quality"` // raw quality text, "maj" when empty
	Type    TypeID     `json:"type"`    // resolved type, empty unless Known
	Known   bool       `json:"known"`
	Bass    pitch.Note `json:"bass,omitempty"`
	Parsed  bool       `json:"parsed"` // false for empty input
}

// ParseSymbol splits a chord symbol into root, quality and optional bass.
// The root is the first character plus a following '#' or 'b'; the rest,
// up to an optional "/bass", is the quality.
func ParseSymbol(symbol string) ParsedSymbol {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ParsedSymbol{}
	}

	rootLen := 1
	if len(symbol) > 1 && (symbol[1] == '#' || symbol[1] == 'b') {
		rootLen = 2
	}

	rest := symbol[rootLen:]
	var bass pitch.Note
	if slash := strings.LastIndex(rest, "/"); slash >= 0 {
		bass = pitch.Note(strings.TrimSpace(rest[slash+1:]))
		rest = rest[:slash]
	}

	quality := rest
	if quality == "" {
		quality = defaultQuality
	}

	typeID, known := ResolveQuality(quality)

	return ParsedSymbol{
		Symbol:  symbol,
		Root:    pitch.Note(symbol[:rootLen]),
		Quality: quality,
		Type:    typeID,
		Known:   known,
		Bass:    bass,
		Parsed:  true,
	}
}

// IsMajorTriad reports whether the quality is a plain major triad
func (p ParsedSymbol) IsMajorTriad() bool {
	return p.Known && p.Type == Major
}

// IsMinorTriad reports whether the quality is a plain minor triad
func (p ParsedSymbol) IsMinorTriad() bool {
	return p.Known && p.Type == Minor
}
