package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/harmonia/theory/pitch"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		symbol  string
		root    pitch.Note
		quality string
		typeID  TypeID
		known   bool
		bass    pitch.Note
	}{
		{"C", "C", "maj", Major, true, ""},
		{"Am", "A", "m", Minor, true, ""},
		{"F#m7", "F#", "m7", Minor7, true, ""},
		{"Bb7", "Bb", "7", Dominant7, true, ""},
		{"C/E", "C", "maj", Major, true, "E"},
		{"Dm7/C", "D", "m7", Minor7, true, "C"},
		{"Cadd13", "C", "add13", "", false, ""},
		{"  G7  ", "G", "7", Dominant7, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			p := ParseSymbol(tt.symbol)
			assert.True(t, p.Parsed)
			assert.Equal(t, tt.root, p.Root)
			assert.Equal(t, tt.quality, p.Quality)
			assert.Equal(t, tt.typeID, p.Type)
			assert.Equal(t, tt.known, p.Known)
			assert.Equal(t, tt.bass, p.Bass)
		})
	}
}

func TestParseSymbolEmpty(t *testing.T) {
	for _, s := range []string{"", "   "} {
		p := ParseSymbol(s)
		assert.False(t, p.Parsed)
		assert.Empty(t, p.Root)
	}
}

func TestParseSymbolTriads(t *testing.T) {
	assert.True(t, ParseSymbol("C").IsMajorTriad())
	assert.True(t, ParseSymbol("Cmaj").IsMajorTriad())
	assert.True(t, ParseSymbol("Am").IsMinorTriad())
	assert.False(t, ParseSymbol("Am7").IsMinorTriad())
	assert.False(t, ParseSymbol("Cfoo").IsMajorTriad())
}
