package pitch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOf(t *testing.T) {
	tests := []struct {
		note Note
		want int
	}{
		{"C", 0},
		{"C#", 1},
		{"F#", 6},
		{"B", 11},
		{"A4", 9},
		{"C#3", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.note), func(t *testing.T) {
			got, err := IndexOf(tt.note)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndexOfUnknownNote(t *testing.T) {
	for _, note := range []Note{"Db", "H", "", "c"} {
		_, err := IndexOf(note)
		require.Error(t, err)

		var unknown *UnknownNoteError
		require.True(t, errors.As(err, &unknown), "note %q", note)
		assert.Equal(t, string(note), unknown.Note)
	}
}

func TestTranspose(t *testing.T) {
	tests := []struct {
		name      string
		note      Note
		semitones int
		want      Note
	}{
		{"fifth up", C, 7, G},
		{"wraps octave", A, 3, C},
		{"negative", C, -1, B},
		{"more than an octave", E, 25, F},
		{"large negative", D, -26, C},
		{"tritone from G", G, 6, CSharp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transpose(tt.note, tt.semitones)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	for _, note := range Notes() {
		for k := -30; k <= 30; k++ {
			up, err := Transpose(note, k)
			require.NoError(t, err)
			back, err := Transpose(up, -k)
			require.NoError(t, err)
			assert.Equal(t, note, back, "note %s, k=%d", note, k)
		}
	}
}

func TestTransposeUnknownNote(t *testing.T) {
	_, err := Transpose("Bb", 2)
	var unknown *UnknownNoteError
	assert.ErrorAs(t, err, &unknown)
}

func TestDistance(t *testing.T) {
	d, err := Distance(G, C)
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	d, err = Distance(C, G)
	require.NoError(t, err)
	assert.Equal(t, 7, d)
}

func TestNotesReturnsCopy(t *testing.T) {
	notes := Notes()
	notes[0] = "X"
	assert.Equal(t, C, Notes()[0])
	assert.Len(t, Notes(), PitchClasses)
}

func TestIntervals(t *testing.T) {
	assert.Equal(t, 7, Intervals["P5"])
	assert.Equal(t, 6, Intervals["TT"])
	assert.Len(t, Intervals, 12)
}
