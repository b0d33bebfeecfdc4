package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

func TestWeight(t *testing.T) {
	assert.Equal(t, 0.95, Weight(1, 5))
	assert.Equal(t, 0.95, Weight(5, 1))
	assert.Equal(t, 0.9, Weight(2, 5))
	assert.Equal(t, 0.3, Weight(5, 4))

	// asymmetric
	assert.NotEqual(t, Weight(1, 7), Weight(7, 1))

	// missing pairs fall back without being stored
	assert.Equal(t, DefaultWeight, Weight(1, 1))
	assert.Equal(t, DefaultWeight, Weight(9, 2))
	_, stored := Weights(1)[1]
	assert.False(t, stored)
}

func TestWeightsReturnsCopy(t *testing.T) {
	w := Weights(1)
	w[5] = 0
	assert.Equal(t, 0.95, Weight(1, 5))
}

func TestKeyTypeFor(t *testing.T) {
	assert.Equal(t, KeyMajor, KeyTypeFor(scale.Ionian))
	assert.Equal(t, KeyMinor, KeyTypeFor(scale.Aeolian))
	assert.Equal(t, KeyMinor, KeyTypeFor(scale.Mixolydian))
}

func TestSecondaryDominantTargets(t *testing.T) {
	assert.Equal(t, []int{2, 4, 7, 9, 10}, SecondaryDominantTargets(KeyMajor))
	assert.Equal(t, []int{0, 2, 5, 7, 10}, SecondaryDominantTargets(KeyMinor))
	assert.True(t, IsSecondaryDominantTarget(KeyMajor, 9))
	assert.False(t, IsSecondaryDominantTarget(KeyMajor, 0))
	assert.True(t, IsSecondaryDominantTarget(KeyMinor, 0))
}

func TestSecondaryDominantOf(t *testing.T) {
	tests := []struct {
		root   pitch.Note
		symbol string
		want   string
	}{
		{"D", "Dm7", "A7"},
		{"G", "G7", "D7"},
		{"A", "Am7", "E7"},
		{"F#", "F#m7b5", "C#7"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			sd, err := SecondaryDominantOf(tt.root, tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sd.Chord.Symbol)
			assert.Equal(t, chord.Dominant7, sd.Chord.Type)
			assert.Equal(t, tt.symbol, sd.Target)
			assert.Equal(t, tt.want+" → "+tt.symbol, sd.Progression)
		})
	}
}

func TestSecondaryDominantOfUnknownRoot(t *testing.T) {
	_, err := SecondaryDominantOf("Gb", "Gbmaj7")
	var unknown *pitch.UnknownNoteError
	assert.ErrorAs(t, err, &unknown)
}

func TestCommonBorrowings(t *testing.T) {
	major := CommonBorrowings(MajorFromMinor)
	require.Len(t, major, 5)
	assert.Equal(t, "bII", major[0].Degree)
	assert.Equal(t, scale.Phrygian, major[0].Source)

	minor := CommonBorrowings(MinorFromMajor)
	require.Len(t, minor, 4)
	assert.Equal(t, scale.Dorian, minor[0].Source)

	assert.Empty(t, CommonBorrowings("sideways"))
}
