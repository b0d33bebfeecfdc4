package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

func TestFromChords(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		profile Profile
		key     pitch.Note
		mode    scale.ModeID
	}{
		{"pop loop", []string{"C", "G", "Am", "F"}, ProfileKrumhansl, pitch.C, scale.Ionian},
		{"pop loop in G", []string{"G", "D", "Em", "C"}, "", pitch.G, scale.Ionian},
		{"minor cadence", []string{"Am", "Dm", "E7", "Am"}, ProfileKrumhansl, pitch.A, scale.Aeolian},
		{"temperley", []string{"C", "G", "Am", "F"}, ProfileTemperley, pitch.C, scale.Ionian},
		{"temperley minor", []string{"Am", "Dm", "E7", "Am"}, ProfileTemperley, pitch.A, scale.Aeolian},
		{"single chord", []string{"C"}, ProfileKrumhansl, pitch.C, scale.Ionian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := FromChords(tt.symbols, tt.profile)
			require.NoError(t, err)
			assert.Equal(t, tt.key, est.Key)
			assert.Equal(t, tt.mode, est.Mode)
			assert.Len(t, est.Candidates, 24)
			assert.Equal(t, est.Confidence, est.Candidates[0].Correlation)
			assert.Greater(t, est.Clarity, 0.0)
			assert.Greater(t, est.Ambiguity, 0.0)
			assert.LessOrEqual(t, est.Ambiguity, 1.0)
		})
	}
}

func TestFromChordsRelativeMinorRunnerUp(t *testing.T) {
	est, err := FromChords([]string{"C", "G", "Am", "F"}, ProfileKrumhansl)
	require.NoError(t, err)

	assert.Equal(t, "C major", est.Candidates[0].Name())
	assert.Equal(t, "A minor", est.Candidates[1].Name())
	assert.InDelta(t, 0.9375, est.Confidence, 1e-3)
	assert.Equal(t, "Krumhansl-Schmuckler", est.Profile)
}

func TestFromChordsTranspositionInvariant(t *testing.T) {
	loop := []pitch.Note{"C", "G", "A", "F"}
	suffixes := []string{"", "", "m", ""}

	for shift := 0; shift < pitch.PitchClasses; shift++ {
		symbols := make([]string, len(loop))
		for i, root := range loop {
			moved, err := pitch.Transpose(root, shift)
			require.NoError(t, err)
			symbols[i] = string(moved) + suffixes[i]
		}

		est, err := FromChords(symbols, ProfileKrumhansl)
		require.NoError(t, err)
		assert.Equal(t, pitch.FromIndex(shift), est.Key, "%v", symbols)
		assert.Equal(t, scale.Ionian, est.Mode)
		assert.InDelta(t, 0.9375, est.Confidence, 1e-3)
	}
}

func TestPitchClasses(t *testing.T) {
	histogram, counted, err := PitchClasses([]string{"C", " ", "Am", "Gxyz"})
	require.NoError(t, err)
	assert.Equal(t, 3, counted)

	// C twice as root and once in Am; G twice for the unresolved quality
	// and once in C
	assert.Equal(t, 3.0, histogram[0])
	assert.Equal(t, 3.0, histogram[7])
	assert.Equal(t, 2.0, histogram[9])
	assert.Equal(t, 2.0, histogram[4])
	assert.Equal(t, 0.0, histogram[1])
}

func TestFromChordsErrors(t *testing.T) {
	_, err := FromChords(nil, ProfileKrumhansl)
	assert.ErrorIs(t, err, ErrNoChords)

	_, err = FromChords([]string{"", "  "}, ProfileKrumhansl)
	assert.ErrorIs(t, err, ErrNoChords)

	_, err = FromChords([]string{"Bb", "F"}, ProfileKrumhansl)
	var unknown *pitch.UnknownNoteError
	assert.ErrorAs(t, err, &unknown)

	_, err = FromChords([]string{"C"}, "bayesian")
	assert.Error(t, err)
}
