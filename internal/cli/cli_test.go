package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/RyanBlaney/harmonia/progression"
	"github.com/RyanBlaney/harmonia/recommend"
	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/key"
	"github.com/RyanBlaney/harmonia/theory/pitch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run executes the command tree and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()

	stdout, _, err := run(t, append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), v), stdout)
}

func TestRecommendJSON(t *testing.T) {
	var recs []recommend.Recommendation
	runJSON(t, &recs, "recommend", "--key", "C", "--chord", "Am")

	require.Len(t, recs, recommend.DefaultLimit)
	assert.Equal(t, "Dm7", recs[0].Symbol)
	assert.Equal(t, recommend.StrategyDiatonic, recs[0].Strategy)
}

func TestRecommendPositionalChordAndLimit(t *testing.T) {
	var recs []recommend.Recommendation
	runJSON(t, &recs, "recommend", "G7", "--limit", "2")

	require.Len(t, recs, 2)
	assert.Equal(t, "Cmaj7", recs[0].Symbol)
}

func TestRecommendZeroLimit(t *testing.T) {
	var recs []recommend.Recommendation
	runJSON(t, &recs, "recommend", "Am", "--limit", "0")
	assert.Empty(t, recs)
}

func TestRecommendFlatChordRoot(t *testing.T) {
	var recs []recommend.Recommendation
	runJSON(t, &recs, "recommend", "Bb", "--key", "F")
	assert.Len(t, recs, recommend.DefaultLimit)
}

func TestRecommendAll(t *testing.T) {
	var set map[string][]recommend.Recommendation
	runJSON(t, &set, "recommend", "--chord", "G7", "--all")

	for _, strategy := range recommend.Strategies() {
		assert.NotEmpty(t, set[string(strategy)], strategy)
	}
	assert.Equal(t, "C#7", set[string(recommend.StrategyChordSubstitution)][0].Symbol)
}

func TestRecommendText(t *testing.T) {
	stdout, _, err := run(t, "recommend", "--key", "C", "--chord", "Am")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Next chords in C Ionian after Am")
	assert.Contains(t, stdout, "Dm7")
	assert.Contains(t, stdout, "diatonic move from vi to ii7")
}

func TestRecommendUnknownMode(t *testing.T) {
	_, _, err := run(t, "recommend", "--mode", "Blues")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestScale(t *testing.T) {
	var view scaleView
	runJSON(t, &view, "scale", "--key", "D", "--mode", "Dorian")

	assert.Equal(t, []pitch.Note{"D", "E", "F", "G", "A", "B", "C"}, view.Notes)
	require.Len(t, view.Chords, 7)
	assert.Equal(t, "Dm7", view.Chords[0].Symbol)
	assert.Equal(t, "i7", view.Chords[0].RomanNumeral)
}

func TestScaleParallelText(t *testing.T) {
	stdout, _, err := run(t, "scale", "--key", "A", "--parallel")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Parallel modes on A")
	assert.Contains(t, stdout, "Harmonic Minor")
	assert.Contains(t, stdout, "AmMaj7")
}

func TestChordFromSymbol(t *testing.T) {
	var view chordView
	runJSON(t, &view, "chord", "Cmaj7")

	assert.Equal(t, []pitch.Note{"C", "E", "G", "B"}, view.Chord.Notes)
	require.Len(t, view.Inversions, 4)
	assert.Equal(t, "Cmaj7/E", view.Inversions[1].Symbol)
	assert.Equal(t, []string{"bright"}, view.Colors)
}

func TestChordFromFlags(t *testing.T) {
	var view chordView
	runJSON(t, &view, "chord", "--root", "F#", "--type", "m7b5")

	assert.Equal(t, "F#m7b5", view.Chord.Symbol)
	assert.Equal(t, []pitch.Note{"F#", "A", "C", "E"}, view.Chord.Notes)
	assert.Equal(t, []string{"dark"}, view.Colors)
}

func TestChordErrors(t *testing.T) {
	_, _, err := run(t, "chord", "Cadd13")
	var unknown *chord.UnknownChordTypeError
	assert.ErrorAs(t, err, &unknown)

	_, _, err = run(t, "chord", "--root", "Bb", "--type", "7")
	var note *pitch.UnknownNoteError
	assert.ErrorAs(t, err, &note)

	_, _, err = run(t, "chord")
	assert.Error(t, err)
}

func TestParseDegrees(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []int
	}{
		{"commas", []string{"1,5,6,4"}, []int{1, 5, 6, 4}},
		{"separate args", []string{"2", "5", "1"}, []int{2, 5, 1}},
		{"mixed", []string{"1, 4", "5"}, []int{1, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDegrees(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDegreesErrors(t *testing.T) {
	_, err := parseDegrees([]string{"1,x"})
	assert.Error(t, err)

	_, err = parseDegrees([]string{"1,9"})
	var invalid *progression.InvalidDegreeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 9, invalid.Degree)

	_, err = parseDegrees([]string{","})
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	var view analysisView
	runJSON(t, &view, "analyze", "1,5,6,4", "--key", "C")

	assert.Equal(t, []int{1, 5, 6, 4}, view.Degrees)
	require.Len(t, view.Steps, 4)
	assert.True(t, view.Steps[2].IsResolution)
	assert.Equal(t, progression.MoodBuilding, view.Mood.Primary)
	assert.Equal(t, []string{"Cmaj7", "G7", "Am7", "Fmaj7"}, view.Chords)
	assert.Len(t, view.Tension, 4)
	assert.Equal(t, progression.TotalResolution([]int{1, 5, 6, 4}), view.Resolution)
	assert.Equal(t, "cyclical_energy", view.Pattern)
}

func TestAnalyzePatternText(t *testing.T) {
	stdout, _, err := run(t, "analyze", "2", "5", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pattern: jazz_sophistication")
}

func TestAnalyzeText(t *testing.T) {
	stdout, _, err := run(t, "analyze", "5", "4", "1")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Functional analysis")
	assert.Contains(t, stdout, "relaxing_fall")
	assert.Contains(t, stdout, "resolving")
}

func TestProgressionsByCategory(t *testing.T) {
	var list []realizedProgression
	runJSON(t, &list, "progressions", "--category", "jazz", "--key", "C")

	require.NotEmpty(t, list)
	assert.Equal(t, "ii-V-I", list[0].Name)
	assert.Equal(t, []string{"Dm7", "G7", "Cmaj7"}, list[0].Chords)
	for _, p := range list {
		assert.Equal(t, progression.CategoryJazz, p.Category)
	}
}

func TestProgressionsLookup(t *testing.T) {
	var list []realizedProgression
	runJSON(t, &list, "progressions", "pop/I-V-vi-IV", "--key", "G")

	require.Len(t, list, 1)
	assert.Equal(t, []string{"Gmaj7", "D7", "Em7", "Cmaj7"}, list[0].Chords)
}

func TestProgressionsErrors(t *testing.T) {
	_, _, err := run(t, "progressions", "--category", "polka")
	assert.Error(t, err)

	_, _, err = run(t, "progressions", "no-such-progression")
	var unknown *progression.UnknownProgressionError
	assert.ErrorAs(t, err, &unknown)
}

func TestMatrix(t *testing.T) {
	var rows []matrixRow
	runJSON(t, &rows, "matrix", "--chord-degree", "5", "--limit", "1")

	require.Len(t, rows, len(pitch.Notes()))
	for i, key := range pitch.Notes() {
		assert.Equal(t, key, rows[i].Key)
		require.Len(t, rows[i].Picks, 1)
	}
	assert.Equal(t, "G7", rows[0].Chord)
	assert.Equal(t, "Cmaj7", rows[0].Picks[0].Symbol)
	assert.Equal(t, "D7", rows[7].Chord)
}

func TestMatrixInvalidDegree(t *testing.T) {
	_, _, err := run(t, "matrix", "--chord-degree", "8")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harmonia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  default_key: G\n  comprehensive_limit: 3\n"), 0644))

	stdout, _, err := run(t, "recommend", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Next chords in G Ionian")

	var recs []recommend.Recommendation
	runJSON(t, &recs, "recommend", "Em", "--config", path)
	assert.Len(t, recs, 3)
}

func TestInvalidLogFormat(t *testing.T) {
	_, _, err := run(t, "scale", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestJSONDebugLogging(t *testing.T) {
	_, stderr, err := run(t, "recommend", "Am", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)

	var messages []string
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), scanner.Text())
		assert.Equal(t, "recommend", entry["command"])
		messages = append(messages, entry["msg"].(string))
	}
	assert.Contains(t, messages, "diatonic recommendations computed")
	assert.Contains(t, messages, "comprehensive recommendations ranked")
}

func TestTextLoggingQuietByDefault(t *testing.T) {
	_, stderr, err := run(t, "recommend", "Am")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestKeyNearTieWarns(t *testing.T) {
	_, stderr, err := run(t, "key", "C", "F#")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[WARN] top key candidates are nearly tied")
	assert.Contains(t, stderr, "command=key")
	assert.NotContains(t, stderr, "\033[")
}

func TestKey(t *testing.T) {
	var view keyView
	runJSON(t, &view, "key", "Am,Dm,E7,Am", "--next")

	assert.Equal(t, pitch.A, view.Estimate.Key)
	assert.Equal(t, "A minor", view.Estimate.Candidates[0].Name())
	require.NotEmpty(t, view.Next)
	assert.Equal(t, recommend.DefaultLimit, len(view.Next))
}

func TestKeyText(t *testing.T) {
	stdout, _, err := run(t, "key", "C", "G", "Am", "F", "--top", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "C major")
	assert.Contains(t, stdout, "A minor")
	assert.NotContains(t, stdout, "Next chords")
}

func TestKeyErrors(t *testing.T) {
	_, _, err := run(t, "key", ",")
	assert.ErrorIs(t, err, key.ErrNoChords)

	_, _, err = run(t, "key", "C", "--profile", "bayesian")
	assert.Error(t, err)
}
