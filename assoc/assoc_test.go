package assoc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/cntext/freq"
)

// Corpus-scale fixture around the pair 西/家, with published reference
// values for PMI and chi-square.
func corpusAnalyzer() *Analyzer {
	chars := &freq.Table{
		Counts: map[string]int{"西": 30743, "家": 66590},
		Total:  85519494,
	}
	bigrams := &freq.Table{
		Counts: map[string]int{"西家": 53, "家西": 4},
		Total:  83666199,
	}
	terms := &freq.Table{
		Counts: map[string]int{"西家": 53},
		Total:  71000000,
	}
	return NewAnalyzer(chars, bigrams, terms)
}

func TestBigramScorePMI(t *testing.T) {
	score, err := corpusAnalyzer().BigramScore("西", "家")
	require.NoError(t, err)
	assert.InDelta(t, 1.19, score.PMI, 0.01)
	assert.Equal(t, 53, score.Joint)
	assert.Equal(t, 30743, score.FreqA)
	assert.Equal(t, 66590, score.FreqB)
}

func TestBigramScoreChiSquare(t *testing.T) {
	score, err := corpusAnalyzer().BigramScore("西", "家")
	require.NoError(t, err)
	assert.InDelta(t, 35.1, score.ChiSquare, 0.5)
	// 35 on one degree of freedom is far out in the tail.
	assert.Less(t, score.PValue, 1e-6)
	assert.Greater(t, score.PValue, 0.0)
}

func TestBigramScoreTScore(t *testing.T) {
	score, err := corpusAnalyzer().BigramScore("西", "家")
	require.NoError(t, err)
	// The pair co-occurs more than chance predicts, so t is positive, and
	// it is bounded by sqrt of the observed count.
	assert.Greater(t, score.TScore, 0.0)
	assert.Less(t, score.TScore, math.Sqrt(57))
}

func TestBigramScoreZeroMarginal(t *testing.T) {
	a := corpusAnalyzer()
	_, err := a.BigramScore("西", "助")
	var undef *UndefinedStatistic
	require.True(t, errors.As(err, &undef))
	assert.Contains(t, undef.Reason, "zero joint frequency")

	// A positive floor rescues the computation.
	a.Floor = 0.5
	score, err := a.BigramScore("西", "助")
	require.NoError(t, err)
	assert.False(t, math.IsInf(score.PMI, 0))
	assert.False(t, math.IsNaN(score.PMI))
}

func TestTermPMI(t *testing.T) {
	a := corpusAnalyzer()
	mi, err := a.TermPMI("西家")
	require.NoError(t, err)

	// log2(P(term) / (P(西)·P(家))) with probabilities over the char and
	// term totals respectively.
	pt := 53.0 / 71000000.0
	pc := (30743.0 / 85519494.0) * (66590.0 / 85519494.0)
	assert.InDelta(t, math.Log2(pt/pc), mi, 1e-9)

	_, err = a.TermPMI("西")
	var undef *UndefinedStatistic
	assert.True(t, errors.As(err, &undef))
}

func TestTermScoresFilter(t *testing.T) {
	a := corpusAnalyzer()
	all := a.TermScores(nil)
	assert.Contains(t, all, "西家")

	filtered := a.TermScores(map[string]bool{"東家": true})
	assert.Empty(t, filtered)
}

func TestWeakestPair(t *testing.T) {
	chars := &freq.Table{
		Counts: map[string]int{"長": 100, "江": 100, "大": 100, "橋": 100},
		Total:  1000,
	}
	bigrams := &freq.Table{
		Counts: map[string]int{"長江": 50, "江大": 2, "大橋": 40},
		Total:  900,
	}
	a := NewAnalyzer(chars, bigrams, freq.NewTable())

	score, err := a.WeakestPair("長江大橋")
	require.NoError(t, err)
	// 江大 is the weakest internal bond.
	assert.Equal(t, 2, score.Joint)
}

func TestEmptyTables(t *testing.T) {
	a := NewAnalyzer(freq.NewTable(), freq.NewTable(), freq.NewTable())
	_, err := a.BigramScore("西", "家")
	var undef *UndefinedStatistic
	assert.True(t, errors.As(err, &undef))
}
