package annotated

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/cntext/assoc"
	"github.com/teatak/cntext/corpus"
	"github.com/teatak/cntext/dictionary"
	"github.com/teatak/cntext/freq"
	"github.com/teatak/cntext/segmenter"
)

// testEvaluator builds a segmenter whose dictionary lacks 助哀, plus
// frequency tables counted from a small corpus, so the gold term 助哀 is a
// genuine false negative.
func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	dict := "" +
		"1\t東家\t\\N\tdōng jiā\teast house\n" +
		"2\t西家\t\\N\txī jiā\twest house\n" +
		"3\t人\t\\N\trén\tperson\n"
	idx, err := dictionary.Parse(strings.NewReader(dict), "test")
	require.NoError(t, err)
	seg := segmenter.New(idx)

	doc := corpus.Document{Name: "corpus", Lines: []string{
		"東家人死。西家人助哀。",
		"東家人。西家人。助哀。",
	}}
	chars, err := freq.CharCounter{}.Count(doc)
	require.NoError(t, err)
	bigrams, err := freq.BigramCounter{}.Count(doc)
	require.NoError(t, err)
	terms, err := freq.TermCounter{Seg: seg}.Count(doc)
	require.NoError(t, err)

	return NewEvaluator(seg, assoc.NewAnalyzer(chars, bigrams, terms))
}

const goldDoc = `# sample
東家、人、死、。、西家、人、助哀、。
Error: false negative 助哀
`

func TestEvaluateFalseNegative(t *testing.T) {
	eval := testEvaluator(t)
	doc, err := Parse(strings.NewReader(goldDoc), "gold.txt")
	require.NoError(t, err)

	result, err := eval.Evaluate(doc)
	require.NoError(t, err)

	// The missed term must appear in the feature table, labeled incorrect.
	var missed *FeatureRecord
	for i := range result.Records {
		if result.Records[i].Term == "助哀" {
			missed = &result.Records[i]
		}
	}
	require.NotNil(t, missed, "false negative silently dropped")
	assert.False(t, missed.Label)
	// Missing statistics are floored, never zero.
	assert.Greater(t, missed.TermFreq, 0.0)
	assert.Greater(t, missed.PairFreq, 0.0)

	// Tokens the segmenter got right are labeled correct.
	for _, rec := range result.Records {
		switch rec.Term {
		case "東家", "西家":
			assert.True(t, rec.Label, "token %s", rec.Term)
		}
	}
}

func TestEvaluateSummary(t *testing.T) {
	eval := testEvaluator(t)
	doc, err := Parse(strings.NewReader(goldDoc), "gold.txt")
	require.NoError(t, err)

	result, err := eval.Evaluate(doc)
	require.NoError(t, err)

	s := result.Summary
	// Six non-punctuation gold tokens, one tagged false negative.
	assert.Equal(t, 6, s.Tokens)
	assert.Equal(t, 1, s.FalseNegatives)
	assert.Equal(t, 0, s.FalsePositives)
	assert.InDelta(t, 6.0/7.0, s.Recall, 1e-9)
	assert.InDelta(t, 1.0, s.Precision, 1e-9)
}

func TestEvaluateRecordStats(t *testing.T) {
	eval := testEvaluator(t)
	doc, err := Parse(strings.NewReader("西家、人\n"), "gold.txt")
	require.NoError(t, err)

	result, err := eval.Evaluate(doc)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	rec := result.Records[0]
	assert.Equal(t, "西家", rec.Term)
	// 西家 occurs twice as a term in the fixture corpus.
	assert.Equal(t, 2.0, rec.TermFreq)
	assert.NotZero(t, rec.PairPMI)
	assert.NotZero(t, rec.ChiSquare)

	// Single-character tokens carry no pair statistics.
	single := result.Records[1]
	assert.Equal(t, "人", single.Term)
	assert.Zero(t, single.PairPMI)
	assert.Greater(t, single.MinCharFreq, 0.0)
}

func TestEvaluateFloorDefault(t *testing.T) {
	eval := testEvaluator(t)
	assert.Equal(t, 0.5, eval.Analyzer.Floor)
}
