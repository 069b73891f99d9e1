package annotated

import (
	"fmt"
	"strings"

	"github.com/teatak/cntext/assoc"
	"github.com/teatak/cntext/segmenter"
	"github.com/teatak/cntext/util"
)

// FeatureRecord is one labeled row of the training table: a token, the
// frequencies and association statistics observed for it, and whether the
// segmentation boundary around it was correct.
type FeatureRecord struct {
	Term        string
	TermFreq    float64
	MinCharFreq float64
	PairFreq    float64
	TermPMI     float64
	PairPMI     float64
	TScore      float64
	ChiSquare   float64
	Label       bool
}

// FeatureNames lists the numeric fields of a record in vector order. The
// order is part of the classifier contract and must stay stable.
func FeatureNames() []string {
	return []string{
		"term_freq", "min_char_freq", "pair_freq",
		"term_pmi", "pair_pmi", "t_score", "chi_square",
	}
}

// Vector returns the numeric fields in FeatureNames order.
func (r FeatureRecord) Vector() []float64 {
	return []float64{
		r.TermFreq, r.MinCharFreq, r.PairFreq,
		r.TermPMI, r.PairPMI, r.TScore, r.ChiSquare,
	}
}

// Summary aggregates evaluation counts over a whole annotated document.
// Recall is tp/(tp+fn), precision tp/(tp+fp), with fn/fp taken from the
// document's error tags.
type Summary struct {
	Tokens         int
	FalseNegatives int
	FalsePositives int
	Precision      float64
	Recall         float64
}

// Result is the evaluator output: labeled feature rows plus the summary.
type Result struct {
	Records []FeatureRecord
	Summary Summary
}

// Evaluator aligns segmenter output against gold annotations and attaches
// frequency/association statistics to every evaluated token. Statistics
// missing from the tables are clamped to the analyzer's floor, never zero,
// so later logarithms stay defined; constructing an evaluator with a
// non-positive floor is a programming error.
type Evaluator struct {
	Seg      *segmenter.Segmenter
	Analyzer *assoc.Analyzer
}

// NewEvaluator creates an evaluator. A zero analyzer floor is raised to 0.5
// (half an observation, the usual continuity floor).
func NewEvaluator(seg *segmenter.Segmenter, analyzer *assoc.Analyzer) *Evaluator {
	if analyzer.Floor <= 0 {
		analyzer.Floor = 0.5
	}
	return &Evaluator{Seg: seg, Analyzer: analyzer}
}

type span struct {
	start, end int // rune offsets
}

// Evaluate produces one labeled feature record for every gold token and for
// every multi-character predicted token that crosses a gold boundary.
func (e *Evaluator) Evaluate(doc *Document) (*Result, error) {
	res := &Result{}

	fnTerms := make(map[string]bool)
	for _, tag := range doc.Tags {
		switch tag.Kind {
		case TagFalseNegative:
			res.Summary.FalseNegatives++
			fnTerms[tag.Term] = true
		case TagFalsePositive:
			res.Summary.FalsePositives++
		}
	}

	for _, line := range doc.Lines {
		if line.Kind != LineTokens {
			continue
		}
		text := strings.Join(line.Tokens, "")
		predicted := e.Seg.Segment(text)

		goldSpans := spansOf(line.Tokens)
		predSpans := spansOf(predicted)
		predSet := make(map[span]bool, len(predSpans))
		for _, s := range predSpans {
			predSet[s] = true
		}
		goldSet := make(map[span]bool, len(goldSpans))
		for _, s := range goldSpans {
			goldSet[s] = true
		}

		for i, tok := range line.Tokens {
			if util.IsPunctuation(tok) {
				continue
			}
			res.Summary.Tokens++
			correct := predSet[goldSpans[i]] && !fnTerms[tok]
			rec, err := e.record(tok, correct)
			if err != nil {
				return nil, err
			}
			res.Records = append(res.Records, rec)
		}

		// Predicted multi-character tokens that cross a gold boundary are
		// the false-positive candidates.
		for i, tok := range predicted {
			if util.IsPunctuation(tok) || len([]rune(tok)) < 2 {
				continue
			}
			if goldSet[predSpans[i]] {
				continue
			}
			rec, err := e.record(tok, false)
			if err != nil {
				return nil, err
			}
			res.Records = append(res.Records, rec)
		}
	}

	tp := float64(res.Summary.Tokens)
	if tp+float64(res.Summary.FalseNegatives) > 0 {
		res.Summary.Recall = tp / (tp + float64(res.Summary.FalseNegatives))
	}
	if tp+float64(res.Summary.FalsePositives) > 0 {
		res.Summary.Precision = tp / (tp + float64(res.Summary.FalsePositives))
	}
	return res, nil
}

func spansOf(tokens []string) []span {
	spans := make([]span, len(tokens))
	pos := 0
	for i, tok := range tokens {
		n := len([]rune(tok))
		spans[i] = span{start: pos, end: pos + n}
		pos += n
	}
	return spans
}

// record looks up the statistics for one token. Single-character tokens have
// no internal pair; their pair statistics stay zero.
func (e *Evaluator) record(term string, correct bool) (FeatureRecord, error) {
	a := e.Analyzer
	rec := FeatureRecord{
		Term:     term,
		TermFreq: floored(a.Terms.Get(term), a.Floor),
		Label:    correct,
	}

	runes := []rune(term)
	rec.MinCharFreq = floored(a.Chars.Get(string(runes[0])), a.Floor)
	for _, r := range runes[1:] {
		if f := floored(a.Chars.Get(string(r)), a.Floor); f < rec.MinCharFreq {
			rec.MinCharFreq = f
		}
	}
	if len(runes) < 2 {
		return rec, nil
	}

	pmi, err := a.TermPMI(term)
	if err != nil {
		return FeatureRecord{}, fmt.Errorf("term %q: %w", term, err)
	}
	rec.TermPMI = pmi

	pair, err := a.WeakestPair(term)
	if err != nil {
		return FeatureRecord{}, fmt.Errorf("term %q: %w", term, err)
	}
	rec.PairFreq = floored(pair.Joint, a.Floor)
	rec.PairPMI = pair.PMI
	rec.TScore = pair.TScore
	rec.ChiSquare = pair.ChiSquare
	return rec, nil
}

func floored(n int, floor float64) float64 {
	if n > 0 {
		return float64(n)
	}
	return floor
}
