// Package assoc computes association measures over corpus frequency tables:
// pointwise mutual information, the t-score and the chi-square statistic.
// All measures quantify whether symbols co-occur more often than chance.
package assoc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/teatak/cntext/freq"
)

// UndefinedStatistic reports a score request that has no defined value,
// typically a zero marginal frequency. Callers either supply a positive
// floor on the analyzer or accept the failure.
type UndefinedStatistic struct {
	Gram   string
	Reason string
}

func (e *UndefinedStatistic) Error() string {
	return fmt.Sprintf("statistic undefined for %q: %s", e.Gram, e.Reason)
}

// Score carries the association measures for one pair together with the raw
// frequencies they were derived from.
type Score struct {
	PMI       float64
	TScore    float64
	ChiSquare float64
	// PValue is the upper-tail probability of ChiSquare under a chi-squared
	// distribution with one degree of freedom.
	PValue float64
	Joint  int
	FreqA  int
	FreqB  int
}

// Analyzer computes association scores from character, bigram and term
// frequency tables. It works on already-aggregated in-memory tables and is
// strictly single-threaded.
//
// Floor, when positive, replaces zero raw counts before probabilities are
// formed so logarithms stay defined. The floor applies uniformly to joint
// counts and marginals, for both bigram-based and term-based scores. With a
// zero Floor, any zero count fails as *UndefinedStatistic.
type Analyzer struct {
	Chars   *freq.Table
	Bigrams *freq.Table
	Terms   *freq.Table
	Floor   float64
}

// NewAnalyzer creates an analyzer over the given tables with no floor.
func NewAnalyzer(chars, bigrams, terms *freq.Table) *Analyzer {
	return &Analyzer{Chars: chars, Bigrams: bigrams, Terms: terms}
}

func (a *Analyzer) count(raw int, gram, what string) (float64, error) {
	if raw > 0 {
		return float64(raw), nil
	}
	if a.Floor > 0 {
		return a.Floor, nil
	}
	return 0, &UndefinedStatistic{Gram: gram, Reason: "zero " + what + " frequency"}
}

// BigramScore computes the symmetric association measures for the adjacent
// character pair (a, b).
//
// The joint count pools both orders, freq(ab)+freq(ba), and its probability
// is taken per character position; marginal probabilities are taken over the
// bigram total. The chi-square contingency table uses the ordered count
// freq(ab) alone against the character total.
func (a *Analyzer) BigramScore(x, y string) (Score, error) {
	if a.Chars.Total <= 0 || a.Bigrams.Total <= 0 {
		return Score{}, &UndefinedStatistic{Gram: x + y, Reason: "empty frequency table"}
	}
	fab := a.Bigrams.Get(x + y)
	fba := a.Bigrams.Get(y + x)
	fa := a.Chars.Get(x)
	fb := a.Chars.Get(y)

	joint, err := a.count(fab+fba, x+y, "joint")
	if err != nil {
		return Score{}, err
	}
	ca, err := a.count(fa, x, "marginal")
	if err != nil {
		return Score{}, err
	}
	cb, err := a.count(fb, y, "marginal")
	if err != nil {
		return Score{}, err
	}

	charTotal := float64(a.Chars.Total)
	bigramTotal := float64(a.Bigrams.Total)

	pJoint := joint / charTotal
	pa := ca / bigramTotal
	pb := cb / bigramTotal

	score := Score{Joint: fab, FreqA: fa, FreqB: fb}
	score.PMI = math.Log2(pJoint / (pa * pb))
	score.TScore = (pJoint - pa*pb) / math.Sqrt(pJoint/bigramTotal)
	score.ChiSquare = chiSquare(float64(fab), ca, cb, charTotal)
	score.PValue = distuv.ChiSquared{K: 1}.Survival(score.ChiSquare)
	return score, nil
}

// chiSquare evaluates the 2x2 contingency statistic for an observed joint
// count fab with marginals fa, fb out of n observations. Products run near
// n^4 so everything stays in float64.
func chiSquare(fab, fa, fb, n float64) float64 {
	o11 := fab
	o12 := fa - fab
	o21 := fb - fab
	o22 := n - o11 - o12 - o21
	d := o11*o22 - o12*o21
	denom := (o11 + o12) * (o11 + o21) * (o12 + o22) * (o21 + o22)
	if denom == 0 {
		return 0
	}
	return n * d * d / denom
}

// TermPMI computes the mutual information of a multi-character term against
// its characters being placed next to each other by chance:
// log2(P(term) / prod P(c)).
func (a *Analyzer) TermPMI(term string) (float64, error) {
	runes := []rune(term)
	if len(runes) < 2 {
		return 0, &UndefinedStatistic{Gram: term, Reason: "term shorter than two characters"}
	}
	if a.Chars.Total <= 0 || a.Terms.Total <= 0 {
		return 0, &UndefinedStatistic{Gram: term, Reason: "empty frequency table"}
	}
	ft, err := a.count(a.Terms.Get(term), term, "term")
	if err != nil {
		return 0, err
	}
	pt := ft / float64(a.Terms.Total)
	pc := 1.0
	for _, r := range runes {
		fc, err := a.count(a.Chars.Get(string(r)), string(r), "marginal")
		if err != nil {
			return 0, err
		}
		pc *= fc / float64(a.Chars.Total)
	}
	return math.Log2(pt / pc), nil
}

// WeakestPair returns the bigram score of the term's internal adjacent pair
// with the lowest PMI. The weakest internal bond is the natural signal for
// whether a dictionary match spans a real boundary.
func (a *Analyzer) WeakestPair(term string) (Score, error) {
	runes := []rune(term)
	if len(runes) < 2 {
		return Score{}, &UndefinedStatistic{Gram: term, Reason: "term shorter than two characters"}
	}
	var best Score
	found := false
	for i := 0; i+1 < len(runes); i++ {
		s, err := a.BigramScore(string(runes[i]), string(runes[i+1]))
		if err != nil {
			return Score{}, err
		}
		if !found || s.PMI < best.PMI {
			best = s
			found = true
		}
	}
	return best, nil
}

// TermScores computes TermPMI for every multi-character term in the term
// table. A non-nil filter restricts output to its keys, bounding result size
// for large corpora. Terms whose statistic is undefined are skipped.
func (a *Analyzer) TermScores(filter map[string]bool) map[string]float64 {
	out := make(map[string]float64)
	for term := range a.Terms.Counts {
		if len([]rune(term)) < 2 {
			continue
		}
		if filter != nil && !filter[term] {
			continue
		}
		mi, err := a.TermPMI(term)
		if err != nil {
			continue
		}
		out[term] = mi
	}
	return out
}
