package segmenter

import (
	"github.com/teatak/cntext/dictionary"
)

// Segmenter splits text into dictionary-recognized units using greedy
// longest-match. It holds no mutable state beyond the read-only index, so a
// single instance is safe for concurrent use.
type Segmenter struct {
	Index *dictionary.Index
}

// New creates a segmenter over the given dictionary index.
func New(index *dictionary.Index) *Segmenter {
	return &Segmenter{Index: index}
}

// Segment splits text into tokens covering the input exactly: concatenating
// the tokens reproduces the input, including punctuation and whitespace,
// which come out as single-rune tokens.
//
// At each position the longest headword starting there is consumed; when no
// headword matches, the single character is emitted. The match is local and
// never backtracks, so it can both over-segment (no entry covers a genuine
// term) and under-segment (an entry spans a real boundary). Ranking those
// decisions is the job of the association statistics, not the segmenter.
func (s *Segmenter) Segment(text string) []string {
	runes := []rune(text)
	tokens := make([]string, 0, len(runes))
	i := 0
	for i < len(runes) {
		if _, n, ok := s.Index.LongestMatch(runes, i); ok {
			tokens = append(tokens, string(runes[i:i+n]))
			i += n
			continue
		}
		tokens = append(tokens, string(runes[i]))
		i++
	}
	return tokens
}
