package freq

import (
	"fmt"
	"unicode/utf8"

	"github.com/teatak/cntext/corpus"
	"github.com/teatak/cntext/segmenter"
	"github.com/teatak/cntext/util"
)

// Counter counts one n-gram kind over a single document. Counting one
// document is independent of every other document, which is what lets the
// aggregator fan documents out across workers and merge the partial tables
// in any order.
type Counter interface {
	Name() string
	Count(doc corpus.Document) (*Table, error)
}

// CharCounter counts single characters. ASCII code points are excluded: the
// corpus statistics only concern Han text, and boilerplate markup is mostly
// ASCII anyway.
type CharCounter struct{}

func (CharCounter) Name() string { return "chars" }

func (CharCounter) Count(doc corpus.Document) (*Table, error) {
	t := NewTable()
	for _, line := range doc.Lines {
		if err := checkEncoding(doc.Name, line); err != nil {
			return nil, err
		}
		for _, r := range line {
			if util.IsASCII(r) {
				continue
			}
			t.Add(string(r), 1)
		}
	}
	return t, nil
}

// BigramCounter counts ordered adjacent character pairs: "ab" and "ba" are
// distinct keys. The pair state resets at line breaks and at ASCII
// characters, so a document shorter than two characters contributes nothing.
type BigramCounter struct{}

func (BigramCounter) Name() string { return "bigrams" }

func (BigramCounter) Count(doc corpus.Document) (*Table, error) {
	t := NewTable()
	for _, line := range doc.Lines {
		if err := checkEncoding(doc.Name, line); err != nil {
			return nil, err
		}
		var last rune
		for _, r := range line {
			if util.IsASCII(r) {
				last = 0
				continue
			}
			if last != 0 {
				t.Add(string([]rune{last, r}), 1)
			}
			last = r
		}
	}
	return t, nil
}

// TermCounter counts dictionary terms: the tokens the segmenter produces.
// Punctuation tokens and pure-ASCII tokens are skipped to match the
// character counters' convention.
type TermCounter struct {
	Seg *segmenter.Segmenter
}

func (TermCounter) Name() string { return "terms" }

func (c TermCounter) Count(doc corpus.Document) (*Table, error) {
	t := NewTable()
	for _, line := range doc.Lines {
		if err := checkEncoding(doc.Name, line); err != nil {
			return nil, err
		}
		for _, token := range c.Seg.Segment(line) {
			if util.IsPunctuation(token) || asciiOnly(token) {
				continue
			}
			t.Add(token, 1)
		}
	}
	return t, nil
}

func asciiOnly(s string) bool {
	for _, r := range s {
		if !util.IsASCII(r) {
			return false
		}
	}
	return true
}

func checkEncoding(name, line string) error {
	if !utf8.ValidString(line) {
		return fmt.Errorf("%s: invalid UTF-8 encoding", name)
	}
	return nil
}
