package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// NullField marks an empty field in the dictionary source. A traditional
// field of "\N" means the traditional form equals the simplified form.
const NullField = `\N`

// FormatError reports a malformed dictionary row. Loading fails fast on the
// first bad record.
type FormatError struct {
	Source string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
}

// Entry is a single canonical dictionary entry. Lookups by either the
// simplified or the traditional form resolve to the same Entry.
type Entry struct {
	Simplified  string
	Traditional string
	Pinyin      string
	Gloss       string
}

// Headword returns the traditional form if distinct, otherwise the simplified form.
func (e *Entry) Headword() string {
	if e.Traditional != "" {
		return e.Traditional
	}
	return e.Simplified
}

// Index is an immutable headword index supporting longest-match lookup.
// Words are bucketed by first rune so a lookup only scans candidate lengths
// that actually occur for that rune. Build it once with Load; it is then
// safe for unlimited concurrent readers.
type Index struct {
	entries map[string]*Entry
	// maxLen[r] is the longest headword length (in runes) starting with r.
	maxLen map[rune]int
}

// Load reads the dictionary from a tab-separated file.
// Expected fields: id, simplified, traditional, pinyin, gloss.
func Load(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, path)
}

// Parse reads dictionary records from r. The source name is used in errors.
func Parse(r io.Reader, source string) (*Index, error) {
	idx := &Index{
		entries: make(map[string]*Entry),
		maxLen:  make(map[rune]int),
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, &FormatError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("expected at least 5 fields, got %d", len(fields))}
		}

		entry := &Entry{
			Simplified:  fields[1],
			Traditional: fields[2],
			Pinyin:      fields[3],
			Gloss:       fields[4],
		}
		if entry.Simplified == "" || entry.Simplified == NullField {
			return nil, &FormatError{Source: source, Line: lineNo, Reason: "missing simplified form"}
		}
		if entry.Pinyin == "" {
			return nil, &FormatError{Source: source, Line: lineNo, Reason: "missing pinyin"}
		}
		if entry.Gloss == "" {
			return nil, &FormatError{Source: source, Line: lineNo, Reason: "missing gloss"}
		}
		if entry.Traditional == NullField {
			entry.Traditional = ""
		}

		idx.add(entry.Simplified, entry)
		if entry.Traditional != "" {
			idx.add(entry.Traditional, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (x *Index) add(word string, entry *Entry) {
	// First writer wins so both script variants stay on one canonical entry.
	if _, ok := x.entries[word]; ok {
		return
	}
	x.entries[word] = entry

	runes := []rune(word)
	if len(runes) == 0 {
		return
	}
	first := runes[0]
	if len(runes) > x.maxLen[first] {
		x.maxLen[first] = len(runes)
	}
}

// Size returns the number of distinct headword keys.
func (x *Index) Size() int {
	return len(x.entries)
}

// Lookup returns the entry for an exact headword.
func (x *Index) Lookup(word string) (*Entry, bool) {
	e, ok := x.entries[word]
	return e, ok
}

// LongestMatch finds the longest headword starting at pos in runes.
// It returns the matched entry and its length in runes, or ok=false when no
// headword starts there. Positions are code point offsets, never bytes.
func (x *Index) LongestMatch(runes []rune, pos int) (entry *Entry, length int, ok bool) {
	if pos < 0 || pos >= len(runes) {
		return nil, 0, false
	}
	limit := x.maxLen[runes[pos]]
	if pos+limit > len(runes) {
		limit = len(runes) - pos
	}
	for n := limit; n >= 1; n-- {
		word := string(runes[pos : pos+n])
		if e, found := x.entries[word]; found {
			return e, n, true
		}
	}
	return nil, 0, false
}
