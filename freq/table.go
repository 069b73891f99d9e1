package freq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FormatError reports a structurally malformed frequency-table row.
type FormatError struct {
	Source string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
}

// ValidationError reports a count that violates the non-negative-integer
// invariant (negative or non-numeric).
type ValidationError struct {
	Source string
	Line   int
	Key    string
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d: invalid count %q for %q", e.Source, e.Line, e.Value, e.Key)
}

// Table maps n-gram keys (single characters, ordered character pairs or
// dictionary terms) to non-negative counts, with the grand total for the
// table's n-gram kind. The zero-value map semantics make Merge key-wise
// summation, which is commutative and associative: tables built over any
// partition of a corpus merge to the table built in one pass.
type Table struct {
	Counts map[string]int
	Total  int
}

// NewTable creates an empty frequency table.
func NewTable() *Table {
	return &Table{Counts: make(map[string]int)}
}

// Add increments the count for key by n.
func (t *Table) Add(key string, n int) {
	t.Counts[key] += n
	t.Total += n
}

// Get returns the count for key, zero when absent.
func (t *Table) Get(key string) int {
	return t.Counts[key]
}

// Merge folds other into t by key-wise summation.
func (t *Table) Merge(other *Table) {
	for k, v := range other.Counts {
		t.Counts[k] += v
	}
	t.Total += other.Total
}

// Save writes the table as tab-separated "<ngram>\t<count>" rows, sorted by
// key for stable output. The file is written to a temporary sibling and
// renamed into place so concurrent readers never see a half-written table.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	keys := make([]string, 0, len(t.Counts))
	for k := range t.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(writer, "%s\t%d\n", k, t.Counts[k]); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a table saved by Save. The total is re-summed from the rows, so
// a load of a saved table reproduces the identical total.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseTable(file, path)
}

// ParseTable reads "<ngram>\t<count>" rows from r. The source name is used in errors.
func ParseTable(r io.Reader, source string) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 || fields[0] == "" {
			return nil, &FormatError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("expected <ngram>\\t<count>, got %q", line)}
		}
		n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || n < 0 {
			return nil, &ValidationError{Source: source, Line: lineNo, Key: fields[0], Value: fields[1]}
		}
		t.Add(fields[0], n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
