package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is one corpus file: an ordered sequence of lines.
type Document struct {
	Name  string
	Lines []string
}

// ReadDocument loads a single document from disk.
func ReadDocument(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer file.Close()

	doc := Document{Name: path}
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		doc.Lines = append(doc.Lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// IgnorePatterns filters out boilerplate lines (copyright notices and the
// like) before any counting. Each pattern is a literal substring matched
// case-insensitively.
type IgnorePatterns []string

// LoadIgnorePatterns reads one pattern per line. Blank lines are skipped.
func LoadIgnorePatterns(path string) (IgnorePatterns, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var patterns IgnorePatterns
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, strings.ToLower(line))
	}
	return patterns, scanner.Err()
}

// Ignore reports whether the line matches any pattern.
func (p IgnorePatterns) Ignore(line string) bool {
	if len(p) == 0 {
		return false
	}
	lower := strings.ToLower(line)
	for _, pat := range p {
		if strings.Contains(lower, pat) {
			return true
		}
	}
	return false
}

// Filter returns the lines of doc that are not excluded by the patterns.
func (p IgnorePatterns) Filter(doc Document) Document {
	out := Document{Name: doc.Name}
	for _, line := range doc.Lines {
		if !p.Ignore(line) {
			out.Lines = append(out.Lines, line)
		}
	}
	return out
}

// LoadIndex resolves a two-level corpus index into an ordered list of
// document paths. The top index lists collection files, one per line with
// tab-separated fields, the first field being the file name; each collection
// file lists document files the same way. Entries starting with '#' are
// comments. indexDir holds the collection files, docDir the documents.
func LoadIndex(topIndex, indexDir, docDir string) ([]string, error) {
	collections, err := readIndexFile(topIndex)
	if err != nil {
		return nil, err
	}
	var docs []string
	for _, coll := range collections {
		entries, err := readIndexFile(filepath.Join(indexDir, coll))
		if err != nil {
			return nil, err
		}
		for _, name := range entries {
			docs = append(docs, filepath.Join(docDir, name))
		}
	}
	return docs, nil
}

// readIndexFile returns the first tab-separated field of each non-comment line.
func readIndexFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) == 0 || fields[0] == "" || strings.HasPrefix(fields[0], "#") {
			continue
		}
		names = append(names, fields[0])
	}
	return names, scanner.Err()
}
