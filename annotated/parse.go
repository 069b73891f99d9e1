// Package annotated parses hand-annotated gold segmentation files and
// evaluates automatic segmentation against them.
//
// The file format is line oriented. A line is one of:
//
//   - a token line: gold tokens joined by the enumeration comma 、
//   - a comment: starts with '#', "Note", "Source" or "Translation"
//   - an error tag: "Error: false negative <term>" or
//     "Error: false positive <term>", recording a known segmenter mistake
//     on the preceding text
package annotated

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/teatak/cntext/util"
)

// TokenDelimiter separates gold tokens on a token line.
const TokenDelimiter = "、"

// ParseError reports malformed annotation markup, naming the line.
type ParseError struct {
	Source string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
}

// ErrorKind tags a known segmentation mistake.
type ErrorKind int

const (
	// TagNone marks a segment with no recorded error.
	TagNone ErrorKind = iota
	// TagFalseNegative marks a real multi-character term the segmenter
	// failed to recognize as one unit.
	TagFalseNegative
	// TagFalsePositive marks a token the segmenter produced that is not a
	// real segmentation unit.
	TagFalsePositive
)

func (k ErrorKind) String() string {
	switch k {
	case TagFalseNegative:
		return "false negative"
	case TagFalsePositive:
		return "false positive"
	}
	return "none"
}

// Segment is one gold token with its optional error tag.
type Segment struct {
	Term string
	Tag  ErrorKind
}

// ErrorTag is a parsed error-tag line.
type ErrorTag struct {
	Kind ErrorKind
	Term string
}

// LineKind classifies a parsed line.
type LineKind int

const (
	LineTokens LineKind = iota
	LineComment
	LineErrorTag
)

// Line is the tagged result of parsing one input line.
type Line struct {
	Number int
	Kind   LineKind
	Tokens []string
	Tag    ErrorTag
}

// Document is a fully parsed annotated corpus file.
type Document struct {
	Source   string
	Lines    []Line
	Segments []Segment
	Tags     []ErrorTag
}

var commentPrefixes = []string{"#", "Note", "Source", "Translation"}

// ParseFile loads and parses an annotated corpus file.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, path)
}

// Parse reads the markup in one forward pass. Error tags apply to every
// matching gold term parsed so far.
func Parse(r io.Reader, source string) (*Document, error) {
	doc := &Document{Source: source}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		line, err := parseLine(source, lineNo, raw)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, line)
		switch line.Kind {
		case LineTokens:
			for _, tok := range line.Tokens {
				doc.Segments = append(doc.Segments, Segment{Term: tok})
			}
		case LineErrorTag:
			doc.Tags = append(doc.Tags, line.Tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// False-negative tags attach to the gold segments they name.
	for _, tag := range doc.Tags {
		if tag.Kind != TagFalseNegative {
			continue
		}
		for i := range doc.Segments {
			if doc.Segments[i].Term == tag.Term {
				doc.Segments[i].Tag = TagFalseNegative
			}
		}
	}
	return doc, nil
}

func parseLine(source string, lineNo int, raw string) (Line, error) {
	if strings.HasPrefix(raw, "Error") {
		tag, err := parseErrorTag(source, lineNo, raw)
		if err != nil {
			return Line{}, err
		}
		return Line{Number: lineNo, Kind: LineErrorTag, Tag: tag}, nil
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return Line{Number: lineNo, Kind: LineComment}, nil
		}
	}

	var tokens []string
	for _, tok := range strings.Split(raw, TokenDelimiter) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return Line{}, &ParseError{Source: source, Line: lineNo, Reason: "token line has no tokens"}
	}
	return Line{Number: lineNo, Kind: LineTokens, Tokens: tokens}, nil
}

func parseErrorTag(source string, lineNo int, raw string) (ErrorTag, error) {
	rest := strings.TrimPrefix(raw, "Error")
	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
	var kind ErrorKind
	switch {
	case strings.HasPrefix(rest, "false negative"):
		kind = TagFalseNegative
		rest = strings.TrimPrefix(rest, "false negative")
	case strings.HasPrefix(rest, "false positive"):
		kind = TagFalsePositive
		rest = strings.TrimPrefix(rest, "false positive")
	default:
		return ErrorTag{}, &ParseError{Source: source, Line: lineNo,
			Reason: fmt.Sprintf("error tag must name false negative or false positive: %q", raw)}
	}
	term := strings.TrimSpace(rest)
	term = strings.Trim(term, ":")
	term = strings.TrimSpace(term)
	if term == "" || !util.HasHan(term) {
		return ErrorTag{}, &ParseError{Source: source, Line: lineNo,
			Reason: fmt.Sprintf("error tag names no term: %q", raw)}
	}
	return ErrorTag{Kind: kind, Term: term}, nil
}
