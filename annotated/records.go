package annotated

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteRecords writes the feature table as TSV, one row per record, with a
// leading comment row naming the columns.
func WriteRecords(w io.Writer, records []FeatureRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# term\t%s\tlabel\n", strings.Join(FeatureNames(), "\t"))
	for _, r := range records {
		label := 0
		if r.Label {
			label = 1
		}
		fmt.Fprintf(bw, "%s", r.Term)
		for _, v := range r.Vector() {
			fmt.Fprintf(bw, "\t%g", v)
		}
		fmt.Fprintf(bw, "\t%d\n", label)
	}
	return bw.Flush()
}

// ReadRecordsFile loads a feature table written by WriteRecords.
func ReadRecordsFile(path string) ([]FeatureRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadRecords(file, path)
}

// ReadRecords parses feature rows from r. The source name is used in errors.
func ReadRecords(r io.Reader, source string) ([]FeatureRecord, error) {
	width := len(FeatureNames())
	var records []FeatureRecord

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
		if len(fields) != width+2 {
			return nil, &ParseError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("expected %d fields, got %d", width+2, len(fields))}
		}
		values := make([]float64, width)
		for i := 0; i < width; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, &ParseError{Source: source, Line: lineNo,
					Reason: fmt.Sprintf("bad numeric field %q", fields[i+1])}
			}
			values[i] = v
		}
		label, err := strconv.Atoi(fields[width+1])
		if err != nil || (label != 0 && label != 1) {
			return nil, &ParseError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("bad label %q", fields[width+1])}
		}
		records = append(records, FeatureRecord{
			Term:        fields[0],
			TermFreq:    values[0],
			MinCharFreq: values[1],
			PairFreq:    values[2],
			TermPMI:     values[3],
			PairPMI:     values[4],
			TScore:      values[5],
			ChiSquare:   values[6],
			Label:       label == 1,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
