package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/teatak/cntext/assoc"
	"github.com/teatak/cntext/freq"
)

// Computes the mutual information of every multi-character term against its
// characters, optionally restricted to the terms of a filter table.
func main() {
	charFile := flag.String("char_freq_file", "", "Character frequency table")
	termFile := flag.String("term_freq_file", "", "Term frequency table")
	bigramFile := flag.String("bigram_freq_file", "", "Bigram frequency table (optional)")
	filterFile := flag.String("filter_file", "", "Restrict output to terms in this table (optional)")
	outFile := flag.String("output_file", "", "Output file")
	floor := flag.Float64("floor", 0, "Positive floor for zero counts (0 fails on zero marginals)")
	flag.Parse()

	if *charFile == "" || *termFile == "" || *outFile == "" {
		fmt.Fprintln(os.Stderr, "Please provide -char_freq_file, -term_freq_file and -output_file")
		os.Exit(1)
	}

	chars := mustLoad(*charFile)
	terms := mustLoad(*termFile)
	bigrams := freq.NewTable()
	if *bigramFile != "" {
		bigrams = mustLoad(*bigramFile)
	}

	var filter map[string]bool
	if *filterFile != "" {
		ft := mustLoad(*filterFile)
		filter = make(map[string]bool, len(ft.Counts))
		for term := range ft.Counts {
			filter[term] = true
		}
	}

	analyzer := assoc.NewAnalyzer(chars, bigrams, terms)
	analyzer.Floor = *floor
	mi := analyzer.TermScores(filter)

	out, err := os.Create(*outFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	keys := make([]string, 0, len(mi))
	for term := range mi {
		keys = append(keys, term)
	}
	sort.Strings(keys)

	writer := bufio.NewWriter(out)
	for _, term := range keys {
		fmt.Fprintf(writer, "%s\t%f\n", term, mi[term])
	}
	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote mutual information for %d terms to %s\n", len(mi), *outFile)
}

func mustLoad(path string) *freq.Table {
	t, err := freq.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return t
}
