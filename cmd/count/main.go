package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/teatak/cntext/corpus"
	"github.com/teatak/cntext/dictionary"
	"github.com/teatak/cntext/freq"
	"github.com/teatak/cntext/logging"
	"github.com/teatak/cntext/segmenter"
)

func main() {
	kind := flag.String("kind", "chars", "What to count: chars, bigrams or terms")
	input := flag.String("input", "", "Comma-separated list of corpus files")
	dictPath := flag.String("dict", "data/words.txt", "Dictionary file (required for -kind terms)")
	ignore := flag.String("ignorelines", "", "File of patterns marking lines to skip")
	output := flag.String("output", "", "Output frequency table file")
	workers := flag.Int("workers", 0, "Worker count (0 = all CPUs)")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Please provide -input and -output")
		os.Exit(1)
	}
	log := logging.New("info")
	defer log.Sync()

	var counter freq.Counter
	switch *kind {
	case "chars":
		counter = freq.CharCounter{}
	case "bigrams":
		counter = freq.BigramCounter{}
	case "terms":
		index, err := dictionary.Load(*dictPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
			os.Exit(1)
		}
		counter = freq.TermCounter{Seg: segmenter.New(index)}
	default:
		fmt.Fprintf(os.Stderr, "Unknown kind %q (want chars, bigrams or terms)\n", *kind)
		os.Exit(1)
	}

	var patterns corpus.IgnorePatterns
	if *ignore != "" {
		var err error
		patterns, err = corpus.LoadIgnorePatterns(*ignore)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ignore patterns: %v\n", err)
			os.Exit(1)
		}
	}

	agg := freq.NewAggregator(counter, patterns, log)
	if *workers > 0 {
		agg.Workers = *workers
	}
	table, err := agg.RunFiles(context.Background(), strings.Split(*input, ","))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Aggregation failed: %v\n", err)
		os.Exit(1)
	}
	if err := table.Save(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing table: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d %s (total %d) to %s\n", len(table.Counts), *kind, table.Total, *output)
}
