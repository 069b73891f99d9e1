package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/teatak/cntext/annotated"
	"github.com/teatak/cntext/assoc"
	"github.com/teatak/cntext/dictionary"
	"github.com/teatak/cntext/freq"
	"github.com/teatak/cntext/segmenter"
)

// Aligns the segmenter against a gold-annotated corpus file and writes the
// labeled feature table used for classifier training.
func main() {
	annotatedFile := flag.String("filename", "", "Annotated corpus file")
	dictPath := flag.String("dict", "data/words.txt", "Dictionary file")
	charFile := flag.String("char_freq_file", "", "Character frequency table")
	bigramFile := flag.String("bigram_freq_file", "", "Bigram frequency table")
	termFile := flag.String("term_freq_file", "", "Term frequency table")
	outFile := flag.String("output_file", "features.tsv", "Output feature table")
	floor := flag.Float64("floor", 0.5, "Positive floor for missing statistics")
	flag.Parse()

	if *annotatedFile == "" || *charFile == "" || *bigramFile == "" || *termFile == "" {
		fmt.Fprintln(os.Stderr, "Please provide -filename and the three frequency tables")
		os.Exit(1)
	}

	index, err := dictionary.Load(*dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}

	analyzer := assoc.NewAnalyzer(mustLoad(*charFile), mustLoad(*bigramFile), mustLoad(*termFile))
	analyzer.Floor = *floor

	doc, err := annotated.ParseFile(*annotatedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing annotated corpus: %v\n", err)
		os.Exit(1)
	}

	eval := annotated.NewEvaluator(segmenter.New(index), analyzer)
	result, err := eval.Evaluate(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation failed: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := annotated.WriteRecords(out, result.Records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing feature table: %v\n", err)
		os.Exit(1)
	}

	s := result.Summary
	fmt.Printf("Tokens: %d\n", s.Tokens)
	fmt.Printf("False negatives: %d\n", s.FalseNegatives)
	fmt.Printf("False positives: %d\n", s.FalsePositives)
	fmt.Printf("Recall: %.4g\n", s.Recall)
	fmt.Printf("Precision: %.4g\n", s.Precision)
}

func mustLoad(path string) *freq.Table {
	t, err := freq.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return t
}
