package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/teatak/cntext/annotated"
	"github.com/teatak/cntext/classifier"
)

// Trains the boundary-acceptance decision tree from a labeled feature table.
func main() {
	input := flag.String("infile", "", "Feature table produced by the evaluator")
	output := flag.String("output", "boundary_model.yaml", "Path to save the trained model")
	diagram := flag.String("diagram", "", "Optional path for a Graphviz rendering of the tree")
	maxDepth := flag.Int("max_depth", 8, "Maximum tree depth")
	minLeaf := flag.Int("min_leaf", 2, "Minimum samples per leaf")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Please provide an input file using -infile")
		os.Exit(1)
	}

	records, err := annotated.ReadRecordsFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading feature table: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d training records from %s\n", len(records), *input)

	samples := make([]classifier.Sample, len(records))
	for i, rec := range records {
		samples[i] = classifier.Sample{Features: rec.Vector(), Accept: rec.Label}
	}
	model, err := classifier.Train(samples, annotated.FeatureNames(), classifier.Options{
		MaxDepth: *maxDepth,
		MinLeaf:  *minLeaf,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training failed: %v\n", err)
		os.Exit(1)
	}

	if err := model.Save(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving model: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Model saved to %s\n", *output)

	if *diagram != "" {
		if err := os.WriteFile(*diagram, []byte(model.DOT()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing diagram: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Diagram saved to %s\n", *diagram)
	}

	// Probe the trained model with the first record so a mis-shapen table
	// fails loudly here rather than at segmentation time.
	if len(records) > 0 {
		accept, err := model.Predict(records[0].Vector())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Prediction probe failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Probe %q: accept=%v\n", records[0].Term, accept)
	}
}
