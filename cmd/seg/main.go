package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/teatak/cntext/dictionary"
	"github.com/teatak/cntext/segmenter"
)

func main() {
	dictPath := flag.String("dict", "data/words.txt", "Path to the dictionary file")
	flag.Parse()

	index, err := dictionary.Load(*dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	seg := segmenter.New(index)

	// If args provided (non-flag args), segment them
	args := flag.Args()
	if len(args) > 0 {
		for _, text := range args {
			fmt.Println(strings.Join(seg.Segment(text), " / "))
		}
		return
	}

	// Otherwise interactive mode
	fmt.Println("Enter text to segment (Ctrl+D to exit):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Println(strings.Join(seg.Segment(text), " / "))
	}
}
