// Command vecxxinfo is a read-only inspection tool: given a vocab file and
// a codes file (or a single compiled snapshot passed as both), it prints
// vocabulary size, merge count, and the pieces produced for a handful of
// sample words.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Interactions-AI/vecxx/bpe"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true)
)

func main() {
	vocabPath := flag.String("vocab", "", "path to the vocab file (or a compiled snapshot)")
	codesPath := flag.String("codes", "", "path to the codes file (or the same snapshot path)")
	samples := flag.String("samples", "arbor,ann,michigan", "comma-separated sample words to segment")
	flag.Parse()

	if *vocabPath == "" || *codesPath == "" {
		fmt.Fprintln(os.Stderr, "vecxxinfo: -vocab and -codes are required")
		os.Exit(2)
	}

	v, err := bpe.New(*vocabPath, *codesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vecxxinfo: %v\n", err)
		os.Exit(1)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s\n", headingStyle.Render("vecxx vocabulary"))
	fmt.Fprintf(&body, "vocab size:  %d\n", v.Size())
	fmt.Fprintf(&body, "merge count: %d\n", v.MergeCount())
	fmt.Fprintf(&body, "\n%s\n", headingStyle.Render("segmentations"))
	for _, word := range strings.Split(*samples, ",") {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		fmt.Fprintf(&body, "%-12s -> %s\n", word, strings.Join(v.Segment(word), " "))
	}

	fmt.Println(boxStyle.Render(strings.TrimRight(body.String(), "\n")))
}
