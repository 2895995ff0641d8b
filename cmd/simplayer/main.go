package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/robotmasters/engine/internal/enginelog"
)

func main() {
	seed := flag.Uint("seed", 1, "deterministic RNG seed")
	exportFramesFlag := flag.String("export-frames", "", "export frame range (e.g. 0-120) as PNGs instead of running interactively")
	exportDir := flag.String("export-dir", "frames", "output directory for -export-frames")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: simplayer [options]\n\nSteps a demo match through the engine, interactively or via PNG export.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  simplayer\n")
		fmt.Fprintf(os.Stderr, "  simplayer -export-frames 0-120 -export-dir out\n")
	}
	flag.Parse()

	game, err := buildDemoScenario(uint16(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building scenario: %v\n", err)
		os.Exit(1)
	}

	if *exportFramesFlag != "" {
		start, end, err := parseFrameRange(*exportFramesFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		enginelog.Info("exporting frames %d-%d to %s", start, end, *exportDir)
		if err := exportFrames(game, start, end, *exportDir); err != nil {
			fmt.Fprintf(os.Stderr, "error exporting frames: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("exported frames %d-%d to %s\n", start, end, *exportDir)
		return
	}

	if err := runInteractive(game); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFrameRange(s string) (int, int, error) {
	var start, end int
	if _, err := fmt.Sscanf(s, "%d-%d", &start, &end); err != nil {
		return 0, 0, fmt.Errorf("invalid -export-frames range %q, expected START-END: %w", s, err)
	}
	return start, end, nil
}
