// flags.go - command-line flag definitions and their mapping onto
// filter options.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianrastall/pgnfilter/internal/filter"
)

var (
	// Output options
	outputFile = flag.String("o", "", "Output file (required for a single input)")
	outputDir  = flag.String("outdir", "", "Output directory (required for multiple inputs)")
	sevenTag   = flag.Bool("7", false, "Output only the seven tag roster")

	// Rating filter
	minElo    = flag.Int("minelo", 0, "Minimum Elo rating (0 = no bound)")
	maxElo    = flag.Int("maxelo", 0, "Maximum Elo rating (0 = no bound)")
	bothRated = flag.Bool("bothrated", false, "Require a rating for both sides")

	// Game filters
	checkmateOnly = flag.Bool("checkmate", false, "Only keep games ending in checkmate")
	standardOnly  = flag.Bool("standard", false, "Reject variant games and set-up positions")
	minPly        = flag.Int("minply", 0, "Minimum ply count (0 = no bound)")
	maxPly        = flag.Int("maxply", 0, "Maximum ply count (0 = no bound)")

	// Move-text rewriting
	noComments   = flag.Bool("C", false, "Remove comments from move text")
	noNAGs       = flag.Bool("N", false, "Remove NAGs from move text")
	noVariations = flag.Bool("V", false, "Remove variations from move text")

	// Diagnostics
	logFile   = flag.String("l", "", "Write malformed-input warnings to this file")
	appendLog = flag.String("L", "", "Append malformed-input warnings to this file")
	silent    = flag.Bool("s", false, "Suppress progress and the summary line")

	// Execution
	numWorkers = flag.Int("workers", 1, "Concurrent runs when filtering multiple files")
	cpuProfile = flag.String("cpuprofile", "", "Write a CPU profile into this directory")

	version = flag.Bool("version", false, "Print version and exit")
)

// buildOptions maps the parsed flags onto a filter options value.
func buildOptions() filter.Options {
	return filter.Options{
		MinRating:        *minElo,
		MaxRating:        *maxElo,
		BothRated:        *bothRated,
		CheckmateOnly:    *checkmateOnly,
		RemoveComments:   *noComments,
		RemoveNAGs:       *noNAGs,
		RemoveVariations: *noVariations,
		StandardOnly:     *standardOnly,
		MinPlies:         *minPly,
		MaxPlies:         *maxPly,
	}
}

// destinationFor derives the output path for one input when writing
// into an output directory: the input's base name with any compression
// extension removed and a .pgn extension ensured.
func destinationFor(input, outDir string) string {
	base := filepath.Base(input)
	switch filepath.Ext(base) {
	case ".zst", ".bz2":
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if filepath.Ext(base) != ".pgn" {
		base += ".pgn"
	}
	return filepath.Join(outDir, base)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] input.pgn[.zst|.bz2] ...\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Filter PGN files by rating, ply count, checkmate and variant,\n")
	fmt.Fprintf(os.Stderr, "optionally stripping comments, NAGs and variations.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
