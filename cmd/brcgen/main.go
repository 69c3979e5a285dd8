// Command brcgen generates measurement files for exercising cmd/brc
// locally, including boundary and adversarial fixtures: station names at
// the length boundaries the table's hash cares about, the temperature
// parsing boundaries, and a single-key repetition mode for the
// ten-million-row scenario.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

// boundaryNames covers the 1, 2, 3, 4, 5, and >=32 byte lengths called out
// as boundary behaviors: hashing and comparison must agree for each.
var boundaryNames = []string{
	"X",
	"St",
	"Nyc",
	"Lima",
	"Tokyo",
	"Saint-Denis-de-la-Reunion-Station",
}

// boundaryTemps covers the parsing boundaries: two-digit extremes and the
// zero/negative-zero-adjacent cases.
var boundaryTemps = []float64{-99.9, 99.9, 0.0, -0.1}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("brcgen", flag.ContinueOnError)
	numRecords := fs.Int64("n", 1_000_000, "number of records to generate")
	outputFile := fs.String("o", "data/measurements.txt", "output file path")
	stationCount := fs.Int("stations", 100, "number of synthetic s<N> stations, in addition to the boundary names")
	seed := fs.Int64("seed", 1, "PRNG seed, for reproducible fixtures")
	boundary := fs.Bool("boundary", false, "prepend one line per boundary name x boundary temperature combination")
	repeatKey := fs.String("repeat-key", "", "if set, ignore -stations and write n repetitions of '<key>;1.0'")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := os.MkdirAll(dirOf(*outputFile), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	f, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	defer w.Flush()

	if *repeatKey != "" {
		for i := int64(0); i < *numRecords; i++ {
			fmt.Fprintf(w, "%s;1.0\n", *repeatKey)
		}
		return flushOrFail(w)
	}

	r := rand.New(rand.NewSource(*seed))

	if *boundary {
		for _, name := range boundaryNames {
			for _, t := range boundaryTemps {
				fmt.Fprintf(w, "%s;%.1f\n", name, t)
			}
		}
	}

	stations := make([]string, *stationCount)
	for i := range stations {
		stations[i] = fmt.Sprintf("s%d", i+1)
	}
	stations = append(stations, boundaryNames...)

	for i := int64(0); i < *numRecords; i++ {
		station := stations[r.Intn(len(stations))]
		temp := r.Float64()*198.0 - 99.0
		fmt.Fprintf(w, "%s;%.1f\n", station, temp)
	}

	return flushOrFail(w)
}

func flushOrFail(w *bufio.Writer) int {
	if err := w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
