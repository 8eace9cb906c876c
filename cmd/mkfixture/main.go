// mkfixture writes a Parquet file of synthetic finding rows for batch runs,
// or prints statistics of an existing one.
// Usage: go run ./cmd/mkfixture --out testdata/charts.parquet --charts 200
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/hkpcalc/internal/model"
)

// scenarios are the finding patterns charts are drawn from: single crowns,
// bridge gaps, gaps at the arch end and implant candidates.
var scenarios = []map[int32]string{
	{16: "c"},
	{21: "cr", 22: "k"},
	{13: "c", 14: "f", 15: "c"},
	{35: "c", 36: "f", 37: "cr"},
	{45: "x", 46: "f", 47: "c"},
	{11: "e"},
	{24: "kw", 25: "f", 26: "c"},
	{37: "f", 38: "f"},
	{12: "rr", 41: "ew"},
	{33: "c", 34: "f", 35: "f", 36: "kw"},
}

var tenures = []int32{0, 0, 5, 7, 10, 12}

func main() {
	out := flag.String("out", "testdata/charts.parquet", "output parquet")
	charts := flag.Int("charts", 200, "number of charts to write")
	seed := flag.Uint64("seed", 1, "random seed")
	check := flag.String("check", "", "print stats of this parquet file instead of writing")
	flag.Parse()

	if *check != "" {
		if err := printStats(*check); err != nil {
			fmt.Fprintf(os.Stderr, "check: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	var rows []model.FindingRow
	for i := 0; i < *charts; i++ {
		sc := scenarios[rng.IntN(len(scenarios))]
		insurance := "statutory"
		if rng.IntN(10) == 0 {
			insurance = "private"
		}
		tenure := tenures[rng.IntN(len(tenures))]
		additional := rng.IntN(4) == 0
		chartID := fmt.Sprintf("C-%05d", i+1)
		for tooth, finding := range sc {
			rows = append(rows, model.FindingRow{
				ChartID:             chartID,
				Tooth:               tooth,
				Finding:             finding,
				BonusTenureYears:    tenure,
				Insurance:           insurance,
				AdditionalInsurance: additional,
			})
		}
	}

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	writer := goparquet.NewGenericWriter[model.FindingRow](outFile)
	if _, err := writer.Write(rows); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows (%d charts) to %s\n", len(rows), *charts, *out)
}

func printStats(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return err
	}
	pf, err := goparquet.OpenFile(f, stat.Size())
	if err != nil {
		return fmt.Errorf("open parquet: %w", err)
	}

	reader := goparquet.NewGenericReader[model.FindingRow](pf)
	defer reader.Close()

	buf := make([]model.FindingRow, 1024)
	charts := make(map[string]bool)
	findings := make(map[string]int)
	total := 0
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			total++
			charts[buf[i].ChartID] = true
			findings[buf[i].Finding]++
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	fmt.Printf("Total rows: %d, charts: %d\n", total, len(charts))
	fmt.Println("Finding distribution:")
	for _, fi := range model.AllFindingCodes {
		if c := findings[string(fi.Code)]; c > 0 {
			fmt.Printf("  %-4s %-28s %d\n", fi.Code, fi.Name, c)
		}
	}
	return nil
}
