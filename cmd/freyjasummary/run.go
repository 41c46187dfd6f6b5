package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/freyjasummary"
	"github.com/carbocation/freyjasummary/lineage"
	"github.com/carbocation/freyjasummary/summary"
	"github.com/carbocation/pfx"
)

// Number of coverage histogram bins printed to the log.
const histogramBins = 10

func run(opts options) error {
	delim, err := summary.DelimiterForType(opts.Type)
	if err != nil {
		return err
	}

	if opts.Missing != MissingZero && opts.Missing != MissingEmpty {
		return fmt.Errorf("-missing must be %q or %q, not %q", MissingZero, MissingEmpty, opts.Missing)
	}

	var client *storage.Client
	if freyjasummary.IsGoogleStoragePath(opts.Input) {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()
	}

	log.Println("Opening", opts.Input)
	data, err := freyjasummary.OpenInput(opts.Input, client)
	if err != nil {
		return err
	}

	res, err := lineage.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Input, err)
	}
	log.Println("Sorted lineage list:", res.Lineages)
	log.Println("Number of lineages:", len(res.Lineages))
	log.Println("Number of samples:", len(res.Samples))

	var tbl summary.Table
	if opts.Missing == MissingEmpty {
		tbl = summary.BuildSparse(res)
	} else {
		tbl = summary.Build(res)
	}

	// Everything is computed before the first file is created, so a bad input
	// never leaves partial output behind.
	outputFile := opts.OutputFile()
	if err := writeFile(outputFile, func(w io.Writer) error {
		return summary.WriteDelimited(w, tbl, summary.WriteOptions{Delimiter: delim})
	}); err != nil {
		return err
	}
	log.Println("Results written to", outputFile)

	if opts.LongPath != "" {
		if err := writeFile(opts.LongPath, func(w io.Writer) error {
			return summary.WriteLong(w, tbl, delim)
		}); err != nil {
			return err
		}
		log.Println("Long-format results written to", opts.LongPath)
	}

	if opts.PlotPath != "" {
		if err := writeFile(opts.PlotPath, func(w io.Writer) error {
			return summary.PlotPNG(w, tbl)
		}); err != nil {
			return err
		}
		log.Println("Plot written to", opts.PlotPath)
	}

	if opts.Check {
		if err := checkOutput(outputFile, tbl); err != nil {
			return err
		}
		log.Println("Verified", outputFile)
	}

	if err := logStats(tbl); err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Println(summary.Render(tbl, ""))
	}

	return nil
}

// writeFile creates path and fills it with write. If anything fails, the
// partial file is removed.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = pfx.Err(cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if _, err := buf.WriteTo(f); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func checkOutput(path string, want summary.Table) error {
	f, err := os.Open(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	got, err := summary.ReadTable(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if !summary.Equal(want, got) {
		return fmt.Errorf("%s does not match the computed summary", path)
	}

	return nil
}

func logStats(tbl summary.Table) error {
	lineageStats, err := summary.Describe(tbl)
	if err != nil {
		return err
	}

	for _, s := range lineageStats {
		log.Printf("%s: detected in %d of %d samples, mean abundance %.4f, max %.4f\n", s.Lineage, s.Detected, len(tbl.Rows), s.Mean, s.Max)
	}

	if len(tbl.Rows) > 0 {
		log.Println("Coverage (%) distribution:")
		return summary.CoverageHistogram(log.Writer(), tbl, histogramBins)
	}

	return nil
}
