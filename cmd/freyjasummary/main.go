// freyjasummary consumes the aggregated file written by `freyja aggregate`
// and writes a simplified summary: one row per sample with its coverage, and
// one column per lineage holding that lineage's abundance in the sample.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/freyjasummary"
	"github.com/carbocation/freyjasummary/compileinfo"
	_ "github.com/carbocation/freyjasummary/compileinfoprint"
)

const (
	MissingZero  = "zero"
	MissingEmpty = "empty"
)

type options struct {
	Input    string
	Out      string
	Type     string
	Missing  string
	LongPath string
	PlotPath string
	Check    bool
	Quiet    bool
}

func (o options) OutputFile() string {
	return o.Out + "." + o.Type
}

// configureLog sends progress and diagnostic lines to stdout, next to the
// rendered table.
func configureLog() {
	log.SetFlags(log.LstdFlags)
	log.SetOutput(os.Stdout)
}

func main() {
	configureLog()

	var opts options
	var version bool

	flag.StringVar(&opts.Input, "input", freyjasummary.DefaultInput, "Aggregated Freyja file. May be a local path, ~/path or gs://bucket/path, and may be compressed.")
	flag.StringVar(&opts.Input, "i", freyjasummary.DefaultInput, "Shorthand for -input")
	flag.StringVar(&opts.Out, "out", "Freyja_aggregated_summary", "Output file name, without the extension")
	flag.StringVar(&opts.Out, "o", "Freyja_aggregated_summary", "Shorthand for -out")
	flag.StringVar(&opts.Type, "type", "csv", "Output file extension, which also selects the delimiter: csv, tsv, tab or txt")
	flag.StringVar(&opts.Type, "t", "csv", "Shorthand for -type")
	flag.StringVar(&opts.Missing, "missing", MissingZero, "What to write for lineages a sample does not have: 'zero' or 'empty'")
	flag.StringVar(&opts.LongPath, "long", "", "Optional. Also write a long (one row per sample and lineage) table to this path, with the same delimiter.")
	flag.StringVar(&opts.PlotPath, "plot", "", "Optional. Also write a stacked bar chart of abundances as a PNG to this path.")
	flag.BoolVar(&opts.Check, "check", false, "Re-read the written summary and verify that it matches what was computed")
	flag.BoolVar(&opts.Quiet, "quiet", false, "Do not print the summary table to the screen")
	flag.BoolVar(&version, "version", false, "Print version and exit")
	flag.BoolVar(&version, "v", false, "Shorthand for -version")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `freyjasummary
Creates a simplified Freyja summary with lineage abundances and coverage from
an aggregated Freyja file. Abundances are truncated to 4 decimal places and
coverage is rounded to 2.`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if version {
		fmt.Println("freyjasummary", compileinfo.Version)
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		log.Fatalln(err)
	}
}
