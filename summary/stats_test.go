package summary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carbocation/freyjasummary/lineage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDescribe(t *testing.T) {
	got, err := Describe(BuildSparse(twoSamples()))
	if err != nil {
		t.Fatal(err)
	}

	want := []LineageStats{
		{Lineage: "BA.2", Detected: 1, Mean: 0.375, Max: 0.75},
		{Lineage: "BA.5", Detected: 1, Mean: 0.4938, Max: 0.9876},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribeEmpty(t *testing.T) {
	got, err := Describe(Build(lineage.Result{Lineages: []string{"BA.2"}}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no stats, got %v", got)
	}
}

func TestCoverageHistogram(t *testing.T) {
	var buf bytes.Buffer
	if err := CoverageHistogram(&buf, Build(twoSamples()), 5); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("expected a histogram")
	}

	buf.Reset()
	res := twoSamples()
	res.Samples[0].Coverage = res.Samples[1].Coverage
	if err := CoverageHistogram(&buf, Build(res), 5); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "All 2 samples have 95.12% coverage") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	res.Samples = res.Samples[1:]
	if err := CoverageHistogram(&buf, Build(res), 5); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "All 1 samples have ") {
		t.Errorf("unexpected output for a single sample %q", buf.String())
	}
}

func TestPlotPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotPNG(&buf, Build(twoSamples())); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}

	if err := PlotPNG(&buf, Build(lineage.Result{})); err == nil {
		t.Error("expected an error for an empty table")
	}
}
