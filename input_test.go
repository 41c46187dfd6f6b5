package freyjasummary

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const aggregatedFixture = "\tsummarized\tlineages\tabundances\tresid\tcoverage\n" +
	"sampleA_variants.tsv\t[('BA.5', 0.987654321)]\tBA.5\t0.99\t0.01\t95.1234\n"

func TestOpenInputPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregated.tsv")
	if err := os.WriteFile(path, []byte(aggregatedFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := OpenInput(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != aggregatedFixture {
		t.Errorf("got %q, want %q", data, aggregatedFixture)
	}
}

func TestOpenInputGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(aggregatedFixture)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "aggregated.tsv.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := OpenInput(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != aggregatedFixture {
		t.Errorf("got %q, want %q", data, aggregatedFixture)
	}
}

func TestOpenInputCompressed(t *testing.T) {
	for _, name := range []string{"aggregated.tsv.zip", "aggregated.tsv.xz", "aggregated.tsv.bz2"} {
		data, err := OpenInput(filepath.Join("testdata", name), nil)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if string(data) != aggregatedFixture {
			t.Errorf("%s: got %q, want %q", name, data, aggregatedFixture)
		}
	}
}

func TestOpenInputUnixCompress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregated.tsv.Z")
	if err := os.WriteFile(path, []byte{0x1f, 0x9d, 0x90, 0x09, 0x00, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenInput(path, nil)
	if !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("expected ErrUnsupportedCompression, got %v", err)
	}
}

func TestOpenInputEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tsv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := OpenInput(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected no data, got %q", data)
	}
}

func TestOpenInputMissing(t *testing.T) {
	_, err := OpenInput(filepath.Join(t.TempDir(), "nope.tsv"), nil)
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestOpenInputGoogleStorageWithoutClient(t *testing.T) {
	_, err := OpenInput("gs://bucket/aggregated.tsv", nil)
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestDetectDataType(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte("hello"))
	zw.Close()

	cases := map[string]struct {
		input []byte
		want  DataType
	}{
		"plain": {[]byte(aggregatedFixture), DataTypeNoCompression},
		"short": {[]byte("x"), DataTypeNoCompression},
		"empty": {nil, DataTypeNoCompression},
		"gzip":  {gz.Bytes(), DataTypeGzip},
		"bzip2": {[]byte("BZh91AY&SY"), DataTypeBZip2},
		"xz":    {[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00}, DataTypeXZ},
		"zip":   {[]byte("PK\x03\x04\x14\x00"), DataTypeZip},
		"Z":     {[]byte{0x1f, 0x9d, 0x90}, DataTypeZ},
	}

	for name, c := range cases {
		got, err := DetectDataType(bytes.NewReader(c.input))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %s, want %s", name, got, c.want)
		}
	}
}

func TestDetermineDelimiter(t *testing.T) {
	csv := "Sample,Coverage (%),BA.2,BA.5\nsampleA,95.12,0,0.9876\nsampleB,80.5,0.5,0\n"
	if got := DetermineDelimiter(strings.NewReader(csv), '?'); got != ',' {
		t.Errorf("csv: got %q", got)
	}

	tsv := strings.ReplaceAll(csv, ",", "\t")
	if got := DetermineDelimiter(strings.NewReader(tsv), '?'); got != '\t' {
		t.Errorf("tsv: got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/already/absolute")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/already/absolute" {
		t.Errorf("got %s", got)
	}

	got, err = ExpandHome("~/aggregated.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "~") || !strings.HasSuffix(got, "aggregated.tsv") {
		t.Errorf("~ was not expanded: %s", got)
	}
}
