package export

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/parquet-go/parquet-go"
	"gocloud.dev/blob/memblob"

	"country-stats/internal/view"
)

func sampleRows() []view.Row {
	return []view.Row{
		{"No.": 1, "Country Name": "Brazil", "Population": 216422446, "% of Population": 0.42,
			"Source": "EF EPI, 2023", "es_created": "2023-01-01T00:00:00Z"},
		{"No.": 2, "Country Name": "Chad", "Population": 18278568},
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]Format{
		"country_stats.csv":     FormatCSV,
		"out/STATS.CSV.GZ":      FormatCSVGzip,
		"s3://b/stats.parquet":  FormatParquet,
		"no-extension":          FormatCSV,
		"mem://bucket/stats.gz": FormatCSVGzip,
	}
	for name, want := range cases {
		if got := FormatOf(name); got != want {
			t.Fatalf("FormatOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestEncodeGzipMatchesCSV(t *testing.T) {
	f := view.NewFormatter(nil)
	var buf bytes.Buffer
	if err := Encode(&buf, FormatCSVGzip, f, sampleRows()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	zr, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip: %v", err)
	}
	if string(data) != f.CSV(sampleRows()) {
		t.Fatalf("gzip payload differs from CSV:\n%s", data)
	}
}

func TestEncodeParquet(t *testing.T) {
	f := view.NewFormatter(nil)
	var buf bytes.Buffer
	if err := Encode(&buf, FormatParquet, f, sampleRows()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	records, err := parquet.Read[Record](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	brazil := records[0]
	if brazil.PctOfPopulation == nil || *brazil.PctOfPopulation != "42" {
		t.Fatalf("expected canonical percent 42, got %v", brazil.PctOfPopulation)
	}
	if brazil.ESCreated == nil || *brazil.ESCreated != "2023-01-01" {
		t.Fatalf("expected date cell, got %v", brazil.ESCreated)
	}
	chad := records[1]
	if chad.EstCount != nil || chad.MidEst != nil || chad.PGCreated != nil {
		t.Fatalf("expected nulls for absent values, got %+v", chad)
	}
	if got := strings.Join(chad.Values(), ","); !strings.HasPrefix(got, "2,Chad,18278568,,") {
		t.Fatalf("unexpected values %q", got)
	}
}

func TestWriteBucket(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	f := view.NewFormatter(nil)
	if err := WriteBucket(ctx, bucket, "exports/country_stats.csv", f, sampleRows()); err != nil {
		t.Fatalf("write bucket: %v", err)
	}
	data, err := bucket.ReadAll(ctx, "exports/country_stats.csv")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != f.CSV(sampleRows()) {
		t.Fatalf("unexpected object:\n%s", data)
	}
	attrs, err := bucket.Attributes(ctx, "exports/country_stats.csv")
	if err != nil {
		t.Fatalf("attributes: %v", err)
	}
	if !strings.HasPrefix(attrs.ContentType, "text/csv") {
		t.Fatalf("unexpected content type %q", attrs.ContentType)
	}
}

func TestWriteLocalPath(t *testing.T) {
	dir := t.TempDir()
	f := view.NewFormatter(nil)

	got, err := Write(context.Background(), dir, f, sampleRows())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := filepath.Join(dir, view.CSVFileName); got != want {
		t.Fatalf("expected default file name %q, got %q", want, got)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != f.CSV(sampleRows()) {
		t.Fatalf("unexpected file contents:\n%s", data)
	}

	nested := filepath.Join(dir, "nested", "stats.csv.gz")
	if _, err := Write(context.Background(), nested, f, sampleRows()); err != nil {
		t.Fatalf("write nested: %v", err)
	}
	raw, err := os.ReadFile(nested)
	if err != nil {
		t.Fatalf("read nested: %v", err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Fatal("expected gzip magic bytes")
	}
}

func TestWriteFileURL(t *testing.T) {
	dir := t.TempDir()
	dest := (&url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(dir, "stats.csv"))}).String()
	f := view.NewFormatter(nil)

	if _, err := Write(context.Background(), dest, f, sampleRows()); err != nil {
		t.Fatalf("write %s: %v", dest, err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != f.CSV(sampleRows()) {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}

func TestSplitBlobURL(t *testing.T) {
	cases := []struct {
		in, bucket, key string
	}{
		{"s3://stats-bucket/exports/out.csv?region=eu-west-1", "s3://stats-bucket?region=eu-west-1", "exports/out.csv"},
		{"gs://stats-bucket/", "gs://stats-bucket", view.CSVFileName},
		{"mem://scratch/daily/", "mem://scratch", "daily/" + view.CSVFileName},
		{"file:///var/exports/out.parquet", "file:///var/exports", "out.parquet"},
		{"file:///var/exports/", "file:///var/exports", view.CSVFileName},
	}
	for _, tc := range cases {
		bucket, key, err := SplitBlobURL(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if bucket != tc.bucket || key != tc.key {
			t.Fatalf("%s: got (%q, %q), want (%q, %q)", tc.in, bucket, key, tc.bucket, tc.key)
		}
	}
}
