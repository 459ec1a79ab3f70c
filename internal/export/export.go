// Package export writes the CSV projection of the view to a file or blob bucket.
package export

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// driver
	_ "gocloud.dev/blob/gcsblob"  // gs:// driver
	_ "gocloud.dev/blob/memblob"  // mem:// driver
	_ "gocloud.dev/blob/s3blob"   // s3:// driver

	"country-stats/internal/logging"
	"country-stats/internal/view"
	"country-stats/pkg/utils"
)

// Format is the encoding picked from the destination's extension.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatCSVGzip Format = "csv.gz"
	FormatParquet Format = "parquet"
)

// FormatOf maps a file name onto a Format; unknown extensions are CSV.
func FormatOf(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv.gz"), strings.HasSuffix(lower, ".gz"):
		return FormatCSVGzip
	case strings.HasSuffix(lower, ".parquet"):
		return FormatParquet
	default:
		return FormatCSV
	}
}

func (f Format) contentType() string {
	switch f {
	case FormatCSVGzip:
		return "application/gzip"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Encode writes rows to w in format.
func Encode(w io.Writer, format Format, f view.Formatter, rows []view.Row) error {
	switch format {
	case FormatCSVGzip:
		zw := gzip.NewWriter(w)
		zw.Name = view.CSVFileName
		if err := f.WriteCSV(zw, rows); err != nil {
			_ = zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close gzip: %w", err)
		}
		return nil
	case FormatParquet:
		return writeParquet(w, f, rows)
	default:
		return f.WriteCSV(w, rows)
	}
}

// Write exports rows to dest and returns where they went. dest is a local path, a
// directory, or a blob URL (file://, mem://, s3://, gs://); empty means country_stats.csv.
func Write(ctx context.Context, dest string, f view.Formatter, rows []view.Row) (string, error) {
	dest = strings.TrimSpace(dest)
	if strings.Contains(dest, "://") {
		bucketURL, key, err := SplitBlobURL(dest)
		if err != nil {
			return "", err
		}
		bucket, err := blob.OpenBucket(ctx, bucketURL)
		if err != nil {
			return "", fmt.Errorf("open bucket %s: %w", bucketURL, err)
		}
		defer bucket.Close()
		if err := WriteBucket(ctx, bucket, key, f, rows); err != nil {
			return "", err
		}
		return dest, nil
	}
	return writeFile(dest, f, rows)
}

// WriteBucket writes rows under key in bucket.
func WriteBucket(ctx context.Context, bucket *blob.Bucket, key string, f view.Formatter, rows []view.Row) error {
	format := FormatOf(key)
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: format.contentType()})
	if err != nil {
		return fmt.Errorf("create writer for %s: %w", key, err)
	}
	if err := Encode(w, format, f, rows); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close writer for %s: %w", key, err)
	}
	return nil
}

// SplitBlobURL separates a blob URL into the bucket URL and the object key. A key that
// is empty or ends in "/" gets the default file name.
func SplitBlobURL(raw string) (bucketURL, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse export url %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return "", "", fmt.Errorf("export url %q has no scheme", raw)
	}

	var dir string
	if u.Scheme == "file" {
		if strings.HasSuffix(u.Path, "/") {
			dir, key = strings.TrimSuffix(u.Path, "/"), ""
		} else {
			dir, key = path.Split(u.Path)
			dir = strings.TrimSuffix(dir, "/")
		}
		if dir == "" {
			dir = "/"
		}
		bucket := url.URL{Scheme: u.Scheme, Path: dir, RawQuery: u.RawQuery}
		bucketURL = bucket.String()
	} else {
		key = strings.TrimPrefix(u.Path, "/")
		bucket := url.URL{Scheme: u.Scheme, Host: u.Host, RawQuery: u.RawQuery}
		bucketURL = bucket.String()
	}

	if key == "" || strings.HasSuffix(key, "/") {
		key += view.CSVFileName
	}
	return bucketURL, key, nil
}

func writeFile(dest string, f view.Formatter, rows []view.Row) (string, error) {
	dir, name := filepath.Split(dest)
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dir, name = dest, ""
	}
	if name == "" {
		name = view.CSVFileName
	}

	om := utils.NewOutputManager(filepath.Clean(dir))
	dest, err := om.GetOutputFilePath(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(om.BaseOutputDir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, FormatOf(dest), f, rows); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("rename to %s: %w", dest, err)
	}
	if size, err := om.GetFileSize(dest); err == nil {
		logging.Component("export").Debug("export written", "path", dest, "rows", len(rows), "bytes", size)
	}
	return dest, nil
}
