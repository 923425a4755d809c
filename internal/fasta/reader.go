// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"oligotools/internal/seq"
)

// Record is one parsed FASTA entry (header ID + raw sequence bytes).
type Record struct {
	ID  string
	Seq []byte
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader handles gzip input and "-" for stdin.
// Gzip is detected by magic number (1F 8B) or by .gz suffix.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Stream parses FASTA from r and calls emit once per record. It is
// cancelable, returning promptly when ctx is Done, even mid-record.
func Stream(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id      string
		started bool
		body    = make([]byte, 0, 1<<10)
	)

	flush := func() error {
		if !started {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), body...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = parseHeaderID(line[1:])
			started = true
			body = body[:0]
			continue
		}
		if !started {
			return fmt.Errorf("fasta: sequence data before first header")
		}
		body = append(body, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadAll loads every record from path into validated seq.Records. Record IDs
// are prefixed with the source file's base name ("file#record") so the same
// primer name in two files stays distinguishable.
func ReadAll(ctx context.Context, path string) ([]seq.Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	base := filepath.Base(path)
	if path == "-" {
		base = "stdin"
	}

	var out []seq.Record
	err = Stream(ctx, rc, func(r Record) error {
		if r.ID == "" {
			return fmt.Errorf("%s: record %d has an empty header", path, len(out)+1)
		}
		s, verr := seq.Validate(string(r.Seq))
		if verr != nil {
			return fmt.Errorf("%s: record %q: %w", path, r.ID, verr)
		}
		out = append(out, seq.Record{ID: base + "#" + r.ID, Seq: s})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadAllFiles loads all files in order, concatenating their records.
func ReadAllFiles(ctx context.Context, paths []string) ([]seq.Record, error) {
	var all []seq.Record
	for _, p := range paths {
		recs, err := ReadAll(ctx, p)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	return all, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
