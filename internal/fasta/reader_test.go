// internal/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oligotools/internal/seq"
)

func TestStreamMultiRecord(t *testing.T) {
	in := ">p1 forward primer\nACGT\nacgt\n\n>p2\nTTTT\n"
	var got []Record
	err := Stream(context.Background(), strings.NewReader(in), func(r Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 records, got %d", len(got))
	}
	if got[0].ID != "p1" || string(got[0].Seq) != "ACGTacgt" {
		t.Errorf("bad first record: %+v", got[0])
	}
	if got[1].ID != "p2" || string(got[1].Seq) != "TTTT" {
		t.Errorf("bad second record: %+v", got[1])
	}
}

func TestStreamRejectsHeaderlessData(t *testing.T) {
	err := Stream(context.Background(), strings.NewReader("ACGT\n"), func(Record) error { return nil })
	if err == nil {
		t.Fatal("expected error for data before header")
	}
}

func TestStreamCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Stream(ctx, strings.NewReader(">a\nACGT\n"), func(Record) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestReadAllValidatesAndPrefixesIDs(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "primers.fa")
	if err := os.WriteFile(fa, []byte(">fwd\nacgtn\n>rev\nTTTT\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadAll(context.Background(), fa)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []seq.Record{
		{ID: "primers.fa#fwd", Seq: "ACGTN"},
		{ID: "primers.fa#rev", Seq: "TTTT"},
	}
	if len(recs) != len(want) {
		t.Fatalf("want %d records, got %d", len(want), len(recs))
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d: got %+v want %+v", i, recs[i], want[i])
		}
	}
}

func TestReadAllRejectsBadAlphabet(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "bad.fa")
	if err := os.WriteFile(fa, []byte(">x\nACGU\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAll(context.Background(), fa); !errors.Is(err, seq.ErrUnsupportedCharacter) {
		t.Fatalf("want ErrUnsupportedCharacter, got %v", err)
	}
}

func TestReadAllGzip(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "primers.fa.gz")
	fh, err := os.Create(fa)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(">z\nGGCC\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}

	recs, err := ReadAll(context.Background(), fa)
	if err != nil {
		t.Fatalf("ReadAll gzip: %v", err)
	}
	if len(recs) != 1 || recs[0].Seq != "GGCC" {
		t.Fatalf("bad gzip read: %+v", recs)
	}
}
