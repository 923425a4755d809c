// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oligotools/internal/app"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// primerFA holds two primers whose 5-nt tails are perfect reverse
// complements, plus one inert primer.
const primerFA = ">p1\nAAAAACCCCC\n>p2\nAAAAAGGGGG\n>inert\nTTTTTTTTTT\n"

func TestScanReportToStdout(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "primers.fa"), primerFA)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sequences", fa,
		"--min-overlap", "5", "--max-overlap", "5", "--max-mismatches", "0",
		"--self=false", "--quiet",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errBuf.String())
	}
	text := out.String()
	for _, want := range []string{
		"Primer Overlap Analysis Report",
		"overlaps found: 1",
		"risk=HIGH",
		"|||||",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("stdout missing %q:\n%s", want, text)
		}
	}
}

func TestNoOverlapsExit1(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "primers.fa"), ">a\nAAAAAAAAAA\n>b\nAAAAAAAAAA\n")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sequences", fa, "--self=false", "--quiet",
	}, &out, &errBuf)
	if code != 1 {
		t.Fatalf("want exit 1 for no overlaps, got %d stderr=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "overlaps found: 0") {
		t.Errorf("report should still render:\n%s", out.String())
	}
}

func TestOutdirWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "primers.fa"), primerFA)
	outdir := filepath.Join(dir, "results")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sequences", fa,
		"--min-overlap", "5", "--max-overlap", "5", "--max-mismatches", "0",
		"--self=false", "--outdir", outdir, "--quiet", "--no-color",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errBuf.String())
	}

	report, err := os.ReadFile(filepath.Join(outdir, "primer_overlap_analysis.txt"))
	if err != nil {
		t.Fatalf("report artifact: %v", err)
	}
	if !strings.Contains(string(report), "risk=HIGH") {
		t.Errorf("report artifact missing classification:\n%s", report)
	}
	summary, err := os.ReadFile(filepath.Join(outdir, "primer_overlap_summary.csv"))
	if err != nil {
		t.Fatalf("summary artifact: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(summary)), "\n")
	if len(lines) != 2 || lines[0] != "primer_a,primer_b,overlap_length,matches,mismatches,risk" {
		t.Errorf("unexpected summary CSV:\n%s", summary)
	}
	if !strings.Contains(out.String(), "HIGH=1") {
		t.Errorf("stdout tally missing:\n%s", out.String())
	}
}

func TestEmptyInputExit2(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "empty.fa"), "")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--sequences", fa, "--quiet"}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("want exit 2 for empty input, got %d", code)
	}
	if errBuf.Len() == 0 {
		t.Errorf("expected diagnostic on stderr")
	}
}

func TestInvalidParamsExit2(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "primers.fa"), primerFA)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sequences", fa, "--min-overlap", "12", "--max-overlap", "5", "--quiet",
	}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("want exit 2 for invalid params, got %d stderr=%s", code, errBuf.String())
	}
}

func TestUsageErrorExit2(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--min-overlap", "4"}, &out, &errBuf); code != 2 {
		t.Fatalf("want exit 2 when sequences missing, got %d", code)
	}
}

func TestVersionExit0(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &errBuf); code != 0 {
		t.Fatalf("version exit=%d", code)
	}
	if !strings.Contains(out.String(), "overlap version") {
		t.Errorf("version banner missing: %q", out.String())
	}
}

func TestDeterministicAcrossThreadCounts(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "primers.fa"), primerFA)

	run := func(threads string) string {
		var out, errBuf bytes.Buffer
		code := app.Run([]string{
			"--sequences", fa, "--threads", threads, "--quiet",
		}, &out, &errBuf)
		if code != 0 {
			t.Fatalf("threads=%s exit=%d stderr=%s", threads, code, errBuf.String())
		}
		return out.String()
	}
	if run("1") != run("8") {
		t.Fatalf("report differs between thread counts")
	}
}
