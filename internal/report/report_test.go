// internal/report/report_test.go
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oligotools/internal/overlap"
)

func sample() []overlap.Result {
	return []overlap.Result{
		{
			PrimerA: "p.fa#a", PrimerB: "p.fa#b",
			Length: 4, Matches: 4, Mismatches: 0,
			SegmentA: "ACGT", SegmentB: "ACGT",
			Risk: overlap.High,
		},
		{
			PrimerA: "p.fa#a", PrimerB: "p.fa#c",
			Length: 5, Matches: 3, Mismatches: 2,
			SegmentA: "AACGT", SegmentB: "TAGTT",
			Risk: overlap.Medium,
		},
	}
}

func TestRenderAlignment(t *testing.T) {
	got := RenderAlignment(sample()[0])
	want := "" +
		"  5'-ACGT-3'\n" +
		"     ||||\n" +
		"  3'-TGCA-5'\n"
	assert.Equal(t, want, got)
}

func TestMarkerRowMixed(t *testing.T) {
	// AACGT against revcomp(TAGTT)=AACTA: first three positions pair,
	// the last two do not.
	row := markerRow("AACGT", "TAGTT")
	require.Len(t, row, 5)
	assert.Equal(t, "|||..", row)
}

func TestWriteNarrative(t *testing.T) {
	var buf bytes.Buffer
	info := RunInfo{Sequences: 3, PairsScanned: 3, Params: overlap.DefaultParams()}
	require.NoError(t, WriteNarrative(&buf, info, sample()))
	out := buf.String()

	assert.Contains(t, out, "Primer Overlap Analysis Report")
	assert.Contains(t, out, "overlaps found: 2")
	assert.Contains(t, out, "p.fa#a vs p.fa#b  [HIGH]")
	assert.Contains(t, out, "overlap=5 matches=3 mismatches=2 risk=MEDIUM")
	assert.Contains(t, out, "risk summary: HIGH=1 MEDIUM=1 LOW=0")

	// Byte-identical on rerun.
	var again bytes.Buffer
	require.NoError(t, WriteNarrative(&again, info, sample()))
	assert.Equal(t, buf.String(), again.String())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sample()))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "primer_a,primer_b,overlap_length,matches,mismatches,risk", lines[0])
	assert.Equal(t, "p.fa#a,p.fa#b,4,4,0,HIGH", lines[1])
	assert.Equal(t, "p.fa#a,p.fa#c,5,3,2,MEDIUM", lines[2])
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, nil))
	assert.Equal(t, "primer_a,primer_b,overlap_length,matches,mismatches,risk\n", buf.String())
}
