// internal/report/narrative.go
package report

import (
	"fmt"
	"io"
	"strings"

	"oligotools/internal/overlap"
)

// RunInfo carries the aggregate figures printed in the report header.
type RunInfo struct {
	Sequences    int
	PairsScanned int
	Params       overlap.Params
}

const (
	prefixPlus  = "5'-"
	suffixPlus  = "-3'"
	prefixMinus = "3'-"
	suffixMinus = "-5'"

	matchGlyph    = "|"
	mismatchGlyph = "."
)

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// markerRow draws the match/mismatch track between segment A (5'→3') and
// segment B displayed reversed (3'→5').
func markerRow(segA, segB string) string {
	n := len(segA)
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		if overlap.Complementary(segA[i], segB[n-1-i]) {
			b.WriteString(matchGlyph)
		} else {
			b.WriteString(mismatchGlyph)
		}
	}
	return b.String()
}

// RenderAlignment returns the two-line ASCII alignment block for one result.
func RenderAlignment(r overlap.Result) string {
	pad := strings.Repeat(" ", len(prefixPlus))
	var b strings.Builder
	fmt.Fprintf(&b, "  %s%s%s\n", prefixPlus, r.SegmentA, suffixPlus)
	fmt.Fprintf(&b, "  %s%s\n", pad, markerRow(r.SegmentA, r.SegmentB))
	fmt.Fprintf(&b, "  %s%s%s\n", prefixMinus, reverseString(r.SegmentB), suffixMinus)
	return b.String()
}

// WriteNarrative renders the human-readable report: header, one block per
// result in scan order, and a per-risk trailer. Output is byte-stable for
// identical inputs; nothing time- or environment-dependent is printed.
func WriteNarrative(w io.Writer, info RunInfo, rs []overlap.Result) error {
	title := "Primer Overlap Analysis Report"
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "sequences:      %d\npairs scanned:  %d\noverlaps found: %d\nparameters:     %s\n\n",
		info.Sequences, info.PairsScanned, len(rs), info.Params); err != nil {
		return err
	}

	for _, r := range rs {
		if _, err := fmt.Fprintf(w, "%s vs %s  [%s]\n", r.PrimerA, r.PrimerB, r.Risk); err != nil {
			return err
		}
		if _, err := io.WriteString(w, RenderAlignment(r)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  overlap=%d matches=%d mismatches=%d risk=%s\n\n",
			r.Length, r.Matches, r.Mismatches, r.Risk); err != nil {
			return err
		}
	}

	high, medium, low := overlap.Tally(rs)
	_, err := fmt.Fprintf(w, "risk summary: HIGH=%d MEDIUM=%d LOW=%d\n", high, medium, low)
	return err
}
