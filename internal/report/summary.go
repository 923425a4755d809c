// internal/report/summary.go
package report

import (
	"io"
	"strconv"

	"encoding/csv"

	"oligotools/internal/overlap"
)

// SummaryColumns is the canonical header row of the tabular artifact.
// Keep this as the single source of truth; downstream consumers parse it.
var SummaryColumns = []string{"primer_a", "primer_b", "overlap_length", "matches", "mismatches", "risk"}

// WriteSummary emits the spreadsheet-compatible CSV: a header row plus one
// row per result, in scan order.
func WriteSummary(w io.Writer, rs []overlap.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryColumns); err != nil {
		return err
	}
	for _, r := range rs {
		row := []string{
			r.PrimerA,
			r.PrimerB,
			strconv.Itoa(r.Length),
			strconv.Itoa(r.Matches),
			strconv.Itoa(r.Mismatches),
			string(r.Risk),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
