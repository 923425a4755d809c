// internal/overlap/scanner.go
package overlap

import (
	"oligotools/internal/seq"
)

// Result is the strongest qualifying 3'-end alignment found for one pair.
// SegmentA and SegmentB are the compared 3' tails, both stored 5'→3';
// renderers reverse SegmentB for display.
type Result struct {
	PrimerA    string
	PrimerB    string
	Length     int
	Matches    int
	Mismatches int
	SegmentA   string
	SegmentB   string
	Risk       Risk
}

// PairIndex identifies one ordered comparison (I == J for self pairs).
type PairIndex struct{ I, J int }

// Pairs enumerates comparisons in the canonical order: i ascending, and for
// each i the self pair (when enabled) before j > i ascending. Reports depend
// on this order being stable across runs.
func Pairs(n int, includeSelf bool) []PairIndex {
	var out []PairIndex
	for i := 0; i < n; i++ {
		if includeSelf {
			out = append(out, PairIndex{i, i})
		}
		for j := i + 1; j < n; j++ {
			out = append(out, PairIndex{i, j})
		}
	}
	return out
}

// Complementary reports whether base a (from primer A's tail, 5'→3') pairs
// with base b (from primer B's tail, read 3'→5' at the aligned position).
// Ambiguous bases such as N never count as a match.
func Complementary(a, b byte) bool {
	return seq.IsACGT(a) && a == seq.Complement(b)
}

// compareTails counts complementary and non-complementary positions between
// the last n bases of a and b.
func compareTails(a, b string, n int) (matches, mismatches int) {
	ta := seq.Tail(a, n)
	tb := seq.Tail(b, n)
	for i := 0; i < n; i++ {
		// position i of A's tail aligns with position n-1-i of B's tail
		if Complementary(ta[i], tb[n-1-i]) {
			matches++
		} else {
			mismatches++
		}
	}
	return
}

// ScanPair searches the configured length range for the strongest qualifying
// alignment between the 3' ends of a and b. A length qualifies when its
// mismatch count is within the budget; among qualifying lengths the winner
// maximizes matches, breaking ties toward the longer overlap. ok is false
// when no length qualifies.
func ScanPair(a, b seq.Record, p Params) (res Result, ok bool) {
	for l := p.MinOverlap; l <= p.MaxOverlap; l++ {
		if l > len(a.Seq) || l > len(b.Seq) {
			break
		}
		m, mm := compareTails(a.Seq, b.Seq, l)
		if mm > p.MaxMismatches {
			continue
		}
		// Lengths increase monotonically, so >= applies the longer-wins
		// tie-break on equal match counts.
		if !ok || m >= res.Matches {
			res = Result{
				PrimerA:    a.ID,
				PrimerB:    b.ID,
				Length:     l,
				Matches:    m,
				Mismatches: mm,
				SegmentA:   seq.Tail(a.Seq, l),
				SegmentB:   seq.Tail(b.Seq, l),
			}
			ok = true
		}
	}
	if ok {
		res.Risk = Classify(res.Matches, res.Mismatches)
	}
	return res, ok
}

// Scan runs ScanPair over every pair in canonical order, serially. Pairs with
// no qualifying alignment emit nothing: absence means no dimer risk detected.
func Scan(set []seq.Record, p Params) []Result {
	pairs := Pairs(len(set), p.IncludeSelf)
	out := make([]Result, 0, len(pairs))
	for _, pi := range pairs {
		if r, ok := ScanPair(set[pi.I], set[pi.J], p); ok {
			out = append(out, r)
		}
	}
	return out
}
