// internal/overlap/scanner_test.go
package overlap

import (
	"reflect"
	"testing"

	"oligotools/internal/seq"
)

func rec(id, s string) seq.Record { return seq.Record{ID: id, Seq: s} }

func params(minL, maxL, maxMM int, self bool) Params {
	return Params{MinOverlap: minL, MaxOverlap: maxL, MaxMismatches: maxMM, IncludeSelf: self}
}

func TestPairsOrder(t *testing.T) {
	got := Pairs(3, true)
	want := []PairIndex{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Pairs(3,true) = %v, want %v", got, want)
	}
	got = Pairs(3, false)
	want = []PairIndex{{0, 1}, {0, 2}, {1, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Pairs(3,false) = %v, want %v", got, want)
	}
}

// matches + mismatches must always equal the overlap length.
func TestCountsSumToLength(t *testing.T) {
	a := rec("a", "ACGTACGTAC")
	b := rec("b", "TTGCANNCGT")
	for l := 2; l <= 10; l++ {
		m, mm := compareTails(a.Seq, b.Seq, l)
		if m+mm != l {
			t.Errorf("L=%d: matches(%d)+mismatches(%d) != L", l, m, mm)
		}
	}
}

// A tail that is its own reverse-complement palindrome pairs perfectly with
// a second copy of itself.
func TestSelfComplementaryPalindrome(t *testing.T) {
	p := rec("pal", "GGGACGT") // ACGT == revcomp(ACGT)
	res, ok := ScanPair(p, p, params(4, 4, 0, true))
	if !ok {
		t.Fatal("expected a qualifying self alignment")
	}
	if res.Matches != 4 || res.Mismatches != 0 {
		t.Errorf("want 4/0, got %d/%d", res.Matches, res.Mismatches)
	}
	if res.Risk != High {
		t.Errorf("want HIGH, got %s", res.Risk)
	}
}

// Complementarity, not identity, triggers a match.
func TestComplementNotIdentity(t *testing.T) {
	a := rec("a", "AAAAACCCCC")
	p := params(5, 5, 0, false)

	for _, b := range []seq.Record{rec("b1", "GGGGGTTTTT"), rec("b2", "AAAAATTTTT")} {
		if _, ok := ScanPair(a, b, p); ok {
			t.Errorf("pair a/%s: want no result, got one", b.ID)
		}
	}

	// The true complement of CCCCC at the 3' end does qualify.
	c := rec("c", "AAAAAGGGGG") // tail GGGGG, revcomp CCCCC == tail of a
	res, ok := ScanPair(a, c, p)
	if !ok {
		t.Fatal("expected complementary pair to qualify")
	}
	if res.Matches != 5 || res.Mismatches != 0 || res.Risk != High {
		t.Errorf("unexpected result %+v", res)
	}
}

// Given equal match counts at two lengths, the scanner keeps the longer one.
func TestTieBreakPrefersLongerOverlap(t *testing.T) {
	// ACACGT vs ACACGT:
	//   L=4: ACGT vs revcomp(ACGT)=ACGT → 4 matches, 0 mismatches
	//   L=6: ACACGT vs revcomp(ACACGT)=ACGTGT → 4 matches, 2 mismatches
	// Equal match counts; the longer overlap must win.
	a := rec("a", "ACACGT")
	b := rec("b", "ACACGT")
	res, ok := ScanPair(a, b, params(2, 6, 2, false))
	if !ok {
		t.Fatal("expected a result")
	}
	if res.Matches != 4 || res.Mismatches != 2 {
		t.Fatalf("want 4 matches / 2 mismatches, got %+v", res)
	}
	if res.Length != 6 {
		t.Errorf("tie-break: want length 6, got %d", res.Length)
	}
}

// Widening the mismatch budget never loses results.
func TestMismatchBudgetMonotonic(t *testing.T) {
	set := []seq.Record{
		rec("a", "ACGTACGTAC"),
		rec("b", "TGCATGCATG"),
		rec("c", "AAAACGCGCG"),
		rec("d", "TTTTGCGCGC"),
	}
	prev := -1
	for mm := 0; mm <= 5; mm++ {
		n := len(Scan(set, params(3, 8, mm, true)))
		if n < prev {
			t.Errorf("max_mismatches=%d: result count dropped from %d to %d", mm, prev, n)
		}
		prev = n
	}
}

func TestScanDeterministic(t *testing.T) {
	set := []seq.Record{
		rec("a", "ACGTACGTAC"),
		rec("b", "TGCATGCATG"),
		rec("c", "CGCGATATCG"),
	}
	p := params(3, 8, 2, true)
	first := Scan(set, p)
	for i := 0; i < 5; i++ {
		if again := Scan(set, p); !reflect.DeepEqual(first, again) {
			t.Fatalf("scan %d differs from first scan", i)
		}
	}
}

func TestShortSequencesSkipped(t *testing.T) {
	// Both below min_overlap: no result, no error.
	if _, ok := ScanPair(rec("a", "ACG"), rec("b", "CGT"), params(5, 10, 5, false)); ok {
		t.Error("sequences shorter than min_overlap must not qualify")
	}
	// Empty and singleton sets yield empty output.
	if rs := Scan(nil, params(3, 10, 1, false)); len(rs) != 0 {
		t.Errorf("empty set: want 0 results, got %d", len(rs))
	}
	if rs := Scan([]seq.Record{rec("a", "ACGTACGT")}, params(3, 10, 1, false)); len(rs) != 0 {
		t.Errorf("singleton without self pairs: want 0 results, got %d", len(rs))
	}
}

func TestNNeverMatches(t *testing.T) {
	a := rec("a", "AANN")
	b := rec("b", "TTNN")
	// L=2: tails NN vs NN; revcomp(NN)=NN but N is never complementary.
	m, mm := compareTails(a.Seq, b.Seq, 2)
	if m != 0 || mm != 2 {
		t.Errorf("NN tails: want 0/2, got %d/%d", m, mm)
	}
}
