// internal/seq/seq_test.go
package seq

import (
	"errors"
	"testing"
)

func TestValidateNormalizes(t *testing.T) {
	got, err := Validate(" ac gT n ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ACGTN" {
		t.Errorf("want ACGTN, got %q", got)
	}
}

func TestValidateRejectsBadBase(t *testing.T) {
	for _, raw := range []string{"ACGU", "ACG-T", "AXG", ""} {
		if _, err := Validate(raw); !errors.Is(err, ErrUnsupportedCharacter) {
			t.Errorf("Validate(%q): want ErrUnsupportedCharacter, got %v", raw, err)
		}
	}
}

func TestRevComp(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ACGT", "ACGT"},
		{"AAAAA", "TTTTT"},
		{"GATTACA", "TGTAATC"},
		{"ANT", "ANT"}, // N complements to itself
		{"", ""},
	}
	for _, c := range cases {
		if got := RevComp(c.in); got != c.want {
			t.Errorf("RevComp(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRevCompRoundTrip(t *testing.T) {
	s := "ACGTNACGTTGCA"
	if got := RevComp(RevComp(s)); got != s {
		t.Errorf("round-trip revcomp failed: %q", got)
	}
}

func TestTail(t *testing.T) {
	if got := Tail("ACGTACGT", 3); got != "CGT" {
		t.Errorf("Tail = %q, want CGT", got)
	}
	if got := Tail("ACG", 10); got != "ACG" {
		t.Errorf("Tail beyond length = %q, want ACG", got)
	}
}
