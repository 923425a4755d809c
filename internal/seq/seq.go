// internal/seq/seq.go
package seq

import (
	"errors"
	"fmt"
	"unicode"
)

// Record is one named primer sequence, stored normalized to uppercase.
// ID is stable across runs (typically "file#record").
type Record struct {
	ID  string
	Seq string
}

// ErrUnsupportedCharacter marks sequences containing bases outside {A,C,G,T,N}.
var ErrUnsupportedCharacter = errors.New("unsupported sequence character")

// complement maps A↔T and C↔G; every other byte complements to itself.
var complement [256]byte

func init() {
	for i := 0; i < 256; i++ {
		complement[i] = byte(i)
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// Complement returns the complementary base (A↔T, C↔G, otherwise unchanged).
func Complement(b byte) byte { return complement[b] }

// IsACGT reports whether b is an unambiguous base.
func IsACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns a normalized sequence or an error if any char is outside
// the accepted alphabet {A,C,G,T,N}.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence: %w", ErrUnsupportedCharacter)
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return "", fmt.Errorf("invalid base %q at %d (allowed: A C G T N): %w", s[i], i+1, ErrUnsupportedCharacter)
		}
	}
	return s, nil
}

// RevComp returns the reverse complement of s.
func RevComp(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[s[n-1-i]]
	}
	return string(out)
}

// Tail returns the last n bases (the 3' end) of s. If n exceeds len(s) the
// whole sequence is returned.
func Tail(s string, n int) string {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
