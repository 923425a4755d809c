// Package overlap detects complementary 3'-end overlaps between primer
// sequences that could seed primer-dimer formation.
//
// The scan is deterministic and pure: pairs are enumerated in a fixed order,
// every candidate overlap length is compared position-wise against the
// reverse complement of the partner's 3' tail, and the strongest qualifying
// alignment per pair is kept. Presentation lives in internal/report;
// orchestration and file writes live in internal/runner.
package overlap
