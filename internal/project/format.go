// internal/project/format.go
package project

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// knownExtensions maps lowercase file suffixes to format names.
var knownExtensions = map[string]string{
	".fasta": "fasta",
	".fa":    "fasta",
	".fas":   "fasta",
	".fna":   "fasta",
	".ffn":   "fasta",
	".faa":   "fasta",
	".frn":   "fasta",
	".fastq": "fastq",
	".fq":    "fastq",
	".txt":   "text",
	".csv":   "csv",
	".tsv":   "tsv",
	".xlsx":  "excel",
	".xls":   "excel",
	".json":  "json",
	".xml":   "xml",
	".gb":    "genbank",
	".gbk":   "genbank",
	".embl":  "embl",
	".aln":   "alignment",
	".phy":   "phylip",
	".nex":   "nexus",
	".tre":   "newick",
}

// DetectByExtension maps a filename suffix to a format name, or "unknown".
func DetectByExtension(name string) string {
	if f, ok := knownExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f
	}
	return "unknown"
}

// maxSniffLines bounds how much of a file content sniffing reads.
const maxSniffLines = 10

// DetectByContent inspects the head of the file at path. It recognizes
// FASTA, FASTQ, GenBank and CSV; anything else reports "unknown".
func DetectByContent(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for len(lines) < maxSniffLines && sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "unknown"
	}

	switch {
	case looksFASTQ(lines):
		return "fastq"
	case strings.HasPrefix(lines[0], ">"):
		return "fasta"
	case looksGenBank(lines):
		return "genbank"
	case looksCSV(lines):
		return "csv"
	}
	return "unknown"
}

// DetectType prefers the extension and falls back to content sniffing.
func DetectType(path string) string {
	if f := DetectByExtension(path); f != "unknown" {
		return f
	}
	return DetectByContent(path)
}

func looksFASTQ(lines []string) bool {
	if len(lines) < 4 {
		return false
	}
	// Record shape is @header / sequence / +sep / quality.
	return strings.HasPrefix(lines[0], "@") &&
		!strings.HasPrefix(lines[1], "@") &&
		strings.HasPrefix(lines[2], "+")
}

var genBankKeywords = []string{"LOCUS", "DEFINITION", "ACCESSION", "VERSION", "SOURCE", "FEATURES", "ORIGIN"}

func looksGenBank(lines []string) bool {
	found := 0
	for _, line := range lines {
		for _, kw := range genBankKeywords {
			if strings.HasPrefix(line, kw) {
				found++
				break
			}
		}
	}
	return found >= 2
}

func looksCSV(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	n := strings.Count(lines[0], ",")
	return n > 0 && strings.Count(lines[1], ",") == n
}

// FilesByCategory returns project files whose detected type matches
// category, in deterministic traversal order.
func FilesByCategory(p *Project, category string) []*FileReference {
	var out []*FileReference
	for _, ref := range p.AllFiles() {
		if ref.Type == category {
			out = append(out, ref)
		}
	}
	return out
}
