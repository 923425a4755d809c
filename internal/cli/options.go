// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"oligotools/internal/cliutil"
	"oligotools/internal/overlap"
	"oligotools/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles   []string
	ParamsFile string

	// Scan parameters
	Params overlap.Params

	// Output
	OutDir  string
	Quiet   bool
	NoColor bool

	// Performance
	Threads int

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: primer 3'-end overlap and dimer screening

License: MIT
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
// A --params YAML file supplies parameter defaults; flags given
// explicitly on the command line win over the file.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Params: overlap.DefaultParams()}
	var help bool

	// Input
	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA file(s) with primers (repeatable or '-') [*]")
	fs.StringVar(&opt.ParamsFile, "params", "", "YAML parameter preset file []")

	// Scan parameters
	fs.IntVar(&opt.Params.MinOverlap, "min-overlap", opt.Params.MinOverlap, "minimum 3' overlap length examined [3]")
	fs.IntVar(&opt.Params.MaxOverlap, "max-overlap", opt.Params.MaxOverlap, "maximum 3' overlap length examined [10]")
	fs.IntVar(&opt.Params.MaxMismatches, "max-mismatches", opt.Params.MaxMismatches, "mismatch budget per alignment [1]")
	fs.BoolVar(&opt.Params.IncludeSelf, "self", opt.Params.IncludeSelf, "also screen each primer against itself [true]")

	// Output
	fs.StringVar(&opt.OutDir, "outdir", "", "directory for report + CSV artifacts (default: report to stdout) []")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress logging [false]")
	fs.BoolVar(&opt.NoColor, "no-color", false, "disable colored terminal output [false]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	// Positional FASTA paths (with globs) are accepted alongside --sequences.
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	expanded, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.SeqFiles = append([]string(seq), expanded...)

	if opt.ParamsFile != "" {
		p, err := loadParamsFile(opt.ParamsFile)
		if err != nil {
			return opt, err
		}
		// Explicit flags outrank the preset file.
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["min-overlap"] {
			opt.Params.MinOverlap = p.MinOverlap
		}
		if !set["max-overlap"] {
			opt.Params.MaxOverlap = p.MaxOverlap
		}
		if !set["max-mismatches"] {
			opt.Params.MaxMismatches = p.MaxMismatches
		}
		if !set["self"] {
			opt.Params.IncludeSelf = p.IncludeSelf
		}
	}

	// Validation
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("provide at least one --sequences file")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	return opt, nil
}

// loadParamsFile reads a YAML preset, starting from the defaults so the
// file only needs to name the fields it changes.
func loadParamsFile(path string) (overlap.Params, error) {
	p := overlap.DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("--params: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("--params %s: %w", path, err)
	}
	return p, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
