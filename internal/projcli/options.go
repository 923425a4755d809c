// internal/projcli/options.go

// Package projcli parses the oligoproj subcommand line. Each subcommand
// gets its own FlagSet; flags and positionals may be interleaved.
package projcli

import (
	"flag"
	"fmt"
	"strings"

	"oligotools/internal/cliutil"
	"oligotools/internal/version"
)

// Subcommand names.
const (
	CmdInit   = "init"
	CmdImport = "import"
	CmdMkdir  = "mkdir"
	CmdMove   = "mv"
	CmdRemove = "rm"
	CmdTree   = "tree"
	CmdStats  = "stats"
	CmdTools  = "tools"
	CmdRun    = "run"
)

// Options holds the parsed subcommand and its flags. Fields apply only to
// the subcommands that register them.
type Options struct {
	Command string
	Args    []string // positionals after the subcommand's flags

	Project string // --project (most subcommands)

	// init
	Name string
	Desc string

	// import
	To string

	// run
	Tool    string
	Params  map[string]string
	OutDir  string
	Threads int
	Quiet   bool
	NoColor bool

	Version bool
}

// Usage is the top-level help text.
const Usage = `oligoproj: manage sequence analysis projects

Usage:
  oligoproj init   --name NAME [--desc TEXT] <path>
  oligoproj import --project FILE [--to FOLDER] <file>...
  oligoproj mkdir  --project FILE <folder-path>
  oligoproj mv     --project FILE <item-path> <dest-folder>
  oligoproj rm     --project FILE <item-path>
  oligoproj tree   --project FILE
  oligoproj stats  --project FILE
  oligoproj tools
  oligoproj run    --project FILE --tool ID [--param k=v]... [--threads N]

Folder paths look like Root/Sequences/Primers.
`

// ParseArgs parses a full argv (subcommand first).
func ParseArgs(argv []string) (Options, error) {
	var opt Options
	if len(argv) == 0 {
		return opt, flag.ErrHelp
	}
	switch argv[0] {
	case "-h", "--help", "help":
		return opt, flag.ErrHelp
	case "-v", "--version", "version":
		opt.Version = true
		return opt, nil
	}

	opt.Command = argv[0]
	var params kvSlice
	fs := flag.NewFlagSet("oligoproj "+opt.Command, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s\nVersion: %s\n", Usage, version.Version)
	}

	switch opt.Command {
	case CmdInit:
		fs.StringVar(&opt.Name, "name", "", "project name (default: file stem) []")
		fs.StringVar(&opt.Desc, "desc", "", "project description []")
	case CmdImport:
		fs.StringVar(&opt.Project, "project", "", "project file [*]")
		fs.StringVar(&opt.To, "to", "Root", "destination folder path [Root]")
	case CmdMkdir, CmdMove, CmdRemove, CmdTree, CmdStats:
		fs.StringVar(&opt.Project, "project", "", "project file [*]")
	case CmdTools:
		// no flags
	case CmdRun:
		fs.StringVar(&opt.Project, "project", "", "project file [*]")
		fs.StringVar(&opt.Tool, "tool", "", "tool id (see 'oligoproj tools') [*]")
		fs.Var(&params, "param", "tool parameter as key=value (repeatable) []")
		fs.StringVar(&opt.OutDir, "outdir", "", "artifact directory (default: <project dir>/results/<tool>) []")
		fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")
		fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress logging [false]")
		fs.BoolVar(&opt.NoColor, "no-color", false, "disable colored terminal output [false]")
	default:
		return opt, fmt.Errorf("unknown command %q", opt.Command)
	}

	// Flags may appear before or after positionals.
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv[1:])
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if opt.Command == CmdImport {
		var err error
		if posArgs, err = cliutil.ExpandPositionals(posArgs); err != nil {
			return opt, err
		}
	}
	opt.Args = posArgs
	opt.Params = params.Map()

	// Validation
	switch opt.Command {
	case CmdInit:
		if len(opt.Args) != 1 {
			return opt, fmt.Errorf("init takes exactly one project path")
		}
	case CmdImport:
		if opt.Project == "" {
			return opt, fmt.Errorf("--project is required")
		}
		if len(opt.Args) == 0 {
			return opt, fmt.Errorf("import takes one or more files")
		}
	case CmdMkdir, CmdRemove:
		if opt.Project == "" {
			return opt, fmt.Errorf("--project is required")
		}
		if len(opt.Args) != 1 {
			return opt, fmt.Errorf("%s takes exactly one path", opt.Command)
		}
	case CmdMove:
		if opt.Project == "" {
			return opt, fmt.Errorf("--project is required")
		}
		if len(opt.Args) != 2 {
			return opt, fmt.Errorf("mv takes an item path and a destination folder")
		}
	case CmdTree, CmdStats:
		if opt.Project == "" {
			return opt, fmt.Errorf("--project is required")
		}
	case CmdRun:
		if opt.Project == "" || opt.Tool == "" {
			return opt, fmt.Errorf("run requires --project and --tool")
		}
		if opt.Threads < 0 {
			return opt, fmt.Errorf("--threads must be ≥ 0")
		}
	}
	return opt, nil
}

// kvSlice collects repeatable key=value flags.
type kvSlice []string

func (s *kvSlice) String() string     { return strings.Join(*s, ",") }
func (s *kvSlice) Set(v string) error { *s = append(*s, v); return nil }

// Map splits the collected pairs; a malformed entry keeps its raw text as
// the key with an empty value so validation downstream can name it.
func (s kvSlice) Map() map[string]string {
	if len(s) == 0 {
		return nil
	}
	m := make(map[string]string, len(s))
	for _, kv := range s {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}
