// internal/projapp/app.go

// Package projapp is the oligoproj command: project files, folder
// management, and running registered analysis tools against project
// contents.
package projapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oligotools/internal/fasta"
	"oligotools/internal/overlap"
	"oligotools/internal/projcli"
	"oligotools/internal/project"
	"oligotools/internal/runner"
	"oligotools/internal/tools"
	"oligotools/internal/version"
)

const (
	exitOK        = 0
	exitNoMatches = 1
	exitUsage     = 2
	exitRuntime   = 3
	exitInterrupt = 130
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	opts, err := projcli.ParseArgs(argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprint(outw, projcli.Usage)
			return exitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		_, _ = fmt.Fprint(outw, projcli.Usage)
		return exitUsage
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "oligoproj version %s\n", version.Version)
		return exitOK
	}
	if opts.NoColor {
		color.NoColor = true
	}

	switch opts.Command {
	case projcli.CmdInit:
		return cmdInit(outw, stderr, opts)
	case projcli.CmdImport:
		return cmdImport(outw, stderr, opts)
	case projcli.CmdMkdir:
		return cmdMkdir(outw, stderr, opts)
	case projcli.CmdMove:
		return cmdMove(outw, stderr, opts)
	case projcli.CmdRemove:
		return cmdRemove(outw, stderr, opts)
	case projcli.CmdTree:
		return cmdTree(outw, stderr, opts)
	case projcli.CmdStats:
		return cmdStats(outw, stderr, opts)
	case projcli.CmdTools:
		return cmdTools(outw)
	case projcli.CmdRun:
		return cmdRun(parent, outw, stderr, opts)
	}
	_, _ = fmt.Fprintf(stderr, "unknown command %q\n", opts.Command)
	return exitUsage
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func fail(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintln(stderr, err)
	if errors.Is(err, project.ErrNotFound) ||
		errors.Is(err, project.ErrDuplicateName) ||
		errors.Is(err, project.ErrInvalidName) {
		return exitUsage
	}
	return exitRuntime
}

func load(opts projcli.Options) (*project.Project, error) {
	return project.Load(opts.Project)
}

func cmdInit(outw, stderr io.Writer, opts projcli.Options) int {
	path := opts.Args[0]
	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), project.Extension)
	}
	p, err := project.New(name, opts.Desc)
	if err != nil {
		return fail(stderr, err)
	}
	if err := project.Save(p, path); err != nil {
		return fail(stderr, err)
	}
	_, _ = fmt.Fprintf(outw, "created project %q at %s\n", p.Name, p.FilePath)
	return exitOK
}

func cmdImport(outw, stderr io.Writer, opts projcli.Options) int {
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}
	for _, src := range opts.Args {
		ref, err := project.ImportFile(p, src, opts.To)
		if err != nil {
			return fail(stderr, err)
		}
		_, _ = fmt.Fprintf(outw, "imported %s as %s (%s, %d bytes)\n", src, ref.Name, ref.Type, ref.SizeBytes)
	}
	if err := project.Save(p, p.FilePath); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

func cmdMkdir(outw, stderr io.Writer, opts projcli.Options) int {
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}
	parent, name := splitItemPath(opts.Args[0])
	if _, err := p.CreateFolder(parent, name); err != nil {
		return fail(stderr, err)
	}
	if err := project.Save(p, p.FilePath); err != nil {
		return fail(stderr, err)
	}
	_, _ = fmt.Fprintf(outw, "created folder %s\n", opts.Args[0])
	return exitOK
}

func cmdMove(outw, stderr io.Writer, opts projcli.Options) int {
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}
	src, name := splitItemPath(opts.Args[0])
	if err := p.Move(src, name, opts.Args[1]); err != nil {
		return fail(stderr, err)
	}
	if err := project.Save(p, p.FilePath); err != nil {
		return fail(stderr, err)
	}
	_, _ = fmt.Fprintf(outw, "moved %s to %s\n", opts.Args[0], opts.Args[1])
	return exitOK
}

func cmdRemove(outw, stderr io.Writer, opts projcli.Options) int {
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}
	parent, name := splitItemPath(opts.Args[0])
	folder, err := p.FolderByPath(parent)
	if err != nil {
		return fail(stderr, err)
	}
	if err := folder.Remove(name); err != nil {
		return fail(stderr, err)
	}
	if err := project.Save(p, p.FilePath); err != nil {
		return fail(stderr, err)
	}
	_, _ = fmt.Fprintf(outw, "removed %s\n", opts.Args[0])
	return exitOK
}

func cmdTree(outw, stderr io.Writer, opts projcli.Options) int {
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}
	_, _ = fmt.Fprintf(outw, "%s (%s)\n", p.Name, filepath.Base(p.FilePath))
	printFolder(outw, p.Root, "")
	return exitOK
}

func printFolder(w io.Writer, f *project.Folder, indent string) {
	_, _ = fmt.Fprintf(w, "%s%s/\n", indent, color.New(color.FgCyan, color.Bold).Sprint(f.Name))
	child := indent + "  "
	names := make([]string, 0, len(f.Files))
	for name := range f.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := f.Files[name]
		_, _ = fmt.Fprintf(w, "%s%s [%s]\n", child, name, ref.Type)
	}
	subs := make([]string, 0, len(f.Subfolders))
	for name := range f.Subfolders {
		subs = append(subs, name)
	}
	sort.Strings(subs)
	for _, name := range subs {
		printFolder(w, f.Subfolders[name], child)
	}
}

func cmdStats(outw, stderr io.Writer, opts projcli.Options) int {
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}
	st := p.Statistics()
	_, _ = fmt.Fprintf(outw, "project:  %s\nfiles:    %d\nfolders:  %d\nbytes:    %d\n",
		p.Name, st.Files, st.Folders, st.TotalBytes)
	types := make([]string, 0, len(st.ByType))
	for t := range st.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		_, _ = fmt.Fprintf(outw, "  %-8s %d\n", t, st.ByType[t])
	}
	return exitOK
}

func cmdTools(outw io.Writer) int {
	for _, id := range tools.IDs() {
		d, _ := tools.Lookup(id)
		_, _ = fmt.Fprintf(outw, "%s  %s (v%s)\n  %s\n", d.ID, d.Name, d.Version, d.Description)
		for _, ps := range d.Params {
			_, _ = fmt.Fprintf(outw, "    --param %s=<%s>  %s [%s]\n", ps.Name, ps.Kind, ps.Description, ps.Default)
		}
	}
	return exitOK
}

// resultsFolder is where run artifacts are attached inside the project.
const resultsFolder = "Root/Results"

func cmdRun(ctx context.Context, outw io.Writer, stderr io.Writer, opts projcli.Options) int {
	d, ok := tools.Lookup(opts.Tool)
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown tool %q (see 'oligoproj tools')\n", opts.Tool)
		return exitUsage
	}
	p, err := load(opts)
	if err != nil {
		return fail(stderr, err)
	}

	var paths []string
	for _, ref := range p.AllFiles() {
		if d.Accepts(ref.Type) {
			paths = append(paths, project.ResolvePath(p, ref))
		}
	}
	if len(paths) == 0 {
		_, _ = fmt.Fprintf(stderr, "project has no files accepted by %s\n", d.ID)
		return exitUsage
	}

	set, err := fasta.ReadAllFiles(ctx, paths)
	if err != nil {
		if ctx.Err() != nil {
			return exitInterrupt
		}
		return fail(stderr, err)
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(p.FilePath), "results", d.ID)
	}
	log := newLogger(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	res, err := d.Run(ctx, tools.RunInput{
		Sequences: set,
		Params:    opts.Params,
		OutDir:    outDir,
		Threads:   opts.Threads,
		Log:       log,
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			return exitInterrupt
		case errors.Is(err, runner.ErrEmptyInput),
			errors.Is(err, overlap.ErrInvalidParameters):
			_, _ = fmt.Fprintln(stderr, err)
			return exitUsage
		default:
			_, _ = fmt.Fprintln(stderr, err)
			return exitRuntime
		}
	}

	if err := attachArtifacts(p, res); err != nil {
		return fail(stderr, err)
	}
	if err := project.Save(p, p.FilePath); err != nil {
		return fail(stderr, err)
	}

	_, _ = fmt.Fprintf(outw, "%s: %s\n", d.ID, res.Summary())
	_, _ = fmt.Fprintf(outw, "artifacts in %s, attached under %s\n", outDir, resultsFolder)
	if res.Flagged == 0 {
		return exitNoMatches
	}
	return exitOK
}

// attachArtifacts imports the run's report and summary files into the
// project's Results folder.
func attachArtifacts(p *project.Project, res runner.Result) error {
	if _, err := p.FolderByPath(resultsFolder); err != nil {
		if _, err := p.CreateFolder("Root", "Results"); err != nil {
			return err
		}
	}
	for _, artifact := range []string{res.ReportPath, res.SummaryPath} {
		if artifact == "" {
			continue
		}
		if _, err := project.ImportFile(p, artifact, resultsFolder); err != nil {
			return err
		}
	}
	return nil
}

// splitItemPath divides "Root/A/name" into its parent folder path and the
// final element.
func splitItemPath(path string) (parent, name string) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "Root", path
	}
	return path[:i], path[i+1:]
}

// newLogger builds the stderr progress logger. Quiet runs log nothing.
func newLogger(stderr io.Writer, quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(zapWriter{stderr}),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}

type zapWriter struct{ io.Writer }

func (zapWriter) Sync() error { return nil }
