// internal/tools/primer_overlap.go
package tools

import (
	"context"

	"oligotools/internal/overlap"
	"oligotools/internal/runner"
)

// PrimerOverlapID is the registry id of the primer overlap analyzer.
const PrimerOverlapID = "primer_overlap"

func init() {
	Register(Descriptor{
		ID:          PrimerOverlapID,
		Name:        "Primer Overlap Analyzer",
		Description: "Analyzes 3'-end overlaps between primer sequences to predict primer-dimer formation risk",
		Version:     "1.0.0",
		Params: []ParamSpec{
			{Name: "min_overlap", Display: "Minimum Overlap Length", Kind: KindInt, Default: "3", Min: 2, Max: 20,
				Description: "Minimum number of bases to consider for overlap analysis"},
			{Name: "max_overlap", Display: "Maximum Overlap Length", Kind: KindInt, Default: "10", Min: 2, Max: 20,
				Description: "Maximum number of bases to consider for overlap analysis"},
			{Name: "max_mismatches", Display: "Maximum Mismatches", Kind: KindInt, Default: "1", Min: 0, Max: 5,
				Description: "Maximum number of mismatches allowed in overlaps (0 = perfect matches only)"},
			{Name: "include_self_pairs", Display: "Include Self-Comparisons", Kind: KindBool, Default: "true",
				Description: "Compare each primer against a second copy of itself (self-dimer detection)"},
		},
		Accepts: func(category string) bool { return category == "fasta" },
		Run:     runPrimerOverlap,
	})
}

func runPrimerOverlap(ctx context.Context, in RunInput) (runner.Result, error) {
	d, _ := Lookup(PrimerOverlapID)

	getInt := func(name string) (int, error) {
		spec, _ := d.Param(name)
		return spec.ParseInt(in.Params[name])
	}

	var params overlap.Params
	var err error
	if params.MinOverlap, err = getInt("min_overlap"); err != nil {
		return runner.Result{}, err
	}
	if params.MaxOverlap, err = getInt("max_overlap"); err != nil {
		return runner.Result{}, err
	}
	if params.MaxMismatches, err = getInt("max_mismatches"); err != nil {
		return runner.Result{}, err
	}
	selfSpec, _ := d.Param("include_self_pairs")
	if params.IncludeSelf, err = selfSpec.ParseBool(in.Params["include_self_pairs"]); err != nil {
		return runner.Result{}, err
	}

	r := runner.New(in.Sequences, params, runner.Options{
		OutDir:  in.OutDir,
		Threads: in.Threads,
		Log:     in.Log,
	})
	res := r.Run(ctx)
	return res, res.Err
}
