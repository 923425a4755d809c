// internal/tools/registry.go

// Package tools is the capability registry for analysis tools. A tool is a
// descriptor (parameter schema, accepted input category, compute function),
// not a subtype: adding a tool means registering a descriptor in init().
package tools

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"oligotools/internal/runner"
	"oligotools/internal/seq"
)

// ParamKind enumerates supported parameter value types.
type ParamKind string

const (
	KindInt  ParamKind = "int"
	KindBool ParamKind = "bool"
)

// ParamSpec describes one configurable parameter of a tool.
type ParamSpec struct {
	Name        string
	Display     string
	Kind        ParamKind
	Default     string
	Min, Max    int // int kind only
	Description string
}

// ParseInt validates and converts a raw value against the spec.
func (p ParamSpec) ParseInt(raw string) (int, error) {
	if raw == "" {
		raw = p.Default
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer, got %q", p.Name, raw)
	}
	if v < p.Min || v > p.Max {
		return 0, fmt.Errorf("parameter %q must be in [%d,%d], got %d", p.Name, p.Min, p.Max, v)
	}
	return v, nil
}

// ParseBool validates and converts a raw value against the spec.
func (p ParamSpec) ParseBool(raw string) (bool, error) {
	if raw == "" {
		raw = p.Default
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parameter %q must be a boolean, got %q", p.Name, raw)
	}
	return v, nil
}

// RunInput is everything a tool run receives. Sequences are pre-filtered by
// category (tools trust the caller honored Accepts) and pre-validated.
type RunInput struct {
	Sequences []seq.Record
	Params    map[string]string
	OutDir    string
	Threads   int
	Log       *zap.Logger
}

// Descriptor declares one tool's capabilities.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Version     string
	Params      []ParamSpec
	// Accepts is the pure input-category predicate (e.g. "fasta").
	Accepts func(category string) bool
	// Run executes the tool. Implementations must be safe to run off the
	// caller's goroutine.
	Run func(ctx context.Context, in RunInput) (runner.Result, error)
}

// Param looks up a ParamSpec by name.
func (d Descriptor) Param(name string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

var registry = map[string]Descriptor{}

// Register adds or replaces a descriptor (last registration wins).
func Register(d Descriptor) { registry[d.ID] = d }

// Lookup finds a descriptor by tool id.
func Lookup(id string) (Descriptor, bool) {
	d, ok := registry[id]
	return d, ok
}

// IDs lists registered tool ids, sorted for stable output.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
