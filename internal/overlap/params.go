// internal/overlap/params.go
package overlap

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidParameters marks range or ordering violations in Params.
var ErrInvalidParameters = errors.New("invalid analysis parameters")

// Params configures one analysis run. Zero values are not usable; start from
// DefaultParams and adjust.
type Params struct {
	MinOverlap    int  `yaml:"min_overlap" validate:"min=2,max=20"`
	MaxOverlap    int  `yaml:"max_overlap" validate:"min=2,max=20,gtefield=MinOverlap"`
	MaxMismatches int  `yaml:"max_mismatches" validate:"min=0,max=5"`
	IncludeSelf   bool `yaml:"include_self_pairs"`
}

// DefaultParams matches the tool's published defaults.
func DefaultParams() Params {
	return Params{
		MinOverlap:    3,
		MaxOverlap:    10,
		MaxMismatches: 1,
		IncludeSelf:   true,
	}
}

var paramCheck = validator.New()

// Validate rejects out-of-range values and MinOverlap > MaxOverlap before
// any scan runs. Errors match ErrInvalidParameters via errors.Is.
func (p Params) Validate() error {
	if err := paramCheck.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%s fails %q (value %v): %w", f.StructField(), f.Tag(), f.Value(), ErrInvalidParameters)
		}
		return fmt.Errorf("%v: %w", err, ErrInvalidParameters)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("min_overlap=%d max_overlap=%d max_mismatches=%d include_self_pairs=%t",
		p.MinOverlap, p.MaxOverlap, p.MaxMismatches, p.IncludeSelf)
}
