package params

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Finding is an advisory note about a degenerate parameter. Findings never
// stop generation; the evaluators behave predictably on every input.
type Finding struct {
	Field   string
	Message string
}

func (f Finding) String() string {
	return f.Field + ": " + f.Message
}

// lintView carries the checked fields and their rules.
type lintView struct {
	Size       float64 `validate:"gt=0"`
	Scale      float64 `validate:"ne=0"`
	Distance   float64 `validate:"gt=0"`
	Iterations int     `validate:"gt=0"`
}

var lintValidator = validator.New()

var lintMessages = map[string]string{
	"Size":       "size should be positive",
	"Scale":      "zero scale collapses every voxel onto the center",
	"Distance":   "a non-positive threshold classifies every point as outside",
	"Iterations": "no iterations run; evaluators reduce to a radius check",
}

// Lint reports degenerate values in p.
func Lint(p Parameters) []Finding {
	err := lintValidator.Struct(lintView{
		Size:       p.Size,
		Scale:      p.Scale,
		Distance:   p.Distance,
		Iterations: p.Iterations,
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Finding{{Field: "parameters", Message: err.Error()}}
	}
	findings := make([]Finding, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := lintMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		findings = append(findings, Finding{Field: fe.Field(), Message: msg})
	}
	return findings
}
