// Package formula evaluates configurable ideal-weight expressions such as
// "50 + 2.3 * (height - 152) / 2.54".
package formula

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

const VarHeight = "height"

const (
	DefaultMale   = "50 + 2.3 * (height - 152) / 2.54"
	DefaultFemale = "45.5 + 2.3 * (height - 152) / 2.54"
)

var (
	ErrEmpty           = errors.New("empty formula")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrNotNumeric      = errors.New("formula did not produce a number")
)

type Formula struct {
	source string
	expr   *govaluate.EvaluableExpression
}

// Compile parses expr. Only the height variable may be referenced.
func Compile(expr string) (*Formula, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmpty
	}

	parsed, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", expr, err)
	}
	for _, v := range parsed.Vars() {
		if v != VarHeight {
			return nil, fmt.Errorf("%w %q in %q", ErrUnknownVariable, v, expr)
		}
	}

	return &Formula{source: expr, expr: parsed}, nil
}

// MustCompile is Compile for expressions known at build time.
func MustCompile(expr string) *Formula {
	f, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formula) String() string {
	return f.source
}

// Eval computes the formula for a height in centimetres.
func (f *Formula) Eval(height float64) (float64, error) {
	result, err := f.expr.Evaluate(map[string]interface{}{VarHeight: height})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", f.source, err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q returned %T", ErrNotNumeric, f.source, result)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q returned %v for height %v", ErrNotNumeric, f.source, value, height)
	}
	return value, nil
}
