package bmi

import (
	"fmt"
	"math"
)

// ComputeBMI returns weight(kg) * 10000 / height(cm)^2.
func ComputeBMI(weight, height float64) float64 {
	return weight * 10000 / (height * height)
}

// IdealWeight is the rounded Devine-style reference weight in kilograms.
func IdealWeight(height float64, sex Sex) float64 {
	return math.Round(idealWeightRaw(height, sex))
}

func idealWeightRaw(height float64, sex Sex) float64 {
	base := 50.0
	if sex == Female {
		base = 45.5
	}
	return base + 2.3*(height-152)/2.54
}

// IdealWeightFunc returns an unrounded reference weight for a height in cm.
type IdealWeightFunc func(height float64) (float64, error)

// Result is the outcome of a successful calculation.
type Result struct {
	BMI         float64  `json:"bmi"`
	IdealWeight float64  `json:"ideal_weight"`
	Category    Category `json:"category"`
	Advice      string   `json:"advice"`
}

// Advisor combines a ladder with the ideal-weight formulas.
type Advisor struct {
	ladder Ladder
	ideal  map[Sex]IdealWeightFunc
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLadder replaces DefaultLadder.
func WithLadder(l Ladder) Option {
	return func(a *Advisor) {
		a.ladder = l
	}
}

// WithIdealWeight replaces the ideal-weight formula for one sex.
func WithIdealWeight(sex Sex, fn IdealWeightFunc) Option {
	return func(a *Advisor) {
		a.ideal[sex] = fn
	}
}

func NewAdvisor(opts ...Option) *Advisor {
	a := &Advisor{
		ladder: DefaultLadder,
		ideal: map[Sex]IdealWeightFunc{
			Male:   builtinIdealWeight(Male),
			Female: builtinIdealWeight(Female),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func builtinIdealWeight(sex Sex) IdealWeightFunc {
	return func(height float64) (float64, error) {
		return idealWeightRaw(height, sex), nil
	}
}

// Ladder returns the ladder used for categorisation.
func (a *Advisor) Ladder() Ladder {
	return a.ladder
}

// Advise validates m and computes the full result. Nothing is returned on a
// validation failure.
func (a *Advisor) Advise(m Measurement) (Result, error) {
	m, err := Validate(m)
	if err != nil {
		return Result{}, err
	}

	fn, ok := a.ideal[m.Sex]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownSex, m.Sex)
	}
	ideal, err := fn(m.Height)
	if err != nil {
		return Result{}, fmt.Errorf("ideal weight for %s: %w", m.Sex, err)
	}
	if math.IsNaN(ideal) || math.IsInf(ideal, 0) {
		return Result{}, fmt.Errorf("%w: %v for %s at height %v", ErrNonFiniteIdeal, ideal, m.Sex, m.Height)
	}

	value := ComputeBMI(m.Weight, m.Height)
	category := a.ladder.Categorize(value)
	return Result{
		BMI:         value,
		IdealWeight: math.Round(ideal),
		Category:    category,
		Advice:      category.Advice(),
	}, nil
}
