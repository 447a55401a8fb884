package bmi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MaxWeight = 500.0 // kg, inclusive
	MaxHeight = 300.0 // cm, exclusive
)

// Sex selects the ideal-weight formula.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts the selector's option names and indexes. An empty value
// means the first option, male.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "m", "male":
		return Male, nil
	case "1", "f", "female":
		return Female, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSex, s)
	}
}

// Input is the raw content of the form fields.
type Input struct {
	Weight string
	Height string
	Sex    string
}

// Measurement is a typed, validated set of inputs. Weight is in kilograms and
// height in centimetres.
type Measurement struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Sex    Sex     `json:"sex"`
}

// Parse turns raw form values into a Measurement and validates it. Presence
// of both numbers is checked before any range check.
func Parse(in Input) (Measurement, error) {
	weight, wok := parseNumber(in.Weight)
	height, hok := parseNumber(in.Height)
	if !wok || !hok {
		return Measurement{}, ErrMissingInput
	}

	sex, err := ParseSex(in.Sex)
	if err != nil {
		return Measurement{}, err
	}

	return Validate(Measurement{Weight: weight, Height: height, Sex: sex})
}

// Validate checks the ranges in order and reports the first failure.
func Validate(m Measurement) (Measurement, error) {
	if !finite(m.Weight) || !finite(m.Height) {
		return Measurement{}, ErrMissingInput
	}
	switch {
	case m.Weight <= 0:
		return Measurement{}, ErrNonPositiveWeight
	case m.Weight > MaxWeight:
		return Measurement{}, ErrExcessiveWeight
	case m.Height <= 0:
		return Measurement{}, ErrNonPositiveHeight
	case m.Height >= MaxHeight:
		return Measurement{}, ErrExcessiveHeight
	}
	if m.Sex == "" {
		m.Sex = Male
	}
	return m, nil
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
