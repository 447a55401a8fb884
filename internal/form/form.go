// Package form binds the advisor to a pair of input/result forms.
package form

import (
	"strconv"

	"bmi-advisor/internal/bmi"
)

// Fields are the input controls of the calculator form.
type Fields struct {
	Weight string
	Height string
	Sex    string
}

// Results are the output controls written after a successful submission.
type Results struct {
	BMI         string
	Status      string
	IdealWeight string
}

// Alerter presents a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// Submit validates the fields and fills the results. On failure the user is
// alerted with the rejection message and the results are left untouched.
func Submit(a *bmi.Advisor, in Fields, out *Results, alert Alerter) bool {
	m, err := bmi.Parse(bmi.Input{Weight: in.Weight, Height: in.Height, Sex: in.Sex})
	if err != nil {
		alert.Alert(err.Error())
		return false
	}

	res, err := a.Advise(m)
	if err != nil {
		alert.Alert(err.Error())
		return false
	}

	out.BMI = FormatBMI(res.BMI)
	out.Status = res.Advice
	out.IdealWeight = strconv.FormatFloat(res.IdealWeight, 'f', 0, 64)
	return true
}

// Reset clears every result field.
func Reset(out *Results) {
	out.BMI = ""
	out.Status = ""
	out.IdealWeight = ""
}

// FormatBMI renders the value unrounded, in its shortest exact form.
func FormatBMI(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
