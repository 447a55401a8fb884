package formula

import (
	"math"
	"testing"

	"bmi-advisor/internal/bmi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchBuiltin(t *testing.T) {
	male := MustCompile(DefaultMale)
	female := MustCompile(DefaultFemale)

	for _, h := range []float64{1, 100, 152, 175, 180, 199.5, 299} {
		m, err := male.Eval(h)
		require.NoError(t, err)
		assert.Equal(t, bmi.IdealWeight(h, bmi.Male), math.Round(m), "male height=%v", h)

		f, err := female.Eval(h)
		require.NoError(t, err)
		assert.Equal(t, bmi.IdealWeight(h, bmi.Female), math.Round(f), "female height=%v", h)
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Compile("50 + weight")
	assert.ErrorIs(t, err, ErrUnknownVariable)

	_, err = Compile("50 + (height")
	assert.Error(t, err)
}

func TestEval_NotNumeric(t *testing.T) {
	f, err := Compile("height > 150")
	require.NoError(t, err)

	_, err = f.Eval(160)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestEval_NonFinite(t *testing.T) {
	f := MustCompile("50 + 2.3 * 50 / (height - 175)")

	_, err := f.Eval(175)
	assert.ErrorIs(t, err, ErrNotNumeric)

	v, err := f.Eval(180)
	require.NoError(t, err)
	assert.InDelta(t, 73.0, v, 1e-9)

	a := bmi.NewAdvisor(bmi.WithIdealWeight(bmi.Male, f.Eval))
	_, err = a.Advise(bmi.Measurement{Weight: 70, Height: 175, Sex: bmi.Male})
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestAdvisorWithFormula(t *testing.T) {
	custom := MustCompile("height - 100")
	a := bmi.NewAdvisor(bmi.WithIdealWeight(bmi.Male, custom.Eval))

	res, err := a.Advise(bmi.Measurement{Weight: 70, Height: 180, Sex: bmi.Male})
	require.NoError(t, err)
	assert.Equal(t, 80.0, res.IdealWeight)
	assert.Equal(t, "height - 100", custom.String())
}
