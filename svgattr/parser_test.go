package svgattr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransformWithTspanY(t *testing.T) {
	tr, err := ParseTransform("rotate(-90, 10.5, 20) 15")
	require.NoError(t, err)
	require.NotNil(t, tr.TspanY)
	assert.Equal(t, 15.0, *tr.TspanY)

	rot, ok := tr.Rotation()
	require.True(t, ok)
	assert.Equal(t, []float64{-90, 10.5, 20}, rot.Floats())
	assert.Equal(t, "rotate(-90, 10.5, 20)", tr.String())
}

func TestParseTransformList(t *testing.T) {
	tr, err := ParseTransform("translate(5 5) scale(.5)  rotate(45,1e1,-2)")
	require.NoError(t, err)
	require.Len(t, tr.Funcs, 3)
	assert.Nil(t, tr.TspanY)
	assert.Equal(t, "translate(5, 5) scale(0.5) rotate(45, 10, -2)", tr.String())

	rot, ok := tr.Rotation()
	require.True(t, ok)
	assert.Equal(t, 45.0, rot.Floats()[0])

	tr, err = ParseTransform("scale(2)")
	require.NoError(t, err)
	_, ok = tr.Rotation()
	assert.False(t, ok)
}

func TestParseTransformErrors(t *testing.T) {
	for _, bad := range []string{"rotate(", "rotate(-90, x)", "(1, 2)", "rotate(1) 2 3"} {
		_, err := ParseTransform(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseFunc(t *testing.T) {
	fn, err := ParseFunc("rgb(239, 41, 41)")
	require.NoError(t, err)
	assert.Equal(t, "rgb", fn.Name)
	assert.Equal(t, []float64{239, 41, 41}, fn.Floats())

	fn, err = ParseFunc("rgb(100%, 0%, 50%)")
	require.NoError(t, err)
	assert.True(t, fn.Args[0].Percent)
	assert.Equal(t, "rgb(100%, 0%, 50%)", fn.String())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2.75", FormatNumber((1-0.725)*10))
	assert.Equal(t, "0", FormatNumber(-0.0000001))
	assert.Equal(t, "-90", FormatNumber(-90))
}
