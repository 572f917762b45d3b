package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: "circle benchmark"
YoungsModulus: 250.0
PoissonRatio: 0.4
Threshold: 0.01
EdgeSampleNum: 4
GridCells: 32
Shape: circle
ShapeRadius: 0.3
ShapeCenter: [0.5, 0.5]
`)
	cp := DefaultParameters()
	require.NoError(t, cp.Parse(data))
	assert.Equal(t, "circle benchmark", cp.Title)
	assert.Equal(t, 250., cp.YoungsModulus)
	assert.Equal(t, 0.4, cp.PoissonRatio)
	assert.Equal(t, 4, cp.EdgeSampleNum)
	assert.Equal(t, 32, cp.GridCells)
	assert.Equal(t, []float64{0.5, 0.5}, cp.ShapeCenter)
	assert.NoError(t, cp.Validate())
}

func TestValidate(t *testing.T) {
	cp := DefaultParameters()
	cp.GridCells = 0
	assert.Error(t, cp.Validate())
	cp = DefaultParameters()
	cp.ShapeRadius = -1
	assert.Error(t, cp.Validate())
}
