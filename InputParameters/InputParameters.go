package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type CutCellParameters struct {
	Title         string    `yaml:"Title"`
	YoungsModulus float64   `yaml:"YoungsModulus"`
	PoissonRatio  float64   `yaml:"PoissonRatio"`
	Threshold     float64   `yaml:"Threshold"`
	EdgeSampleNum int       `yaml:"EdgeSampleNum"`
	GridCells     int       `yaml:"GridCells"` // cells per axis
	Shape         string    `yaml:"Shape"`     // circle (2D), sphere (3D)
	ShapeRadius   float64   `yaml:"ShapeRadius"`
	ShapeCenter   []float64 `yaml:"ShapeCenter"`
}

// DefaultParameters is a mixed circle/sphere benchmark on a 16^dim grid.
func DefaultParameters() *CutCellParameters {
	return &CutCellParameters{
		Title:         "cut-cell sweep",
		YoungsModulus: 100,
		PoissonRatio:  0.45,
		Threshold:     1.e-3,
		EdgeSampleNum: 2,
		GridCells:     16,
		Shape:         "circle",
		ShapeRadius:   0.25,
		ShapeCenter:   []float64{0.5, 0.5, 0.5},
	}
}

func (cp *CutCellParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CutCellParameters) Validate() error {
	if cp.GridCells < 1 {
		return fmt.Errorf("GridCells = %d, must be >= 1", cp.GridCells)
	}
	if cp.ShapeRadius <= 0 {
		return fmt.Errorf("ShapeRadius = %g, must be positive", cp.ShapeRadius)
	}
	return nil
}

func (cp *CutCellParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("%8.5f\t\t= YoungsModulus\n", cp.YoungsModulus)
	fmt.Printf("%8.5f\t\t= PoissonRatio\n", cp.PoissonRatio)
	fmt.Printf("%8.5f\t\t= Threshold\n", cp.Threshold)
	fmt.Printf("[%d]\t\t\t= EdgeSampleNum\n", cp.EdgeSampleNum)
	fmt.Printf("[%d]\t\t\t= GridCells\n", cp.GridCells)
	fmt.Printf("[%s]\t\t= Shape\n", cp.Shape)
	fmt.Printf("%8.5f\t\t= ShapeRadius\n", cp.ShapeRadius)
}
