/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/diffstokes/cutcell/InputParameters"
	"github.com/diffstokes/cutcell/cell"
	"github.com/diffstokes/cutcell/field"
)

type Model2D struct {
	InputFile string
	Profile   bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional cut-cell sweep over a signed-distance shape",
	Long: `
Lays a regular grid of cut cells over the unit square, samples the corner SDF
of each cell from a shape, and reports fluid area, boundary length and
solid/fluid/mixed classification counts,

cutcell 2D -n 64 -s 2`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("2D called")
		m2d := &Model2D{}
		if m2d.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		m2d.Profile, _ = cmd.Flags().GetBool("profile")
		cp := loadParameters(m2d.InputFile)
		if cmd.Flags().Changed("gridCells") {
			cp.GridCells, _ = cmd.Flags().GetInt("gridCells")
		}
		if cmd.Flags().Changed("edgeSampleNum") {
			cp.EdgeSampleNum, _ = cmd.Flags().GetInt("edgeSampleNum")
		}
		if m2d.Profile {
			defer profile.Start().Stop()
		}
		cp.Print()
		Run2D(cp)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputFile", "I", "", "YAML file of sweep parameters, see InputParameters.DefaultParameters for the fields")
	TwoDCmd.Flags().IntP("gridCells", "n", 16, "number of grid cells per axis")
	TwoDCmd.Flags().IntP("edgeSampleNum", "s", 2, "sub-cell samples per axis within each cell")
	TwoDCmd.Flags().Bool("profile", false, "write a CPU profile of the sweep")
}

// SweepStats accumulates per-cell results over a grid sweep. World units:
// cell areas are scaled by h^dim and boundary measures by h^(dim-1).
type SweepStats struct {
	Solid, Fluid, Mixed, Degenerate int
	FluidArea                       float64
	BoundaryArea                    float64
}

func (st *SweepStats) tally(c *cell.Cell, h float64, dim int) {
	switch {
	case c.IsSolidCell():
		st.Solid++
	case c.IsFluidCell():
		st.Fluid++
	default:
		st.Mixed++
	}
	st.FluidArea += c.Area() * math.Pow(h, float64(dim))
	hBnd := math.Pow(h, float64(dim-1))
	for i := 0; i < c.SampleNumProd(); i++ {
		st.BoundaryArea += c.SampleBoundaryArea(i) * hBnd
	}
}

func (st *SweepStats) merge(o SweepStats) {
	st.Solid += o.Solid
	st.Fluid += o.Fluid
	st.Mixed += o.Mixed
	st.Degenerate += o.Degenerate
	st.FluidArea += o.FluidArea
	st.BoundaryArea += o.BoundaryArea
}

func (st *SweepStats) Print(dim int) {
	measure, boundary := "area", "length"
	if dim == 3 {
		measure, boundary = "volume", "area"
	}
	fmt.Printf("[%d]\t\t\t= Solid Cells\n", st.Solid)
	fmt.Printf("[%d]\t\t\t= Fluid Cells\n", st.Fluid)
	fmt.Printf("[%d]\t\t\t= Mixed Cells\n", st.Mixed)
	fmt.Printf("[%d]\t\t\t= Degenerate Cells\n", st.Degenerate)
	fmt.Printf("%8.5f\t\t= Fluid %s\n", st.FluidArea, measure)
	fmt.Printf("%8.5f\t\t= Boundary %s\n", st.BoundaryArea, boundary)
}

func buildShape2D(cp *InputParameters.CutCellParameters) (shape sdf.SDF2, err error) {
	if len(cp.ShapeCenter) < 2 {
		err = fmt.Errorf("ShapeCenter needs at least 2 coordinates, have %d", len(cp.ShapeCenter))
		return
	}
	switch cp.Shape {
	case "circle", "":
		shape, err = sdf.Circle2D(cp.ShapeRadius)
	case "box":
		shape = sdf.Box2D(v2.Vec{X: 2 * cp.ShapeRadius, Y: 2 * cp.ShapeRadius}, 0)
	default:
		err = fmt.Errorf("unknown 2D shape [%s]", cp.Shape)
	}
	if err != nil {
		return
	}
	shape = sdf.Transform2D(shape,
		sdf.Translate2d(v2.Vec{X: cp.ShapeCenter[0], Y: cp.ShapeCenter[1]}))
	return
}

func Run2D(cp *InputParameters.CutCellParameters) {
	var (
		n = cp.GridCells
		h = 1. / float64(n)
	)
	shape, err := buildShape2D(cp)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	g, err := field.NewGrid2D(shape, v2.Vec{}, h, n, n)
	if err != nil {
		panic(err)
	}
	st := sweep2D(g, cp, h)
	st.Print(2)
}

// sweep2D fans the per-cell computation out over a worker pool. Cells are
// independent, so workers stride over grid columns and merge local stats at
// the end.
func sweep2D(g *field.Grid2D, cp *InputParameters.CutCellParameters, h float64) (st SweepStats) {
	var (
		wg  sync.WaitGroup
		mtx sync.Mutex
	)
	nx, ny := g.Cells()
	nw := runtime.NumCPU()
	if nw > nx {
		nw = nx
	}
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var local SweepStats
			for ix := w; ix < nx; ix += nw {
				for iy := 0; iy < ny; iy++ {
					c, err := cell.NewCell(2, cp.YoungsModulus, cp.PoissonRatio,
						cp.Threshold, cp.EdgeSampleNum, g.CornerSDF(ix, iy))
					if err != nil {
						if errors.Is(err, cell.ErrDegenerateGeometry) {
							local.Degenerate++
							continue
						}
						panic(err)
					}
					local.tally(c, h, 2)
				}
			}
			mtx.Lock()
			st.merge(local)
			mtx.Unlock()
		}(w)
	}
	wg.Wait()
	return
}
