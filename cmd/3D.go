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
	"runtime"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/diffstokes/cutcell/InputParameters"
	"github.com/diffstokes/cutcell/cell"
	"github.com/diffstokes/cutcell/field"
)

type Model3D struct {
	InputFile string
	Profile   bool
}

// ThreeDCmd represents the 3D command
var ThreeDCmd = &cobra.Command{
	Use:   "3D",
	Short: "Three dimensional cut-cell sweep over a signed-distance shape",
	Long: `
Lays a regular grid of cut cells over the unit cube, samples the corner SDF
of each cell from a shape, and reports fluid volume, boundary area and
solid/fluid/mixed classification counts,

cutcell 3D -n 32 -s 2`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("3D called")
		m3d := &Model3D{}
		if m3d.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		m3d.Profile, _ = cmd.Flags().GetBool("profile")
		cp := loadParameters(m3d.InputFile)
		if cmd.Flags().Changed("gridCells") {
			cp.GridCells, _ = cmd.Flags().GetInt("gridCells")
		}
		if cmd.Flags().Changed("edgeSampleNum") {
			cp.EdgeSampleNum, _ = cmd.Flags().GetInt("edgeSampleNum")
		}
		if cp.Shape == "circle" {
			cp.Shape = "sphere"
		}
		if m3d.Profile {
			defer profile.Start().Stop()
		}
		cp.Print()
		Run3D(cp)
	},
}

func init() {
	rootCmd.AddCommand(ThreeDCmd)
	ThreeDCmd.Flags().StringP("inputFile", "I", "", "YAML file of sweep parameters, see InputParameters.DefaultParameters for the fields")
	ThreeDCmd.Flags().IntP("gridCells", "n", 16, "number of grid cells per axis")
	ThreeDCmd.Flags().IntP("edgeSampleNum", "s", 2, "sub-cell samples per axis within each cell")
	ThreeDCmd.Flags().Bool("profile", false, "write a CPU profile of the sweep")
}

func buildShape3D(cp *InputParameters.CutCellParameters) (shape sdf.SDF3, err error) {
	if len(cp.ShapeCenter) < 3 {
		err = fmt.Errorf("ShapeCenter needs at least 3 coordinates, have %d", len(cp.ShapeCenter))
		return
	}
	switch cp.Shape {
	case "sphere", "":
		shape, err = sdf.Sphere3D(cp.ShapeRadius)
	case "box":
		d := 2 * cp.ShapeRadius
		shape, err = sdf.Box3D(v3.Vec{X: d, Y: d, Z: d}, 0)
	default:
		err = fmt.Errorf("unknown 3D shape [%s]", cp.Shape)
	}
	if err != nil {
		return
	}
	shape = sdf.Transform3D(shape,
		sdf.Translate3d(v3.Vec{X: cp.ShapeCenter[0], Y: cp.ShapeCenter[1], Z: cp.ShapeCenter[2]}))
	return
}

func Run3D(cp *InputParameters.CutCellParameters) {
	var (
		n = cp.GridCells
		h = 1. / float64(n)
	)
	shape, err := buildShape3D(cp)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	g, err := field.NewGrid3D(shape, v3.Vec{}, h, n, n, n)
	if err != nil {
		panic(err)
	}
	st := sweep3D(g, cp, h)
	st.Print(3)
}

func sweep3D(g *field.Grid3D, cp *InputParameters.CutCellParameters, h float64) (st SweepStats) {
	var (
		wg  sync.WaitGroup
		mtx sync.Mutex
	)
	nx, ny, nz := g.Cells()
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
					for iz := 0; iz < nz; iz++ {
						c, err := cell.NewCell(3, cp.YoungsModulus, cp.PoissonRatio,
							cp.Threshold, cp.EdgeSampleNum, g.CornerSDF(ix, iy, iz))
						if err != nil {
							if errors.Is(err, cell.ErrDegenerateGeometry) {
								local.Degenerate++
								continue
							}
							panic(err)
						}
						local.tally(c, h, 3)
					}
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
