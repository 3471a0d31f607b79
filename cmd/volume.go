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
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/notargets/fequad/InputParameters"
	"github.com/notargets/fequad/mesh"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"
)

type ModelVolume struct {
	GridFile string
	ICFile   string
	Profile  bool
}

// VolumeCmd represents the volume command
var VolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Integrate nodal volumes over a mesh",
	Long: `
Reads a Gmsh 2.2 mesh, builds one element evaluator per family present and
integrates the shape function of every vertex in parallel,

fequad volume -F mesh.msh -I params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mv := &ModelVolume{}
		if mv.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		if mv.ICFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		mv.Profile, _ = cmd.Flags().GetBool("profile")
		ip, err := processVolumeInput(mv)
		if err == nil {
			if viper.IsSet("workers") {
				ip.Workers = viper.GetInt("workers")
			}
			ip.Print()
			var prof interface{ Stop() }
			if mv.Profile {
				prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
			}
			err = RunVolume(os.Stdout, mv.GridFile, ip)
			if prof != nil {
				prof.Stop()
			}
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(VolumeCmd)
	VolumeCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in Gmsh 2.2 ASCII (.msh) format")
	VolumeCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- QuadratureOrder\n\t- Workers")
	VolumeCmd.Flags().Bool("profile", false, "write a CPU profile of the run to the current directory")
	VolumeCmd.Flags().IntP("workers", "w", 0, "goroutines for the nodal volume integration, overrides Workers")
	if err := viper.BindPFlag("workers", VolumeCmd.Flags().Lookup("workers")); err != nil {
		panic(err)
	}
}

func processVolumeInput(mv *ModelVolume) (ip *InputParameters.InputParameters, err error) {
	if len(mv.GridFile) == 0 {
		return nil, fmt.Errorf("must supply a grid file (-F, --gridFile) in Gmsh 2.2 (.msh) format")
	}
	ip = &InputParameters.InputParameters{}
	if len(mv.ICFile) == 0 {
		exampleFile := `
########################################
Title: "Test Case"
QuadratureOrder: 2
Orders:
  tet: 3
Workers: 0 # one per CPU
MassMatrix: true
########################################
`
		fmt.Printf("No input parameters file (-I), using defaults. Example File:%s\n", exampleFile)
		err = ip.Parse([]byte(`Title: defaults`))
		return
	}
	var data []byte
	if data, err = ioutil.ReadFile(mv.ICFile); err != nil {
		return nil, err
	}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", mv.ICFile, err)
	}
	return
}

func RunVolume(w io.Writer, gridFile string, ip *InputParameters.InputParameters) (err error) {
	var (
		m     *mesh.Mesh
		evals mesh.Evaluators
		vol   []float64
		total float64
	)
	if m, err = mesh.ReadGmshFile(gridFile, mesh.GmshElementTypes()); err != nil {
		return
	}
	if m.NumVertices() == 0 {
		return fmt.Errorf("%s has no vertices", gridFile)
	}
	fmt.Fprint(w, m)
	if evals, err = mesh.NewEvaluators(m.FamiliesPresent(), ip.OrderFor, ip.EvaluatorOptions()...); err != nil {
		return
	}
	for _, f := range m.FamiliesPresent() {
		fmt.Fprintf(w, "%s: quadrature order %d, %d points\n", f, evals[f].Order(), evals[f].NumQuadPoints())
	}
	start := time.Now()
	if vol, err = mesh.NodalVolumes(m, evals, ip.Workers); err != nil {
		return
	}
	fmt.Fprintf(w, "Nodal volumes computed in %v\n", time.Since(start))
	if total, err = mesh.TotalVolume(m, evals); err != nil {
		return
	}
	fmt.Fprintf(w, "Total measure = %.12g\n", total)
	fmt.Fprintf(w, "Sum of nodal volumes = %.12g\n", floats.Sum(vol))
	fmt.Fprintf(w, "Min/Max nodal volume = %.6g / %.6g\n", floats.Min(vol), floats.Max(vol))
	if ip.MassMatrix {
		M, err := mesh.MassMatrix(m, evals)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Mass matrix total = %.12g\n", floats.Sum(mesh.RowSums(M)))
	}
	return
}
