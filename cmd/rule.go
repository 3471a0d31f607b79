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
	"os"

	"github.com/notargets/fequad/element"
	"github.com/notargets/fequad/quadrature"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// RuleCmd represents the rule command
var RuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Print the reference quadrature table of an element family",
	Long: `
Prints the quadrature points and weights on the reference cell, and with
--verbose the shape functions and reference gradients at each point,

fequad rule --family tri --order 3`,
	Run: func(cmd *cobra.Command, args []string) {
		family, _ := cmd.Flags().GetString("family")
		order, _ := cmd.Flags().GetInt("order")
		verbose, _ := cmd.Flags().GetBool("verbose")
		if err := PrintRule(os.Stdout, family, order, verbose); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(RuleCmd)
	RuleCmd.Flags().StringP("family", "f", "tri", "element family: line, tri, quad or tet")
	RuleCmd.Flags().IntP("order", "n", 2, "quadrature order, 1-5 (1-3 for tet)")
	RuleCmd.Flags().BoolP("verbose", "v", false, "also print shape functions and gradients at each point")
}

func PrintRule(w io.Writer, family string, order int, verbose bool) (err error) {
	var (
		f element.Family
		e *element.Evaluator
		r *quadrature.Rule
	)
	if f, err = element.ParseFamily(family); err != nil {
		return
	}
	if e, err = element.New(f, order); err != nil {
		return
	}
	if r, err = quadrature.Get(f.Domain(), order); err != nil {
		return
	}
	fmt.Fprintf(w, "%s element, %d vertices\n", f, f.NumVertices())
	fmt.Fprint(w, r)
	fmt.Fprintf(w, "Sum of weights = %.16f, reference measure = %.16f\n",
		floats.Sum(r.Weights), f.Domain().Measure())
	if verbose {
		for _, qd := range e.ReferenceQuadDatas() {
			fmt.Fprint(w, qd)
		}
	}
	return
}
