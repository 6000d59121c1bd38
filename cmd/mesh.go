/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/easygmsh/rectmesh/InputParameters"
	"github.com/easygmsh/rectmesh/geo"
	"github.com/easygmsh/rectmesh/rectmesh"
)

type ModelMesh struct {
	GridFile     string
	MeshFile     string
	AssemblyFile string
	Profile      bool
}

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate a structured rectangular mesh from a grid definition file",
	Long: `Generate a structured rectangular mesh from a YAML grid definition,
write the mesh in Gmsh 2.2 format and the assembly/material index file.

rectmesh mesh -F grid.yaml -o out.msh -a assembly_mat.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			mm  = &ModelMesh{}
		)
		if mm.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		mm.MeshFile, _ = cmd.Flags().GetString("meshFile")
		mm.AssemblyFile, _ = cmd.Flags().GetString("assemblyFile")
		mm.Profile, _ = cmd.Flags().GetBool("profile")
		gp := processGridInput(mm)
		if mm.Profile {
			defer profile.Start().Stop()
		}
		if err = RunMesh(mm, gp); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processGridInput(mm *ModelMesh) (gp *InputParameters.GridParameters) {
	if len(mm.GridFile) == 0 {
		fmt.Println("must supply a grid definition file (-F, --gridFile) in YAML format")
		exampleFile := `
########################################
Title: "3x3 assembly"
MeshSize: 1.
X:
  Coords: [0, 24, 56, 80]
Y:
  Min: 0
  Max: 80
  NumCells: 3
Materials: [MAT1, MAT2, MAT3]
MaterialGrid:          # row 0 = top band
  - [3, 3, 3]
  - [2, 1, 3]
  - [3, 2, 3]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(mm.GridFile)
	if err != nil {
		panic(err)
	}
	gp = &InputParameters.GridParameters{}
	if err = gp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func RunMesh(mm *ModelMesh, gp *InputParameters.GridParameters) error {
	gp.Print()
	x, y, err := gp.Partitions()
	if err != nil {
		return err
	}
	grid, err := rectmesh.NewMaterialGrid(gp.MaterialGrid)
	if err != nil {
		return err
	}

	eng := geo.NewEngine()
	rm, err := rectmesh.NewRectMesh(eng, x, y, gp.Materials, grid)
	if err != nil {
		return err
	}
	if err = rm.Generate(gp.MeshSize); err != nil {
		return err
	}
	if err = eng.Synchronize(); err != nil {
		return err
	}
	if err = eng.GenerateMesh(2); err != nil {
		return err
	}
	fmt.Printf("generated %d nodes, %d elements in %d groups\n",
		eng.NumNodes(), eng.NumElements(), len(rm.Groups()))

	if err = eng.Write(mm.MeshFile); err != nil {
		return err
	}
	fmt.Printf("wrote mesh file %s\n", mm.MeshFile)

	if err = rm.ExportAssemblyMaterials(mm.AssemblyFile); err != nil {
		return err
	}
	fmt.Printf("wrote assembly/material index %s\n", mm.AssemblyFile)
	return nil
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("gridFile", "F", "", "Grid definition file in YAML format")
	MeshCmd.Flags().StringP("meshFile", "o", "out.msh", "Output mesh file in Gmsh 2.2 format")
	MeshCmd.Flags().StringP("assemblyFile", "a", "assembly_mat.txt", "Output assembly/material index file")
	MeshCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}
