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

	"github.com/spf13/cobra"

	"github.com/easygmsh/rectmesh/mesh"
)

// StatsCmd represents the stats command
var StatsCmd = &cobra.Command{
	Use:   "stats [mesh.msh]",
	Short: "Read a generated mesh back and report group and adjacency statistics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		msh, err := mesh.ReadGmsh22(args[0])
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Println(msh)
		for _, tag := range msh.GroupTags() {
			g := msh.ElementGroups[tag]
			fmt.Printf("group %d %q: %d elements\n", g.Tag, g.Name, len(g.Elements))
		}
		fmt.Printf("vertex adjacency bandwidth = %d\n", msh.Bandwidth())
		fmt.Printf("average vertex degree      = %.3f\n", msh.AverageDegree())
	},
}

func init() {
	rootCmd.AddCommand(StatsCmd)
}
