package main

import "github.com/easygmsh/rectmesh/cmd"

func main() {
	cmd.Execute()
}
