package main

import "github.com/notargets/fequad/cmd"

func main() {
	cmd.Execute()
}
