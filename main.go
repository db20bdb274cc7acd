package main

import "github.com/rlejr135/band-archive/cmd"

func main() {
	cmd.Execute()
}
