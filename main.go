package main

import "github.com/agentic-research/modmv/cmd"

func main() {
	cmd.Execute()
}
