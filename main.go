package main

import "github.com/impactlist/impactlist/cmd"

func main() {
	cmd.Execute()
}
