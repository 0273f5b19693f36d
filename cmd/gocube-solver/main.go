// gocube-solver finds optimal solutions to the Rubik's Cube.
package main

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cli"
)

func main() {
	cli.Execute()
}
