package main

import (
	"os"

	"bloglist/service"
)

var exit = os.Exit

func main() {
	exit(RealMain())
}

// RealMain runs the command line and returns the process exit code
func RealMain() int {
	return service.Execute()
}
