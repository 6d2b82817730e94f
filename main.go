// The main package for the traintrack executable.
package main

import (
	"github.com/gradsignal/traintrack/cmd"
)

func main() {
	cmd.Execute()
}
