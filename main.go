// main.go
//
// Entry point; command handling lives in the cobra commands under cmd/.

package main

import (
	"github.com/scheduling-sim/scheduling-sim/cmd"
)

func main() {
	cmd.Execute()
}
