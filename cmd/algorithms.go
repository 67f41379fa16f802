package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sim "github.com/scheduling-sim/scheduling-sim/sim"
	"github.com/scheduling-sim/scheduling-sim/view"
)

// algorithmsCmd lists the recognized algorithm keys
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the available scheduling algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), view.NumberedList(algorithmLines(), 1, false))
	},
}

func algorithmLines() []string {
	names := sim.AlgorithmNames()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%-8s %s", name, sim.AlgorithmTitles[name]))
	}
	return lines
}
