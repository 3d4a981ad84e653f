package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dfacheck/internal/presentation/graph"
	"github.com/aretw0/dfacheck/internal/runtime"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine-file>",
	Short: "Export the machine as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the machine. With --word, the states
visited while reading the word are highlighted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		a, err := loadMachine(args[0], format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading machine: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("word") {
			word, _ := cmd.Flags().GetString("word")
			path, _, err := runtime.Trace(a, domain.ParseWord(word))
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			overlay = &graph.GraphOverlay{}
			for _, q := range path {
				overlay.VisitedStates = append(overlay.VisitedStates, a.Label(q))
			}
			overlay.CurrentState = a.Label(path[len(path)-1])
		}

		fmt.Print(graph.GenerateMermaid(a, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "", "Description format: text, yaml or json")
	graphCmd.Flags().String("word", "", "Highlight the run of this word")
}
