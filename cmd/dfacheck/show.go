package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <machine-file>",
	Short: "Render the machine's transition table in the terminal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		a, err := loadMachine(args[0], format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading machine: %v\n", err)
			os.Exit(1)
		}

		md := tui.Describe(a, dfacheck.Analyze(a))
		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !tui.IsTerminal(os.Stdout) {
			fmt.Print(md)
			return
		}
		out, _ := tui.NewRenderer()(md)
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("format", "f", "", "Description format: text, yaml or json")
	showCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
