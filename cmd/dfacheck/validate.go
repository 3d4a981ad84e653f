package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/internal/cli"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine-file>",
	Short: "Check a machine description for consistency",
	Long: `Parses and validates the machine, then reports unreachable states, dead
states and whether the accepted language is empty.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		a, err := loadMachine(args[0], format)
		if err != nil {
			for _, e := range domain.ValidationErrors(err) {
				fmt.Fprintf(os.Stderr, "error: %v\n", e)
			}
			fmt.Println("Machine is invalid ❌")
			os.Exit(cli.ExitInvalidMachine)
		}

		r := dfacheck.Analyze(a)
		fmt.Printf("Machine is valid! ✅ (%d states, alphabet %q)\n", r.States, r.Alphabet)
		if len(r.Unreachable) > 0 {
			fmt.Printf("  unreachable: %s\n", strings.Join(r.Unreachable, ", "))
		}
		if len(r.Dead) > 0 {
			fmt.Printf("  dead: %s\n", strings.Join(r.Dead, ", "))
		}
		if r.Empty {
			fmt.Println("  warning: the machine accepts no word")
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("format", "f", "", "Description format: text, yaml or json")
}

// loadMachine reads and validates a description file.
func loadMachine(path, format string) (*domain.Automaton, error) {
	var f dfacheck.Format
	if format != "" {
		var err error
		if f, err = dfacheck.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	data, f, err := dfacheck.ReadFile(path, f)
	if err != nil {
		return nil, err
	}
	return dfacheck.Load(data, f)
}
