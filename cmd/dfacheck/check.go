package main

import (
	"os"

	"github.com/aretw0/dfacheck/internal/cli"
	"github.com/aretw0/dfacheck/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <machine-file> <word>",
	Short: "Answer whether a word is accepted by a machine",
	Long: `Loads the machine description, validates it and runs the word through it.
Use "-" for the empty word. Stdout carries a single line, "Answer: yes." or
"Answer: no."; diagnostics go to stderr.

Exit codes: 0 when the query was answered, 1 when the machine is invalid or
unreadable, 2 on usage errors.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.PrintErrln("error:", err)
			os.Exit(cli.ExitUsage)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		mode, _ := cmd.Flags().GetString("mode")
		format, _ := cmd.Flags().GetString("format")
		color, _ := cmd.Flags().GetBool("color")
		if !cmd.Flags().Changed("color") {
			color = tui.IsTerminal(os.Stdout)
		}

		code := cli.RunCheck(cmd.Context(), cli.CheckOptions{
			MachinePath: args[0],
			Word:        args[1],
			Format:      format,
			Mode:        mode,
			Verbose:     verbose,
			Color:       color,
			LogLevel:    cfg.LogLevel,
		}, os.Stdout, os.Stderr)
		os.Exit(code)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("verbose", "v", false, "Describe the machine and the run on stderr")
	checkCmd.Flags().String("mode", "exact", "Query mode: 'exact' (w is accepted) or 'infix' (some accepted word contains w)")
	checkCmd.Flags().StringP("format", "f", "", "Description format: text, yaml or json (default: from file extension)")
	checkCmd.Flags().Bool("color", false, "Colorize the answer (default: when stdout is a terminal)")
}
