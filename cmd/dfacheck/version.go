package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfacheck"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dfacheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dfacheck version %s\n", strings.TrimSpace(dfacheck.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
