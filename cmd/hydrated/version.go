package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/hydrokit/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hydrated " + version.GetFullVersion())
	},
}
