package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hydrated",
	Short: "Hydration service composing async data fetches into documents",
	Long: `hydrated serves hydration trees over HTTP.

A tree composes named fetch operations: the root receives the caller's
input, children receive their parent's output, and siblings run
concurrently. Trees are declared in YAML files and exposed under
/v1/trees; a hydrate call selects which branches to run and returns
the merged document.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config.yml (default: standard search paths)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
