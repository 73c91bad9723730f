// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "picodemo",
	Short: "picodemo - Pico CSS design system demo server",
	Long: `picodemo serves the Pico CSS component showcase: outline pages written in
YAML, compiled into nested sections with linkable headings, plus a light/dark
theme toggle driven by htmx.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
