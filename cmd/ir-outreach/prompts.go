// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/outreach"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Print the prompt templates, style modifiers and citation rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Introspection needs no model client.
		svc := outreach.New(nil, nil, outreach.DefaultsFrom(cfg), log)
		info := svc.PromptInfo()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(os.Stdout, info)
		}
		return writeYAML(os.Stdout, info)
	},
}

func init() {
	promptsCmd.Flags().Bool("json", false, "output as JSON instead of YAML")
	rootCmd.AddCommand(promptsCmd)
}
