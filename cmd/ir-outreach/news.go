// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/news"
)

var newsCmd = &cobra.Command{
	Use:   "news COMPANY",
	Short: "Show the ranked news articles used for a company",
	Long: `News fetches recent articles about a company from the configured feed,
ranks preferred publishers first and prints the top results. Use --prompt
to see the text exactly as it is placed into the email prompt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNews,
}

func init() {
	newsCmd.Flags().Bool("json", false, "output articles as JSON")
	newsCmd.Flags().Bool("prompt", false, "print the prompt-formatted news context")
	newsCmd.Flags().StringSlice("sources", nil, "preferred news sources (empty string for none)")

	rootCmd.AddCommand(newsCmd)
}

func runNews(cmd *cobra.Command, args []string) error {
	company := strings.Join(args, " ")
	ctx := cmdContext(cmd)

	var preferred []string
	if cmd.Flags().Changed("sources") {
		sources, _ := cmd.Flags().GetStringSlice("sources")
		preferred = nonEmpty(sources)
	}

	articles := newNewsSource().Fetch(ctx, company, preferred)

	if asPrompt, _ := cmd.Flags().GetBool("prompt"); asPrompt {
		fmt.Println(news.FormatForPrompt(articles))
		return nil
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return news.FormatJSON(articles, os.Stdout)
	}
	news.FormatTable(articles, os.Stdout)
	return nil
}
