// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary produces a one or two sentence digest of the news themes
// around a company.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/ir-outreach/internal/llm"
)

// DefaultMaxTokens caps the summary reply.
const DefaultMaxTokens = 150

// Prompt renders the summary request for company over newsContext.
func Prompt(company, newsContext string) string {
	return fmt.Sprintf(`<task>
Summarize the key investor-relevant themes from recent news about %s in 1-2 sentences.
Focus on what investors and analysts are paying attention to.
</task>

<news>
%s
</news>

<output_format>
Write a single concise summary (1-2 sentences, under 40 words) that captures the main themes.
Start directly with the summary. No preamble like "Here's" or "The news shows".
Example: "Recent coverage focuses on margin pressures amid rising input costs and questions about the international expansion timeline."
</output_format>`, company, newsContext)
}

// Generator issues summary requests.
type Generator struct {
	Client    llm.Client
	MaxTokens int
}

// Summarize returns the trimmed digest. The word limit is requested, not
// enforced.
func (g *Generator) Summarize(ctx context.Context, company, newsContext string) (string, error) {
	max := g.MaxTokens
	if max <= 0 {
		max = DefaultMaxTokens
	}
	out, err := g.Client.Complete(ctx, llm.Prompt(Prompt(company, newsContext), max))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
