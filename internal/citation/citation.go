// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation maps a generated email back to the news article it
// references.
package citation

import (
	"regexp"
	"strings"

	"github.com/pdiddy/ir-outreach/pkg/types"
)

// Pattern maps publisher mentions in email text to a canonical source name.
type Pattern struct {
	Regexp    *regexp.Regexp
	Publisher string
}

// patterns are tried in order. Only the first one that matches the email
// text is used, even if no article carries its publisher.
var patterns = []Pattern{
	{regexp.MustCompile(`(?i)wsj|wall street journal|journal`), "Wall Street Journal"},
	{regexp.MustCompile(`(?i)bloomberg`), "Bloomberg"},
	{regexp.MustCompile(`(?i)reuters`), "Reuters"},
	{regexp.MustCompile(`(?i)\bft\b|financial times`), "Financial Times"},
	{regexp.MustCompile(`(?i)cnbc`), "CNBC"},
	{regexp.MustCompile(`(?i)barron'?s`), "Barron's"},
	{regexp.MustCompile(`(?i)\bibd\b|investor'?s business daily`), "Investor's Business Daily"},
	{regexp.MustCompile(`(?i)yahoo`), "Yahoo Finance"},
	{regexp.MustCompile(`(?i)seeking alpha`), "Seeking Alpha"},
	{regexp.MustCompile(`(?i)marketwatch`), "MarketWatch"},
	{regexp.MustCompile(`(?i)\bnyt\b|new york times`), "New York Times"},
}

// Patterns returns the ordered fallback rules.
func Patterns() []Pattern {
	return append([]Pattern(nil), patterns...)
}

// Resolve returns the article an email cites. A 1-based index within
// range wins. Otherwise the first publisher pattern found in emailText
// selects the first article whose source contains that publisher
// (case-insensitive). The result is nil when neither path matches.
func Resolve(index *int, articles []types.Article, emailText string) *types.Article {
	if index != nil && *index >= 1 && *index <= len(articles) {
		a := articles[*index-1]
		return &a
	}

	for _, p := range patterns {
		if !p.Regexp.MatchString(emailText) {
			continue
		}
		want := strings.ToLower(p.Publisher)
		for i := range articles {
			if strings.Contains(strings.ToLower(articles[i].Source), want) {
				a := articles[i]
				return &a
			}
		}
		return nil
	}
	return nil
}
