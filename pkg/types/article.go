// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for ir-outreach: news
// articles, conversation transcripts, configuration and the error taxonomy
// used across the generation pipeline.
package types

import "time"

// Article is a news item about the target company. Articles are immutable
// once fetched. Their position in a result set defines the 1-based index the
// model uses when it cites one.
type Article struct {
	// Title is the headline with the publisher suffix removed.
	Title string `json:"title" yaml:"title"`

	// Source is the free-text publisher name (e.g. "Reuters"), or "Unknown"
	// when the feed title carried no publisher.
	Source string `json:"source" yaml:"source"`

	// Link is the article URL, when the feed provided one.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// PublishedAt is the publication time, when the feed provided a parseable one.
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`

	// Snippet is plain text taken from the feed item description.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Sources returns the publisher name of every article, in order.
func Sources(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Source
	}
	return out
}
