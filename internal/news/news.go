// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package news fetches recent articles about a company, ranks them by
// publisher preference, and renders them as the numbered context block the
// generation prompt cites by index.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/ir-outreach/internal/logger"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

const (
	// maxRawItems is how many feed items a backend normalizes.
	maxRawItems = 15

	// maxArticles is how many ranked articles Fetch returns.
	maxArticles = 8

	// NoArticlesText is the prompt context used when nothing was found.
	NoArticlesText = "No recent news articles found."
)

// DefaultPreferredSources are the financial outlets ranked first when the
// caller expresses no preference.
var DefaultPreferredSources = []string{
	"Wall Street Journal",
	"Bloomberg",
	"Reuters",
	"Financial Times",
	"CNBC",
	"Barron's",
	"Investor's Business Daily",
	"Yahoo Finance",
	"Seeking Alpha",
}

// Backend retrieves raw articles for a company from one feed.
type Backend interface {
	Name() string
	Search(ctx context.Context, company string) ([]types.Article, error)
}

// Source wraps a Backend with ranking and the swallow-on-failure policy.
type Source struct {
	Backend Backend

	// Preferred overrides DefaultPreferredSources when non-empty.
	Preferred []string

	Logger logrus.FieldLogger
}

// NewSource returns a Source over b.
func NewSource(b Backend, preferred []string, log logrus.FieldLogger) *Source {
	return &Source{Backend: b, Preferred: preferred, Logger: logger.OrDiscard(log)}
}

// Fetch returns at most 8 articles about company, preferred publishers
// first. A nil preferred list means the configured (or default) list; a
// non-nil empty list means no preference. Fetch never fails: backend
// errors are logged and yield an empty result.
func (s *Source) Fetch(ctx context.Context, company string, preferred []string) []types.Article {
	log := logger.OrDiscard(s.Logger).WithFields(logrus.Fields{
		"backend": s.Backend.Name(),
		"company": company,
	})

	articles, err := s.Backend.Search(ctx, company)
	if err != nil {
		log.WithError(err).Warn("news fetch failed, continuing without articles")
		return []types.Article{}
	}

	if preferred == nil {
		preferred = s.Preferred
		if len(preferred) == 0 {
			preferred = DefaultPreferredSources
		}
	}

	ranked := Rank(articles, preferred)
	if len(ranked) > maxArticles {
		ranked = ranked[:maxArticles]
	}
	log.WithField("articles", len(ranked)).Debug("news fetched")
	return ranked
}

// Rank stable-sorts a copy of articles so that any article whose source
// contains a preferred name (case-insensitive) precedes every article that
// does not. Order within each group is preserved.
func Rank(articles []types.Article, preferred []string) []types.Article {
	out := make([]types.Article, len(articles))
	copy(out, articles)
	if len(preferred) == 0 {
		return out
	}

	lowered := make([]string, 0, len(preferred))
	for _, p := range preferred {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lowered = append(lowered, p)
		}
	}

	isPreferred := func(a types.Article) bool {
		src := strings.ToLower(a.Source)
		for _, p := range lowered {
			if strings.Contains(src, p) {
				return true
			}
		}
		return false
	}

	sort.SliceStable(out, func(i, j int) bool {
		return isPreferred(out[i]) && !isPreferred(out[j])
	})
	return out
}

// SplitTitle separates a "Title - Publisher" feed title on the last " - ".
// Without the delimiter the whole string is the title and the source is
// "Unknown".
func SplitTitle(raw string) (title, source string) {
	idx := strings.LastIndex(raw, " - ")
	if idx < 0 {
		return strings.TrimSpace(raw), "Unknown"
	}
	return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+3:])
}

// FormatForPrompt renders articles as a 1-based numbered list, one per
// line: 1. "Title" (Source, 1/2/2006). The numbering is what the model
// cites.
func FormatForPrompt(articles []types.Article) string {
	if len(articles) == 0 {
		return NoArticlesText
	}
	lines := make([]string, len(articles))
	for i, a := range articles {
		lines[i] = fmt.Sprintf("%d. \"%s\" (%s, %s)", i+1, a.Title, a.Source, formatDate(a))
	}
	return strings.Join(lines, "\n")
}

func formatDate(a types.Article) string {
	if a.PublishedAt == nil || a.PublishedAt.IsZero() {
		return "date unknown"
	}
	return a.PublishedAt.Format("1/2/2006")
}

// FormatTable writes articles as a human-readable table to w.
func FormatTable(articles []types.Article, w io.Writer) {
	if len(articles) == 0 {
		fmt.Fprintln(w, NoArticlesText)
		return
	}

	fmt.Fprintf(w, "%-3s  %-60s  %-24s  %s\n", "#", "Title", "Source", "Date")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, a := range articles {
		fmt.Fprintf(w, "%-3d  %-60s  %-24s  %s\n",
			i+1, truncate(a.Title, 60), truncate(a.Source, 24), formatDate(a))
	}
	fmt.Fprintf(w, "\n%d articles\n", len(articles))
}

// FormatJSON writes articles as indented JSON to w.
func FormatJSON(articles []types.Article, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}

// truncate shortens s to at most max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
