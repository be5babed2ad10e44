// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/ir-outreach/internal/httputil"
	"github.com/pdiddy/ir-outreach/internal/logger"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

// googleNewsBase is the Google News RSS search endpoint. Declared as a var
// so tests can substitute an httptest server.
var googleNewsBase = "https://news.google.com/rss/search"

// GoogleNewsBackend queries the Google News RSS search feed.
type GoogleNewsBackend struct {
	Client *http.Client
	Cfg    types.NewsConfig
	Logger logrus.FieldLogger
}

// NewGoogleNewsBackend builds a backend from cfg. An empty FeedURL uses
// the public Google News endpoint.
func NewGoogleNewsBackend(cfg types.NewsConfig, log logrus.FieldLogger) *GoogleNewsBackend {
	return &GoogleNewsBackend{
		Client: &http.Client{Timeout: cfg.Timeout},
		Cfg:    cfg,
		Logger: logger.OrDiscard(log),
	}
}

// Name returns the backend identifier.
func (b *GoogleNewsBackend) Name() string { return "google-news" }

// Search fetches the feed for company and normalizes up to 15 items.
func (b *GoogleNewsBackend) Search(ctx context.Context, company string) ([]types.Article, error) {
	base := b.Cfg.FeedURL
	if base == "" {
		base = googleNewsBase
	}
	feedURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", base, url.QueryEscape(company))

	body, err := httputil.GetBody(ctx, b.Client, feedURL, b.Cfg.UserAgent, b.Cfg.MaxRetries, b.Logger)
	if err != nil {
		return nil, fmt.Errorf("google news request: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing google news feed: %w", err)
	}

	items := feed.Items
	if len(items) > maxRawItems {
		items = items[:maxRawItems]
	}

	articles := make([]types.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, toArticle(item))
	}
	return articles, nil
}

func toArticle(item *gofeed.Item) types.Article {
	title, source := SplitTitle(item.Title)
	a := types.Article{
		Title:   title,
		Source:  source,
		Link:    item.Link,
		Snippet: snippetText(item.Description),
	}
	if item.PublishedParsed != nil {
		t := *item.PublishedParsed
		a.PublishedAt = &t
	}
	return a
}

// snippetText reduces an HTML item description to collapsed plain text.
func snippetText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
