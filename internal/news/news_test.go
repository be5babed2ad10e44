// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ir-outreach/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	articles []types.Article
	err      error
	calls    int
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Search(_ context.Context, _ string) ([]types.Article, error) {
	m.calls++
	return m.articles, m.err
}

func art(title, source string) types.Article {
	return types.Article{Title: title, Source: source}
}

// --- SplitTitle ---

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		raw, title, source string
	}{
		{"Company sees growth - Reuters", "Company sees growth", "Reuters"},
		{"No dash here", "No dash here", "Unknown"},
		{"Acme - Beta merger talks - Bloomberg", "Acme - Beta merger talks", "Bloomberg"},
		{"  Padded title  -  WSJ ", "Padded title", "WSJ"},
		{"Hyphen-joined-words", "Hyphen-joined-words", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			title, source := SplitTitle(tt.raw)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.source, source)
		})
	}
}

// --- Rank ---

func TestRankPreferredFirstStable(t *testing.T) {
	in := []types.Article{
		art("a", "Local Gazette"),
		art("b", "Reuters"),
		art("c", "Some Blog"),
		art("d", "Bloomberg.com"),
		art("e", "reuters"),
	}
	got := Rank(in, []string{"Reuters", "Bloomberg"})

	var titles []string
	for _, a := range got {
		titles = append(titles, a.Title)
	}
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, titles)
	assert.Equal(t, "a", in[0].Title, "input must not be reordered")
}

func TestRankNoPreference(t *testing.T) {
	in := []types.Article{art("a", "X"), art("b", "Reuters")}
	assert.Equal(t, in, Rank(in, nil))
	assert.Equal(t, in, Rank(in, []string{"  "}))
}

// --- Fetch ---

func TestFetchLimitsAndRanks(t *testing.T) {
	var arts []types.Article
	for i := 0; i < 15; i++ {
		src := "Blog"
		if i%5 == 4 {
			src = "Wall Street Journal"
		}
		arts = append(arts, art(fmt.Sprintf("t%d", i), src))
	}
	src := NewSource(&mockBackend{articles: arts}, nil, nil)

	got := src.Fetch(context.Background(), "Acme", nil)
	require.Len(t, got, 8)
	assert.Equal(t, "t4", got[0].Title)
	assert.Equal(t, "t9", got[1].Title)
	assert.Equal(t, "t14", got[2].Title)
	assert.Equal(t, "t0", got[3].Title)
}

func TestFetchPreferenceOrdering(t *testing.T) {
	arts := []types.Article{
		art("a", "Yahoo Finance"),
		art("b", "Local"),
		art("c", "Acme Wire"),
	}

	t.Run("caller list overrides config", func(t *testing.T) {
		src := NewSource(&mockBackend{articles: arts}, []string{"Yahoo"}, nil)
		got := src.Fetch(context.Background(), "Acme", []string{"Acme Wire"})
		assert.Equal(t, "c", got[0].Title)
	})

	t.Run("config list used when caller passes nil", func(t *testing.T) {
		src := NewSource(&mockBackend{articles: arts}, []string{"Local"}, nil)
		got := src.Fetch(context.Background(), "Acme", nil)
		assert.Equal(t, "b", got[0].Title)
	})

	t.Run("empty caller list keeps feed order", func(t *testing.T) {
		src := NewSource(&mockBackend{articles: arts}, nil, nil)
		got := src.Fetch(context.Background(), "Acme", []string{})
		assert.Equal(t, arts, got)
	})

	t.Run("defaults when nothing configured", func(t *testing.T) {
		src := NewSource(&mockBackend{articles: []types.Article{art("x", "Local"), art("y", "Yahoo Finance")}}, nil, nil)
		got := src.Fetch(context.Background(), "Acme", nil)
		assert.Equal(t, "y", got[0].Title)
	})
}

func TestFetchSwallowsErrors(t *testing.T) {
	mb := &mockBackend{err: errors.New("feed down")}
	src := NewSource(mb, nil, nil)

	got := src.Fetch(context.Background(), "Acme", nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, mb.calls)
}

// --- formatting ---

func TestFormatForPromptEmpty(t *testing.T) {
	assert.Equal(t, "No recent news articles found.", FormatForPrompt(nil))
	assert.Equal(t, "No recent news articles found.", FormatForPrompt([]types.Article{}))
}

func TestFormatForPrompt(t *testing.T) {
	d := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	arts := []types.Article{
		{Title: "Acme beats estimates", Source: "Reuters", PublishedAt: &d},
		{Title: "Acme names CFO", Source: "Unknown"},
	}
	got := FormatForPrompt(arts)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `1. "Acme beats estimates" (Reuters, 3/7/2026)`, lines[0])
	assert.Equal(t, `2. "Acme names CFO" (Unknown, date unknown)`, lines[1])
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No recent news articles found.")

	buf.Reset()
	FormatTable([]types.Article{art(strings.Repeat("x", 80), "Reuters")}, &buf)
	out := buf.String()
	assert.Contains(t, out, "Reuters")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "1 articles")
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short ascii", "Acme", 10, "Acme"},
		{"exact runes", "Acme’s", 6, "Acme’s"},
		{"cut before curly quote", strings.Repeat("a", 56) + "’s outlook brightens", 60, strings.Repeat("a", 56) + "’..."},
		{"cut multibyte", "ééééé", 4, "é..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}

	var buf bytes.Buffer
	FormatTable([]types.Article{art(strings.Repeat("a", 56)+"’s outlook brightens on guidance", "Reuters")}, &buf)
	assert.True(t, utf8.Valid(buf.Bytes()))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON([]types.Article{art("t", "Reuters")}, &buf))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Reuters", got[0]["source"])
	_, hasLink := got[0]["link"]
	assert.False(t, hasLink)
}
