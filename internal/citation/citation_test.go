// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ir-outreach/pkg/types"
)

func intp(n int) *int { return &n }

var (
	a1 = types.Article{Title: "Margins squeezed", Source: "The Wall Street Journal"}
	a2 = types.Article{Title: "Guidance cut", Source: "Reuters"}
	a3 = types.Article{Title: "Buyback plan", Source: "Bloomberg.com"}
	a4 = types.Article{Title: "Analyst day", Source: "Financial Times"}
)

func TestResolveByIndex(t *testing.T) {
	arts := []types.Article{a1, a2, a3}

	got := Resolve(intp(2), arts, "anything")
	require.NotNil(t, got)
	assert.Equal(t, a2, *got)

	got = Resolve(intp(1), arts, "I saw that Bloomberg piece")
	require.NotNil(t, got)
	assert.Equal(t, a1, *got, "a valid index beats the text fallback")
}

func TestResolveReturnsCopy(t *testing.T) {
	arts := []types.Article{a1}
	got := Resolve(intp(1), arts, "")
	require.NotNil(t, got)
	got.Title = "changed"
	assert.Equal(t, "Margins squeezed", arts[0].Title)
}

func TestResolveFallback(t *testing.T) {
	arts := []types.Article{a1, a2, a3, a4}

	tests := []struct {
		name  string
		index *int
		text  string
		want  *types.Article
	}{
		{"out of range falls through", intp(99), "I saw that Reuters piece", &a2},
		{"zero falls through", intp(0), "That Bloomberg story", &a3},
		{"negative falls through", intp(-1), "the Journal piece", &a1},
		{"nil index uses text", nil, "your FT interview", &a4},
		{"ft needs word boundary", nil, "the shift in software", nil},
		{"case insensitive", nil, "REUTERS reported", &a2},
		{"journal wins over later patterns", nil, "the Journal and Reuters pieces", &a1},
		{"no publisher mentioned", nil, "I read about your quarter", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.index, arts, tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestResolveOnlyFirstMatchingPatternIsTried(t *testing.T) {
	// "journal" matches first; no WSJ article exists, so Reuters is not
	// consulted even though it is also mentioned.
	arts := []types.Article{a2}
	assert.Nil(t, Resolve(nil, arts, "Saw the Journal piece and the Reuters follow-up"))
}

func TestResolveEmpty(t *testing.T) {
	assert.Nil(t, Resolve(nil, nil, "any text"))
	assert.Nil(t, Resolve(intp(1), nil, "any text"))
}

func TestPatternsOrder(t *testing.T) {
	ps := Patterns()
	require.Len(t, ps, 11)
	assert.Equal(t, "Wall Street Journal", ps[0].Publisher)
	assert.Equal(t, "New York Times", ps[len(ps)-1].Publisher)

	ps[0].Publisher = "mutated"
	assert.Equal(t, "Wall Street Journal", Patterns()[0].Publisher)
}
