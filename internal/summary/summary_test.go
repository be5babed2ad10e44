// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ir-outreach/internal/llm"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

func TestSummarize(t *testing.T) {
	var got llm.Request
	g := &Generator{Client: llm.ClientFunc(func(_ context.Context, req llm.Request) (string, error) {
		got = req
		return "\n  Coverage centers on margin pressure.  \n", nil
	})}

	out, err := g.Summarize(context.Background(), "Acme", `1. "Acme beats" (Reuters, 3/7/2026)`)
	require.NoError(t, err)
	assert.Equal(t, "Coverage centers on margin pressure.", out)

	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, types.RoleUser, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "recent news about Acme in 1-2 sentences")
	assert.Contains(t, got.Messages[0].Content, "<news>\n1. \"Acme beats\" (Reuters, 3/7/2026)\n</news>")
	assert.Contains(t, got.Messages[0].Content, "under 40 words")
}

func TestSummarizeCustomMaxTokens(t *testing.T) {
	var got llm.Request
	g := &Generator{MaxTokens: 80, Client: llm.ClientFunc(func(_ context.Context, req llm.Request) (string, error) {
		got = req
		return "ok", nil
	})}
	_, err := g.Summarize(context.Background(), "Acme", "No recent news articles found.")
	require.NoError(t, err)
	assert.Equal(t, 80, got.MaxTokens)
}

func TestSummarizeError(t *testing.T) {
	boom := errors.New("boom")
	g := &Generator{Client: llm.ClientFunc(func(context.Context, llm.Request) (string, error) {
		return "", boom
	})}
	_, err := g.Summarize(context.Background(), "Acme", "")
	assert.ErrorIs(t, err, boom)
}
