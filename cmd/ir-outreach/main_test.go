// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ir-outreach/internal/archive"
	"github.com/pdiddy/ir-outreach/internal/llm"
	"github.com/pdiddy/ir-outreach/internal/outreach"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

// --- config ---

func configCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("config", "", "")
	c.Flags().String("log-level", "", "")
	c.Flags().String("provider", "", "")
	c.Flags().String("model", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	c, used, err := loadConfig(configCmd(t))
	require.NoError(t, err)
	assert.Empty(t, used)

	d := types.DefaultConfig()
	assert.Equal(t, d.LLM.Provider, c.LLM.Provider)
	assert.Equal(t, d.LLM.Model, c.LLM.Model)
	assert.Equal(t, d.LLM.Timeout, c.LLM.Timeout)
	assert.Equal(t, d.News, types.NewsConfig{
		FeedURL: c.News.FeedURL, Timeout: c.News.Timeout,
		UserAgent: c.News.UserAgent, MaxRetries: c.News.MaxRetries,
	})
	assert.Empty(t, c.News.PreferredSources)
	assert.Equal(t, d.Outreach, c.Outreach)
	assert.Equal(t, d.Archive, c.Archive)
	assert.Equal(t, d.Log, c.Log)
	assert.Equal(t, d.Server.Addr, c.Server.Addr)
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: anthropic
  model: file-model
  max_tokens: 500
  timeout: 30s
news:
  preferred_sources: [Reuters, Bloomberg]
outreach:
  default_firm: File Firm
server:
  addr: ":8080"
`), 0o644))
	t.Setenv("IR_OUTREACH_OUTREACH_DEFAULT_FIRM", "Env Firm")
	t.Setenv("IR_OUTREACH_LOG_LEVEL", "debug")

	c, used, err := loadConfig(configCmd(t, "--config", path, "--provider", "openai"))
	require.NoError(t, err)
	assert.Equal(t, path, used)

	assert.Equal(t, "openai", c.LLM.Provider, "flag beats file")
	assert.Equal(t, "file-model", c.LLM.Model)
	assert.Equal(t, 500, c.LLM.MaxTokens)
	assert.Equal(t, 30*time.Second, c.LLM.Timeout)
	assert.Equal(t, 150, c.LLM.SummaryMaxTokens, "unset keys keep defaults")
	assert.Equal(t, []string{"Reuters", "Bloomberg"}, c.News.PreferredSources)
	assert.Equal(t, "Env Firm", c.Outreach.DefaultFirm, "env beats file")
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, ":8080", c.Server.Addr)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, _, err := loadConfig(configCmd(t, "--config", filepath.Join(dir, "missing.yaml")))
	assert.Error(t, err)
}

// --- transcripts and flags ---

func TestReadTranscript(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"yaml list", "- role: user\n  content: P\n- role: assistant\n  content: E\n"},
		{"json list", `[{"role":"user","content":"P"},{"role":"assistant","content":"E"}]`},
		{"generate output", `{"emailText":"E","transcript":[{"role":"user","content":"P"},{"role":"assistant","content":"E"}]}`},
		{"refine output", `{"emailText":"E","updatedTranscript":[{"role":"user","content":"P"},{"role":"assistant","content":"E"}]}`},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.Repeat("t", i+1)+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			got, err := readTranscript(path)
			require.NoError(t, err)
			assert.Equal(t, types.NewTranscript("P", "E"), got)
		})
	}

	_, err := readTranscript(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tr := types.NewTranscript("P", "E")
	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, writeFile(path, tr))
		got, err := readTranscript(path)
		require.NoError(t, err)
		assert.Equal(t, tr, got, name)
	}
}

func TestGenerateInputFromFlags(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		c := &cobra.Command{Use: "generate"}
		addGenerateFlags(c)
		require.NoError(t, c.ParseFlags(args))
		return c
	}

	in := generateInputFromFlags(newCmd("--company", "Acme", "--contact", "Jane", "--sender", "Sam", "--tone", "formal"))
	assert.Equal(t, "Acme", in.CompanyName)
	assert.Equal(t, "formal", in.Tone)
	assert.Nil(t, in.PreferredSources, "unset means configured defaults")

	in = generateInputFromFlags(newCmd("--sources", "Reuters, Bloomberg"))
	assert.Equal(t, []string{"Reuters", "Bloomberg"}, in.PreferredSources)

	in = generateInputFromFlags(newCmd("--sources="))
	assert.NotNil(t, in.PreferredSources)
	assert.Empty(t, in.PreferredSources)
}

// --- interactive refinement ---

func TestRefineLoop(t *testing.T) {
	var calls int
	client := llm.ClientFunc(func(_ context.Context, req llm.Request) (string, error) {
		calls++
		return "Subject: Hi\n\nVersion " + strings.Repeat("!", calls), nil
	})
	svc := outreach.New(nil, client, outreach.Defaults{MaxTokens: 100}, nil)
	out := &outreach.GenerateOutput{Draft: outreach.Draft{Transcript: types.NewTranscript("P", "Subject: Hi\n\nFirst")}}

	store, err := archive.Open(types.ArchiveConfig{Path: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	defer store.Close()
	rec, err := store.Save(context.Background(), archive.Record{
		Company: "Acme", Contact: "Jane", Sender: "Sam",
		EmailText: "Subject: Hi\n\nFirst", Transcript: out.Transcript,
	})
	require.NoError(t, err)

	var w bytes.Buffer
	in := strings.NewReader("shorter\nwarmer\n\nignored\n")
	require.NoError(t, refineLoop(context.Background(), svc, out, store, rec.ID, in, &w))

	assert.Equal(t, 2, calls, "stops at the empty line")
	assert.Contains(t, w.String(), "Version !!")

	got, err := store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Len(t, got.Transcript, 6)
	assert.Equal(t, 2, got.Refinements)
	assert.Equal(t, "Subject: Hi\n\nVersion !!", got.EmailText)
}

func TestPersistRefinementKeepsHandEditOnFailure(t *testing.T) {
	ctx := context.Background()
	client := llm.ClientFunc(func(context.Context, llm.Request) (string, error) {
		return "", errors.New("overloaded")
	})
	svc := outreach.New(nil, client, outreach.Defaults{MaxTokens: 100}, nil)

	dir := t.TempDir()
	store, err := archive.Open(types.ArchiveConfig{Path: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	defer store.Close()
	original := types.NewTranscript("P", "Subject: Hi\n\nOriginal.")
	rec, err := store.Save(ctx, archive.Record{
		Company: "Acme", Contact: "Jane", Sender: "Sam",
		EmailText: "Subject: Hi\n\nOriginal.", Transcript: original,
	})
	require.NoError(t, err)

	out, err := svc.Refine(ctx, outreach.RefineInput{
		Transcript:   original,
		Instruction:  "shorter",
		CurrentDraft: "Subject: Hi\n\nEdited by hand.",
	})
	require.Error(t, err)
	require.NotNil(t, out)

	outPath := filepath.Join(dir, "out.yaml")
	require.NoError(t, persistRefinement(ctx, store, rec.ID, outPath, out, false))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, got.Transcript, 2)
	assert.Equal(t, "Subject: Hi\n\nEdited by hand.", got.Transcript.Last().Content)
	assert.Equal(t, "Subject: Hi\n\nEdited by hand.", got.EmailText)
	assert.Zero(t, got.Refinements, "a failed call is not a refinement")

	saved, err := readTranscript(outPath)
	require.NoError(t, err)
	assert.Equal(t, got.Transcript, saved)
}

func TestPersistRefinementSuccess(t *testing.T) {
	ctx := context.Background()
	store, err := archive.Open(types.ArchiveConfig{Path: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	defer store.Close()
	rec, err := store.Save(ctx, archive.Record{
		Company: "Acme", Contact: "Jane", Sender: "Sam",
		EmailText: "E", Transcript: types.NewTranscript("P", "E"),
	})
	require.NoError(t, err)

	out := &outreach.RefineOutput{
		EmailText: "Short.",
		UpdatedTranscript: append(types.NewTranscript("P", "E"),
			types.Turn{Role: types.RoleUser, Content: "shorter"},
			types.Turn{Role: types.RoleAssistant, Content: "Short."}),
	}
	require.NoError(t, persistRefinement(ctx, store, rec.ID, "", out, true))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, got.Transcript, 4)
	assert.Equal(t, "Short.", got.EmailText)
	assert.Equal(t, 1, got.Refinements)
}

func TestHistoryTable(t *testing.T) {
	var w bytes.Buffer
	formatHistoryTable(&w, nil)
	assert.Equal(t, "No archived drafts.\n", w.String())

	w.Reset()
	formatHistoryTable(&w, []archive.Record{{ID: "id-1", Company: "A very long company name indeed", Refinements: 2}})
	assert.Contains(t, w.String(), "A very long compa...")
	assert.Contains(t, w.String(), "1 drafts")

	w.Reset()
	formatHistoryTable(&w, []archive.Record{{ID: "id-2", Company: strings.Repeat("a", 16) + "’s Holdings"}})
	assert.True(t, utf8.Valid(w.Bytes()))
	assert.Contains(t, w.String(), strings.Repeat("a", 16)+"’...")
}
