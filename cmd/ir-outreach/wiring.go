// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ir-outreach/internal/archive"
	"github.com/pdiddy/ir-outreach/internal/llm"
	"github.com/pdiddy/ir-outreach/internal/news"
	"github.com/pdiddy/ir-outreach/internal/outreach"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

func newNewsSource() *news.Source {
	return news.NewSource(news.NewGoogleNewsBackend(cfg.News, log), cfg.News.PreferredSources, log)
}

func newClient() (llm.Client, error) {
	return llm.NewClient(cfg.LLM)
}

func newService() (*outreach.Service, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return outreach.New(newNewsSource(), client, outreach.DefaultsFrom(cfg), log), nil
}

func openArchive() (*archive.Store, error) {
	return archive.Open(cfg.Archive)
}

// readTranscript loads a transcript from a YAML or JSON file. A bare list
// of turns and an object with a transcript or updatedTranscript field are
// both accepted.
func readTranscript(path string) (types.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var turns types.Transcript
	if err := yaml.Unmarshal(data, &turns); err == nil && len(turns) > 0 {
		return turns, nil
	}

	var wrapped struct {
		Transcript        types.Transcript `yaml:"transcript"`
		UpdatedTranscript types.Transcript `yaml:"updatedTranscript"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing transcript %s: %w", path, err)
	}
	if len(wrapped.UpdatedTranscript) > 0 {
		return wrapped.UpdatedTranscript, nil
	}
	return wrapped.Transcript, nil
}

// writeFile writes v to path as JSON when the extension is .json and as
// YAML otherwise.
func writeFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return writeJSON(f, v)
	}
	return writeYAML(f, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// printDraft writes a human-readable rendering of a draft.
func printDraft(w io.Writer, d *outreach.Draft) {
	if d.Subject != "" {
		fmt.Fprintf(w, "Subject: %s\n\n%s\n", d.Subject, d.Body)
	} else {
		fmt.Fprintln(w, d.EmailText)
	}
	if d.CitedArticle != nil {
		fmt.Fprintf(w, "\nCited: %q (%s)\n", d.CitedArticle.Title, d.CitedArticle.Source)
		if d.CitedArticle.Link != "" {
			fmt.Fprintf(w, "       %s\n", d.CitedArticle.Link)
		}
	} else {
		fmt.Fprintln(w, "\nCited: none")
	}
}
