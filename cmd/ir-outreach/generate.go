// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/archive"
	"github.com/pdiddy/ir-outreach/internal/outreach"
	"github.com/pdiddy/ir-outreach/internal/refine"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an outreach email for a company contact",
	Long: `Generate fetches recent news about the company, assembles the prompt for
the chosen style and template family, and asks the model for an email and a
one-paragraph news summary. The email, its cited article and the summary are
printed; the draft is archived unless --no-archive is set.

With --interactive the command then reads refinement instructions from
stdin, one per line, until an empty line or "done". With --compare both
template families are generated side by side instead.`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("company", "", "company name (required)")
	f.String("contact", "", "recipient name (required)")
	f.String("sender", "", "sender name (required)")
	f.String("firm", "", "sender firm (default from config)")
	f.StringSlice("sources", nil, "preferred news sources, ranked first (empty string for none)")
	f.String("context", "", "additional context from the sender")
	f.String("tone", "", "tone: conversational, formal, direct")
	f.String("role", "", "contact role: iro, ceo, cfo")
	f.String("length", "", "length: brief, standard, detailed")
	f.String("relationship", "", "relationship: cold, warm")
	f.String("structure", "", "structure: news-first, intro-first")
	f.String("prompt-version", "", "template family: structured or legacy")
	f.Bool("json", false, "output the full result as JSON")
	f.String("save-transcript", "", "write the transcript to this file (YAML, or JSON by extension)")
	f.Bool("interactive", false, "refine the draft from stdin instructions")
	f.Bool("compare", false, "generate with both template families")
	f.Bool("no-archive", false, "do not record the draft in the archive")
}

func generateInputFromFlags(cmd *cobra.Command) outreach.GenerateInput {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}

	in := outreach.GenerateInput{
		CompanyName:       str("company"),
		ContactName:       str("contact"),
		SenderName:        str("sender"),
		FirmName:          str("firm"),
		AdditionalContext: str("context"),
		Tone:              str("tone"),
		ContactRole:       str("role"),
		Length:            str("length"),
		Relationship:      str("relationship"),
		Structure:         str("structure"),
		PromptVersion:     str("prompt-version"),
	}
	if f.Changed("sources") {
		sources, _ := f.GetStringSlice("sources")
		in.PreferredSources = nonEmpty(sources)
	}
	return in
}

// nonEmpty drops blank entries and always returns a non-nil slice.
func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	in := generateInputFromFlags(cmd)
	jsonOutput, _ := cmd.Flags().GetBool("json")
	ctx := cmdContext(cmd)

	if compare, _ := cmd.Flags().GetBool("compare"); compare {
		cmp, err := svc.Compare(ctx, in)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, cmp)
		}
		printComparison(os.Stdout, cmp)
		return nil
	}

	out, err := svc.Generate(ctx, in)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := writeJSON(os.Stdout, out); err != nil {
			return err
		}
	} else {
		printGenerated(os.Stdout, out)
	}

	if path, _ := cmd.Flags().GetString("save-transcript"); path != "" {
		if err := writeFile(path, out.Transcript); err != nil {
			return err
		}
		log.WithField("file", path).Info("transcript saved")
	}

	var (
		store    *archive.Store
		recordID string
	)
	if noArchive, _ := cmd.Flags().GetBool("no-archive"); cfg.Archive.Enabled && !noArchive {
		store, err = openArchive()
		if err != nil {
			return err
		}
		defer store.Close()
		rec, err := store.Save(ctx, recordFromOutput(in, out))
		if err != nil {
			return err
		}
		recordID = rec.ID
		log.WithField("id", rec.ID).Info("draft archived")
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return refineLoop(ctx, svc, out, store, recordID, os.Stdin, os.Stdout)
	}
	return nil
}

func recordFromOutput(in outreach.GenerateInput, out *outreach.GenerateOutput) archive.Record {
	return archive.Record{
		ID:            out.RequestID,
		Company:       out.CompanyName,
		Contact:       strings.TrimSpace(in.ContactName),
		Sender:        strings.TrimSpace(in.SenderName),
		Firm:          strings.TrimSpace(in.FirmName),
		PromptVersion: string(out.PromptVersion),
		EmailText:     out.EmailText,
		NewsSummary:   out.NewsSummary,
		CitedArticle:  out.CitedArticle,
		Articles:      out.Articles,
		Transcript:    out.Transcript,
	}
}

// refineLoop runs a refinement session over the generated draft, reading
// one instruction per line from r.
func refineLoop(ctx context.Context, svc *outreach.Service, out *outreach.GenerateOutput,
	store *archive.Store, recordID string, r io.Reader, w io.Writer) error {
	session := refine.NewSession(svc.LLM, svc.Defaults.MaxTokens)
	if err := session.Start(out.Transcript); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "\nRefine (empty line to finish): ")
		if !scanner.Scan() {
			break
		}
		instruction := strings.TrimSpace(scanner.Text())
		if instruction == "" || strings.EqualFold(instruction, "done") {
			break
		}

		text, err := session.Refine(ctx, instruction, "")
		if err != nil {
			log.WithError(err).Error("refinement failed")
			fmt.Fprintf(w, "Refinement failed: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "\n%s\n", text)

		if store != nil && recordID != "" {
			if err := store.UpdateTranscript(ctx, recordID, session.Transcript(), text); err != nil {
				log.WithError(err).Warn("could not update archive")
			}
		}
	}
	return scanner.Err()
}

func printGenerated(w io.Writer, out *outreach.GenerateOutput) {
	printDraft(w, &out.Draft)
	fmt.Fprintf(w, "\nNews summary: %s\n", out.NewsSummary)
	fmt.Fprintf(w, "Articles found: %d", out.ArticlesFound)
	if len(out.Sources) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(out.Sources, ", "))
	}
	fmt.Fprintf(w, "\nPrompt version: %s\n", out.PromptVersion)
}

func printComparison(w io.Writer, cmp *outreach.Comparison) {
	fmt.Fprintln(w, "=== structured ===")
	printDraft(w, cmp.Structured)
	fmt.Fprintln(w, "\n=== legacy ===")
	printDraft(w, cmp.Legacy)
	fmt.Fprintf(w, "\nArticles found: %d\n", cmp.ArticlesFound)
}
