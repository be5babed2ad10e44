// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/archive"
	"github.com/pdiddy/ir-outreach/internal/outreach"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Apply an edit instruction to a previous draft",
	Long: `Refine replays a draft's transcript with one more instruction and prints
the rewritten email. The transcript comes from a file written by
generate --save-transcript or from an archived draft (--from ID). If the
draft was edited by hand, pass the edited text with --draft so the model
works from it.`,
	RunE: runRefine,
}

func init() {
	f := refineCmd.Flags()
	f.String("transcript", "", "transcript file (YAML or JSON)")
	f.String("from", "", "archived draft ID")
	f.String("instruction", "", "what to change (required)")
	f.String("draft", "", "file holding the current, possibly hand-edited, draft")
	f.String("out", "", "write the updated transcript to this file")
	f.Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("transcript")
	fromID, _ := cmd.Flags().GetString("from")
	instruction, _ := cmd.Flags().GetString("instruction")
	draftPath, _ := cmd.Flags().GetString("draft")
	outPath, _ := cmd.Flags().GetString("out")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if (path == "") == (fromID == "") {
		return fmt.Errorf("exactly one of --transcript or --from is required")
	}

	ctx := cmdContext(cmd)

	var (
		transcript types.Transcript
		store      *archive.Store
		err        error
	)
	if fromID != "" {
		store, err = openArchive()
		if err != nil {
			return err
		}
		defer store.Close()
		rec, err := store.Get(ctx, fromID)
		if err != nil {
			return err
		}
		transcript = rec.Transcript
	} else {
		transcript, err = readTranscript(path)
		if err != nil {
			return err
		}
	}

	var current string
	if draftPath != "" {
		data, err := os.ReadFile(draftPath)
		if err != nil {
			return fmt.Errorf("reading draft: %w", err)
		}
		current = string(data)
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	out, err := svc.Refine(ctx, outreach.RefineInput{
		Transcript:   transcript,
		Instruction:  instruction,
		CurrentDraft: current,
	})
	if err != nil {
		// A failed call still carries the reconciled transcript, which
		// holds any hand edit passed with --draft.
		if out != nil {
			if perr := persistRefinement(ctx, store, fromID, outPath, out, false); perr != nil {
				log.WithError(perr).Warn("could not save reconciled transcript")
			}
		}
		return err
	}
	if err := persistRefinement(ctx, store, fromID, outPath, out, true); err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(os.Stdout, out)
	}
	fmt.Println(out.EmailText)
	return nil
}

// persistRefinement writes out's transcript to the archive record id (when
// store is set) and to outPath (when set). refined is false after a failed
// call, when the transcript only carries the reconciled draft.
func persistRefinement(ctx context.Context, store *archive.Store, id, outPath string, out *outreach.RefineOutput, refined bool) error {
	if len(out.UpdatedTranscript) == 0 {
		return nil
	}
	if store != nil {
		var err error
		if refined {
			err = store.UpdateTranscript(ctx, id, out.UpdatedTranscript, out.EmailText)
		} else {
			err = store.ReplaceTranscript(ctx, id, out.UpdatedTranscript, out.UpdatedTranscript.Last().Content)
		}
		if err != nil {
			return err
		}
	}
	if outPath != "" {
		if err := writeFile(outPath, out.UpdatedTranscript); err != nil {
			return err
		}
		log.WithField("file", outPath).Info("transcript saved")
	}
	return nil
}
