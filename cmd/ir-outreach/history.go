// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/archive"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and export archived drafts",
	Long: `History reads the local draft archive written by generate and refine.
Use subcommands to list drafts, show one in full, or export them.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived drafts, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmdContext(cmd), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if records == nil {
			records = []archive.Record{}
		}
		return writeJSON(os.Stdout, records)
	}
	formatHistoryTable(os.Stdout, records)
	return nil
}

func formatHistoryTable(w io.Writer, records []archive.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No archived drafts.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-20s  %-20s  %-10s  %s\n",
		"ID", "Created", "Company", "Contact", "Version", "Refined")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range records {
		fmt.Fprintf(w, "%-36s  %-16s  %-20s  %-20s  %-10s  %d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			clip(r.Company, 20), clip(r.Contact, 20), clip(r.PromptVersion, 10), r.Refinements)
	}
	fmt.Fprintf(w, "\n%d drafts\n", len(records))
}

// clip shortens s to at most max runes, ending in "..." when cut.
func clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one archived draft with its transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Get(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(os.Stdout, rec)
		}
		return writeYAML(os.Stdout, rec)
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived drafts to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	ctx := cmdContext(cmd)
	opts := listOptsFromFlags(cmd)
	switch format {
	case "yaml", "":
		err = store.ExportYAML(ctx, w, opts)
	case "json":
		err = store.ExportJSON(ctx, w, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		log.WithField("file", outPath).Info("archive exported")
	}
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) archive.ListOptions {
	company, _ := cmd.Flags().GetString("company")
	limit, _ := cmd.Flags().GetInt("limit")
	return archive.ListOptions{Company: company, Limit: limit}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	historyListCmd.Flags().String("company", "", "filter by company")
	historyListCmd.Flags().Int("limit", 20, "maximum number of drafts")
	historyListCmd.Flags().Bool("json", false, "output as JSON")

	historyShowCmd.Flags().Bool("json", false, "output as JSON instead of YAML")

	historyExportCmd.Flags().String("company", "", "filter by company")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
