// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ir-outreach CLI. It drafts
// news-grounded investor relations outreach emails, refines them through
// follow-up instructions, and serves the same operations over HTTP.
package main

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/logger"
	"github.com/pdiddy/ir-outreach/internal/secrets"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, populated before any subcommand runs.
	cfg types.Config

	// log is the shared logger, populated alongside cfg.
	log logrus.FieldLogger = logger.Discard()
)

// rootCmd is the base command for the ir-outreach CLI.
var rootCmd = &cobra.Command{
	Use:   "ir-outreach",
	Short: "Draft news-grounded investor relations outreach emails",
	Long: `ir-outreach drafts cold outreach emails to executives of publicly traded
companies. It pulls recent news about the company, builds a prompt from a
style and template family, asks a language model for the email, and reports
which article the email cites. Drafts can be refined with follow-up
instructions, compared across template families, archived locally, and
served over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		loaded, err := secrets.Load(".secrets/", nil)
		if err != nil {
			return err
		}

		c, used, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c.LLM.APIKey = secrets.APIKey(c.LLM.APIKey, c.LLM.Provider, loaded)

		l, err := logger.New(c.Log.Level, c.Log.File)
		if err != nil {
			return err
		}
		if used != "" {
			l.WithField("file", used).Debug("using config file")
		}
		if len(loaded) > 0 {
			keys := make([]string, 0, len(loaded))
			for k := range loaded {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			l.WithField("keys", keys).Debug("loaded secrets")
		}

		cfg, log = c, l
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./ir-outreach.yaml or ~/.config/ir-outreach/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("provider", "", "language model provider: anthropic or openai")
	pf.String("model", "", "model identifier")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
