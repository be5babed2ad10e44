// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ir-outreach/pkg/types"
)

const envPrefix = "IR_OUTREACH"

// flagBindings maps persistent flags to configuration keys.
var flagBindings = map[string]string{
	"log-level": "log.level",
	"provider":  "llm.provider",
	"model":     "llm.model",
}

// loadConfig resolves configuration from defaults, the config file,
// IR_OUTREACH_* environment variables and flags, in increasing precedence.
// It also returns the config file used, if any.
func loadConfig(cmd *cobra.Command) (types.Config, string, error) {
	v := viper.New()
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("ir-outreach")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ir-outreach"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, types.DefaultConfig())

	for flag, key := range flagBindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return types.Config{}, "", fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	var c types.Config
	if err := v.Unmarshal(&c, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return types.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	return c, v.ConfigFileUsed(), nil
}

// setDefaults registers every key so environment variables can override
// values that are absent from the config file.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	v.SetDefault("llm.summary_max_tokens", d.LLM.SummaryMaxTokens)
	v.SetDefault("llm.requests_per_minute", d.LLM.RequestsPerMinute)
	v.SetDefault("llm.burst", d.LLM.Burst)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("news.feed_url", d.News.FeedURL)
	v.SetDefault("news.preferred_sources", d.News.PreferredSources)
	v.SetDefault("news.timeout", d.News.Timeout)
	v.SetDefault("news.user_agent", d.News.UserAgent)
	v.SetDefault("news.max_retries", d.News.MaxRetries)

	v.SetDefault("outreach.default_firm", d.Outreach.DefaultFirm)
	v.SetDefault("outreach.prompt_version", d.Outreach.PromptVersion)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)

	v.SetDefault("archive.enabled", d.Archive.Enabled)
	v.SetDefault("archive.path", d.Archive.Path)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
