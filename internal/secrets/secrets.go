// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: anthropic-api-key, openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/ir-outreach/internal/logger"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	log = logger.OrDiscard(log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithError(err).WithField("secret", name).Warn("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// providerName maps provider aliases to the canonical name used in key
// file and environment variable names.
func providerName(provider string) string {
	switch p := strings.ToLower(strings.TrimSpace(provider)); p {
	case "", "claude":
		return "anthropic"
	default:
		return p
	}
}

// KeyFile returns the secret filename holding provider's API key,
// e.g. "anthropic-api-key".
func KeyFile(provider string) string {
	return providerName(provider) + "-api-key"
}

// EnvVar returns the environment variable holding provider's API key,
// e.g. "ANTHROPIC_API_KEY".
func EnvVar(provider string) string {
	return strings.ToUpper(providerName(provider)) + "_API_KEY"
}

// APIKey resolves provider's key. An explicit value wins, then the loaded
// secret file, then the provider's environment variable.
func APIKey(explicit, provider string, loaded map[string]string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := loaded[KeyFile(provider)]; ok {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvVar(provider)))
}
