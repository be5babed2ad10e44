// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package email interprets model output as an outreach email: the JSON
// envelope of the structured prompt, the bare text of the legacy prompt,
// and the Subject/body layout shared by both.
package email

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/ir-outreach/internal/prompt"
)

// Result is a parsed generation.
type Result struct {
	EmailText         string `json:"emailText" yaml:"emailText"`
	CitedArticleIndex *int   `json:"citedArticleIndex" yaml:"citedArticleIndex"`
	RawPrompt         string `json:"-" yaml:"-"`
}

type envelope struct {
	Email             *string         `json:"email"`
	CitedArticleIndex json.RawMessage `json:"citedArticleIndex"`
}

// Parse interprets raw model output. Structured output is read as the JSON
// envelope, first strictly and then after stripping code fences and any
// prose around the outermost braces. When neither yields an "email" string,
// or for legacy output, the whole raw text is the email and there is no
// citation. Parse never fails.
func Parse(raw string, version prompt.Version) Result {
	if version != prompt.VersionLegacy {
		if r, ok := parseEnvelope(raw); ok {
			return r
		}
		if cleaned := cleanJSON(raw); cleaned != raw {
			if r, ok := parseEnvelope(cleaned); ok {
				return r
			}
		}
	}
	return Result{EmailText: raw}
}

func parseEnvelope(s string) (Result, bool) {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil || env.Email == nil {
		return Result{}, false
	}
	return Result{EmailText: *env.Email, CitedArticleIndex: citedIndex(env.CitedArticleIndex)}, true
}

// citedIndex accepts an integral JSON number or a string holding one.
// Anything else, including null, is no citation.
func citedIndex(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = []byte(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	n := int(f)
	return &n
}

// cleanJSON strips markdown fences and trims to the outermost {...}.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

// Split separates an email into subject and body. The subject comes from
// the first line whose trimmed, lower-cased form starts with "subject:";
// blank lines after it are skipped and the rest, trimmed, is the body.
// Without a subject line the subject is empty and the trimmed text is the
// body.
func Split(text string) (subject, body string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(trimmed), "subject:") {
			continue
		}
		subject = strings.TrimSpace(trimmed[len("subject:"):])
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		return subject, strings.TrimSpace(strings.Join(lines[j:], "\n"))
	}
	return "", strings.TrimSpace(text)
}

// Compose is the inverse of Split: "Subject: <subject>\n\n<body>".
func Compose(subject, body string) string {
	return "Subject: " + subject + "\n\n" + body
}
