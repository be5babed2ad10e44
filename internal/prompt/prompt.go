// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt assembles the generation request for an outreach email.
//
// Two template families exist and are selected per request: the legacy
// family is a fixed instructional paragraph followed by a context block and
// expects a bare email back; the structured family is an XML-tagged
// template with named placeholders, worked examples, and a JSON output
// contract carrying the cited article index. Each family keeps its own
// template data next to its assembly code.
package prompt

import (
	"fmt"
	"strings"
)

// Version names a template family.
type Version string

const (
	VersionLegacy     Version = "legacy"
	VersionStructured Version = "structured"
)

// DefaultVersion is used for missing or unknown version values.
const DefaultVersion = VersionStructured

// StructuredLabel is the version label reported by Info.
const StructuredLabel = "v2-structured"

// ParseVersion maps s to a Version. "legacy" and "v1" select the legacy
// family; everything else, including "v2" and "v2-structured", selects the
// structured family.
func ParseVersion(s string) Version {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy", "v1", "v1-legacy":
		return VersionLegacy
	default:
		return VersionStructured
	}
}

// Request is the input to Assemble. It is built fresh for every call.
type Request struct {
	CompanyName       string
	ContactName       string
	SenderName        string
	FirmName          string
	NewsContext       string
	AdditionalContext string
	Style             Style
	Version           Version
}

// Family is one template family. The set is closed: Legacy and Structured.
type Family interface {
	Version() Version
	Template() string
	Assemble(req Request) (string, error)

	sealed()
}

// Legacy returns the unstructured template family.
func Legacy() Family { return legacyFamily{} }

// Structured returns the XML-tagged template family.
func Structured() Family { return structuredFamily{} }

// FamilyFor returns the family for v, defaulting to Structured.
func FamilyFor(v Version) Family {
	if v == VersionLegacy {
		return Legacy()
	}
	return Structured()
}

// Assemble builds the prompt text for req using the family named by
// req.Version. Style values outside their enums fall back to defaults.
func Assemble(req Request) (string, error) {
	req.Style = req.Style.Normalize()
	f := FamilyFor(req.Version)
	text, err := f.Assemble(req)
	if err != nil {
		return "", fmt.Errorf("assembling %s prompt: %w", f.Version(), err)
	}
	return text, nil
}
