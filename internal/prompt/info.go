// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

// Input describes one caller-supplied value that feeds the templates.
type Input struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// StructureInfo is the exported form of one structure variant.
type StructureInfo struct {
	Description string `json:"description" yaml:"description"`
	Examples    string `json:"examples" yaml:"examples"`
}

// Information is a read-only export of the active templates and modifier
// tables, for transparency and debugging.
type Information struct {
	BasePrompt          string                   `json:"basePrompt" yaml:"basePrompt"`
	LegacyPrompt        string                   `json:"legacyPrompt" yaml:"legacyPrompt"`
	ToneModifiers       map[string]string        `json:"toneModifiers" yaml:"toneModifiers"`
	RoleContext         map[string]string        `json:"roleContext" yaml:"roleContext"`
	LengthModifiers     map[string]string        `json:"lengthModifiers" yaml:"lengthModifiers"`
	RelationshipContext map[string]string        `json:"relationshipContext" yaml:"relationshipContext"`
	Structures          map[string]StructureInfo `json:"structures" yaml:"structures"`
	Placeholders        []string                 `json:"placeholders" yaml:"placeholders"`
	Defaults            Style                    `json:"defaults" yaml:"defaults"`
	DynamicInputs       []Input                  `json:"dynamicInputs" yaml:"dynamicInputs"`
	PromptVersion       string                   `json:"promptVersion" yaml:"promptVersion"`
}

// Info returns the introspection export. The maps are fresh copies.
func Info() Information {
	structures := make(map[string]StructureInfo, len(structureVariants))
	for k, v := range structureVariants {
		structures[string(k)] = StructureInfo{Description: v.Description, Examples: v.Examples}
	}

	return Information{
		BasePrompt:          structuredTemplate,
		LegacyPrompt:        legacyPrompt,
		ToneModifiers:       stringTable(toneFragments),
		RoleContext:         stringTable(roleFragments),
		LengthModifiers:     stringTable(lengthFragments),
		RelationshipContext: stringTable(relationshipFragments),
		Structures:          structures,
		Placeholders:        append([]string(nil), Placeholders...),
		Defaults:            DefaultStyle(),
		DynamicInputs: []Input{
			{Name: "companyName", Description: "The target company name or ticker"},
			{Name: "contactName", Description: "The recipient's name"},
			{Name: "senderName", Description: "Your first name for the sign-off"},
			{Name: "firmName", Description: "Your firm name"},
			{Name: "newsContext", Description: "Recent news articles about the company (fetched automatically)"},
			{Name: "additionalContext", Description: "Optional notes about you or the recipient, added as a sender context block"},
		},
		PromptVersion: StructuredLabel,
	}
}

func stringTable[K ~string](table map[K]string) map[string]string {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[string(k)] = v
	}
	return out
}
