// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{
		CompanyName: "Acme Corp",
		ContactName: "Jane",
		SenderName:  "Sam",
		FirmName:    "Rivel Research Group",
		NewsContext: `1. "Acme beats estimates" (Reuters, 3/7/2026)`,
		Style:       DefaultStyle(),
		Version:     VersionStructured,
	}
}

var leftoverToken = regexp.MustCompile(`\{\{[^}]*\}\}`)

// --- style dimensions ---

func TestParseStyleDefaults(t *testing.T) {
	assert.Equal(t, DefaultStyle(), ParseStyle("", "", "", "", ""))
	assert.Equal(t, DefaultStyle(), ParseStyle("shouty", "cto", "epic", "lukewarm", "random"))

	got := ParseStyle(" Formal ", "CFO", "brief", "warm", "intro-first")
	assert.Equal(t, Style{
		Tone:         ToneFormal,
		Role:         RoleCFO,
		Length:       LengthBrief,
		Relationship: RelationshipWarm,
		Structure:    StructureIntroFirst,
	}, got)
}

func TestFragmentsAreTotal(t *testing.T) {
	for _, tone := range []Tone{ToneConversational, ToneFormal, ToneDirect, "bogus"} {
		assert.NotEmpty(t, tone.Fragment(), tone)
	}
	for _, role := range []ContactRole{RoleIRO, RoleCEO, RoleCFO, "bogus"} {
		assert.NotEmpty(t, role.Fragment(), role)
	}
	for _, l := range []Length{LengthBrief, LengthStandard, LengthDetailed, "bogus"} {
		assert.NotEmpty(t, l.Fragment(), l)
	}
	for _, r := range []Relationship{RelationshipCold, RelationshipWarm, "bogus"} {
		assert.NotEmpty(t, r.Fragment(), r)
	}

	assert.Equal(t, ToneConversational.Fragment(), Tone("bogus").Fragment())
	assert.Equal(t, RoleIRO.Fragment(), ContactRole("bogus").Fragment())
	assert.Equal(t, LengthStandard.Fragment(), Length("bogus").Fragment())
	assert.Equal(t, RelationshipCold.Fragment(), Relationship("bogus").Fragment())
	assert.Equal(t, StructureNewsFirst.variant(), Structure("bogus").variant())
}

func TestParseVersion(t *testing.T) {
	tests := map[string]Version{
		"":              VersionStructured,
		"structured":    VersionStructured,
		"v2":            VersionStructured,
		"v2-structured": VersionStructured,
		"unknown":       VersionStructured,
		"legacy":        VersionLegacy,
		"V1":            VersionLegacy,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseVersion(in), in)
	}
}

// --- Render ---

func TestRenderReplacesEveryOccurrence(t *testing.T) {
	got, err := Render("{{companyName}} and {{companyName}} with {{contactName}}", Fields{
		CompanyName: "Acme",
		ContactName: "Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme and Acme with Jane", got)
}

func TestRenderUnknownPlaceholder(t *testing.T) {
	_, err := Render("Hello {{contactName}} from {{nope}} and {{alsoNope}}", Fields{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alsoNope, nope")
}

func TestRenderDoesNotRescanValues(t *testing.T) {
	got, err := Render("Hi {{contactName}}", Fields{ContactName: "{{companyName}}", CompanyName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Hi {{companyName}}", got)
}

func TestStructuredTemplateUsesOnlyKnownPlaceholders(t *testing.T) {
	for _, m := range tokenPattern.FindAllStringSubmatch(structuredTemplate, -1) {
		assert.Contains(t, Placeholders, m[1])
	}
	for _, p := range Placeholders {
		assert.Contains(t, structuredTemplate, "{{"+p+"}}", p)
	}
}

// --- structured family ---

func TestAssembleStructuredHasNoLeftoverPlaceholders(t *testing.T) {
	for _, tone := range []string{"conversational", "formal", "direct"} {
		for _, role := range []string{"iro", "ceo", "cfo"} {
			for _, length := range []string{"brief", "standard", "detailed"} {
				for _, rel := range []string{"cold", "warm"} {
					for _, st := range []string{"news-first", "intro-first"} {
						req := baseRequest()
						req.Style = ParseStyle(tone, role, length, rel, st)
						req.AdditionalContext = "We met at the Needham conference."
						out, err := Assemble(req)
						require.NoError(t, err)
						assert.False(t, leftoverToken.MatchString(out), "%v left a placeholder", req.Style)
					}
				}
			}
		}
	}
}

func TestAssembleStructuredContent(t *testing.T) {
	req := baseRequest()
	req.Style = ParseStyle("direct", "cfo", "brief", "warm", "")
	out, err := Assemble(req)
	require.NoError(t, err)

	assert.Contains(t, out, "senior IR consultant at Rivel Research Group with 15 years")
	assert.Contains(t, out, "Write an outreach email to Jane at Acme Corp.")
	assert.Contains(t, out, `1. "Acme beats estimates" (Reuters, 3/7/2026)`)
	assert.Contains(t, out, ToneDirect.Fragment())
	assert.Contains(t, out, RoleCFO.Fragment())
	assert.Contains(t, out, LengthBrief.Fragment())
	assert.Contains(t, out, RelationshipWarm.Fragment())
	assert.Contains(t, out, "Best,\nSam")
	assert.Contains(t, out, `"citedArticleIndex"`)
	assert.NotContains(t, out, "<sender_context>")
}

func TestAssembleStructuredFirmClause(t *testing.T) {
	req := baseRequest()
	req.FirmName = "  "
	out, err := Assemble(req)
	require.NoError(t, err)
	assert.Contains(t, out, "senior IR consultant with 15 years")
}

func TestAssembleStructuredSenderContext(t *testing.T) {
	req := baseRequest()
	req.AdditionalContext = "  Former sell-side analyst covering industrials.  "
	out, err := Assemble(req)
	require.NoError(t, err)
	assert.Contains(t, out, "<sender_context>\nFormer sell-side analyst covering industrials.\n</sender_context>")

	req.AdditionalContext = "\n\t "
	out, err = Assemble(req)
	require.NoError(t, err)
	assert.NotContains(t, out, "sender_context")
}

func TestAssembleStructureVariantsDoNotMix(t *testing.T) {
	req := baseRequest()

	req.Style.Structure = StructureNewsFirst
	news, err := Assemble(req)
	require.NoError(t, err)
	assert.Contains(t, news, "THE PAIN")
	assert.Contains(t, news, "Hi James,")
	assert.NotContains(t, news, "THE INTRODUCTION")
	assert.NotContains(t, news, "Hi Priya,")

	req.Style.Structure = StructureIntroFirst
	intro, err := Assemble(req)
	require.NoError(t, err)
	assert.Contains(t, intro, "THE INTRODUCTION")
	assert.Contains(t, intro, "Hi Priya,")
	assert.NotContains(t, intro, "THE PAIN")
	assert.NotContains(t, intro, "Hi James,")
}

func TestAssembleNormalizesUnknownStyle(t *testing.T) {
	req := baseRequest()
	req.Style = Style{Tone: "loud", Role: "cto", Length: "huge", Relationship: "x", Structure: "y"}
	got, err := Assemble(req)
	require.NoError(t, err)

	want, err := Assemble(baseRequest())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// --- legacy family ---

func TestAssembleLegacy(t *testing.T) {
	req := baseRequest()
	req.Version = VersionLegacy
	req.Style = ParseStyle("formal", "ceo", "detailed", "warm", "intro-first")
	out, err := Assemble(req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, legacyPrompt))
	assert.True(t, strings.HasSuffix(out, "\n\nGenerate the email now."))
	assert.Contains(t, out, "Additional style instruction: "+ToneFormal.Fragment())
	assert.Contains(t, out, "Recipient context: "+RoleCEO.Fragment())
	assert.Contains(t, out, "Length guidance: "+LengthDetailed.Fragment())
	assert.Contains(t, out, "Context for this email:\n- Company: Acme Corp\n- Recipient name: Jane\n- Sender name: Sam\n- Sender's firm: Rivel Research Group")
	assert.Contains(t, out, "Recent news about Acme Corp:\n1. \"Acme beats estimates\"")
	assert.NotContains(t, out, "citedArticleIndex")
	assert.NotContains(t, out, "{{")
	assert.NotContains(t, out, "Additional context from the sender")
}

func TestAssembleLegacyOptionalLines(t *testing.T) {
	req := baseRequest()
	req.Version = VersionLegacy
	req.FirmName = ""
	req.AdditionalContext = "Met at JPM Healthcare."
	out, err := Assemble(req)
	require.NoError(t, err)

	assert.NotContains(t, out, "Sender's firm")
	assert.Contains(t, out, "- Sender name: Sam\n\nRecent news about Acme Corp:")
	assert.Contains(t, out, "Additional context from the sender: Met at JPM Healthcare.")
}

func TestFamilyFor(t *testing.T) {
	assert.Equal(t, VersionLegacy, FamilyFor(VersionLegacy).Version())
	assert.Equal(t, VersionStructured, FamilyFor("").Version())
	assert.Equal(t, legacyPrompt, Legacy().Template())
	assert.Equal(t, structuredTemplate, Structured().Template())
}

// --- introspection ---

func TestInfo(t *testing.T) {
	info := Info()

	assert.Equal(t, "v2-structured", info.PromptVersion)
	assert.Equal(t, structuredTemplate, info.BasePrompt)
	assert.Equal(t, legacyPrompt, info.LegacyPrompt)
	assert.Len(t, info.ToneModifiers, 3)
	assert.Len(t, info.RoleContext, 3)
	assert.Len(t, info.LengthModifiers, 3)
	assert.Len(t, info.RelationshipContext, 2)
	require.Len(t, info.Structures, 2)
	assert.Contains(t, info.Structures["intro-first"].Examples, "Hi Priya,")
	assert.Equal(t, Placeholders, info.Placeholders)
	assert.Equal(t, DefaultStyle(), info.Defaults)
	assert.NotEmpty(t, info.DynamicInputs)

	info.ToneModifiers["formal"] = "mutated"
	info.Placeholders[0] = "mutated"
	assert.NotEqual(t, "mutated", Info().ToneModifiers["formal"])
	assert.Equal(t, "firmNameClause", Placeholders[0])
}
