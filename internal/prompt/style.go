// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import "strings"

// Tone selects the register of the email.
type Tone string

const (
	ToneConversational Tone = "conversational"
	ToneFormal         Tone = "formal"
	ToneDirect         Tone = "direct"
)

// DefaultTone is used for missing or unknown tone values.
const DefaultTone = ToneConversational

var toneFragments = map[Tone]string{
	ToneConversational: "Keep the tone casual and conversational, as if sent between meetings.",
	ToneFormal:         "Use professional, polished language appropriate for executive correspondence.",
	ToneDirect:         "Be concise and get to the point quickly. Every sentence should earn its place.",
}

// ParseTone maps s to a Tone, falling back to DefaultTone.
func ParseTone(s string) Tone {
	return parseEnum(s, toneFragments, DefaultTone)
}

// Fragment returns the style instruction for t.
func (t Tone) Fragment() string { return fragment(t, toneFragments, DefaultTone) }

// ContactRole is the recipient's position.
type ContactRole string

const (
	RoleIRO ContactRole = "iro"
	RoleCEO ContactRole = "ceo"
	RoleCFO ContactRole = "cfo"
)

// DefaultRole is used for missing or unknown role values.
const DefaultRole = RoleIRO

var roleFragments = map[ContactRole]string{
	RoleIRO: "The recipient is an Investor Relations Officer. They struggle with perception gaps, have limited resources for comprehensive research, and need external validation to influence C-suite messaging. Speak to these pain points.",
	RoleCEO: "The recipient is a CEO. They care about valuation disconnect, controlling the market narrative, and how leadership is perceived by investors. Frame value in terms of strategic positioning.",
	RoleCFO: "The recipient is a CFO. They focus on analyst expectations, financial communication effectiveness, and guidance credibility. Emphasize quantitative perception insights.",
}

// ParseRole maps s to a ContactRole, falling back to DefaultRole.
func ParseRole(s string) ContactRole {
	return parseEnum(s, roleFragments, DefaultRole)
}

// Fragment returns the recipient context for r.
func (r ContactRole) Fragment() string { return fragment(r, roleFragments, DefaultRole) }

// Length bounds the word count of the email.
type Length string

const (
	LengthBrief    Length = "brief"
	LengthStandard Length = "standard"
	LengthDetailed Length = "detailed"
)

// DefaultLength is used for missing or unknown length values.
const DefaultLength = LengthStandard

var lengthFragments = map[Length]string{
	LengthBrief:    "Keep to 60-80 words total. Be extremely concise.",
	LengthStandard: "Keep to 80-120 words total across the 3 paragraphs.",
	LengthDetailed: "You may extend to 120-150 words with more specific news references.",
}

// ParseLength maps s to a Length, falling back to DefaultLength.
func ParseLength(s string) Length {
	return parseEnum(s, lengthFragments, DefaultLength)
}

// Fragment returns the length guidance for l.
func (l Length) Fragment() string { return fragment(l, lengthFragments, DefaultLength) }

// Relationship is the sender's prior contact with the recipient.
type Relationship string

const (
	RelationshipCold Relationship = "cold"
	RelationshipWarm Relationship = "warm"
)

// DefaultRelationship is used for missing or unknown relationship values.
const DefaultRelationship = RelationshipCold

var relationshipFragments = map[Relationship]string{
	RelationshipCold: "You have never spoken with the recipient. This is a first touch, so earn their attention through relevance rather than familiarity, and introduce yourself in a single clause.",
	RelationshipWarm: "You have met the recipient before or share a mutual connection. Open with a light, familiar touch, skip the formal introduction, and write as someone picking up an existing conversation.",
}

// ParseRelationship maps s to a Relationship, falling back to DefaultRelationship.
func ParseRelationship(s string) Relationship {
	return parseEnum(s, relationshipFragments, DefaultRelationship)
}

// Fragment returns the relationship context for r.
func (r Relationship) Fragment() string {
	return fragment(r, relationshipFragments, DefaultRelationship)
}

// Structure orders the paragraphs of the email. Each structure carries its
// own paragraph instructions and worked examples (see structures.go).
type Structure string

const (
	StructureNewsFirst  Structure = "news-first"
	StructureIntroFirst Structure = "intro-first"
)

// DefaultStructure is used for missing or unknown structure values.
const DefaultStructure = StructureNewsFirst

// ParseStructure maps s to a Structure, falling back to DefaultStructure.
func ParseStructure(s string) Structure {
	return parseEnum(s, structureVariants, DefaultStructure)
}

// variant returns the paragraph instructions and examples for s.
func (s Structure) variant() structureVariant {
	return fragment(s, structureVariants, DefaultStructure)
}

// Style bundles the five style dimensions of a request.
type Style struct {
	Tone         Tone         `json:"tone" yaml:"tone"`
	Role         ContactRole  `json:"contactRole" yaml:"contactRole"`
	Length       Length       `json:"length" yaml:"length"`
	Relationship Relationship `json:"relationship" yaml:"relationship"`
	Structure    Structure    `json:"structure" yaml:"structure"`
}

// DefaultStyle returns conversational, iro, standard, cold, news-first.
func DefaultStyle() Style {
	return Style{
		Tone:         DefaultTone,
		Role:         DefaultRole,
		Length:       DefaultLength,
		Relationship: DefaultRelationship,
		Structure:    DefaultStructure,
	}
}

// ParseStyle builds a Style from raw strings. Unknown or empty values
// silently take their default.
func ParseStyle(tone, role, length, relationship, structure string) Style {
	return Style{
		Tone:         ParseTone(tone),
		Role:         ParseRole(role),
		Length:       ParseLength(length),
		Relationship: ParseRelationship(relationship),
		Structure:    ParseStructure(structure),
	}
}

// Normalize replaces any unknown dimension with its default.
func (s Style) Normalize() Style {
	return ParseStyle(string(s.Tone), string(s.Role), string(s.Length), string(s.Relationship), string(s.Structure))
}

func parseEnum[K ~string, V any](s string, table map[K]V, def K) K {
	k := K(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[k]; ok {
		return k
	}
	return def
}

func fragment[K ~string, V any](k K, table map[K]V, def K) V {
	if v, ok := table[k]; ok {
		return v
	}
	return table[def]
}
