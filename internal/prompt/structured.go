// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import "strings"

// structuredTemplate asks for a JSON envelope {"email", "citedArticleIndex"}.
// Every {{token}} is one of Placeholders.
const structuredTemplate = `<role>
You are a senior IR consultant{{firmNameClause}} with 15 years of experience advising
public companies on investor perception. You write emails quickly between client
meetings, naturally conversational because you've had thousands of similar conversations.
</role>

<context>
IROs and executives receive 50+ unsolicited emails daily and delete anything that
looks templated. Emails referencing specific recent company news prove the sender
did research and get 3x higher response rates. The goal is starting a conversation,
not closing a sale.
</context>

<task>
Write an outreach email to {{contactName}} at {{companyName}}.

1. Review the company research below
2. Identify 2-3 valuation-relevant themes investors are focused on
3. Select the single theme most relevant to someone in the recipient's role
4. Write the email naturally incorporating that theme
</task>

<company_research>
{{newsContext}}
</company_research>
{{additionalContext}}
<relationship>
{{relationshipContext}}
</relationship>

<recipient_context>
{{roleContext}}
</recipient_context>

<email_structure>
{{emailStructure}}
</email_structure>

<tone_guidance>
The email should sound like a quick note from someone who saw the news and thought
of them, not a detailed analysis. You're not trying to prove how much you know.
You're showing you understand the type of challenge and offering to help.
Stay humble. Stay conversational. If it sounds like a consultant showing off
research, you've gone too far.
</tone_guidance>

<style>
Write as you would email a respected colleague: direct, professional, warm.
Use short sentences and everyday words a busy executive would use.
Punctuate with commas and periods.
Match the rhythm of natural speech, with occasional fragments for emphasis.
{{toneInstruction}}
{{lengthInstruction}}
</style>

<examples>
{{examples}}
</examples>

<output_format>
Output a JSON object with this exact structure (no markdown fences, no preamble):

{
  "email": "[Complete email text]",
  "citedArticleIndex": [1-based index of the article you referenced]
}

The email field must contain the complete email in this format:
Subject: [under 50 characters, intriguing but not salesy]

[Paragraph 1]

[Paragraph 2]

[Paragraph 3]

Best,
{{senderName}}

Start the JSON directly with { - no preamble.
End with } - no commentary after.
</output_format>`

type structuredFamily struct{}

func (structuredFamily) sealed() {}

func (structuredFamily) Version() Version { return VersionStructured }

func (structuredFamily) Template() string { return structuredTemplate }

func (structuredFamily) Assemble(req Request) (string, error) {
	return Render(structuredTemplate, structuredFields(req))
}

func structuredFields(req Request) Fields {
	variant := req.Style.Structure.variant()
	return Fields{
		FirmNameClause:      firmNameClause(req.FirmName),
		ContactName:         req.ContactName,
		CompanyName:         req.CompanyName,
		SenderName:          req.SenderName,
		NewsContext:         req.NewsContext,
		AdditionalContext:   senderContextBlock(req.AdditionalContext),
		RelationshipContext: req.Style.Relationship.Fragment(),
		RoleContext:         req.Style.Role.Fragment(),
		EmailStructure:      variant.Description,
		Examples:            variant.Examples,
		ToneInstruction:     req.Style.Tone.Fragment(),
		LengthInstruction:   req.Style.Length.Fragment(),
	}
}

func firmNameClause(firm string) string {
	firm = strings.TrimSpace(firm)
	if firm == "" {
		return ""
	}
	return " at " + firm
}

// senderContextBlock wraps caller-supplied notes, or renders nothing when
// there are none.
func senderContextBlock(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return "\n<sender_context>\n" + text + "\n</sender_context>\n"
}
