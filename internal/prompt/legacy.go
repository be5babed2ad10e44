// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"strings"
)

// legacyPrompt is the original free-text instruction. It has no JSON
// contract and no citation index.
const legacyPrompt = `You are an investor relations consultant writing a cold outbound email to a senior executive of a publicly traded company.

First, identify the company's most recent market-facing challenges by referencing credible, current financial journalism (for example, recent Wall Street Journal coverage). Distill these challenges into two to three concise, valuation-relevant themes that investors appear focused on. Do not quote articles directly, but reflect their substance accurately.

Then, write a human-sounding email that follows this structure:

- Open by noting that you have recently read a few articles about the company and briefly summarize the market perception or investor concern implied by those articles.
- Position your firm as specializing in investor perception research and expectation management, including understanding what investors truly believe, identifying gaps between management intent and market interpretation, and helping leadership teams proactively address those gaps. Keep it conversational, not marketing copy.
- End with a single, low-pressure question asking whether a short conversation would be useful.

Style constraints:

- Avoid buzzwords, jargon, and formulaic sales language.
- Do not use em dashes.
- Do not use emojis.
- Avoid rigid lists or obvious rhetorical structures.
- Make it sound like it was written by a real person, not an AI.
- Include a subtle but intriguing subject line that does not reveal the pitch.

Output only the final email, including the subject line but without a signature, with no explanation of your process.`

type legacyFamily struct{}

func (legacyFamily) sealed() {}

func (legacyFamily) Version() Version { return VersionLegacy }

func (legacyFamily) Template() string { return legacyPrompt }

// Assemble appends tone, role and length guidance, optional sender notes,
// the context block and the news to the fixed instruction. Relationship
// and structure have no legacy rendering.
func (legacyFamily) Assemble(req Request) (string, error) {
	var b strings.Builder
	b.WriteString(legacyPrompt)
	fmt.Fprintf(&b, "\n\nAdditional style instruction: %s", req.Style.Tone.Fragment())
	fmt.Fprintf(&b, "\n\nRecipient context: %s", req.Style.Role.Fragment())
	fmt.Fprintf(&b, "\n\nLength guidance: %s", req.Style.Length.Fragment())
	if notes := strings.TrimSpace(req.AdditionalContext); notes != "" {
		fmt.Fprintf(&b, "\n\nAdditional context from the sender: %s", notes)
	}

	b.WriteString("\n\nContext for this email:")
	fmt.Fprintf(&b, "\n- Company: %s", req.CompanyName)
	fmt.Fprintf(&b, "\n- Recipient name: %s", req.ContactName)
	fmt.Fprintf(&b, "\n- Sender name: %s", req.SenderName)
	if firm := strings.TrimSpace(req.FirmName); firm != "" {
		fmt.Fprintf(&b, "\n- Sender's firm: %s", firm)
	}

	fmt.Fprintf(&b, "\n\nRecent news about %s:\n%s", req.CompanyName, req.NewsContext)
	b.WriteString("\n\nGenerate the email now.")
	return b.String(), nil
}
