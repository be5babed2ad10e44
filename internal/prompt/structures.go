// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

// structureVariant is the paragraph plan and the matching worked examples
// for one Structure. The two are always rendered together.
type structureVariant struct {
	Description string
	Examples    string
}

var structureVariants = map[Structure]structureVariant{
	StructureNewsFirst:  newsFirst,
	StructureIntroFirst: introFirst,
}

var newsFirst = structureVariant{
	Description: `Paragraph 1 - THE PAIN (1-2 sentences):
Reference that you saw the news (name the source and general topic), then
acknowledge the TYPE of challenge they're facing. Stay humble and conversational.
You understand the general situation, but you're not pretending to know their
internal details. Example: "I saw that Journal piece on the margin questions.
That's always a tough narrative to manage." Keep it light and empathetic, not
detailed or presumptuous. This is the paragraph that references the article at
citedArticleIndex.

Paragraph 2 - THE MEDICINE (2-3 sentences):
Show we've helped others in similar situations, then keep the description of
what we do conversational and general. Connect to the type of problem, not
specific metrics or details you couldn't know. Example: "We've helped other
healthcare companies navigate similar situations, basically getting clarity on
what investors are actually focused on versus what's landing from management.
Often there's a gap that's addressable once you can see it." Stay conversational.

Paragraph 3 - THE CALL TO ACTION (1-2 sentences):
Propose a specific next step with a timeframe. Always include "this week or next"
or similar. Keep the ask simple and direct: "Do you have 15 minutes later this
week or next to discuss?" or "Would a quick call this week or next be helpful?"
Avoid awkward phrases like "compare notes" or "swap perspectives."`,

	Examples: `<example>
<scenario>Healthcare company, CFO recipient, margin pressure theme</scenario>
<output>
Subject: Quick question about analyst sentiment

Hi James,

I saw that Journal piece on Meridian's margin outlook. That's always a tricky narrative to manage.

We've helped other healthcare CFOs in similar spots get clarity on what investors are actually focused on versus what's landing. Often there's a gap worth addressing.

Do you have 15 minutes later this week or next to discuss?

Best,
Sarah
</output>
</example>

<example>
<scenario>Logistics company, IRO recipient, concentration risk theme</scenario>
<output>
Subject: Investor perception question

Hi Maria,

I came across that Bloomberg piece on Vertex and the customer concentration question. I imagine that's a frustrating narrative when there's more to the story.

We've worked with other IR teams dealing with similar concerns, helping them understand what's actually driving investor sentiment and where the messaging might be missing. Sometimes it's a smaller fix than you'd expect.

Would a quick call this week or next be helpful?

Best,
Michael
</output>
</example>

<example>
<scenario>Tech company, CEO recipient, growth slowdown theme</scenario>
<output>
Subject: Quick thought on the narrative

Hi David,

I noticed that Reuters piece on Nexus and the growth questions. Shifting the narrative from hypergrowth to sustainable growth is always a tough one.

We've helped other tech CEOs navigate that transition, getting clarity on what investors need to hear. Happy to share what's worked.

Are you free for a quick call later this week or next?

Best,
Rachel
</output>
</example>`,
}

var introFirst = structureVariant{
	Description: `Paragraph 1 - THE INTRODUCTION (1-2 sentences):
Say who you are and what your firm does in plain words, in a single breath.
Keep it modest: one line on perception research and how investors read a
company, nothing that sounds like a capabilities deck. Example: "I run the
perception research practice at our firm, where we help management teams see
how investors are actually reading their story."

Paragraph 2 - THE CONNECTION (2-3 sentences):
Bridge to them by referencing the news (name the source and general topic) and
the TYPE of question it raises for investors. Stay humble, you know the general
situation, not their internal details. Mention that you've helped others facing
a similar question. This is the paragraph that references the article at
citedArticleIndex.

Paragraph 3 - THE CALL TO ACTION (1-2 sentences):
Propose a specific next step with a timeframe. Always include "this week or next"
or similar. Keep the ask simple and direct: "Would 15 minutes this week or next
be useful?" Avoid awkward phrases like "compare notes" or "swap perspectives."`,

	Examples: `<example>
<scenario>Consumer goods company, IRO recipient, pricing power theme</scenario>
<output>
Subject: Perception work for consumer names

Hi Priya,

I lead investor perception research at our firm, helping IR teams see how the buy side is really reading their story.

The Barron's piece on Halden and pricing power caught my eye. That question tends to linger longer than it should, and we've helped a few consumer IR teams get ahead of it.

Would 15 minutes this week or next be useful?

Best,
Tom
</output>
</example>

<example>
<scenario>Industrial company, CFO recipient, guidance credibility theme</scenario>
<output>
Subject: A thought on guidance

Hi Robert,

I work with CFOs on investor perception, mostly figuring out what analysts actually believe versus what management thinks is landing.

I saw the Reuters coverage of Castor's revised outlook. Guidance resets are hard to message, and we've helped other industrial finance teams rebuild credibility afterward.

Do you have time for a quick call this week or next?

Best,
Elena
</output>
</example>

<example>
<scenario>Software company, CEO recipient, profitability pivot theme</scenario>
<output>
Subject: Investor read on the pivot

Hi Angela,

I run a small team that studies how investors interpret leadership messaging, especially through strategy shifts.

That Bloomberg piece on Lumen's move toward profitability raised the kind of questions we help CEOs get in front of. Usually the gap is smaller than it looks from outside.

Could we find 15 minutes this week or next?

Best,
Marcus
</output>
</example>`,
}
