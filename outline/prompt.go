package outline

import (
	"fmt"
	"strings"
)

// toneInstructions maps a requested tone to the instruction block
// spliced into the system prompt. Unknown tones get "professional".
var toneInstructions = map[string]string{
	"professional": "Write in a professional, formal business tone. Use precise, concise language suitable for corporate stakeholders.",
	"executive":    "Write as if for a C-suite executive audience. Use strategic, high-level language. Focus on business impact, ROI, and outcomes. Be direct and authoritative.",
	"technical":    "Write for a technical audience (engineers, developers, analysts). Use specific technical terminology, include implementation details, and reference best practices.",
	"academic":     "Write in an academic tone. Use formal language, reference evidence-based insights, and structure content logically with clear arguments.",
	"sales":        "Write in a persuasive, energetic sales tone. Emphasize benefits, value propositions, customer outcomes, and calls to action.",
	"simple":       "Write in simple, clear language that anyone can understand. Avoid jargon. Use short sentences and relatable examples.",
}

func toneInstruction(tone string) string {
	if instruction, ok := toneInstructions[strings.ToLower(tone)]; ok {
		return instruction
	}
	return toneInstructions["professional"]
}

func systemPrompt(tone string) string {
	return fmt.Sprintf(`You are an expert presentation writer, business consultant, and communication strategist.
Your job is to write compelling, insightful, and well-structured slide content.

TONE & AUDIENCE: %s

CONTENT RULES — follow these strictly:
1. Every bullet point must be a COMPLETE, meaningful sentence of 15-30 words.
2. Never write vague filler like "Key point", "Important aspect", or "This is significant".
3. Use active voice, concrete details, and specific language.
4. Each bullet must deliver a standalone insight — no repetition across bullets.
5. Slide titles must be descriptive and specific (not generic like "Introduction" or "Overview").

OUTPUT FORMAT: Return ONLY a valid raw JSON array. No markdown, no code fences, no explanation — just the JSON.`, toneInstruction(tone))
}

func userPrompt(req Request) string {
	contextBlock := ""
	if strings.TrimSpace(req.Context) != "" {
		contextBlock = fmt.Sprintf("\nAdditional context about this presentation:\n%s\nUse this context to make the content more specific, relevant, and accurate.\n", strings.TrimSpace(req.Context))
	}

	return fmt.Sprintf(`Create a presentation outline for a slide deck titled "%s".
%s
Topics to cover: %s.

Generate EXACTLY %d slides (content slides only, not the title slide).
Distribute topics logically across all %d slides. If fewer topics than slides, expand each topic with deeper sub-topics and detail.

Return a JSON array of exactly %d objects. Each object must have:
- "title": A specific, descriptive slide title (string, not generic)
- "content": A list of exactly 4 bullet points, each a complete, informative sentence of 15-30 words

JSON only. No extra text.`, req.Title, contextBlock, strings.Join(req.Topics, ", "), req.NumSlides, req.NumSlides, req.NumSlides)
}
