package openai

import (
	"fmt"
	"strings"
)

// Prompt text lives here so wording tweaks do not require hunting through
// call sites.

const captionFinishedRole = "You are describing a young artist's FINISHED comic and pop-culture fan art for an online portfolio."

const captionSketchbookRole = "You are describing a young artist's SKETCHBOOK STUDY or work-in-progress for an online portfolio."

const captionRules = `The artwork often depicts well-known comic, superhero, and pop-culture characters.
If the character is clearly recognisable (e.g. Batman, Deadpool, Spider-Man, Teenage Mutant Ninja Turtles like Leonardo/Donatello/Raphael/Michelangelo, etc.), YOU SHOULD NAME THE CHARACTER EXPLICITLY in both the title and caption.
If you are not confident who it is, describe them generically (e.g. 'armoured hero', 'masked vigilante', 'turtle warrior') without guessing.

Respond in STRICT JSON with exactly two keys: 'title' and 'caption'.

TITLE RULES:
- 3-9 words.
- Include the character's name if known (e.g. 'Batman Profile Illustration', 'Leonardo Close-Up', 'Deadpool Pose Study').
- No quotes, no trailing full stop.

CAPTION RULES:
- 1 sentence, ideally 18-30 words.
- Start with the character's name if known (e.g. 'Batman is shown...', 'Leonardo appears...', 'This sketch of Deadpool...').
- Mention drawing medium (pencil, ink, markers) and key stylistic notes (dynamic pose, bold shadows, expressive linework, moody lighting, etc.).
- Focus on what is visible in the artwork: subject, pose, mood, style.
- Do NOT invent backstory or storylines.
- Do NOT mention AI, the prompt, or that this is by a child.`

func captionPrompt(kind string) string {
	role := captionFinishedRole
	if kind == "sketchbook" {
		role = captionSketchbookRole
	}
	return role + "\n" + captionRules
}

const tagFinishedRole = "You are tagging a young artist's FINISHED comic and pop-culture artwork for an online portfolio."

const tagSketchbookRole = "You are tagging a young artist's SKETCHBOOK STUDIES and work-in-progress comic and pop-culture artwork for an online portfolio."

const tagRulesTemplate = `You are given the TITLE and CAPTION that already describe a piece of artwork.

Do NOT change the title or caption. Your job is ONLY to create useful tags and extract clearly named characters.

TITLE:
"""%s"""

CAPTION:
"""%s"""

RULES FOR TAGS:
- Generate 5 to %d tags.
- Tags should be simple, lowercase words or short phrases.
- No '#' prefix, no trailing punctuation.
- Focus on what is clearly implied by the title + caption:
  - characters (e.g. batman, deadpool, spider-man, ninja turtle)
  - type of art (comic art, fan art, sketch, marker drawing, inked line art)
  - pose (dynamic pose, close-up, profile, action pose)
  - mood (dramatic, moody, playful)
  - visual elements (bold shadows, expressive linework, cross-hatching, strong contrast)
- Prefer concise phrases like:
  - "comic art", "fan art", "marker drawing", "dynamic pose", "profile view", "close-up", "inked line art", "turtle warrior", "masked vigilante"
- Do NOT invent storylines or backstory.
- Do NOT mention AI, prompts, or the artist's age.

RULES FOR CHARACTERS:
- The "characters" field must be a list of PROPER NAMES ONLY, e.g.: ["Batman", "Deadpool", "Spider-Man", "Leonardo", "Michelangelo"]
- Include a character ONLY if you are confident the title+caption clearly name them.
- If an alias and real name both appear, choose the better-known name (e.g. "Spider-Man" instead of "Peter Parker").
- If NO clear named characters appear, return an empty list: [].

Respond in STRICT JSON with exactly two keys: "tags" and "characters".

Example format:
{
  "tags": [
    "comic art",
    "dynamic pose",
    "inked line art",
    "batman"
  ],
  "characters": [
    "Batman"
  ]
}`

func tagPrompt(title, caption, kind string, maxTags int) string {
	role := tagFinishedRole
	if kind == "sketchbook" {
		role = tagSketchbookRole
	}
	var b strings.Builder
	b.WriteString(role)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, tagRulesTemplate, title, caption, maxTags)
	return b.String()
}
