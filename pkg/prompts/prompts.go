package prompts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// educationalPhilosophy carries the teaching policy. All educational logic
// lives in the system prompt; the engine stays generic.
const educationalPhilosophy = `EDUCATIONAL PHILOSOPHY:
- Use Socratic questioning to guide discovery, never just give answers
- Celebrate every attempt and effort, not just correct answers
- Connect abstract concepts to concrete, visual representations
- Maintain optimal challenge level: 80% success rate for confidence building
- Provide immediate, specific feedback on the player's reasoning`

const communicationStyle = `COMMUNICATION STYLE:
- Enthusiastic but not overwhelming
- Age-appropriate vocabulary
- Focus on the thinking process, not just answers
- Use game metaphors: "mathematical powers," "number magic," "calculation spells"

Remember: Every interaction should build both understanding AND confidence!`

// Game identifies the game a prompt is built for.
type Game struct {
	Type    string // e.g. "multiplication_runner"
	Subject string // e.g. "mathematics"
	Topic   string // e.g. "multiplication"
	AgeMin  int
	AgeMax  int
}

// Title renders the game type as a display title,
// e.g. "multiplication_runner" becomes "Multiplication Runner".
func (g Game) Title() string {
	name := strings.ReplaceAll(g.Type, "_", " ")
	return cases.Title(language.English).String(name)
}
