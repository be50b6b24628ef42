package hint

// Level identifies one of the four disclosure tiers.
type Level int

// The four disclosure tiers, in increasing specificity.
const (
	LevelConcept      Level = 1
	LevelToolArea     Level = 2
	LevelSyntaxPath   Level = 3
	LevelFullSolution Level = 4

	// MinLevel and MaxLevel bound the valid range; out-of-range requests are
	// clamped, never rejected.
	MinLevel = LevelConcept
	MaxLevel = LevelFullSolution
)

// levelInfo holds the static per-level disclosure contract.
type levelInfo struct {
	name      string
	directive string
}

// levels is the disclosure table. It is immutable at runtime and shared
// read-only across all requests.
var levels = map[Level]levelInfo{
	LevelConcept: {
		name: "Concept",
		directive: "Explain only the general concept or theory behind the question. " +
			"Do NOT name any concrete tool, command, menu, or configuration value. " +
			"Keep the answer short (2-3 sentences).",
	},
	LevelToolArea: {
		name: "Tool/Area",
		directive: "Name the relevant tool, program, or configuration area. " +
			"Still do NOT give any concrete command or syntax. " +
			"Example phrasing: 'You need the service manager' or 'Look in the firewall settings'.",
	},
	LevelSyntaxPath: {
		name: "Syntax/Path",
		directive: "Give the exact command, menu path, or syntax so the learner can run it " +
			"themselves. Briefly explain each parameter. Do not walk through the whole " +
			"scenario beyond what is needed to use the syntax.",
	},
	LevelFullSolution: {
		name: "Full Solution",
		directive: "Give the complete solution with every step and explain what each step does.\n" +
			"- Walk through EVERY step present in the context\n" +
			"- Use EXACTLY the addresses, gateways, and values from the context\n" +
			"- Do NOT invent details that are not in the context\n" +
			"- If something is unclear, say so\n" +
			"- Format clearly with numbered steps",
	},
}

// Clamp coerces a requested level into the valid [1,4] range.
// Out-of-range input is not an error: 0 or negative behaves like level 1,
// anything above 4 behaves like level 4.
func Clamp(requested int) Level {
	if requested < int(MinLevel) {
		return MinLevel
	}
	if requested > int(MaxLevel) {
		return MaxLevel
	}
	return Level(requested)
}

// Name returns the fixed human-readable label for the level.
func (l Level) Name() string {
	return levels[l].name
}

// Directive returns the disclosure instruction for the level.
func (l Level) Directive() string {
	return levels[l].directive
}

// Remaining returns how many more specific tiers exist above the level.
// Always in [0,3]; zero only for the full solution tier.
func (l Level) Remaining() int {
	return int(MaxLevel) - int(l)
}
