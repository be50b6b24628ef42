package hint

import (
	"fmt"
	"strings"
)

// languageNames maps config language codes to the instruction wording used in
// the system prompt. Unknown codes fall through to the code itself so a
// deployment can request any language the model supports.
var languageNames = map[string]string{
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	if code == "" {
		return "English"
	}
	return code
}

// buildSystemPrompt renders the role and policy framing for one request.
// The level directive bounds specificity; the grounding rules bound factual
// content to the retrieved context; the placeholder rules make numeric
// identifiers in course material per-learner substitutable.
func buildSystemPrompt(level Level, language string) string {
	var b strings.Builder

	b.WriteString("You are a tutor for IT administration and cybersecurity training.\n")
	b.WriteString("You help learners with hands-on lab exercises by giving progressive hints.\n\n")

	fmt.Fprintf(&b, "CURRENT HINT LEVEL: %d (%s)\n", int(level), level.Name())
	fmt.Fprintf(&b, "INSTRUCTION: %s\n\n", level.Directive())

	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "- Answer in %s\n", languageName(language))
	b.WriteString("- Be precise and clear\n")
	b.WriteString("- Give ONLY information appropriate to the current level\n")
	b.WriteString("- Use EXACTLY the IP addresses, subnets, and gateways from the context\n")
	b.WriteString("- Do NOT invent values that are not in the context or the course material\n")
	b.WriteString("- If information is missing, say: \"This information is not in the course material\"\n")
	b.WriteString("- Keep variable notation from the material: write 192.168.x.0 rather than a concrete address\n")
	b.WriteString("- Explain that x is the learner's lab number (lab03 means x = 3)\n")
	b.WriteString("- If the learner states their lab context, substitute x with their number;\n")
	b.WriteString("  otherwise preserve the placeholder form\n")

	return b.String()
}

// buildUserPrompt renders the task framing: question, retrieved context, and
// the learner's lab scoping, in that order.
func buildUserPrompt(question, context, labContext string, level Level) string {
	if labContext == "" {
		labContext = "No specific lab context given"
	}

	var b strings.Builder
	b.WriteString("LEARNER'S QUESTION:\n")
	b.WriteString(question)
	b.WriteString("\n\nCONTEXT FROM THE KNOWLEDGE BASE (if you use information from anywhere else, mark it clearly as not from the course material):\n")
	b.WriteString(context)
	b.WriteString("\n\nLAB CONTEXT:\n")
	b.WriteString(labContext)
	fmt.Fprintf(&b, "\n\nGive a hint at level %d (%s).", int(level), level.Name())

	return b.String()
}
