package config

// QualifiedModelName returns the provider-qualified model name Genkit expects,
// e.g. "googleai/gemini-2.5-flash", "openai/gpt-4o-mini", "ollama/llama3.3".
func (c *Config) QualifiedModelName() string {
	switch c.Provider {
	case ProviderOpenAI:
		return "openai/" + c.ModelName
	case ProviderOllama:
		return "ollama/" + c.ModelName
	default:
		return "googleai/" + c.ModelName
	}
}
