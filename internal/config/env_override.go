package config

import "os"

// applyEnvOverrides lets environment variables take precedence over file
// values, so API keys never have to live in a checked-in config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DRAFTFORGE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("DRAFTFORGE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("DRAFTFORGE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("DRAFTFORGE_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}

	// Provider-native variables as fallback.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}
