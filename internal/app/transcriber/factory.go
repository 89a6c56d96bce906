package transcriber

import (
	"fmt"

	"transcript-sheets/internal/config"
)

// New builds the provider selected by the configuration
func New(cfg *config.Config) (Transcriber, error) {
	tc := cfg.Transcription

	switch tc.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:   tc.OpenAIAPIKey,
			BaseURL:  tc.OpenAIBaseURL,
			Model:    tc.Model,
			Language: tc.Language,
		}), nil
	case config.ProviderWhisperServer:
		return NewWhisperServerProvider(WhisperServerConfig{
			BaseURL:  tc.WhisperServerURL,
			Language: tc.Language,
			Timeout:  tc.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", tc.Provider)
	}
}
