package config

import "time"

// Fallback values applied after all sources are merged, so the server can
// start with an empty environment during local development.
const (
	defaultHTTPAddress    = "localhost:8080"
	defaultDatabaseDSN    = "intelligence_platform.db"
	defaultTokenIssuer    = "intel-platform"
	defaultTokenDuration  = 12 * time.Hour
	defaultRequestTimeout = 30 * time.Second

	defaultAssistantBaseURL = "https://api.openai.com/v1"
	defaultAssistantModel   = "gpt-4.1-nano"
	defaultAssistantTimeout = 2 * time.Minute
)

func applyDefaults(cfg *StructuredConfig) {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDatabaseDSN
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = defaultTokenDuration
	}
	if cfg.Assistant.BaseURL == "" {
		cfg.Assistant.BaseURL = defaultAssistantBaseURL
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = defaultAssistantModel
	}
	if cfg.Assistant.RequestTimeout == 0 {
		cfg.Assistant.RequestTimeout = defaultAssistantTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}
