package config

// RedactedConfig returns a shallow copy of cfg with sensitive fields replaced
// by the redaction placeholder "***". Use this when logging or printing the
// active configuration so secrets are never accidentally exposed.
func RedactedConfig(cfg *Config) Config {
	out := *cfg // shallow copy of the top-level struct

	// Server
	redact(&out.Server.APIKey)

	// Kalshi
	redact(&out.Kalshi.PrivateKeyPEM)
	redact(&out.Kalshi.PrivateKeyBase64)
	redact(&out.Kalshi.KeyPassword)

	// OpenAI
	redact(&out.OpenAI.APIKey)

	// Redis
	redact(&out.Redis.Password)

	// Postgres
	redact(&out.Postgres.DSN)
	redact(&out.Postgres.Password)

	// Copy slices so callers cannot mutate the original through the redacted
	// copy.
	if cfg.Server.CORSOrigins != nil {
		out.Server.CORSOrigins = make([]string, len(cfg.Server.CORSOrigins))
		copy(out.Server.CORSOrigins, cfg.Server.CORSOrigins)
	}
	if cfg.Kalshi.BaseURLs != nil {
		out.Kalshi.BaseURLs = make([]string, len(cfg.Kalshi.BaseURLs))
		copy(out.Kalshi.BaseURLs, cfg.Kalshi.BaseURLs)
	}
	if cfg.Poller.Series != nil {
		out.Poller.Series = make([]string, len(cfg.Poller.Series))
		copy(out.Poller.Series, cfg.Poller.Series)
	}

	return out
}

const redacted = "***"

// redact replaces a non-empty string with the redacted placeholder.
func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}
