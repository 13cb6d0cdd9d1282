package llm

import (
	"errors"

	"github.com/rs/zerolog"
)

// Service is the credential source for chat turns: one shared gateway for
// the configured key, or a fresh one when a caller brings its own key.
type Service struct {
	cfg    ProviderConfig
	shared Gateway
	logger zerolog.Logger
}

// NewService builds the shared gateway. A missing credential is not an
// error; Gateway reports ErrConfigMissing until a key is supplied.
func NewService(cfg ProviderConfig, logger zerolog.Logger) (*Service, error) {
	s := &Service{cfg: cfg, logger: logger.With().Str("component", "llm").Logger()}

	gw, err := NewGateway(cfg, cfg.Key())
	switch {
	case errors.Is(err, ErrConfigMissing):
		s.logger.Warn().Str("provider", string(cfg.Type)).Msg("no API key configured, chat will answer in fallback mode")
	case err != nil:
		return nil, err
	default:
		s.shared = gw
		s.logger.Info().Str("provider", gw.Name()).Str("model", orDefault(cfg.Model, DefaultModel(cfg.Type))).Msg("LLM gateway ready")
	}
	return s, nil
}

// NewServiceWithGateway creates service with custom gateway (for testing)
func NewServiceWithGateway(gw Gateway) *Service {
	return &Service{shared: gw, logger: zerolog.Nop()}
}

// Gateway returns the gateway for one call. A non-empty override key takes
// precedence over the configured credential.
func (s *Service) Gateway(override string) (Gateway, error) {
	if override != "" {
		return NewGateway(s.cfg, override)
	}
	if s.shared == nil {
		return nil, ErrConfigMissing
	}
	return s.shared, nil
}
