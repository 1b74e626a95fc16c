package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai/gemini"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/analyzer"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/githubapi"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/secrets"
)

// buildPipeline wires the analyzer from configuration: GitHub client,
// optional Gemini auditor, scoring weights and evidence bound. A broken
// or absent AI configuration downgrades to fallback-only audits instead
// of failing startup.
func buildPipeline(ctx context.Context, config *Config, logger *zap.Logger) (*analyzer.Service, error) {
	token, err := resolveGitHubToken(config)
	if err != nil {
		return nil, fmt.Errorf("loading github token: %w", err)
	}

	if token == "" {
		logger.Warn("github token is not configured, using unauthenticated API access",
			zap.String("hint", "set GITHUB_TOKEN_FILE or the github.token-file config key"))
	}

	source := githubapi.New(ctx, token, logger)

	auditor, err := newAuditor(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("audit disabled, every result will carry the fallback analysis", zap.Error(err))
		auditor = nil
	}

	cfg := analyzer.Config{Weights: config.Scoring}
	if config.Evidence != nil {
		cfg.MaxEvidence = config.Evidence.MaxRepos
	}
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.TimeoutSeconds > 0 {
		cfg.AuditTimeout = time.Duration(config.AI.Gemini.TimeoutSeconds) * time.Second
	}

	return analyzer.New(source, auditor, cfg, logger), nil
}

func resolveGitHubToken(config *Config) (string, error) {
	if config.GitHub == nil {
		return "", nil
	}
	if strings.TrimSpace(config.GitHub.Token) == "" && strings.TrimSpace(config.GitHub.TokenFile) == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name:  "github token",
		Value: config.GitHub.Token,
		File:  config.GitHub.TokenFile,
	})
}

func newAuditor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Auditor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai analysis is not enabled")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	auditorLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewAuditor(generator, auditorLogger, cfg.Gemini.MaxLogLength), nil
}
