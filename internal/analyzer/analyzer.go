package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/githubapi"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/stats"
	"go.uber.org/zap"
)

// ErrInvalidInput reports an empty or whitespace-only username. It is
// checked before any collaborator is called.
var ErrInvalidInput = errors.New("username is required")

const (
	defaultMaxEvidence  = 20
	defaultAuditTimeout = 60 * time.Second
)

// ProfileSource provides the upstream profile and repository listing.
type ProfileSource interface {
	FetchProfile(ctx context.Context, handle string) (*githubapi.Profile, []githubapi.Repository, error)
}

// Config carries the tunables of one analyzer instance.
type Config struct {
	Weights      stats.Weights
	MaxEvidence  int
	AuditTimeout time.Duration
}

// Service runs the analysis pipeline: fetch, aggregate, score, audit,
// assemble. The auditor is optional; without one every result carries
// the fallback audit.
type Service struct {
	source  ProfileSource
	auditor ai.Auditor
	cfg     Config
	logger  *zap.Logger
}

func New(source ProfileSource, auditor ai.Auditor, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxEvidence <= 0 {
		cfg.MaxEvidence = defaultMaxEvidence
	}
	if cfg.AuditTimeout <= 0 {
		cfg.AuditTimeout = defaultAuditTimeout
	}
	if cfg.Weights.Star == 0 && cfg.Weights.Repo == 0 {
		cfg.Weights = stats.DefaultWeights()
	}

	return &Service{
		source:  source,
		auditor: auditor,
		cfg:     cfg,
		logger:  logger,
	}
}

// Analyze runs the full pipeline for one username. An empty username
// fails with ErrInvalidInput, a missing account with
// githubapi.ErrNotFound; an audit failure never fails the request.
func (s *Service) Analyze(ctx context.Context, username, jobDescription string) (*Result, error) {
	handle := strings.TrimSpace(username)
	if handle == "" {
		return nil, ErrInvalidInput
	}

	profile, repos, err := s.source.FetchProfile(ctx, handle)
	if err != nil {
		if errors.Is(err, githubapi.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	agg := stats.New(repos)
	languages := agg.Languages()
	score := agg.Score(s.cfg.Weights)

	s.logger.Info("aggregated profile stats",
		zap.String("handle", handle),
		zap.Int("total_stars", agg.TotalStars),
		zap.Int("total_forks", agg.TotalForks),
		zap.Int("substantive_repos", agg.SubstantiveRepos),
		zap.Int("skill_score", score),
	)

	audit := s.audit(ctx, &ai.Request{
		Handle:         handle,
		Bio:            profile.Bio,
		TopLanguages:   agg.TopLanguages(5),
		Repos:          buildEvidence(repos, s.cfg.MaxEvidence),
		JobDescription: jobDescription,
	})

	return assemble(profile, agg, score, languages, audit), nil
}

// audit performs at most one model call and degrades to the fallback on
// any failure. The audit is an enrichment layer; its unavailability must
// never turn into a pipeline error.
func (s *Service) audit(ctx context.Context, req *ai.Request) *ai.Audit {
	if s.auditor == nil {
		s.logger.Debug("auditor is not configured, using fallback audit",
			zap.String("handle", req.Handle))
		return ai.FallbackAudit(req.TopLanguages)
	}

	auditCtx, cancel := context.WithTimeout(ctx, s.cfg.AuditTimeout)
	defer cancel()

	audit, err := s.auditor.Audit(auditCtx, req)
	if err != nil || audit == nil {
		s.logger.Warn("audit degraded, using fallback audit",
			zap.String("handle", req.Handle),
			zap.Error(err),
		)
		return ai.FallbackAudit(req.TopLanguages)
	}

	return audit
}
