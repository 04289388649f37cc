// Package pipeline orchestrates claim verification end to end: ingest,
// language detection, claim extraction, evidence gathering, verdict,
// virality scoring, and explanation localization.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/cache"
	"github.com/veritaslabs/veritas/internal/credibility"
	"github.com/veritaslabs/veritas/internal/evidence"
	"github.com/veritaslabs/veritas/internal/extract"
	"github.com/veritaslabs/veritas/internal/ingest"
	"github.com/veritaslabs/veritas/internal/jobs"
	"github.com/veritaslabs/veritas/internal/llm"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/search"
	"github.com/veritaslabs/veritas/internal/synthesis"
	"github.com/veritaslabs/veritas/internal/verdict"
	"github.com/veritaslabs/veritas/internal/virality"
)

const degradedExplanation = "Verification could not be completed for this claim. A human reviewer should examine it."

// Pipeline runs verification jobs. Claims within a job are verified
// sequentially; a failure in one claim degrades that claim's result and
// never aborts the job.
type Pipeline struct {
	ingestors map[model.ContentType]ingest.Ingestor
	detector  extract.LanguageDetector
	extractor *extract.Extractor
	gatherer  *evidence.Gatherer
	engine    *verdict.Engine
	scorer    *virality.Scorer
	localizer *synthesis.Localizer
	registry  *jobs.Registry
	cfg       *model.Config
}

// NewPipeline wires the full production pipeline from configuration
func NewPipeline(cfg *model.Config, registry *jobs.Registry) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	resolver := credibility.NewResolver(&cfg.Credibility)
	queryCache := cache.NewMemoryCache(cfg.Search.CacheTTL, cfg.Jobs.CleanupInterval)
	searchProvider := search.NewDuckDuckGo(cfg.HTTP, cfg.Search)

	var factCheck evidence.FactChecker
	if c := search.NewFactCheckClient(cfg.Search.FactCheckAPIKey, cfg.HTTP.Timeout,
		cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy); c != nil {
		factCheck = c
	}

	return &Pipeline{
		ingestors: map[model.ContentType]ingest.Ingestor{
			model.ContentText: ingest.TextIngestor{},
			model.ContentURL:  ingest.NewURLIngestor(cfg.HTTP, cfg.Search),
		},
		detector:  extract.NewLLMDetector(provider),
		extractor: extract.NewExtractor(provider),
		gatherer:  evidence.NewGatherer(searchProvider, factCheck, resolver, queryCache, cfg.Search),
		engine:    verdict.NewEngine(provider, cfg.Verdict),
		scorer:    virality.NewScorer(cfg.Virality),
		localizer: synthesis.NewLocalizer(provider, cfg.Language),
		registry:  registry,
		cfg:       cfg,
	}, nil
}

// sink receives pipeline progress as a job runs
type sink interface {
	Progress(note string)
	Claims(lang string, claims []model.Claim)
	Result(r model.ClaimResult)
}

// Run executes one registered job to a terminal state. It is the single
// writer for the job and is handed to the jobs manager as its RunFunc.
func (p *Pipeline) Run(ctx context.Context, jobID string) {
	job, err := p.registry.Get(jobID)
	if err != nil {
		zap.S().Errorw("job vanished before run", "job_id", jobID, "error", err)
		return
	}
	if err := p.registry.MarkProcessing(jobID); err != nil {
		zap.S().Errorw("job not in runnable state", "job_id", jobID, "error", err)
		return
	}

	summary, err := p.execute(ctx, job.Submission, &registrySink{registry: p.registry, jobID: jobID})
	if err != nil {
		zap.S().Infow("job failed", "job_id", jobID, "error", err)
		if failErr := p.registry.Fail(jobID, err.Error()); failErr != nil {
			zap.S().Errorw("could not mark job failed", "job_id", jobID, "error", failErr)
		}
		return
	}

	if err := p.registry.Complete(jobID, summary); err != nil {
		zap.S().Errorw("could not complete job", "job_id", jobID, "error", err)
		return
	}
	zap.S().Infow("job completed", "job_id", jobID,
		"claims", summary.TotalClaims, "highest_risk", summary.HighestRisk)
}

// VerifyContent runs a submission synchronously and returns the finished
// job. One-shot CLI verification uses this path; no registry involved.
func (p *Pipeline) VerifyContent(ctx context.Context, sub model.Submission) (*model.Job, error) {
	job := &model.Job{
		Status:     model.StatusProcessing,
		Submission: sub,
		CreatedAt:  time.Now().UTC(),
	}

	summary, err := p.execute(ctx, sub, &jobSink{job: job})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job.Status = model.StatusCompleted
	job.Summary = summary
	job.CompletedAt = &now
	return job, nil
}

// execute runs the shared stage sequence for a submission
func (p *Pipeline) execute(ctx context.Context, sub model.Submission, s sink) (*model.Summary, error) {
	ingestor, ok := p.ingestors[sub.ContentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type: %s", sub.ContentType)
	}

	s.Progress("ingesting content")
	text, err := ingestor.Ingest(ctx, sub.Content)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	s.Progress("detecting language")
	lang := p.detector.Detect(ctx, text)

	s.Progress("extracting claims")
	claims, err := p.extractor.Extract(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, fmt.Errorf("no verifiable claims found in the content")
	}
	s.Claims(lang, claims)

	results := make([]model.ClaimResult, 0, len(claims))
	for i, claim := range claims {
		s.Progress(fmt.Sprintf("verifying claim %d of %d", i+1, len(claims)))
		result := p.verifyClaim(ctx, claim, text, sub.Engagement, lang)
		results = append(results, result)
		s.Result(result)
	}

	return model.Summarize(results), nil
}

// verifyClaim runs the per-claim stages. Any error or panic degrades to a
// Neutral result flagged for review; the job keeps going.
func (p *Pipeline) verifyClaim(ctx context.Context, claim model.Claim, originalText string, eng model.Engagement, lang string) (result model.ClaimResult) {
	score := p.scorer.Score(claim.Text, originalText, eng)

	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("panic verifying claim", "claim_id", claim.ID, "panic", r)
			result = p.degradedResult(claim, nil, score)
		}
	}()

	ev := p.gatherer.Gather(ctx, claim.Text)

	v, err := p.engine.Evaluate(ctx, claim, ev)
	if err != nil {
		zap.S().Warnw("verdict failed", "claim_id", claim.ID, "error", err)
		return p.degradedResult(claim, ev, score)
	}

	var local *string
	if lang != "" && lang != "en" {
		local = p.localizer.Localize(ctx, v.Explanation, lang)
	}

	return model.ClaimResult{
		Claim:            claim,
		Label:            v.Label,
		InternalLabel:    v.InternalLabel,
		Confidence:       v.Confidence,
		Explanation:      v.Explanation,
		ExplanationLocal: local,
		Evidence:         ev,
		NeedsHumanReview: v.NeedsHumanReview,
		ViralityScore:    score,
		RiskLevel:        virality.RiskFor(v.Label, score),
		VerifiedAt:       time.Now().UTC(),
	}
}

func (p *Pipeline) degradedResult(claim model.Claim, ev []model.EvidenceItem, score int) model.ClaimResult {
	if ev == nil {
		ev = []model.EvidenceItem{}
	}
	return model.ClaimResult{
		Claim:            claim,
		Label:            model.LabelNeutral,
		InternalLabel:    model.InternalInsufficient,
		Confidence:       0,
		Explanation:      degradedExplanation,
		Evidence:         ev,
		NeedsHumanReview: true,
		ViralityScore:    score,
		RiskLevel:        virality.RiskFor(model.LabelNeutral, score),
		VerifiedAt:       time.Now().UTC(),
	}
}

// registrySink writes progress into the job registry
type registrySink struct {
	registry *jobs.Registry
	jobID    string
}

func (s *registrySink) Progress(note string) {
	if err := s.registry.SetProgress(s.jobID, note); err != nil {
		zap.S().Debugw("progress note dropped", "job_id", s.jobID, "error", err)
	}
}

func (s *registrySink) Claims(lang string, claims []model.Claim) {
	if err := s.registry.SetClaims(s.jobID, lang, claims); err != nil {
		zap.S().Errorw("could not record claims", "job_id", s.jobID, "error", err)
	}
}

func (s *registrySink) Result(r model.ClaimResult) {
	if err := s.registry.AppendResult(s.jobID, r); err != nil {
		zap.S().Errorw("could not record result", "job_id", s.jobID, "error", err)
	}
}

// jobSink accumulates progress directly on an unregistered job
type jobSink struct {
	job *model.Job
}

func (s *jobSink) Progress(note string) { s.job.ProgressNote = note }

func (s *jobSink) Claims(lang string, claims []model.Claim) {
	s.job.Language = lang
	s.job.Claims = claims
}

func (s *jobSink) Result(r model.ClaimResult) { s.job.Results = append(s.job.Results, r) }
