// Package service provides the core business service that implements
// the dependencies required by the HTTP API: the full analysis
// pipeline from raw document text to a credit-equivalence decision.
package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/credeq/credeq/internal/adapters/textract"
	"github.com/credeq/credeq/internal/domain/classify"
	"github.com/credeq/credeq/internal/domain/decision"
	"github.com/credeq/credeq/internal/domain/extract"
	"github.com/credeq/credeq/internal/domain/similarity"
	"github.com/credeq/credeq/pkg/logger"
	"github.com/credeq/credeq/pkg/metrics"
)

// AnalyzeRequest is the validated input of one pipeline run.
type AnalyzeRequest struct {
	Type           string
	SubjectName    string
	SubjectAliases []string
	ApplicantFiles []string
	SunwayFiles    []string
}

// AnalysisResult is the decision-bearing output of one pipeline run.
type AnalysisResult struct {
	ID                       string
	Type                     string
	Verdict                  decision.Verdict
	Reasoning                decision.Reasoning
	SuggestedEquivalentGrade *string
}

// Sizer reports the current entry count of a bounded cache.
type Sizer interface {
	Size() int
}

// Service wires the pipeline components and serves analyses.
type Service struct {
	mu sync.RWMutex

	// Core components
	extractor     *extract.Extractor
	scorer        similarity.Scorer
	engine        *decision.Engine
	textExtractor textract.Extractor
	cacheSizer    Sizer

	// Configuration
	minMatchScore int
	windowRadius  int
	thresholds    decision.Thresholds

	// State
	started  bool
	analyses atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScorer sets the similarity strategy.
func WithScorer(sc similarity.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithExtractor sets the field extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithTextExtractor sets the text-extraction collaborator.
func WithTextExtractor(t textract.Extractor) Option {
	return func(s *Service) {
		if t != nil {
			s.textExtractor = t
		}
	}
}

// WithCacheSizer exposes the embedding cache size through GetStats.
func WithCacheSizer(sz Sizer) Option {
	return func(s *Service) {
		s.cacheSizer = sz
	}
}

// WithThresholds sets the decision rule constants.
func WithThresholds(t decision.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithMinMatchScore sets the minimum fuzzy-match score for extraction.
func WithMinMatchScore(score int) Option {
	return func(s *Service) {
		if score >= 0 && score <= 100 {
			s.minMatchScore = score
		}
	}
}

// WithWindowRadius sets the extraction window radius.
func WithWindowRadius(radius int) Option {
	return func(s *Service) {
		if radius >= 0 {
			s.windowRadius = radius
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		minMatchScore: 80,
		windowRadius:  3,
		thresholds:    decision.DefaultThresholds(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes defaults for any components not supplied via options.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.textExtractor == nil {
		s.textExtractor = textract.NewFileExtractor()
	}
	if s.extractor == nil {
		s.extractor = extract.New(
			extract.WithMinMatchScore(s.minMatchScore),
			extract.WithWindowRadius(s.windowRadius),
		)
	}
	if s.scorer == nil {
		s.scorer = similarity.NewTFIDFScorer()
		s.logger.Info(ctx, "no scorer configured; using lexical TF-IDF")
	}
	s.engine = decision.New(s.thresholds)

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("minMatchScore", s.minMatchScore),
		logger.Int("windowRadius", s.windowRadius),
		logger.Float64("similarityMin", s.thresholds.SimilarityMin),
	)

	return nil
}

// Stop marks the service stopped. Components hold no resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analysis service stopped")
}

// Analyze runs the full pipeline for one request. It returns either a
// validation error or a complete decision-bearing result; extraction
// and scoring failures downstream of validation are absorbed into the
// reasoning record, never surfaced as errors.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	if err := validate(req); err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}

	id := uuid.NewString()
	aliases := req.SubjectAliases
	if len(aliases) == 0 {
		aliases = []string{req.SubjectName}
	}

	applicantCourse, applicantTranscript, err := s.splitApplicantFiles(ctx, req.ApplicantFiles)
	if err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}

	targetCourse, err := s.findTargetCourse(ctx, req.SunwayFiles)
	if err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}

	// Grade, credits and similarity are independent; run them together.
	var (
		wg           sync.WaitGroup
		grade        string
		gradeFound   bool
		credits      int
		creditsFound bool
		sim          float64
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		grade, gradeFound = s.extractor.Grade(ctx, applicantTranscript, aliases)
	}()
	go func() {
		defer wg.Done()
		credits, creditsFound = s.extractor.Credits(ctx, applicantCourse, aliases)
	}()
	go func() {
		defer wg.Done()
		var scoreErr error
		sim, scoreErr = s.scorer.Score(ctx, applicantCourse, targetCourse)
		if scoreErr != nil {
			// A failed scorer degrades to zero similarity; partial
			// reasoning is more useful to the caller than a hard failure.
			s.logger.Warn(ctx, "similarity scoring failed",
				logger.String("analysisID", id),
				logger.Error(scoreErr),
			)
			sim = 0
		}
	}()
	wg.Wait()

	res := s.engine.Decide(decision.Input{
		Subject:      req.SubjectName,
		Similarity:   sim,
		Grade:        grade,
		GradeFound:   gradeFound,
		Credits:      credits,
		CreditsFound: creditsFound,
		AppType:      req.Type,
	})

	s.analyses.Add(1)
	metrics.RecordDecision(res.Verdict == decision.Approve)
	metrics.RecordSimilarityScore(sim)

	s.logger.Info(ctx, "analysis complete",
		logger.String("analysisID", id),
		logger.String("subject", req.SubjectName),
		logger.String("verdict", string(res.Verdict)),
		logger.Float64("similarity", sim),
		logger.Bool("gradeFound", gradeFound),
		logger.Bool("creditsFound", creditsFound),
	)

	return &AnalysisResult{
		ID:                       id,
		Type:                     req.Type,
		Verdict:                  res.Verdict,
		Reasoning:                res.Reasoning,
		SuggestedEquivalentGrade: res.SuggestedEquivalentGrade,
	}, nil
}

// splitApplicantFiles extracts every applicant file and splits the
// texts into course content and concatenated transcript text.
func (s *Service) splitApplicantFiles(ctx context.Context, paths []string) (course, transcript string, err error) {
	for _, p := range paths {
		if _, statErr := os.Stat(p); statErr != nil {
			return "", "", fmt.Errorf("%w: applicant file %s", ErrFileNotFound, p)
		}

		text, exErr := s.textExtractor.Extract(ctx, p)
		if exErr != nil {
			s.logger.Warn(ctx, "text extraction failed", logger.String("path", p), logger.Error(exErr))
		}

		if classify.Classify(text) == classify.CourseContent {
			course = text
		} else {
			transcript += text + "\n"
		}
	}

	if course == "" {
		return "", "", ErrNoApplicantCourse
	}
	return course, transcript, nil
}

// findTargetCourse extracts the institution files and returns the
// course-content text among them.
func (s *Service) findTargetCourse(ctx context.Context, paths []string) (string, error) {
	var course string
	for _, p := range paths {
		if _, statErr := os.Stat(p); statErr != nil {
			return "", fmt.Errorf("%w: institution file %s", ErrFileNotFound, p)
		}

		text, exErr := s.textExtractor.Extract(ctx, p)
		if exErr != nil {
			s.logger.Warn(ctx, "text extraction failed", logger.String("path", p), logger.Error(exErr))
		}

		if classify.Classify(text) == classify.CourseContent {
			course = text
		}
	}

	if course == "" {
		return "", ErrNoTargetCourse
	}
	return course, nil
}

func validate(req AnalyzeRequest) error {
	if req.SubjectName == "" {
		return ErrMissingSubject
	}
	if len(req.ApplicantFiles) == 0 || len(req.SunwayFiles) == 0 {
		return ErrMissingFiles
	}
	return nil
}

// Stats is a point-in-time snapshot of service state for monitoring.
// EmbeddingCacheSize is nil when no bounded cache is wired.
type Stats struct {
	Started            bool   `json:"started"`
	Analyses           int64  `json:"analyses"`
	Scorer             string `json:"scorer"`
	MinMatchScore      int    `json:"min_match_score"`
	WindowRadius       int    `json:"window_radius"`
	EmbeddingCacheSize *int   `json:"embedding_cache_size,omitempty"`
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:       s.started,
		Analyses:      s.analyses.Load(),
		Scorer:        scorerName(s.scorer),
		MinMatchScore: s.minMatchScore,
		WindowRadius:  s.windowRadius,
	}
	if s.cacheSizer != nil {
		n := s.cacheSizer.Size()
		stats.EmbeddingCacheSize = &n
	}
	return stats
}

func scorerName(sc similarity.Scorer) string {
	switch sc.(type) {
	case nil:
		return ""
	case *similarity.TFIDFScorer:
		return "tfidf"
	case *similarity.EmbeddingScorer:
		return "embedding"
	default:
		return "custom"
	}
}
