package pipeline

import (
	"context"
	"time"

	"github.com/feedguard/feedguard/internal/behavior"
	"github.com/feedguard/feedguard/internal/classify"
	"github.com/feedguard/feedguard/internal/ingest"
	"github.com/feedguard/feedguard/internal/intervene"
	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/recommend"
	"github.com/feedguard/feedguard/internal/score"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is one analysis job: raw content plus the user's behavioral
// signals. UserID may be empty for anonymous one-shot analysis; behavior
// tracking and insights are skipped in that case.
type Request struct {
	Raw        ingest.RawItem          `json:"content"`
	UserID     string                  `json:"user_id,omitempty"`
	Behavioral model.BehavioralContext `json:"context"`
}

// Coordinator runs the analysis stages in fixed order: normalize, classify,
// score, track, recommend, render. Stages after normalization are total, so
// a run that passes input validation always completes.
type Coordinator struct {
	normalizer *ingest.Normalizer
	classifier *classify.Classifier
	scorer     *score.Scorer
	tracker    *behavior.Tracker
	selector   *recommend.Selector
	renderer   *intervene.Renderer
	metrics    *Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewCoordinator wires the pipeline stages together
func NewCoordinator(
	classifier *classify.Classifier,
	tracker *behavior.Tracker,
	selector *recommend.Selector,
	metrics *Metrics,
	logger *zap.Logger,
) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Coordinator{
		normalizer: ingest.NewNormalizer(),
		classifier: classifier,
		scorer:     score.NewScorer(),
		tracker:    tracker,
		selector:   selector,
		renderer:   intervene.NewRenderer(),
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Metrics exposes the coordinator's counters
func (c *Coordinator) Metrics() *Metrics {
	return c.metrics
}

// Tracker exposes the behavior tracker for stats and deletion endpoints
func (c *Coordinator) Tracker() *behavior.Tracker {
	return c.tracker
}

// Analyze runs the full pipeline for one request. On failure the returned
// error is a StageError carrying the partial result computed so far.
func (c *Coordinator) Analyze(ctx context.Context, req Request) (*model.AnalysisResult, error) {
	start := c.now()
	result := &model.AnalysisResult{
		RunID:      uuid.NewString(),
		AnalyzedAt: start.UTC(),
	}

	log := c.logger.With(zap.String("run_id", result.RunID))
	log.Info("analysis started", zap.String("title", req.Raw.Title))

	item, cctx, err := c.normalizer.Normalize(req.Raw)
	if err != nil {
		result.ElapsedSeconds = c.since(start)
		c.metrics.recordFailure(model.StageNormalize)
		log.Warn("normalization rejected input", zap.Error(err))
		return result, &model.StageError{Stage: model.StageNormalize, Err: err, Partial: result}
	}
	result.Item = item
	result.Context = cctx

	result.Classification = c.classifier.Classify(ctx, item, cctx)
	log.Debug("content classified",
		zap.String("category", string(result.Classification.Category)),
		zap.String("source", result.Classification.Source))

	result.Risk = c.scorer.Score(result.Classification, req.Behavioral)
	log.Debug("risk scored",
		zap.Int("index", result.Risk.Index),
		zap.String("action", string(result.Risk.Action)))

	if req.UserID != "" && c.tracker != nil {
		c.tracker.Record(req.UserID, item, result.Risk.Index, result.Classification.Category)
		result.Insight = c.tracker.Analyze(req.UserID)
	}

	if c.selector != nil {
		result.Alternatives = c.selector.Recommend(ctx, item, result.Classification)
	}

	result.Decision = c.renderer.Render(result.Risk.Action, result.Risk.Index, result.Alternatives)

	result.ElapsedSeconds = c.since(start)
	c.metrics.recordRun(result.Risk.Action)
	log.Info("analysis complete",
		zap.Int("index", result.Risk.Index),
		zap.String("intervention", string(result.Decision.Action)),
		zap.Float64("elapsed_seconds", result.ElapsedSeconds))

	return result, nil
}

func (c *Coordinator) since(start time.Time) float64 {
	return c.now().Sub(start).Seconds()
}
