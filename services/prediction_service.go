package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"views-prediction-api/logger"
	"views-prediction-api/models"
	"views-prediction-api/predictor"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid prediction input")
	ErrEmptyPrediction   = errors.New("model returned no prediction")
	ErrInvalidPrediction = errors.New("model returned a non-finite prediction")
)

// PredictionEvent is published to Redis after every served estimate.
type PredictionEvent struct {
	ID             string                   `json:"id"`
	TS             time.Time                `json:"ts"`
	Model          string                   `json:"model"`
	Request        models.PredictionRequest `json:"request"`
	EstimatedViews int64                    `json:"estimated_views"`
	Cached         bool                     `json:"cached"`
}

type PredictionService struct {
	modelID string
	model   predictor.Predictor
	cache   *CacheService
	log     *logger.Logger
}

// NewPredictionService takes the loaded, read-only model handle. cache may be nil.
func NewPredictionService(modelID string, model predictor.Predictor, cache *CacheService, log *logger.Logger) *PredictionService {
	if log == nil {
		log = logger.Nop()
	}
	return &PredictionService{modelID: modelID, model: model, cache: cache, log: log}
}

func (s *PredictionService) ModelID() string {
	return s.modelID
}

// BuildRequest turns form input into the fixed seven-column record. The
// engagement rate and category code are always derived here.
func BuildRequest(in models.PredictionInput) (models.PredictionRequest, error) {
	if in.Likes < 0 || in.Comments < 0 {
		return models.PredictionRequest{}, fmt.Errorf("%w: likes and comments must be non-negative", ErrInvalidInput)
	}
	if in.PublishHour < 0 || in.PublishHour > 23 {
		return models.PredictionRequest{}, fmt.Errorf("%w: publish hour must be between 0 and 23", ErrInvalidInput)
	}
	if _, err := DayOf(in.DayOfWeek); err != nil {
		return models.PredictionRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	categoryID, err := ResolveCategory(in.Category)
	if err != nil {
		return models.PredictionRequest{}, err
	}

	return models.PredictionRequest{
		Likes:          in.Likes,
		CommentCount:   in.Comments,
		CategoryID:     categoryID,
		ChannelTitle:   in.ChannelTitle,
		PublishHour:    in.PublishHour,
		DayOfWeek:      in.DayOfWeek,
		EngagementRate: EngagementRate(in.Likes, in.Comments),
	}, nil
}

// Estimate runs the model on a single record and truncates the first output
// to a whole, non-negative view count.
func (s *PredictionService) Estimate(ctx context.Context, req models.PredictionRequest) (int64, error) {
	table, err := predictor.NewTable(req.Row())
	if err != nil {
		return 0, err
	}

	start := time.Now()
	out, err := s.model.Predict(ctx, table)
	predictDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, ErrEmptyPrediction
	}
	return TruncateViews(out[0])
}

func TruncateViews(raw float64) (int64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, ErrInvalidPrediction
	}
	if raw <= 0 {
		return 0, nil
	}
	if raw >= math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(raw), nil
}

// Predict is one full request/response cycle: build the record, estimate, and
// describe the result. Model failures are returned as-is.
func (s *PredictionService) Predict(ctx context.Context, in models.PredictionInput) (*models.PredictionResult, error) {
	req, err := BuildRequest(in)
	if err != nil {
		predictionsFailed.WithLabelValues("input").Inc()
		return nil, err
	}

	key := s.cacheKey(req)
	var views int64
	cached, err := s.cache.Get(ctx, key, &views)
	if err != nil {
		s.log.Warn("prediction cache read failed", "key", key, "error", err)
	}
	if cached {
		predictionsCached.Inc()
	} else {
		views, err = s.Estimate(ctx, req)
		if err != nil {
			predictionsFailed.WithLabelValues("model").Inc()
			return nil, err
		}
		if err := s.cache.Set(ctx, key, views); err != nil {
			s.log.Warn("prediction cache write failed", "key", key, "error", err)
		}
	}

	result := Describe(req, views)
	result.ID = uuid.NewString()
	result.Model = s.modelID

	predictionsServed.WithLabelValues(s.modelID).Inc()
	estimatedViews.Observe(float64(views))

	event := PredictionEvent{
		ID:             result.ID,
		TS:             time.Now().UTC(),
		Model:          s.modelID,
		Request:        req,
		EstimatedViews: views,
		Cached:         cached,
	}
	if s.cache.Available() {
		if err := s.cache.Publish(ctx, PredictionsChannel, event); err != nil {
			s.log.Warn("prediction publish failed", "id", result.ID, "error", err)
		} else {
			predictionsPublished.Inc()
		}
	}

	s.log.Debug("prediction served",
		"id", result.ID,
		"model", s.modelID,
		"category_id", req.CategoryID,
		"estimated_views", views,
		"cached", cached,
	)
	return result, nil
}

// Describe builds the displayed result for an estimate: formatted count, range,
// timing, insight and an echo of the input.
func Describe(req models.PredictionRequest, views int64) *models.PredictionResult {
	category, _ := CategoryLabel(req.CategoryID)
	day, _ := DayOf(req.DayOfWeek)
	low, high := ViewRange(views)

	return &models.PredictionResult{
		EstimatedViews: views,
		FormattedViews: FormatCount(views),
		RangeLow:       low,
		RangeHigh:      high,
		TimingLabel:    TimingLabel(req.PublishHour, req.DayOfWeek),
		Insight:        Insight(views, req.EngagementRate, category, req.PublishHour, req.DayOfWeek),
		EngagementRate: req.EngagementRate,
		Summary: models.Summary{
			Likes:          FormatCount(req.Likes),
			Comments:       FormatCount(req.CommentCount),
			EngagementRate: fmt.Sprintf("%.2f", req.EngagementRate),
			Category:       category,
			CategoryID:     req.CategoryID,
			ChannelTitle:   req.ChannelTitle,
			PublishTime:    fmt.Sprintf("%d:00", req.PublishHour),
			Day:            day.Name,
			DayShort:       day.Short,
		},
	}
}

func (s *PredictionService) cacheKey(req models.PredictionRequest) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(append([]byte(s.modelID+"\n"), b...))
	return "views:prediction:" + hex.EncodeToString(sum[:16])
}
