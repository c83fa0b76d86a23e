// Package forecast turns a (day, month) request into a 24-hour load forecast.
//
// The pipeline is sequential: resolve the date, rebuild one feature vector
// per hour, normalize it, tile it into a window, run the model, then invert
// the target transform and pick the peak.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sumesh-12/energy-demand-prediction/internal/artifacts"
	"github.com/sumesh-12/energy-demand-prediction/internal/features"
	"github.com/sumesh-12/energy-demand-prediction/internal/metrics"
	"github.com/sumesh-12/energy-demand-prediction/internal/model"
	"github.com/sumesh-12/energy-demand-prediction/internal/predictor"
	"github.com/sumesh-12/energy-demand-prediction/internal/scaling"
)

// Cache stores finished forecasts by key.
type Cache interface {
	Get(ctx context.Context, key string) (model.DailyForecast, bool, error)
	Set(ctx context.Context, key string, f model.DailyForecast) error
}

// Publisher receives an event for every successful forecast.
type Publisher interface {
	PublishForecast(ctx context.Context, ev model.ForecastEvent) error
}

// Config wires a Service.
type Config struct {
	// Bundle is nil when the artifacts failed to load; LoadErr then says why.
	Bundle  *artifacts.Bundle
	LoadErr error

	// Model overrides Bundle.Model.
	Model Forwarder

	Now        func() time.Time
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Cache      Cache
	Publishers []Publisher
}

// Service is the pipeline boundary. It is safe for concurrent use.
type Service struct {
	builder     *features.Builder
	engine      *Engine
	scalers     *scaling.ScalerSet
	target      *scaling.TargetTransform
	fingerprint string
	loadErr     error

	now        func() time.Time
	log        *zap.Logger
	metrics    *metrics.Metrics
	cache      Cache
	publishers []Publisher
	group      singleflight.Group
}

// NewService builds a Service. A nil Bundle yields a service that answers
// every request with *model.ModelUnavailableError.
func NewService(cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Service{
		builder:    features.NewBuilder(now),
		now:        now,
		log:        log,
		metrics:    cfg.Metrics,
		cache:      cfg.Cache,
		publishers: cfg.Publishers,
		loadErr:    cfg.LoadErr,
	}

	if b := cfg.Bundle; b != nil {
		var m Forwarder = b.Model
		if cfg.Model != nil {
			m = cfg.Model
		}
		s.engine = NewEngine(m, cfg.Metrics)
		s.scalers = b.Scalers
		s.target = b.Target
		s.fingerprint = b.Fingerprint
	} else if s.loadErr == nil {
		s.loadErr = errors.New("no artifacts loaded")
	}

	s.metrics.SetModelReady(s.Ready())
	return s
}

// Ready reports whether the model artifacts are loaded.
func (s *Service) Ready() bool {
	return s.engine != nil
}

// Fingerprint identifies the loaded artifacts, empty when not ready.
func (s *Service) Fingerprint() string {
	return s.fingerprint
}

type result struct {
	forecast model.DailyForecast
	cached   bool
}

// Forecast produces the 24-hour forecast for req in the current year.
//
// Readiness is checked first, then the date; neither touches the model.
func (s *Service) Forecast(ctx context.Context, req model.ForecastRequest) (model.DailyForecast, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveForecast(time.Since(start)) }()

	if !s.Ready() {
		s.metrics.Forecast(metrics.OutcomeModelUnavailable)
		return model.DailyForecast{}, &model.ModelUnavailableError{Cause: s.loadErr}
	}

	date, err := s.builder.Date(req.Day, req.Month)
	if err != nil {
		s.metrics.Forecast(metrics.OutcomeInvalidDate)
		s.log.Debug("rejected forecast request", zap.Int("day", req.Day), zap.Int("month", req.Month), zap.Error(err))
		return model.DailyForecast{}, err
	}

	key := CacheKey(s.fingerprint, date)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if f, ok := s.cached(ctx, key); ok {
			return result{forecast: f, cached: true}, nil
		}
		f, err := s.run(date)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, f); err != nil {
				s.log.Warn("forecast cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return result{forecast: f}, nil
	})
	if err != nil {
		s.metrics.Forecast(metrics.OutcomeInferenceFailed)
		fields := []zap.Field{
			zap.Int("day", req.Day),
			zap.Int("month", req.Month),
			zap.Error(err),
		}
		var ie *model.InferenceError
		if errors.As(err, &ie) {
			fields = append(fields, zap.String("stage", ie.Stage), zap.Int("hour", ie.Hour))
		}
		s.log.Error("forecast inference failed", fields...)
		return model.DailyForecast{}, err
	}

	res := v.(result)
	if res.cached {
		s.metrics.Forecast(metrics.OutcomeCached)
	} else {
		s.metrics.Forecast(metrics.OutcomeSuccess)
	}
	s.publish(ctx, date, res)
	return res.forecast, nil
}

func (s *Service) cached(ctx context.Context, key string) (model.DailyForecast, bool) {
	if s.cache == nil {
		return model.DailyForecast{}, false
	}
	f, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("forecast cache read failed", zap.String("key", key), zap.Error(err))
		return model.DailyForecast{}, false
	}
	return f, ok
}

// run executes the 24 forward passes for date in hour order.
func (s *Service) run(date time.Time) (model.DailyForecast, error) {
	vectors := s.builder.Day(date)
	if len(vectors) != model.HoursPerDay {
		return model.DailyForecast{}, &model.InferenceError{
			Stage: model.StageBuild,
			Hour:  -1,
			Err:   fmt.Errorf("built %d vectors, want %d", len(vectors), model.HoursPerDay),
		}
	}

	raw := make([]float64, model.HoursPerDay)
	for h, v := range vectors {
		scaled, err := s.scalers.Apply(v)
		if err != nil {
			return model.DailyForecast{}, &model.InferenceError{Stage: model.StageNormalize, Hour: h, Err: err}
		}
		w := predictor.Assemble(scaled, predictor.WindowLength)
		out, err := s.engine.Forward(w)
		if err != nil {
			return model.DailyForecast{}, &model.InferenceError{Stage: model.StageForward, Hour: h, Err: err}
		}
		raw[h] = out
	}
	return Aggregate(raw, s.target)
}

func (s *Service) publish(ctx context.Context, date time.Time, res result) {
	if len(s.publishers) == 0 {
		return
	}
	ev := model.ForecastEvent{
		ID:          uuid.NewString(),
		Date:        date.Format(time.DateOnly),
		Forecast:    res.forecast,
		Cached:      res.cached,
		Fingerprint: s.fingerprint,
		At:          s.now().UTC(),
	}
	for _, p := range s.publishers {
		if err := p.PublishForecast(ctx, ev); err != nil {
			s.log.Warn("publish forecast event failed", zap.String("id", ev.ID), zap.Error(err))
		}
	}
}

// CacheKey is the cache key of a forecast for date under the given artifacts.
func CacheKey(fingerprint string, date time.Time) string {
	return "forecast:" + fingerprint + ":" + date.Format(time.DateOnly)
}
