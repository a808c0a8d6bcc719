package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spherical/pdftext/internal/cache"
	"github.com/spherical/pdftext/internal/domain"
	"github.com/spherical/pdftext/internal/observability"
	"github.com/spherical/pdftext/internal/pdf"
)

// Service runs one extraction: validate the path, consult the cache, call
// the engine and shape the result.
type Service struct {
	extractor domain.Extractor
	validator *pdf.Validator
	cache     cache.Client
	cacheTTL  time.Duration
	logger    *observability.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache stores successful extractions in c for ttl.
func WithCache(c cache.Client, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithLogger sets the service logger.
func WithLogger(l *observability.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a new extraction service
func NewService(extractor domain.Extractor, opts ...Option) *Service {
	s := &Service{
		extractor: extractor,
		validator: pdf.NewValidator(),
		cache:     cache.Nop{},
		logger:    observability.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithEngine(extractor.Name())
	return s
}

// Process handles the complete extraction workflow for path. It always
// returns a result; the error is non-nil exactly when result.Success is
// false and carries the failure kind.
func (s *Service) Process(ctx context.Context, path string) (*domain.ExtractionResult, error) {
	if err := s.validator.ValidatePDFPath(path); err != nil {
		s.logger.Debug().Str("path", path).Msg("path does not exist")
		return domain.NewFailureResult(path, err), err
	}

	startTime := time.Now()

	key := s.cacheKey(path)
	if ex, ok := s.lookup(ctx, key); ok {
		s.logger.Info().Str("path", path).Msg("served from cache")
		return domain.NewSuccessResult(path, *ex), nil
	}

	ex, err := s.extract(ctx, path)
	if err != nil {
		derr := domain.ExtractionError(err)
		s.logger.Error().Str("path", path).Err(err).Msg("extraction failed")
		return domain.NewFailureResult(path, derr), derr
	}

	s.logger.Info().
		Str("path", path).
		Int("pages", ex.Metadata.PageCount).
		Bool("sparse", ex.Metadata.Sparse).
		Dur("took", time.Since(startTime)).
		Msg("extraction complete")

	s.store(ctx, key, ex)

	return domain.NewSuccessResult(path, *ex), nil
}

// extract calls the engine, turning a panic inside the PDF library into an
// ordinary error.
func (s *Service) extract(ctx context.Context, path string) (ex *domain.Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			ex = nil
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("%v", v)
			}
			s.logger.Warn().Str("path", path).Err(err).Msg("recovered panic in pdf library")
		}
	}()

	ex, err = s.extractor.Extract(ctx, path)
	if err == nil && ex == nil {
		err = errors.New("extractor returned no result")
	}
	return ex, err
}

func (s *Service) cacheKey(path string) string {
	if _, ok := s.cache.(cache.Nop); ok {
		return ""
	}
	key, err := cache.Key(s.extractor.Name(), path)
	if err != nil {
		// unreadable files fall through to the engine, which reports the error
		s.logger.Debug().Err(err).Msg("cache key unavailable")
		return ""
	}
	return key
}

func (s *Service) lookup(ctx context.Context, key string) (*domain.Extraction, bool) {
	if key == "" {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}

	var ex domain.Extraction
	if err := json.Unmarshal(data, &ex); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable cache entry")
		return nil, false
	}
	return &ex, true
}

func (s *Service) store(ctx context.Context, key string, ex *domain.Extraction) {
	if key == "" {
		return
	}

	data, err := json.Marshal(ex)
	if err != nil {
		s.logger.Warn().Err(err).Msg("encode cache entry")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("cache write failed")
	}
}
