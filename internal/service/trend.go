package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/minsuoh/krxpulse/internal/cache"
	"github.com/minsuoh/krxpulse/internal/domain/models"
	"github.com/minsuoh/krxpulse/internal/series"
)

// Fetcher is the batch-fetch dependency of the trend pipeline.
type Fetcher interface {
	Fetch(ctx context.Context, req models.TrendRequest) (models.Table, []models.Warning)
}

// TrendService runs the whole pipeline for one request: fetch, align,
// optionally rebase, reshape for chart and table rendering.
//
// Nothing here returns a fatal error: the worst outcome is an empty result
// carrying explanatory warnings, which the caller renders as a message.
type TrendService interface {
	GetTrend(ctx context.Context, req models.TrendRequest) (*models.TrendResult, error)
}

type trendService struct {
	fetcher Fetcher
	cache   *cache.ResultCache
	group   singleflight.Group
}

func NewTrendService(fetcher Fetcher, c *cache.ResultCache) TrendService {
	return &trendService{fetcher: fetcher, cache: c}
}

func (s *trendService) GetTrend(ctx context.Context, req models.TrendRequest) (*models.TrendResult, error) {
	key := req.CacheKey()
	if res, hit := s.cache.Get(key); hit {
		return &res, nil
	}

	// Identical concurrent requests collapse into one upstream run.
	v, err, _ := s.group.Do(key, func() (any, error) {
		res := s.run(ctx, req)
		s.cache.Set(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	res := v.(models.TrendResult)
	return &res, nil
}

func (s *trendService) run(ctx context.Context, req models.TrendRequest) models.TrendResult {
	aligned, warnings := s.fetcher.Fetch(ctx, req)

	table := aligned
	if req.Rebase {
		table = series.Normalize(aligned)
	}
	return models.TrendResult{
		Display:  series.Display(table, req.Mode, req.Rebase),
		Chart:    series.LongForm(table),
		Warnings: warnings,
	}
}
