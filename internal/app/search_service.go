package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/cache"
	"github.com/R3MiX9002/my-gemini-app/internal/search"
)

const (
	latestYahooTemplate = "latest AI image video generator features %s 1K 4K 8K"
	latestBingTemplate  = "new AI multimedia generation improvements %s high resolution"
)

type SearchService struct {
	engines map[string]search.Engine
	cache   cache.SearchCache
}

// LatestFeatures holds one raw body per provider; a failed provider is null.
type LatestFeatures struct {
	Yahoo json.RawMessage `json:"yahoo"`
	Bing  json.RawMessage `json:"bing"`
}

// NewSearchService registers engines by name. resultCache may be nil.
func NewSearchService(resultCache cache.SearchCache, engines ...search.Engine) *SearchService {
	byName := make(map[string]search.Engine, len(engines))
	for _, e := range engines {
		byName[e.Name()] = e
	}
	return &SearchService{engines: byName, cache: resultCache}
}

// Search forwards query unchanged to the named engine and returns the body
// the provider sent.
func (s *SearchService) Search(ctx context.Context, engine, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}
	e, ok := s.engines[engine]
	if !ok {
		return nil, ErrUnknownEngine
	}

	logger := ctxzap.Extract(ctx).With(zap.String("engine", engine))
	key := cache.SearchKey(engine, query)
	if s.cache != nil {
		body, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("search cache read failed", zap.Error(err))
		} else if hit {
			logger.Debug("search cache hit")
			return body, nil
		}
	}

	body, err := e.Search(ctx, query)
	if err != nil {
		logger.Error("search request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body); err != nil {
			logger.Warn("search cache write failed", zap.Error(err))
		}
	}
	return body, nil
}

// LatestAIFeatures queries both providers with fixed AI-media templates.
func (s *SearchService) LatestAIFeatures(ctx context.Context, query string) (*LatestFeatures, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}

	result := &LatestFeatures{}
	if body, err := s.Search(ctx, search.Yahoo, fmt.Sprintf(latestYahooTemplate, query)); err == nil {
		result.Yahoo = body
	}
	if body, err := s.Search(ctx, search.Bing, fmt.Sprintf(latestBingTemplate, query)); err == nil {
		result.Bing = body
	}
	return result, nil
}
