package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/sidus-backend/internal/cities"
)

// CityService serves city autocomplete from an in-memory index with a
// bounded result cache.
type CityService struct {
	Index *cities.Index
	Cache *cities.Cache
}

// NewCityService wires ix with a cache of cacheSize entries.
func NewCityService(ix *cities.Index, cacheSize int) *CityService {
	return &CityService{Index: ix, Cache: cities.NewCache(cacheSize)}
}

// Search returns up to ten formatted city names matching q.
func (s *CityService) Search(ctx context.Context, q string) []string {
	key := strings.ToLower(strings.TrimSpace(q))
	_, span := otel.Tracer("services/CityService").Start(ctx, "Search",
		trace.WithAttributes(attribute.Int("query.len", len(key))))
	defer span.End()

	if len([]rune(key)) < cities.MinQueryRunes || s.Index == nil {
		return []string{}
	}
	if s.Cache != nil {
		if hit, ok := s.Cache.Get(key); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return hit
		}
	}
	out := s.Index.Search(key)
	if s.Cache != nil {
		s.Cache.Set(key, out)
	}
	return out
}

// ResetCache drops all cached results.
func (s *CityService) ResetCache() {
	if s.Cache != nil {
		s.Cache.Reset()
	}
}
