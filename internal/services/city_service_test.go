package services

import (
	"context"
	"testing"

	"github.com/tbourn/sidus-backend/internal/cities"
)

func TestCityService_SearchAndCache(t *testing.T) {
	ix := cities.New([]cities.City{
		{Name: "São Paulo", Country: "BR"},
		{Name: "Paris", Country: "FR"},
		{Name: "Parma", Country: "IT"},
	})
	s := NewCityService(ix, 2)
	ctx := context.Background()

	got := s.Search(ctx, "  SAO ")
	if len(got) != 1 || got[0] != "São Paulo, Brazil" {
		t.Fatalf("diacritic-insensitive search: %v", got)
	}
	if s.Cache.Len() != 1 {
		t.Fatalf("expected one cached query, got %d", s.Cache.Len())
	}
	if again := s.Search(ctx, "sao"); len(again) != 1 || again[0] != got[0] {
		t.Fatalf("cache hit mismatch: %v", again)
	}

	if short := s.Search(ctx, "p"); short == nil || len(short) != 0 {
		t.Fatalf("short query should return an empty slice, got %v", short)
	}
	if s.Cache.Len() != 1 {
		t.Fatalf("short queries should not be cached")
	}

	s.Search(ctx, "par")
	s.Search(ctx, "pa")
	if s.Cache.Len() != 2 {
		t.Fatalf("cache should stay bounded, got %d", s.Cache.Len())
	}
	s.ResetCache()
	if s.Cache.Len() != 0 {
		t.Fatalf("reset did not clear cache")
	}
}

func TestCityService_NilIndex(t *testing.T) {
	s := &CityService{}
	if got := s.Search(context.Background(), "paris"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
