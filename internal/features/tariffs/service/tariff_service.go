package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/cache"
	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	"github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/tariffs/ports"

	"go.uber.org/zap"
)

const (
	activeZonesCacheKey = "tariffs:active_zones"
	activeZonesCacheTTL = 5 * time.Minute
)

// TariffService resolves tariff zones from free-text countries and simulates
// transport costs. All operations are pure reads.
type TariffService struct {
	zones       ports.ZoneRepository
	store       cache.Cache
	advanceRate float64
}

// NewTariffService creates a new TariffService. The cache may be nil, in which
// case zone listings always hit the repository.
func NewTariffService(zones ports.ZoneRepository, store cache.Cache, advanceRate float64) *TariffService {
	return &TariffService{
		zones:       zones,
		store:       store,
		advanceRate: advanceRate,
	}
}

// ResolveZone finds the active zone covering the given country.
//
// Active zones are iterated in ID order and the first case-insensitive exact
// match wins. Nothing prevents two active zones from listing the same country;
// the stable order keeps resolution reproducible. Returns (nil, nil) when no
// zone matches — "unassigned" is a normal outcome.
func (s *TariffService) ResolveZone(ctx context.Context, country string) (*domain.Zone, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, nil
	}

	zones, err := s.zones.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active zones: %w", err)
	}

	for i := range zones {
		if zones[i].MatchesCountry(country) {
			return &zones[i], nil
		}
	}
	return nil, nil
}

// EstimateForCountry simulates the transport cost for a country and optional
// weight without creating a request. An unknown country yields the
// unavailable estimate variant, never an error.
func (s *TariffService) EstimateForCountry(ctx context.Context, country string, weightKg *int) (domain.Estimate, error) {
	zone, err := s.ResolveZone(ctx, country)
	if err != nil {
		return domain.Estimate{}, err
	}
	return domain.ComputeEstimate(zone, weightKg, s.advanceRate), nil
}

// AdvanceRate returns the configured advance fraction.
func (s *TariffService) AdvanceRate() float64 {
	return s.advanceRate
}

// ListActiveZones returns the active zones, serving from cache when possible.
func (s *TariffService) ListActiveZones(ctx context.Context) ([]domain.Zone, error) {
	if s.store != nil {
		if data, err := s.store.Get(ctx, activeZonesCacheKey); err == nil {
			var cached []domain.Zone
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			logger.Named("tariffs.service").Warn("zone cache read failed", zap.Error(err))
		}
	}

	zones, err := s.zones.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active zones: %w", err)
	}

	if s.store != nil {
		if data, err := json.Marshal(zones); err == nil {
			if err := s.store.Set(ctx, activeZonesCacheKey, data, activeZonesCacheTTL); err != nil {
				logger.Named("tariffs.service").Warn("zone cache write failed", zap.Error(err))
			}
		}
	}
	return zones, nil
}
