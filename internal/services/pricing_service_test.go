package services

import (
	"context"
	"math"
	"testing"

	"ridefare/internal/models"
	"ridefare/internal/repositories/memory"
	"ridefare/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stderr",
	})
	require.NoError(t, err)
	return log
}

// standardConfig mirrors the fare schedule used across the pricing tests:
// Monday rides include 5 distance units for 50, 10 per extra unit; the first
// 10 minutes cost 2/min and the next 20 minutes 3/min; waiting is free for
// 5 minutes and 5 per started minute after that.
func standardConfig() *models.PricingConfig {
	return &models.PricingConfig{
		Name:                 "standard",
		IsActive:             true,
		WaitingCharge:        5,
		WaitingTimeThreshold: 5,
		DayRules: []models.DayFareRule{
			{Day: models.Monday, BaseDistance: 5, BasePrice: 50, AdditionalPrice: 10},
		},
		TimeTiers: []models.TimeTier{
			{DurationUpperBound: 10, Multiplier: 2, Order: 0},
			{DurationUpperBound: 20, Multiplier: 3, Order: 1},
		},
	}
}

func newPricingFixture(t *testing.T, configs ...*models.PricingConfig) (PricingService, *memory.PricingConfigRepository) {
	t.Helper()
	repo := memory.NewPricingConfigRepository()
	for _, config := range configs {
		entry := &models.PricingConfigLog{Action: models.LogActionCreate}
		require.NoError(t, repo.Create(context.Background(), config, entry))
	}
	return NewPricingService(repo, "USD", newTestLogger(t)), repo
}

func TestCalculatePriceBreakdown(t *testing.T) {
	service, _ := newPricingFixture(t, standardConfig())

	breakdown, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
		Distance:    8,
		RideTime:    15,
		WaitingTime: 12,
		DayOfWeek:   int(models.Monday),
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, breakdown.Components.DistancePrice)
	assert.Equal(t, 35.0, breakdown.Components.TimePrice)
	assert.Equal(t, 35.0, breakdown.Components.WaitingCharges)
	assert.Equal(t, 150.0, breakdown.Price)
}

func TestCalculatePriceDistanceComponent(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"zero distance still pays base", 0, 50},
		{"within base distance", 3, 50},
		{"exactly base distance", 5, 50},
		{"just over base distance", 5.5, 55},
		{"well over base distance", 12, 120},
	}

	service, _ := newPricingFixture(t, standardConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
				Distance:  tt.distance,
				DayOfWeek: int(models.Monday),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, breakdown.Components.DistancePrice)
		})
	}
}

func TestCalculatePriceTimeComponent(t *testing.T) {
	tests := []struct {
		name     string
		rideTime float64
		want     float64
	}{
		{"zero time", 0, 0},
		{"inside first tier", 4, 8},
		{"exactly first tier", 10, 20},
		{"spans both tiers", 15, 35},
		{"exactly both tiers", 30, 80},
		{"beyond the ladder is uncharged", 45, 80},
		{"fractional minutes", 2.5, 5},
	}

	service, _ := newPricingFixture(t, standardConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
				RideTime:  tt.rideTime,
				DayOfWeek: int(models.Monday),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, breakdown.Components.TimePrice)
		})
	}
}

func TestCalculatePriceWaitingComponent(t *testing.T) {
	tests := []struct {
		name        string
		waitingTime float64
		want        float64
	}{
		{"no waiting", 0, 0},
		{"under threshold", 4, 0},
		{"exactly at threshold", 5, 0},
		{"barely over threshold bills a whole minute", 5.1, 5},
		{"partial minutes round up", 7.2, 15},
		{"whole minutes over threshold", 12, 35},
	}

	service, _ := newPricingFixture(t, standardConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
				WaitingTime: tt.waitingTime,
				DayOfWeek:   int(models.Monday),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, breakdown.Components.WaitingCharges)
		})
	}
}

func TestCalculatePriceRounding(t *testing.T) {
	config := standardConfig()
	config.TimeTiers = []models.TimeTier{
		{DurationUpperBound: 10, Multiplier: 0.333, Order: 0},
	}
	service, _ := newPricingFixture(t, config)

	breakdown, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
		RideTime:  7,
		DayOfWeek: int(models.Monday),
	})
	require.NoError(t, err)

	// 7 * 0.333 = 2.331, rounded to cents.
	assert.Equal(t, 2.33, breakdown.Components.TimePrice)
	assert.Equal(t, 52.33, breakdown.Price)
}

func TestCalculatePriceZeroDecimalCurrency(t *testing.T) {
	repo := memory.NewPricingConfigRepository()
	config := standardConfig()
	config.TimeTiers = []models.TimeTier{
		{DurationUpperBound: 10, Multiplier: 0.333, Order: 0},
	}
	entry := &models.PricingConfigLog{Action: models.LogActionCreate}
	require.NoError(t, repo.Create(context.Background(), config, entry))
	service := NewPricingService(repo, "JPY", newTestLogger(t))

	breakdown, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
		RideTime:  7,
		DayOfWeek: int(models.Monday),
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, breakdown.Components.TimePrice)
	assert.Equal(t, 52.0, breakdown.Price)
}

func TestCalculatePriceNoActiveConfig(t *testing.T) {
	inactive := standardConfig()
	inactive.IsActive = false
	service, _ := newPricingFixture(t, inactive)

	_, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
		Distance:  8,
		DayOfWeek: int(models.Monday),
	})
	assert.ErrorIs(t, err, models.ErrNoActiveConfig)
}

func TestCalculatePriceMultipleActiveConfigs(t *testing.T) {
	second := standardConfig()
	second.Name = "standard-duplicate"
	service, _ := newPricingFixture(t, standardConfig(), second)

	_, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
		Distance:  8,
		DayOfWeek: int(models.Monday),
	})
	assert.ErrorIs(t, err, models.ErrConfigCorrupt)
}

func TestCalculatePriceNoPricingForDay(t *testing.T) {
	service, _ := newPricingFixture(t, standardConfig())

	_, err := service.CalculatePrice(context.Background(), &models.PriceRequest{
		Distance:  8,
		DayOfWeek: int(models.Saturday),
	})
	assert.ErrorIs(t, err, models.ErrNoPricingForDay)
}

func TestCalculatePriceInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		request *models.PriceRequest
	}{
		{"negative distance", &models.PriceRequest{Distance: -1, DayOfWeek: 1}},
		{"negative ride time", &models.PriceRequest{RideTime: -0.5, DayOfWeek: 1}},
		{"negative waiting time", &models.PriceRequest{WaitingTime: -3, DayOfWeek: 1}},
		{"day of week out of range", &models.PriceRequest{DayOfWeek: 7}},
		{"negative day of week", &models.PriceRequest{DayOfWeek: -1}},
	}

	service, _ := newPricingFixture(t, standardConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CalculatePrice(context.Background(), tt.request)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestCalculatePriceRejectsNonFiniteValues(t *testing.T) {
	nan := math.NaN()
	service, _ := newPricingFixture(t, standardConfig())

	for _, request := range []*models.PriceRequest{
		{Distance: nan, DayOfWeek: 1},
		{RideTime: math.Inf(1), DayOfWeek: 1},
		{WaitingTime: math.Inf(-1), DayOfWeek: 1},
	} {
		_, err := service.CalculatePrice(context.Background(), request)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}
}
