package memory

import (
	"context"
	"testing"

	"ridefare/internal/models"
	"ridefare/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testConfig(name string) *models.PricingConfig {
	return &models.PricingConfig{
		Name:                 name,
		WaitingCharge:        5,
		WaitingTimeThreshold: 5,
		DayRules: []models.DayFareRule{
			{Day: models.Monday, BaseDistance: 5, BasePrice: 50, AdditionalPrice: 10},
		},
		TimeTiers: []models.TimeTier{
			{DurationUpperBound: 10, Multiplier: 2, Order: 0},
		},
	}
}

func createEntry() *models.PricingConfigLog {
	return &models.PricingConfigLog{Action: models.LogActionCreate}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	config := testConfig("weekday")
	require.NoError(t, repo.Create(ctx, config, createEntry()))
	assert.False(t, config.ID.IsZero())
	assert.False(t, config.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, config.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekday", fetched.Name)
	assert.Equal(t, config.DayRules, fetched.DayRules)
}

func TestCreateDuplicateName(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testConfig("weekday"), createEntry()))
	err := repo.Create(ctx, testConfig("weekday"), createEntry())
	assert.ErrorIs(t, err, models.ErrDuplicateName)
}

func TestCreateSortsTiersByOrder(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	config := testConfig("weekday")
	config.TimeTiers = []models.TimeTier{
		{DurationUpperBound: 20, Multiplier: 3, Order: 1},
		{DurationUpperBound: 10, Multiplier: 2, Order: 0},
	}
	require.NoError(t, repo.Create(ctx, config, createEntry()))

	fetched, err := repo.GetByID(ctx, config.ID)
	require.NoError(t, err)
	require.Len(t, fetched.TimeTiers, 2)
	assert.Equal(t, 0, fetched.TimeTiers[0].Order)
	assert.Equal(t, 1, fetched.TimeTiers[1].Order)
}

func TestGetByIDIsolatedFromCaller(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	config := testConfig("weekday")
	require.NoError(t, repo.Create(ctx, config, createEntry()))

	fetched, err := repo.GetByID(ctx, config.ID)
	require.NoError(t, err)
	fetched.DayRules[0].BasePrice = 999

	again, err := repo.GetByID(ctx, config.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, again.DayRules[0].BasePrice)
}

func TestUpdatePreservesActivationAndCreatedAt(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	config := testConfig("weekday")
	require.NoError(t, repo.Create(ctx, config, createEntry()))
	require.NoError(t, repo.Activate(ctx, config.ID, &models.PricingConfigLog{Action: models.LogActionActivate}))

	updated := testConfig("weekday-v2")
	updated.ID = config.ID
	updated.IsActive = false // must be ignored
	require.NoError(t, repo.Update(ctx, updated, &models.PricingConfigLog{Action: models.LogActionUpdate}))

	fetched, err := repo.GetByID(ctx, config.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekday-v2", fetched.Name)
	assert.True(t, fetched.IsActive)
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewPricingConfigRepository()

	missing := testConfig("missing")
	missing.ID = primitive.NewObjectID()
	err := repo.Update(context.Background(), missing, &models.PricingConfigLog{Action: models.LogActionUpdate})
	assert.ErrorIs(t, err, models.ErrConfigNotFound)
}

func TestActivateDeactivatesOthers(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	first := testConfig("first")
	second := testConfig("second")
	require.NoError(t, repo.Create(ctx, first, createEntry()))
	require.NoError(t, repo.Create(ctx, second, createEntry()))

	require.NoError(t, repo.Activate(ctx, first.ID, &models.PricingConfigLog{Action: models.LogActionActivate}))
	require.NoError(t, repo.Activate(ctx, second.ID, &models.PricingConfigLog{Action: models.LogActionActivate}))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestGetActiveErrors(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, models.ErrNoActiveConfig)

	first := testConfig("first")
	first.IsActive = true
	second := testConfig("second")
	second.IsActive = true
	require.NoError(t, repo.Create(ctx, first, createEntry()))
	require.NoError(t, repo.Create(ctx, second, createEntry()))

	_, err = repo.GetActive(ctx)
	assert.ErrorIs(t, err, models.ErrConfigCorrupt)
}

func TestDeleteKeepsLogs(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	config := testConfig("weekday")
	require.NoError(t, repo.Create(ctx, config, createEntry()))
	require.NoError(t, repo.Delete(ctx, config.ID, &models.PricingConfigLog{Action: models.LogActionDelete}))

	_, err := repo.GetByID(ctx, config.ID)
	assert.ErrorIs(t, err, models.ErrConfigNotFound)

	entries, total, err := repo.GetLogs(ctx, config.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, models.LogActionDelete, entries[0].Action)
	assert.Equal(t, "weekday", entries[0].ConfigName)
}

func TestListPaginationAndSearch(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	for _, name := range []string{"weekday", "weekend", "holiday"} {
		require.NoError(t, repo.Create(ctx, testConfig(name), createEntry()))
	}

	page, total, err := repo.List(ctx, &utils.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)

	matched, total, err := repo.List(ctx, &utils.PaginationParams{Page: 1, PageSize: 10, Search: "WEEK"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, matched, 2)
}

func TestGetLogsFiltersByConfig(t *testing.T) {
	repo := NewPricingConfigRepository()
	ctx := context.Background()

	first := testConfig("first")
	second := testConfig("second")
	require.NoError(t, repo.Create(ctx, first, createEntry()))
	require.NoError(t, repo.Create(ctx, second, createEntry()))
	require.NoError(t, repo.Activate(ctx, first.ID, &models.PricingConfigLog{Action: models.LogActionActivate}))

	entries, total, err := repo.GetLogs(ctx, first.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, entry := range entries {
		assert.Equal(t, first.ID, entry.ConfigID)
	}
}
