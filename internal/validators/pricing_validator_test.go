package validators

import (
	"testing"

	"ridefare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() *models.PricingConfigRequest {
	return &models.PricingConfigRequest{
		Name:                 "standard",
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

func TestValidatePricingConfigRequestValid(t *testing.T) {
	assert.Nil(t, ValidatePricingConfigRequest(baseRequest()))
}

func TestValidatePricingConfigRequestEmptyRulesAllowed(t *testing.T) {
	request := baseRequest()
	request.DayRules = nil
	request.TimeTiers = nil

	// A config with no rules is storable; the engine rejects it at
	// calculation time instead.
	assert.Nil(t, ValidatePricingConfigRequest(request))
}

func TestValidatePricingConfigRequestFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PricingConfigRequest)
		tag    string
	}{
		{"missing name", func(r *models.PricingConfigRequest) { r.Name = "" }, "required"},
		{"negative waiting charge", func(r *models.PricingConfigRequest) { r.WaitingCharge = -1 }, "gte"},
		{"negative threshold", func(r *models.PricingConfigRequest) { r.WaitingTimeThreshold = -1 }, "gte"},
		{"zero tier width", func(r *models.PricingConfigRequest) { r.TimeTiers[0].DurationUpperBound = 0 }, "gt"},
		{"negative multiplier", func(r *models.PricingConfigRequest) { r.TimeTiers[0].Multiplier = -2 }, "gte"},
		{"negative base distance", func(r *models.PricingConfigRequest) { r.DayRules[0].BaseDistance = -1 }, "gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := baseRequest()
			tt.mutate(request)

			errs := ValidatePricingConfigRequest(request)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.tag, errs[0].Tag)
		})
	}
}

func TestValidatePricingConfigRequestDuplicateDay(t *testing.T) {
	request := baseRequest()
	request.DayRules = append(request.DayRules, models.DayFareRule{
		Day: models.Monday, BaseDistance: 3, BasePrice: 40, AdditionalPrice: 8,
	})

	errs := ValidatePricingConfigRequest(request)
	require.Len(t, errs, 1)
	assert.Equal(t, "unique_day", errs[0].Tag)
	assert.Contains(t, errs[0].Message, "Monday")
}

func TestValidatePricingConfigRequestTierOrder(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
		valid  bool
	}{
		{"contiguous from zero", []int{0, 1, 2}, true},
		{"unsorted but contiguous", []int{2, 0, 1}, true},
		{"single tier", []int{0}, true},
		{"starts above zero", []int{1, 2}, false},
		{"gap in the middle", []int{0, 2}, false},
		{"order far past the end", []int{0, 5}, false},
		{"duplicate order", []int{0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := baseRequest()
			request.TimeTiers = nil
			for i, order := range tt.orders {
				request.TimeTiers = append(request.TimeTiers, models.TimeTier{
					DurationUpperBound: 10 * (i + 1),
					Multiplier:         2,
					Order:              order,
				})
			}

			errs := ValidatePricingConfigRequest(request)
			if tt.valid {
				assert.Nil(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, "tier_order", errs[0].Tag)
			}
		})
	}
}

func TestValidatePricingConfigRequestDuplicateUpperBound(t *testing.T) {
	request := baseRequest()
	request.TimeTiers[1].DurationUpperBound = 10

	errs := ValidatePricingConfigRequest(request)
	require.Len(t, errs, 1)
	assert.Equal(t, "unique_upper_bound", errs[0].Tag)
}

func TestValidatePricingConfigRequestCollectsAllErrors(t *testing.T) {
	request := baseRequest()
	request.Name = ""
	request.DayRules = append(request.DayRules, request.DayRules[0])
	request.TimeTiers[1].Order = 3

	errs := ValidatePricingConfigRequest(request)
	assert.GreaterOrEqual(t, len(errs), 3)
}
