package validators

import (
	"fmt"
	"sort"

	"ridefare/internal/models"
)

// ValidatePricingConfigRequest checks the struct-level constraints plus the
// whole-set invariants the model cannot express through tags: day uniqueness,
// tier order contiguity and tier upper bound uniqueness.
func ValidatePricingConfigRequest(req *models.PricingConfigRequest) ValidationErrors {
	errors := ValidateStruct(req)

	errors = append(errors, validateDayRules(req.DayRules)...)
	errors = append(errors, validateTimeTiers(req.TimeTiers)...)

	if len(errors) == 0 {
		return nil
	}
	return errors
}

func validateDayRules(rules []models.DayFareRule) ValidationErrors {
	var errors ValidationErrors

	seen := make(map[models.Weekday]bool)
	for _, rule := range rules {
		if !rule.Day.Valid() {
			errors = append(errors, fieldError(
				"day_rules", "day", fmt.Sprintf("%d", rule.Day),
				fmt.Sprintf("day must be between 0 (Sunday) and 6 (Saturday), got %d", rule.Day),
			))
			continue
		}
		if seen[rule.Day] {
			errors = append(errors, fieldError(
				"day_rules", "unique_day", rule.Day.String(),
				fmt.Sprintf("duplicate fare rule for %s", rule.Day),
			))
		}
		seen[rule.Day] = true
	}

	return errors
}

// validateTimeTiers enforces the tier ladder invariants: no duplicate order,
// no order skipping past the current maximum plus one, and unique duration
// upper bounds. The ladder is validated as a whole set since tiers are only
// ever written as a batch alongside their config.
func validateTimeTiers(tiers []models.TimeTier) ValidationErrors {
	var errors ValidationErrors

	orders := make([]int, 0, len(tiers))
	bounds := make(map[int]bool)
	for _, tier := range tiers {
		orders = append(orders, tier.Order)
		if bounds[tier.DurationUpperBound] {
			errors = append(errors, fieldError(
				"time_tiers", "unique_upper_bound", fmt.Sprintf("%d", tier.DurationUpperBound),
				fmt.Sprintf("duplicate duration upper bound %d", tier.DurationUpperBound),
			))
		}
		bounds[tier.DurationUpperBound] = true
	}

	sort.Ints(orders)
	for i, order := range orders {
		if order != i {
			errors = append(errors, fieldError(
				"time_tiers", "tier_order", fmt.Sprintf("%d", order),
				"tiers must be in continuous order",
			))
			break
		}
	}

	return errors
}
