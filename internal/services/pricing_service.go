package services

import (
	"context"
	"fmt"
	"math"

	"ridefare/internal/models"
	"ridefare/internal/repositories/interfaces"
	"ridefare/internal/utils"
	"ridefare/internal/validators"
	"ridefare/pkg/logger"
)

type PricingService interface {
	CalculatePrice(ctx context.Context, request *models.PriceRequest) (*models.PriceBreakdown, error)
}

type pricingService struct {
	configRepo interfaces.PricingConfigRepository
	currency   string
	logger     *logger.Logger
}

func NewPricingService(configRepo interfaces.PricingConfigRepository, currency string, logger *logger.Logger) PricingService {
	return &pricingService{
		configRepo: configRepo,
		currency:   currency,
		logger:     logger,
	}
}

// CalculatePrice computes the price breakdown for a trip from the single
// active pricing config. The three components are independent: a distance
// charge from the day's fare rule, a time charge from the tier ladder and a
// waiting surcharge beyond the free allowance.
func (s *pricingService) CalculatePrice(ctx context.Context, request *models.PriceRequest) (*models.PriceBreakdown, error) {
	if errs := validators.ValidateStruct(request); errs != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, errs.Error())
	}

	config, err := s.configRepo.GetActive(ctx)
	if err != nil {
		if err == models.ErrConfigCorrupt {
			s.logger.Error("Multiple active pricing configs found, store invariant violated")
		}
		return nil, err
	}

	dayRule, ok := config.DayRule(models.Weekday(request.DayOfWeek))
	if !ok {
		return nil, models.ErrNoPricingForDay
	}

	components := models.PriceComponents{
		DistancePrice:  distancePrice(request.Distance, dayRule),
		TimePrice:      timePrice(request.RideTime, config.TimeTiers),
		WaitingCharges: waitingCharges(request.WaitingTime, config),
	}

	breakdown := &models.PriceBreakdown{
		Price: utils.RoundCurrency(components.DistancePrice+components.TimePrice+components.WaitingCharges, s.currency),
		Components: models.PriceComponents{
			DistancePrice:  utils.RoundCurrency(components.DistancePrice, s.currency),
			TimePrice:      utils.RoundCurrency(components.TimePrice, s.currency),
			WaitingCharges: utils.RoundCurrency(components.WaitingCharges, s.currency),
		},
	}

	s.logger.LogPriceCalculation(config.ID, models.Weekday(request.DayOfWeek).String(), breakdown.Price, s.currency)

	return breakdown, nil
}

func distancePrice(distance float64, rule *models.DayFareRule) float64 {
	if distance <= rule.BaseDistance {
		return rule.BasePrice
	}
	return rule.BasePrice + (distance-rule.BaseDistance)*rule.AdditionalPrice
}

// timePrice walks the tier ladder in ascending order, each tier consuming up
// to its width in minutes at its own per-minute rate. Ride time beyond the
// last tier is not charged.
func timePrice(rideTime float64, tiers []models.TimeTier) float64 {
	total := 0.0
	remaining := rideTime

	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}
		consumed := math.Min(remaining, float64(tier.DurationUpperBound))
		total += consumed * tier.Multiplier
		remaining -= consumed
	}

	return total
}

// waitingCharges bills waiting time beyond the free threshold, rounded up to
// whole minutes.
func waitingCharges(waitingTime float64, config *models.PricingConfig) float64 {
	threshold := float64(config.WaitingTimeThreshold)
	if waitingTime <= threshold {
		return 0
	}
	return math.Ceil(waitingTime-threshold) * config.WaitingCharge
}
