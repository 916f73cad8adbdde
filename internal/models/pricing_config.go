package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = map[Weekday]string{
	Sunday:    "Sunday",
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return "Unknown"
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

type PricingConfig struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name" validate:"required,max=100"`
	IsActive             bool               `json:"is_active" bson:"is_active"`
	WaitingCharge        float64            `json:"waiting_charge" bson:"waiting_charge" validate:"gte=0"`
	WaitingTimeThreshold int                `json:"waiting_time_threshold" bson:"waiting_time_threshold" validate:"gte=0"` // minutes
	DayRules             []DayFareRule      `json:"day_rules" bson:"day_rules" validate:"max=7,dive"`
	TimeTiers            []TimeTier         `json:"time_tiers" bson:"time_tiers" validate:"dive"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updated_at"`
}

type DayFareRule struct {
	Day             Weekday `json:"day" bson:"day" validate:"gte=0,lte=6"`
	BaseDistance    float64 `json:"base_distance" bson:"base_distance" validate:"gte=0"`
	BasePrice       float64 `json:"base_price" bson:"base_price" validate:"gte=0"`
	AdditionalPrice float64 `json:"additional_price" bson:"additional_price" validate:"gte=0"` // per distance unit beyond base
}

type TimeTier struct {
	DurationUpperBound int     `json:"duration_upper_bound" bson:"duration_upper_bound" validate:"gt=0"` // width of this band in minutes
	Multiplier         float64 `json:"multiplier" bson:"multiplier" validate:"gte=0"`                    // currency per minute
	Order              int     `json:"order" bson:"order" validate:"gte=0"`
}

// DayRule returns the fare rule for the given weekday, if the config has one.
func (c *PricingConfig) DayRule(day Weekday) (*DayFareRule, bool) {
	for i := range c.DayRules {
		if c.DayRules[i].Day == day {
			return &c.DayRules[i], true
		}
	}
	return nil, false
}

type PricingConfigRequest struct {
	Name                 string        `json:"name" validate:"required,max=100"`
	WaitingCharge        float64       `json:"waiting_charge" validate:"gte=0"`
	WaitingTimeThreshold int           `json:"waiting_time_threshold" validate:"gte=0"`
	DayRules             []DayFareRule `json:"day_rules" validate:"max=7,dive"`
	TimeTiers            []TimeTier    `json:"time_tiers" validate:"dive"`
}
