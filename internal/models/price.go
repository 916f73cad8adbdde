package models

type PriceRequest struct {
	Distance    float64 `json:"distance" form:"distance" validate:"finite,gte=0"`
	RideTime    float64 `json:"ride_time" form:"ride_time" validate:"finite,gte=0"`       // minutes
	WaitingTime float64 `json:"waiting_time" form:"waiting_time" validate:"finite,gte=0"` // minutes
	DayOfWeek   int     `json:"day_of_week" form:"day_of_week" validate:"gte=0,lte=6"`
}

type PriceComponents struct {
	DistancePrice  float64 `json:"distance_price"`
	TimePrice      float64 `json:"time_price"`
	WaitingCharges float64 `json:"waiting_charges"`
}

type PriceBreakdown struct {
	Price      float64         `json:"price"`
	Components PriceComponents `json:"components"`
}
