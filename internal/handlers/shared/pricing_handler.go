package handlers

import (
	"strconv"

	"ridefare/internal/models"
	"ridefare/internal/services"
	"ridefare/internal/utils"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService services.PricingService
}

func NewPricingHandler(pricingService services.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// CalculatePrice computes a price breakdown for the given trip parameters
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	request, ok := bindPriceRequest(c)
	if !ok {
		return
	}

	breakdown, err := h.pricingService.CalculatePrice(c.Request.Context(), request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, "Price calculated successfully", breakdown)
}

// bindPriceRequest parses the trip query parameters. All four are required;
// range checks happen in the service layer.
func bindPriceRequest(c *gin.Context) (*models.PriceRequest, bool) {
	var request models.PriceRequest

	fields := []struct {
		name string
		dest *float64
	}{
		{"distance", &request.Distance},
		{"ride_time", &request.RideTime},
		{"waiting_time", &request.WaitingTime},
	}

	for _, field := range fields {
		raw := c.Query(field.name)
		if raw == "" {
			utils.BadRequestResponse(c, "Missing required parameter: "+field.name)
			return nil, false
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.BadRequestResponse(c, "Parameter "+field.name+" must be a number")
			return nil, false
		}
		*field.dest = value
	}

	raw := c.Query("day_of_week")
	if raw == "" {
		utils.BadRequestResponse(c, "Missing required parameter: day_of_week")
		return nil, false
	}
	day, err := strconv.Atoi(raw)
	if err != nil {
		utils.BadRequestResponse(c, "Parameter day_of_week must be an integer")
		return nil, false
	}
	request.DayOfWeek = day

	return &request, true
}
