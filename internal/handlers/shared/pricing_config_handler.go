package handlers

import (
	"errors"
	"net/http"

	"ridefare/internal/models"
	"ridefare/internal/services"
	"ridefare/internal/utils"
	"ridefare/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PricingConfigHandler struct {
	configService services.PricingConfigService
}

func NewPricingConfigHandler(configService services.PricingConfigService) *PricingConfigHandler {
	return &PricingConfigHandler{
		configService: configService,
	}
}

// CreateConfig creates a new pricing configuration
func (h *PricingConfigHandler) CreateConfig(c *gin.Context) {
	var request models.PricingConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	config, err := h.configService.CreateConfig(c.Request.Context(), &request, actingUser(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.CreatedResponse(c, "Pricing config created successfully", config)
}

// UpdateConfig updates an existing pricing configuration
func (h *PricingConfigHandler) UpdateConfig(c *gin.Context) {
	configID, ok := configIDParam(c)
	if !ok {
		return
	}

	var request models.PricingConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	config, err := h.configService.UpdateConfig(c.Request.Context(), configID, &request, actingUser(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pricing config updated successfully", config)
}

// DeleteConfig deletes a pricing configuration and its rules
func (h *PricingConfigHandler) DeleteConfig(c *gin.Context) {
	configID, ok := configIDParam(c)
	if !ok {
		return
	}

	if err := h.configService.DeleteConfig(c.Request.Context(), configID, actingUser(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pricing config deleted successfully", nil)
}

// ActivateConfig makes the target config the single active one
func (h *PricingConfigHandler) ActivateConfig(c *gin.Context) {
	configID, ok := configIDParam(c)
	if !ok {
		return
	}

	if err := h.configService.ActivateConfig(c.Request.Context(), configID, actingUser(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pricing config activated successfully", nil)
}

// GetConfig retrieves one pricing configuration
func (h *PricingConfigHandler) GetConfig(c *gin.Context) {
	configID, ok := configIDParam(c)
	if !ok {
		return
	}

	config, err := h.configService.GetConfig(c.Request.Context(), configID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pricing config retrieved successfully", config)
}

// GetActiveConfig retrieves the currently active pricing configuration
func (h *PricingConfigHandler) GetActiveConfig(c *gin.Context) {
	config, err := h.configService.GetActiveConfig(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, "Active pricing config retrieved successfully", config)
}

// ListConfigs lists pricing configurations with pagination
func (h *PricingConfigHandler) ListConfigs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	configs, total, err := h.configService.ListConfigs(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(configs),
	}
	utils.SuccessResponseWithMeta(c, "Pricing configs retrieved successfully", configs, meta)
}

// GetConfigLogs lists the audit trail for one configuration
func (h *PricingConfigHandler) GetConfigLogs(c *gin.Context) {
	configID, ok := configIDParam(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	entries, total, err := h.configService.GetConfigLogs(c.Request.Context(), configID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(entries),
	}
	utils.SuccessResponseWithMeta(c, "Config logs retrieved successfully", entries, meta)
}

func configIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	configID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid config ID")
		return primitive.NilObjectID, false
	}
	return configID, true
}

// actingUser returns the audit attribution set by the acting-user middleware.
func actingUser(c *gin.Context) string {
	if user, exists := c.Get("acting_user"); exists {
		if name, ok := user.(string); ok {
			return name
		}
	}
	return ""
}

// respondWithError maps service errors to the API error envelope. Corrupt
// store state is the only server-side case; everything else is caller
// correctable.
func respondWithError(c *gin.Context, err error) {
	var validationErrs validators.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, validationErrs.Details())
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrNoActiveConfig):
		utils.ErrorResponse(c, http.StatusBadRequest, "NO_ACTIVE_CONFIG", err.Error())
	case errors.Is(err, models.ErrNoPricingForDay):
		utils.ErrorResponse(c, http.StatusBadRequest, "NO_PRICING_FOR_DAY", err.Error())
	case errors.Is(err, models.ErrConfigNotFound):
		utils.NotFoundResponse(c, "Pricing config")
	case errors.Is(err, models.ErrDuplicateName):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrConfigCorrupt):
		utils.ErrorResponse(c, http.StatusInternalServerError, "CONFIG_CORRUPT", err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
