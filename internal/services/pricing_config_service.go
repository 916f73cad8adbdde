package services

import (
	"context"
	"encoding/json"
	"reflect"

	"ridefare/internal/models"
	"ridefare/internal/repositories/interfaces"
	"ridefare/internal/utils"
	"ridefare/internal/validators"
	"ridefare/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PricingConfigService interface {
	// Config Management
	CreateConfig(ctx context.Context, request *models.PricingConfigRequest, actingUser string) (*models.PricingConfig, error)
	UpdateConfig(ctx context.Context, configID primitive.ObjectID, request *models.PricingConfigRequest, actingUser string) (*models.PricingConfig, error)
	DeleteConfig(ctx context.Context, configID primitive.ObjectID, actingUser string) error
	GetConfig(ctx context.Context, configID primitive.ObjectID) (*models.PricingConfig, error)
	ListConfigs(ctx context.Context, params *utils.PaginationParams) ([]*models.PricingConfig, int64, error)

	// Activation Management
	ActivateConfig(ctx context.Context, configID primitive.ObjectID, actingUser string) error
	GetActiveConfig(ctx context.Context) (*models.PricingConfig, error)

	// Audit Log
	GetConfigLogs(ctx context.Context, configID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PricingConfigLog, int64, error)
}

type pricingConfigService struct {
	configRepo interfaces.PricingConfigRepository
	logger     *logger.Logger
}

func NewPricingConfigService(configRepo interfaces.PricingConfigRepository, logger *logger.Logger) PricingConfigService {
	return &pricingConfigService{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Config Management
func (s *pricingConfigService) CreateConfig(ctx context.Context, request *models.PricingConfigRequest, actingUser string) (*models.PricingConfig, error) {
	if errs := validators.ValidatePricingConfigRequest(request); errs != nil {
		return nil, errs
	}

	config := &models.PricingConfig{
		Name:                 request.Name,
		WaitingCharge:        request.WaitingCharge,
		WaitingTimeThreshold: request.WaitingTimeThreshold,
		DayRules:             request.DayRules,
		TimeTiers:            request.TimeTiers,
	}

	entry := newLogEntry(models.LogActionCreate, actingUser, describeFields(nil, config))
	if err := s.configRepo.Create(ctx, config, entry); err != nil {
		return nil, err
	}

	s.logger.LogConfigChange(config.ID, string(models.LogActionCreate), actingUser, entry.Changes)

	return config, nil
}

func (s *pricingConfigService) UpdateConfig(ctx context.Context, configID primitive.ObjectID, request *models.PricingConfigRequest, actingUser string) (*models.PricingConfig, error) {
	if errs := validators.ValidatePricingConfigRequest(request); errs != nil {
		return nil, errs
	}

	existing, err := s.configRepo.GetByID(ctx, configID)
	if err != nil {
		return nil, err
	}

	config := &models.PricingConfig{
		ID:                   existing.ID,
		Name:                 request.Name,
		IsActive:             existing.IsActive,
		WaitingCharge:        request.WaitingCharge,
		WaitingTimeThreshold: request.WaitingTimeThreshold,
		DayRules:             request.DayRules,
		TimeTiers:            request.TimeTiers,
		CreatedAt:            existing.CreatedAt,
	}

	entry := newLogEntry(models.LogActionUpdate, actingUser, describeFields(existing, config))
	if err := s.configRepo.Update(ctx, config, entry); err != nil {
		return nil, err
	}

	s.logger.LogConfigChange(config.ID, string(models.LogActionUpdate), actingUser, entry.Changes)

	return config, nil
}

func (s *pricingConfigService) DeleteConfig(ctx context.Context, configID primitive.ObjectID, actingUser string) error {
	entry := newLogEntry(models.LogActionDelete, actingUser, "config deleted")
	if err := s.configRepo.Delete(ctx, configID, entry); err != nil {
		return err
	}

	s.logger.LogConfigChange(configID, string(models.LogActionDelete), actingUser, entry.Changes)
	return nil
}

func (s *pricingConfigService) GetConfig(ctx context.Context, configID primitive.ObjectID) (*models.PricingConfig, error) {
	return s.configRepo.GetByID(ctx, configID)
}

func (s *pricingConfigService) ListConfigs(ctx context.Context, params *utils.PaginationParams) ([]*models.PricingConfig, int64, error) {
	return s.configRepo.List(ctx, params)
}

// Activation Management
func (s *pricingConfigService) ActivateConfig(ctx context.Context, configID primitive.ObjectID, actingUser string) error {
	entry := newLogEntry(models.LogActionActivate, actingUser, "config activated")
	if err := s.configRepo.Activate(ctx, configID, entry); err != nil {
		return err
	}

	s.logger.LogConfigChange(configID, string(models.LogActionActivate), actingUser, entry.Changes)
	return nil
}

func (s *pricingConfigService) GetActiveConfig(ctx context.Context) (*models.PricingConfig, error) {
	config, err := s.configRepo.GetActive(ctx)
	if err == models.ErrConfigCorrupt {
		s.logger.Error("Multiple active pricing configs found, store invariant violated")
	}
	return config, err
}

// Audit Log
func (s *pricingConfigService) GetConfigLogs(ctx context.Context, configID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PricingConfigLog, int64, error) {
	return s.configRepo.GetLogs(ctx, configID, params)
}

func newLogEntry(action models.LogAction, actingUser, changes string) *models.PricingConfigLog {
	entry := &models.PricingConfigLog{
		Action:  action,
		Changes: changes,
	}
	if actingUser != "" {
		entry.ActingUser = &actingUser
	}
	return entry
}

// describeFields serializes the set of changed fields for the audit log. On
// create every provided field is listed.
func describeFields(old, new *models.PricingConfig) string {
	changed := make([]string, 0, 5)

	if old == nil || old.Name != new.Name {
		changed = append(changed, "name")
	}
	if old == nil || old.WaitingCharge != new.WaitingCharge {
		changed = append(changed, "waiting_charge")
	}
	if old == nil || old.WaitingTimeThreshold != new.WaitingTimeThreshold {
		changed = append(changed, "waiting_time_threshold")
	}
	if old == nil || !reflect.DeepEqual(old.DayRules, new.DayRules) {
		changed = append(changed, "day_rules")
	}
	if old == nil || !reflect.DeepEqual(old.TimeTiers, new.TimeTiers) {
		changed = append(changed, "time_tiers")
	}

	data, _ := json.Marshal(changed)
	return string(data)
}
