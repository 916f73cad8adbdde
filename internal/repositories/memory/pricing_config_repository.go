package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ridefare/internal/models"
	"ridefare/internal/repositories/interfaces"
	"ridefare/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingConfigRepository is an in-memory implementation used by tests and
// local development. A single mutex serializes writes, which gives the same
// activation exclusivity guarantee the mongo implementation gets from a
// transaction.
type PricingConfigRepository struct {
	mu      sync.RWMutex
	configs map[primitive.ObjectID]*models.PricingConfig
	logs    []*models.PricingConfigLog
}

func NewPricingConfigRepository() *PricingConfigRepository {
	return &PricingConfigRepository{
		configs: make(map[primitive.ObjectID]*models.PricingConfig),
	}
}

var _ interfaces.PricingConfigRepository = (*PricingConfigRepository)(nil)

func (r *PricingConfigRepository) Create(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.configs {
		if existing.Name == config.Name {
			return models.ErrDuplicateName
		}
	}

	config.ID = primitive.NewObjectID()
	config.CreatedAt = time.Now()
	config.UpdatedAt = time.Now()
	sortTiers(config)

	r.configs[config.ID] = cloneConfig(config)
	r.appendLog(config, entry)
	return nil
}

func (r *PricingConfigRepository) Update(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.configs[config.ID]
	if !exists {
		return models.ErrConfigNotFound
	}
	for id, existing := range r.configs {
		if id != config.ID && existing.Name == config.Name {
			return models.ErrDuplicateName
		}
	}

	config.IsActive = stored.IsActive
	config.CreatedAt = stored.CreatedAt
	config.UpdatedAt = time.Now()
	sortTiers(config)

	r.configs[config.ID] = cloneConfig(config)
	r.appendLog(config, entry)
	return nil
}

func (r *PricingConfigRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, exists := r.configs[id]
	if !exists {
		return nil, models.ErrConfigNotFound
	}
	return cloneConfig(config), nil
}

func (r *PricingConfigRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.PricingConfig, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*models.PricingConfig
	for _, config := range r.configs {
		if params != nil && params.Search != "" &&
			!strings.Contains(strings.ToLower(config.Name), strings.ToLower(params.Search)) {
			continue
		}
		all = append(all, cloneConfig(config))
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if params != nil {
		start := params.GetSkip()
		if start > len(all) {
			start = len(all)
		}
		end := start + params.GetLimit()
		if end > len(all) {
			end = len(all)
		}
		all = all[start:end]
	}
	return all, total, nil
}

func (r *PricingConfigRepository) Delete(ctx context.Context, id primitive.ObjectID, entry *models.PricingConfigLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	config, exists := r.configs[id]
	if !exists {
		return models.ErrConfigNotFound
	}

	// Log entries are not cascaded; audit history outlives the config.
	r.appendLog(config, entry)
	delete(r.configs, id)
	return nil
}

func (r *PricingConfigRepository) Activate(ctx context.Context, id primitive.ObjectID, entry *models.PricingConfigLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, exists := r.configs[id]
	if !exists {
		return models.ErrConfigNotFound
	}

	for _, config := range r.configs {
		if config.IsActive {
			config.IsActive = false
			config.UpdatedAt = time.Now()
		}
	}
	target.IsActive = true
	target.UpdatedAt = time.Now()

	r.appendLog(target, entry)
	return nil
}

func (r *PricingConfigRepository) GetActive(ctx context.Context) (*models.PricingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active *models.PricingConfig
	for _, config := range r.configs {
		if !config.IsActive {
			continue
		}
		if active != nil {
			return nil, models.ErrConfigCorrupt
		}
		active = config
	}
	if active == nil {
		return nil, models.ErrNoActiveConfig
	}
	return cloneConfig(active), nil
}

func (r *PricingConfigRepository) GetLogs(ctx context.Context, configID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PricingConfigLog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.PricingConfigLog
	for _, entry := range r.logs {
		if entry.ConfigID == configID {
			copied := *entry
			matched = append(matched, &copied)
		}
	}

	// Newest first, matching the mongo implementation's default sort.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if params != nil {
		start := params.GetSkip()
		if start > len(matched) {
			start = len(matched)
		}
		end := start + params.GetLimit()
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *PricingConfigRepository) appendLog(config *models.PricingConfig, entry *models.PricingConfigLog) {
	entry.ID = primitive.NewObjectID()
	entry.ConfigID = config.ID
	entry.ConfigName = config.Name
	entry.CreatedAt = time.Now()
	r.logs = append(r.logs, entry)
}

func cloneConfig(config *models.PricingConfig) *models.PricingConfig {
	copied := *config
	copied.DayRules = append([]models.DayFareRule(nil), config.DayRules...)
	copied.TimeTiers = append([]models.TimeTier(nil), config.TimeTiers...)
	return &copied
}

func sortTiers(config *models.PricingConfig) {
	sort.Slice(config.TimeTiers, func(i, j int) bool {
		return config.TimeTiers[i].Order < config.TimeTiers[j].Order
	})
}
