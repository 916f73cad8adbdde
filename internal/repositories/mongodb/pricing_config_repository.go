package mongodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ridefare/internal/models"
	"ridefare/internal/repositories/interfaces"
	"ridefare/internal/services"
	"ridefare/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	activeConfigCacheKey = "pricing:active_config"
	activeConfigCacheTTL = 5 * time.Minute
)

type pricingConfigRepository struct {
	configs *mongo.Collection
	logs    *mongo.Collection
	cache   services.CacheService
}

func NewPricingConfigRepository(db *mongo.Database, cache services.CacheService) interfaces.PricingConfigRepository {
	return &pricingConfigRepository{
		configs: db.Collection("pricing_configs"),
		logs:    db.Collection("pricing_config_logs"),
		cache:   cache,
	}
}

// Basic CRUD operations
func (r *pricingConfigRepository) Create(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error {
	config.ID = primitive.NewObjectID()
	config.CreatedAt = time.Now()
	config.UpdatedAt = time.Now()
	sortTiers(config)

	count, err := r.configs.CountDocuments(ctx, bson.M{"name": config.Name})
	if err != nil {
		return fmt.Errorf("failed to check config name: %w", err)
	}
	if count > 0 {
		return models.ErrDuplicateName
	}

	err = r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.configs.InsertOne(sc, config); err != nil {
			return fmt.Errorf("failed to create pricing config: %w", err)
		}
		return r.appendLog(sc, config, entry)
	})
	if err != nil {
		return err
	}

	r.invalidateActiveCache(ctx)
	return nil
}

func (r *pricingConfigRepository) Update(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error {
	config.UpdatedAt = time.Now()
	sortTiers(config)

	count, err := r.configs.CountDocuments(ctx, bson.M{
		"name": config.Name,
		"_id":  bson.M{"$ne": config.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to check config name: %w", err)
	}
	if count > 0 {
		return models.ErrDuplicateName
	}

	err = r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		result, err := r.configs.UpdateOne(
			sc,
			bson.M{"_id": config.ID},
			bson.M{"$set": bson.M{
				"name":                   config.Name,
				"waiting_charge":         config.WaitingCharge,
				"waiting_time_threshold": config.WaitingTimeThreshold,
				"day_rules":              config.DayRules,
				"time_tiers":             config.TimeTiers,
				"updated_at":             config.UpdatedAt,
			}},
		)
		if err != nil {
			return fmt.Errorf("failed to update pricing config: %w", err)
		}
		if result.MatchedCount == 0 {
			return models.ErrConfigNotFound
		}
		return r.appendLog(sc, config, entry)
	})
	if err != nil {
		return err
	}

	r.invalidateActiveCache(ctx)
	return nil
}

func (r *pricingConfigRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingConfig, error) {
	var config models.PricingConfig
	err := r.configs.FindOne(ctx, bson.M{"_id": id}).Decode(&config)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get pricing config: %w", err)
	}

	sortTiers(&config)
	return &config, nil
}

func (r *pricingConfigRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.PricingConfig, int64, error) {
	filter := params.GetSearchFilter([]string{"name"})

	total, err := r.configs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pricing configs: %w", err)
	}

	cursor, err := r.configs.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pricing configs: %w", err)
	}
	defer cursor.Close(ctx)

	var configs []*models.PricingConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode pricing configs: %w", err)
	}

	for _, config := range configs {
		sortTiers(config)
	}
	return configs, total, nil
}

func (r *pricingConfigRepository) Delete(ctx context.Context, id primitive.ObjectID, entry *models.PricingConfigLog) error {
	config, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// The delete log entry is written before the config row goes away and
	// lives in its own collection, so audit history survives the delete.
	err = r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.appendLog(sc, config, entry); err != nil {
			return err
		}
		if _, err := r.configs.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return fmt.Errorf("failed to delete pricing config: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateActiveCache(ctx)
	return nil
}

// Activation
func (r *pricingConfigRepository) Activate(ctx context.Context, id primitive.ObjectID, entry *models.PricingConfigLog) error {
	config, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Both flips run inside one transaction so a concurrent reader sees the
	// old active config or the new one, never zero or two.
	err = r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		_, err := r.configs.UpdateMany(
			sc,
			bson.M{"_id": bson.M{"$ne": id}, "is_active": true},
			bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate configs: %w", err)
		}

		result, err := r.configs.UpdateOne(
			sc,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"is_active": true, "updated_at": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("failed to activate config: %w", err)
		}
		if result.MatchedCount == 0 {
			return models.ErrConfigNotFound
		}
		return r.appendLog(sc, config, entry)
	})
	if err != nil {
		return err
	}

	r.invalidateActiveCache(ctx)
	return nil
}

func (r *pricingConfigRepository) GetActive(ctx context.Context) (*models.PricingConfig, error) {
	if config := r.getActiveFromCache(ctx); config != nil {
		return config, nil
	}

	count, err := r.configs.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count active configs: %w", err)
	}
	if count == 0 {
		return nil, models.ErrNoActiveConfig
	}
	if count > 1 {
		// Never silently pick one; this means the activation transaction
		// guarantee was violated somewhere.
		return nil, models.ErrConfigCorrupt
	}

	var config models.PricingConfig
	if err := r.configs.FindOne(ctx, bson.M{"is_active": true}).Decode(&config); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNoActiveConfig
		}
		return nil, fmt.Errorf("failed to get active config: %w", err)
	}

	sortTiers(&config)
	r.cacheActive(ctx, &config)
	return &config, nil
}

// Audit log queries
func (r *pricingConfigRepository) GetLogs(ctx context.Context, configID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PricingConfigLog, int64, error) {
	filter := bson.M{"config_id": configID}

	total, err := r.logs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count config logs: %w", err)
	}

	cursor, err := r.logs.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get config logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.PricingConfigLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode config logs: %w", err)
	}

	return entries, total, nil
}

// Helper methods
func (r *pricingConfigRepository) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.configs.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			_ = session.AbortTransaction(sc)
			return err
		}
		return session.CommitTransaction(sc)
	})
}

func (r *pricingConfigRepository) appendLog(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error {
	entry.ID = primitive.NewObjectID()
	entry.ConfigID = config.ID
	entry.ConfigName = config.Name
	entry.CreatedAt = time.Now()

	if _, err := r.logs.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append config log: %w", err)
	}
	return nil
}

func (r *pricingConfigRepository) cacheActive(ctx context.Context, config *models.PricingConfig) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, activeConfigCacheKey, config, activeConfigCacheTTL)
}

func (r *pricingConfigRepository) getActiveFromCache(ctx context.Context) *models.PricingConfig {
	if r.cache == nil {
		return nil
	}
	var config models.PricingConfig
	if err := r.cache.Get(ctx, activeConfigCacheKey, &config); err != nil {
		return nil
	}
	return &config
}

func (r *pricingConfigRepository) invalidateActiveCache(ctx context.Context) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, activeConfigCacheKey)
}

// sortTiers keeps the tier ladder in ascending order so the engine can walk
// it directly.
func sortTiers(config *models.PricingConfig) {
	sort.Slice(config.TimeTiers, func(i, j int) bool {
		return config.TimeTiers[i].Order < config.TimeTiers[j].Order
	})
}
