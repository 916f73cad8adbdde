package interfaces

import (
	"context"

	"ridefare/internal/models"
	"ridefare/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PricingConfigRepository interface {
	// Basic CRUD operations. Create and Update persist the config together
	// with its embedded day rules and tiers, and append the given log entry
	// in the same transaction.
	Create(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error
	Update(ctx context.Context, config *models.PricingConfig, entry *models.PricingConfigLog) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingConfig, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.PricingConfig, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID, entry *models.PricingConfigLog) error

	// Activation. Deactivates every other config and activates the target in
	// one transaction so readers never observe zero or two active configs.
	Activate(ctx context.Context, id primitive.ObjectID, entry *models.PricingConfigLog) error

	// GetActive returns the unique active config with its day rules and
	// ordered tiers. Returns models.ErrNoActiveConfig when none is active and
	// models.ErrConfigCorrupt when more than one is.
	GetActive(ctx context.Context) (*models.PricingConfig, error)

	// Audit log queries. Log entries are append-only and outlive their config.
	GetLogs(ctx context.Context, configID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PricingConfigLog, int64, error)
}
