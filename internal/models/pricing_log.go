package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LogAction string

const (
	LogActionCreate   LogAction = "create"
	LogActionUpdate   LogAction = "update"
	LogActionDelete   LogAction = "delete"
	LogActionActivate LogAction = "activate"
)

// PricingConfigLog is an append-only audit record. Entries live in their own
// collection and keep the config reference after the config itself is deleted.
type PricingConfigLog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConfigID   primitive.ObjectID `json:"config_id" bson:"config_id"`
	ConfigName string             `json:"config_name" bson:"config_name"`
	ActingUser *string            `json:"acting_user" bson:"acting_user"`
	Action     LogAction          `json:"action" bson:"action" validate:"required"`
	Changes    string             `json:"changes" bson:"changes"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
