package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is a diary entry. Mutations are owner-only.
type Story struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Creator   primitive.ObjectID `bson:"creator" json:"creator"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
