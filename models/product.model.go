package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product defines the structure for a catalog product.
type Product struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User         primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Price        float64            `json:"price" bson:"price"`
	Description  string             `json:"description" bson:"description"`
	Image        string             `json:"image" bson:"image"`
	Category     string             `json:"category" bson:"category"`
	CountInStock int                `json:"countInStock" bson:"countInStock"`
	Rating       float64            `json:"rating" bson:"rating"`
	NumReviews   int                `json:"numReviews" bson:"numReviews"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"min=0"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	CountInStock int     `json:"countInStock" binding:"min=0"`
}

// UpdateProductRequest carries a partial product update. Nil fields keep
// their stored values.
type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Category     *string  `json:"category"`
	CountInStock *int     `json:"countInStock"`
}
