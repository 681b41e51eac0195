package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is an immutable product snapshot inside an order.
type OrderItem struct {
	Product primitive.ObjectID `json:"product" bson:"product"`
	Name    string             `json:"name" bson:"name"`
	Qty     int                `json:"qty" bson:"qty"`
	Price   float64            `json:"price" bson:"price"`
	Image   string             `json:"image" bson:"image"`
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// Order defines the structure for a placed order.
type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice" bson:"itemsPrice"`
	ShippingPrice   float64            `json:"shippingPrice" bson:"shippingPrice"`
	TaxPrice        float64            `json:"taxPrice" bson:"taxPrice"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool               `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool               `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateOrderRequest defines the checkout payload submitted by the client.
type CreateOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems" binding:"required,min=1"`
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}
