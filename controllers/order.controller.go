package controllers

import (
	"context"
	"net/http"
	"time"

	"myshop-backend/middleware"
	"myshop-backend/models"
	"myshop-backend/pricing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateOrder places an order for the calling user. The price breakdown is
// recomputed from the submitted line items; client figures that disagree by
// more than a cent are rejected. Stock is not decremented here.
func (ctrl *Controller) CreateOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	lineItems := make([]pricing.LineItem, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		if it.Qty <= 0 || it.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order item"})
			return
		}
		lineItems = append(lineItems, pricing.LineItem{Price: it.Price, Qty: it.Qty})
	}

	totals := pricing.Calculate(lineItems)
	if !totals.Matches(req.ItemsPrice, req.ShippingPrice, req.TaxPrice, req.TotalPrice) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order totals do not match the submitted items"})
		return
	}

	now := time.Now()
	order := models.Order{
		User:            userID,
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		ShippingPrice:   totals.ShippingPrice,
		TaxPrice:        totals.TaxPrice,
		TotalPrice:      totals.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := ctrl.DB.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	order.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, order)
}

// GetMyOrders returns the calling user's orders.
func (ctrl *Controller) GetMyOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
		return
	}

	cursor, err := ctrl.DB.Collection("orders").Find(ctx, bson.M{"user": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrders returns every order in the store.
func (ctrl *Controller) GetOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ctrl.DB.Collection("orders").Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID returns one order; callers only see their own orders unless
// they are admins.
func (ctrl *Controller) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	filter := bson.M{"_id": orderID}
	if !c.GetBool(middleware.ContextIsAdmin) {
		userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		filter["user"] = userID
	}

	var order models.Order
	err = ctrl.DB.Collection("orders").FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}
