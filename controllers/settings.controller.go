package controllers

import (
	"context"
	"net/http"
	"time"

	"myshop-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetSettings returns the site settings singleton, creating it with
// defaults on first read.
func (ctrl *Controller) GetSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ctrl.DB.Collection("settings")

	var settings models.Settings
	err := collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DefaultSettings()
		result, insertErr := collection.InsertOne(ctx, settings)
		if insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": insertErr.Error()})
			return
		}
		settings.ID = result.InsertedID.(primitive.ObjectID)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings merges the submitted fields into the singleton; empty
// fields keep their stored values.
func (ctrl *Controller) UpdateSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("settings")

	var settings models.Settings
	err := collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DefaultSettings()
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if req.SiteName != "" {
		settings.SiteName = req.SiteName
	}
	if req.Logo != "" {
		settings.Logo = req.Logo
	}
	if req.ContactEmail != "" {
		settings.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != "" {
		settings.ContactPhone = req.ContactPhone
	}
	if req.Currency != "" {
		settings.Currency = req.Currency
	}
	if req.SocialLinks != nil {
		settings.SocialLinks = *req.SocialLinks
	}
	if req.BannerImage != "" {
		settings.BannerImage = req.BannerImage
	}
	if req.AboutContent != "" {
		settings.AboutContent = req.AboutContent
	}
	settings.UpdatedAt = time.Now()

	if settings.ID.IsZero() {
		result, err := collection.InsertOne(ctx, settings)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		settings.ID = result.InsertedID.(primitive.ObjectID)
	} else {
		_, err := collection.ReplaceOne(ctx, bson.M{"_id": settings.ID}, settings)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, settings)
}
