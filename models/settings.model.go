package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialLinks groups the shop's social media URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook" bson:"facebook"`
	Instagram string `json:"instagram" bson:"instagram"`
	Twitter   string `json:"twitter" bson:"twitter"`
}

// Settings is the singleton document holding site-wide configuration.
// It is created lazily with defaults on first read and never deleted.
type Settings struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	SiteName     string             `json:"siteName" bson:"siteName"`
	Logo         string             `json:"logo" bson:"logo"`
	ContactEmail string             `json:"contactEmail" bson:"contactEmail"`
	ContactPhone string             `json:"contactPhone" bson:"contactPhone"`
	Currency     string             `json:"currency" bson:"currency"`
	SocialLinks  SocialLinks        `json:"socialLinks" bson:"socialLinks"`
	BannerImage  string             `json:"bannerImage" bson:"bannerImage"`
	AboutContent string             `json:"aboutContent" bson:"aboutContent"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DefaultSettings returns the settings document created on first read.
func DefaultSettings() Settings {
	now := time.Now()
	return Settings{
		SiteName:  "My E-Commerce",
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateSettingsRequest carries a settings update. Empty fields keep
// their stored values.
type UpdateSettingsRequest struct {
	SiteName     string       `json:"siteName"`
	Logo         string       `json:"logo"`
	ContactEmail string       `json:"contactEmail"`
	ContactPhone string       `json:"contactPhone"`
	Currency     string       `json:"currency"`
	SocialLinks  *SocialLinks `json:"socialLinks"`
	BannerImage  string       `json:"bannerImage"`
	AboutContent string       `json:"aboutContent"`
}
