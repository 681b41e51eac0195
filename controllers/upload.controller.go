package controllers

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadImage receives a multipart image, pushes it to Cloudinary and
// responds with the hosted URL as a plain string.
func (ctrl *Controller) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Images only! (jpg, jpeg, png)"})
		return
	}

	if ctrl.Cld == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Image hosting is not configured"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uploadResult, err := ctrl.Cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "myshop_products"})
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cloudinary upload failed: " + err.Error()})
		return
	}

	c.String(http.StatusOK, uploadResult.SecureURL)
}
