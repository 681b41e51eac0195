package main

import (
	"log"

	"myshop-backend/config"
	"myshop-backend/controllers"
	"myshop-backend/routes"

	"github.com/cloudinary/cloudinary-go/v2"
)

func main() {
	cfg := config.Load()

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Fatal(err)
	}

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Failed to initialise Cloudinary: ", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
	}

	ctrl := &controllers.Controller{
		DB:              client.Database(cfg.DatabaseName),
		Cld:             cld,
		PasetoSecretKey: cfg.PasetoSecretKey,
	}

	r := routes.Setup(ctrl, cfg.Env)
	log.Printf("Server running on http://localhost:%s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
