// Command seeder loads sample data into the shop database, or with -d
// destroys every collection. It is a one-shot tool meant for development.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"myshop-backend/config"
	"myshop-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var collections = []string{"orders", "products", "users", "categories", "settings"}

func main() {
	destroy := flag.Bool("d", false, "destroy all data instead of seeding")
	flag.Parse()

	cfg := config.Load()
	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.DatabaseName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := wipe(ctx, db); err != nil {
		log.Fatal(err)
	}
	if *destroy {
		log.Println("Data Destroyed!")
		return
	}

	if err := seed(ctx, db); err != nil {
		log.Fatal(err)
	}
	log.Println("Data Imported!")
}

func wipe(ctx context.Context, db *mongo.Database) error {
	for _, name := range collections {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	return nil
}

func seed(ctx context.Context, db *mongo.Database) error {
	now := time.Now()

	hash := func(plain string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		return string(h)
	}

	users := []interface{}{
		models.User{Name: "Admin User", Email: "admin@example.com", Password: hash("123456"), IsAdmin: true, CreatedAt: now, UpdatedAt: now},
		models.User{Name: "John Doe", Email: "john@example.com", Password: hash("123456"), CreatedAt: now, UpdatedAt: now},
		models.User{Name: "Jane Doe", Email: "jane@example.com", Password: hash("123456"), CreatedAt: now, UpdatedAt: now},
	}
	insertedUsers, err := db.Collection("users").InsertMany(ctx, users)
	if err != nil {
		return err
	}
	adminID, ok := insertedUsers.InsertedIDs[0].(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected id type for seeded admin")
	}

	category := models.Category{
		Name:        "Electronics",
		Description: "Electronic Items",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.Collection("categories").InsertOne(ctx, category); err != nil {
		return err
	}

	products := []interface{}{
		models.Product{
			User: adminID, Name: "Airpods Wireless Bluetooth Headphones",
			Image: "/images/airpods.jpg", Category: category.Name,
			Description: "Bluetooth technology lets you connect it with compatible devices wirelessly",
			Price:       89.99, CountInStock: 10, Rating: 4.5, NumReviews: 12,
			CreatedAt: now, UpdatedAt: now,
		},
		models.Product{
			User: adminID, Name: "iPhone 13 Pro 256GB Memory",
			Image: "/images/phone.jpg", Category: category.Name,
			Description: "Introducing the iPhone 13 Pro. A transformative triple-camera system",
			Price:       599.99, CountInStock: 7, Rating: 4.0, NumReviews: 8,
			CreatedAt: now, UpdatedAt: now,
		},
		models.Product{
			User: adminID, Name: "Logitech G-Series Gaming Mouse",
			Image: "/images/mouse.jpg", Category: category.Name,
			Description: "Get a better handle on your games with this Logitech gaming mouse",
			Price:       49.99, CountInStock: 0, Rating: 3.5, NumReviews: 10,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	if _, err := db.Collection("products").InsertMany(ctx, products); err != nil {
		return err
	}

	return nil
}
