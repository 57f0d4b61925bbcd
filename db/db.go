package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	SchedulesCollection *mongo.Collection
	ReviewsCollection   *mongo.Collection
	PhotosCollection    *mongo.Collection
	PlacesCollection    *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(mongoURL)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("tripdb").Collection("users")
	SchedulesCollection = Client.Database("tripdb").Collection("schedules")
	ReviewsCollection = Client.Database("tripdb").Collection("reviews")
	PhotosCollection = Client.Database("tripdb").Collection("photos")
	PlacesCollection = Client.Database("tripdb").Collection("places")
}
