package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amigos/backend/internal/models"
)

type MongoImageService struct {
	client    *mongo.Client
	db        *mongo.Database
	imagesCol *mongo.Collection
}

func NewMongoImageService(ctx context.Context, mongoURI, dbName string) (*MongoImageService, error) {
	client, err := dialMongo(ctx, mongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)

	log.Printf("MongoDB connected (images): db=%s", dbName)
	return &MongoImageService{client: client, db: db, imagesCol: db.Collection("images")}, nil
}

func (s *MongoImageService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoImageService) Store(ctx context.Context, data string) (string, error) {
	image := models.Image{
		ID:   uuid.New().String(),
		Data: data,
	}
	if _, err := s.imagesCol.InsertOne(ctx, image); err != nil {
		return "", err
	}
	return image.ID, nil
}

func (s *MongoImageService) Fetch(ctx context.Context, id string) (string, error) {
	var image models.Image
	if err := s.imagesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&image); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrImageNotFound
		}
		return "", err
	}
	return image.Data, nil
}
