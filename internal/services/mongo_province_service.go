package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amigos/backend/internal/models"
)

type MongoProvinceService struct {
	client       *mongo.Client
	db           *mongo.Database
	provincesCol *mongo.Collection
}

func NewMongoProvinceService(ctx context.Context, mongoURI, dbName string) (*MongoProvinceService, error) {
	client, err := dialMongo(ctx, mongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("provinces")

	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})

	log.Printf("MongoDB connected (provinces): db=%s", dbName)
	return &MongoProvinceService{client: client, db: db, provincesCol: col}, nil
}

func (s *MongoProvinceService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProvinceService) List(ctx context.Context) ([]models.Province, error) {
	cur, err := s.provincesCol.Find(
		ctx,
		bson.M{"status": models.StatusActive},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	provinces := make([]models.Province, 0)
	for cur.Next(ctx) {
		var p models.Province
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		provinces = append(provinces, p)
	}
	return provinces, cur.Err()
}

func (s *MongoProvinceService) GetByID(ctx context.Context, id string) (*models.Province, error) {
	var province models.Province
	err := s.provincesCol.FindOne(ctx, bson.M{"_id": id, "status": models.StatusActive}).Decode(&province)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProvinceNotFound
		}
		return nil, err
	}
	return &province, nil
}

func (s *MongoProvinceService) Create(ctx context.Context, name string) (*models.Province, error) {
	province := models.Province{
		ID:     uuid.New().String(),
		Name:   name,
		Status: models.StatusActive,
	}
	if _, err := s.provincesCol.InsertOne(ctx, province); err != nil {
		return nil, err
	}
	return &province, nil
}

func (s *MongoProvinceService) Update(ctx context.Context, id, name string) (*models.Province, error) {
	res := s.provincesCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": models.StatusActive},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Province
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProvinceNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoProvinceService) Delete(ctx context.Context, id string) error {
	res, err := s.provincesCol.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusDisabled}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProvinceNotFound
	}
	return nil
}
