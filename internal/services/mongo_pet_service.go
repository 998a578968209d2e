package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amigos/backend/internal/models"
)

type MongoPetService struct {
	client  *mongo.Client
	db      *mongo.Database
	petsCol *mongo.Collection
	images  ImageService
}

func NewMongoPetService(ctx context.Context, mongoURI, dbName string, images ImageService) (*MongoPetService, error) {
	client, err := dialMongo(ctx, mongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("pets")

	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	log.Printf("MongoDB connected (pets): db=%s", dbName)
	return &MongoPetService{client: client, db: db, petsCol: col, images: images}, nil
}

func (s *MongoPetService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoPetService) ListByUser(ctx context.Context, userID string) ([]models.Pet, error) {
	cur, err := s.petsCol.Find(
		ctx,
		bson.M{"user_id": userID, "status": models.StatusActive},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	pets := make([]models.Pet, 0)
	for cur.Next(ctx) {
		var p models.Pet
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, cur.Err()
}

func (s *MongoPetService) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	var pet models.Pet
	err := s.petsCol.FindOne(ctx, bson.M{"_id": id, "status": models.StatusActive}).Decode(&pet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return &pet, nil
}

func (s *MongoPetService) Create(ctx context.Context, userID string, req *models.PetRequest) (*models.Pet, error) {
	pictureID := ""
	if req.Picture != "" {
		id, err := s.images.Store(ctx, req.Picture)
		if err != nil {
			return nil, err
		}
		pictureID = id
	}

	pet := models.Pet{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		PictureID:   pictureID,
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.petsCol.InsertOne(ctx, pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (s *MongoPetService) Update(ctx context.Context, userID, id string, req *models.PetRequest) (*models.Pet, error) {
	set := bson.M{
		"name":        req.Name,
		"description": req.Description,
	}
	if req.Picture != "" {
		pictureID, err := s.images.Store(ctx, req.Picture)
		if err != nil {
			return nil, err
		}
		set["picture_id"] = pictureID
	}

	res := s.petsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user_id": userID, "status": models.StatusActive},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Pet
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoPetService) Delete(ctx context.Context, userID, id string) error {
	res, err := s.petsCol.UpdateOne(
		ctx,
		bson.M{"_id": id, "user_id": userID, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusDisabled}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPetNotFound
	}
	return nil
}
