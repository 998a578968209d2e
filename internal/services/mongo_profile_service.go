package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amigos/backend/internal/models"
)

type MongoProfileService struct {
	client      *mongo.Client
	db          *mongo.Database
	profilesCol *mongo.Collection
	users       UserService
	provinces   ProvinceService
	images      ImageService
}

func NewMongoProfileService(ctx context.Context, mongoURI, dbName string, users UserService, provinces ProvinceService, images ImageService) (*MongoProfileService, error) {
	client, err := dialMongo(ctx, mongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("profiles")

	// Best-effort indexes. At most one profile per user.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})

	log.Printf("MongoDB connected (profiles): db=%s", dbName)
	return &MongoProfileService{
		client:      client,
		db:          db,
		profilesCol: col,
		users:       users,
		provinces:   provinces,
		images:      images,
	}, nil
}

func (s *MongoProfileService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProfileService) FindForUser(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID, "status": models.StatusActive}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Zero-value profile; the caller never sees a not-found here.
			return &models.Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *MongoProfileService) UpdateBasicInfo(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	var existing models.Profile
	creating := false
	err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID, "status": models.StatusActive}).Decode(&existing)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
		creating = true
	}

	messages := req.Validate(creating)
	if req.ProvinceID != "" {
		if _, err := s.provinces.GetByID(ctx, req.ProvinceID); err != nil {
			if err == ErrProvinceNotFound {
				messages = append(messages, models.FieldMessage{Path: "province_id", Message: "Province not found"})
			} else {
				return nil, err
			}
		}
	}
	if len(messages) > 0 {
		return nil, &models.ValidationError{Messages: messages}
	}

	now := time.Now().UTC()
	if creating {
		profile := models.Profile{
			ID:         uuid.New().String(),
			UserID:     userID,
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			Address:    req.Address,
			ProvinceID: req.ProvinceID,
			Status:     models.StatusActive,
			UpdatedAt:  now,
		}
		if _, err := s.profilesCol.InsertOne(ctx, profile); err != nil {
			return nil, err
		}
		return &profile, nil
	}

	set := bson.M{"updated_at": now}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Email != "" {
		set["email"] = req.Email
	}
	if req.Address != "" {
		set["address"] = req.Address
	}

	update := bson.M{"$set": set}
	if req.ProvinceID != "" {
		set["province_id"] = req.ProvinceID
	} else {
		// Omitting the province clears it.
		update["$unset"] = bson.M{"province_id": ""}
	}

	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, "status": models.StatusActive},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Profile
	if err := res.Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoProfileService) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.profilesCol.FindOne(ctx, bson.M{"_id": id, "status": models.StatusActive}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *MongoProfileService) SearchByName(ctx context.Context, query, excludeUserID string) ([]models.ProfileView, error) {
	userIDs, err := s.users.FindIDsByName(ctx, query)
	if err != nil {
		return nil, err
	}

	nameFilter := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	filter := bson.M{
		"status":  models.StatusActive,
		"user_id": bson.M{"$ne": excludeUserID},
		"$or": []bson.M{
			{"name": nameFilter},
			{"user_id": bson.M{"$in": userIDs}},
		},
	}
	profiles, err := s.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return profilesToViews(ctx, s.images, profiles)
}

func (s *MongoProfileService) FindForUsers(ctx context.Context, userIDs []string) ([]models.ProfileView, error) {
	filter := bson.M{
		"status":  models.StatusActive,
		"user_id": bson.M{"$in": userIDs},
	}
	profiles, err := s.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return profilesToViews(ctx, s.images, profiles)
}

func (s *MongoProfileService) CreateDefault(ctx context.Context, userID, name string) (*models.Profile, error) {
	profile := models.Profile{
		ID:        userID,
		UserID:    userID,
		Name:      name,
		Status:    models.StatusActive,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := s.profilesCol.InsertOne(ctx, profile); err != nil {
		// If a race created it, fetch the winner.
		if mongo.IsDuplicateKeyError(err) {
			return s.FindForUser(ctx, userID)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *MongoProfileService) find(ctx context.Context, filter bson.M) ([]models.Profile, error) {
	cur, err := s.profilesCol.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	profiles := make([]models.Profile, 0)
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, cur.Err()
}
